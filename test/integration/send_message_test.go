package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"voidbitz-chat-be/internal/dto"
	"voidbitz-chat-be/internal/model"
	"voidbitz-chat-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendMessage(t *testing.T, app *fiber.App, sessionId uuid.UUID, message string) *http.Response {
	t.Helper()

	body, _ := json.Marshal(dto.SendMessageRequest{SessionId: sessionId, Message: message})
	req := httptest.NewRequest("POST", "/api/chat/v1/sessions/"+sessionId.String()+"/messages", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestSendMessageNoDeploymentAvailable(t *testing.T) {
	app, db := setupApp(t)

	// No default may exist for this scenario
	require.NoError(t, db.Model(&model.ModelDeployment{}).
		Where("is_default = ?", true).
		Update("is_default", false).Error)

	session := model.ChatSession{
		Id:     uuid.New(),
		Title:  "orphaned session",
		UserId: "demo-user",
	}
	require.NoError(t, db.Create(&session).Error)
	defer func() {
		db.Where("session_id = ?", session.Id).Delete(&model.ChatMessage{})
		db.Delete(&model.ChatSession{}, session.Id)
	}()

	resp := sendMessage(t, app, session.Id, "hello?")
	assert.Equal(t, 400, resp.StatusCode)

	var body serverutils.WebResponse[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Message, "No model deployment available")

	// The user turn survives the failure; no assistant row is written
	var messages []model.ChatMessage
	require.NoError(t, db.Where("session_id = ?", session.Id).Find(&messages).Error)
	require.Len(t, messages, 1)
	assert.Equal(t, "user", messages[0].Role)
	assert.Equal(t, "hello?", messages[0].Content)
}

func TestSendMessageUpstreamFailureKeepsUserTurn(t *testing.T) {
	app, db := setupApp(t)

	name := fmt.Sprintf("it-down-%d", time.Now().UnixNano())
	deployment := model.ModelDeployment{
		Id:             uuid.New(),
		Name:           name,
		DeploymentName: "gpt-4o",
		Endpoint:       "http://127.0.0.1:1",
		ApiKey:         "key",
		IsActive:       true,
	}
	require.NoError(t, db.Create(&deployment).Error)

	session := model.ChatSession{
		Id:                uuid.New(),
		Title:             "doomed send",
		UserId:            "demo-user",
		ModelDeploymentId: &deployment.Id,
	}
	require.NoError(t, db.Create(&session).Error)
	defer func() {
		db.Where("session_id = ?", session.Id).Delete(&model.ChatMessage{})
		db.Delete(&model.ChatSession{}, session.Id)
		db.Delete(&model.ModelDeployment{}, deployment.Id)
	}()

	resp := sendMessage(t, app, session.Id, "anyone there?")
	assert.Equal(t, 502, resp.StatusCode)

	var messages []model.ChatMessage
	require.NoError(t, db.Where("session_id = ?", session.Id).Find(&messages).Error)
	require.Len(t, messages, 1)
	assert.Equal(t, "user", messages[0].Role)
}

func TestSendMessagePersistsAssistantAndTouchesSession(t *testing.T) {
	app, db := setupApp(t)

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"echo reply"}}]}`)
	}))
	defer backend.Close()

	name := fmt.Sprintf("it-echo-%d", time.Now().UnixNano())
	deployment := model.ModelDeployment{
		Id:             uuid.New(),
		Name:           name,
		DeploymentName: "gpt-4o",
		Endpoint:       backend.URL,
		ApiKey:         "key",
		IsActive:       true,
	}
	require.NoError(t, db.Create(&deployment).Error)

	session := model.ChatSession{
		Id:                uuid.New(),
		Title:             "live send",
		UserId:            "demo-user",
		ModelDeploymentId: &deployment.Id,
	}
	require.NoError(t, db.Create(&session).Error)
	defer func() {
		db.Where("session_id = ?", session.Id).Delete(&model.ChatMessage{})
		db.Delete(&model.ChatSession{}, session.Id)
		db.Delete(&model.ModelDeployment{}, deployment.Id)
	}()

	var before model.ChatSession
	require.NoError(t, db.First(&before, "id = ?", session.Id).Error)

	resp := sendMessage(t, app, session.Id, "say something")
	require.Equal(t, 200, resp.StatusCode)

	var body serverutils.WebResponse[dto.ChatMessageResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "assistant", body.Data.Role)
	assert.Equal(t, "echo reply", body.Data.Content)
	assert.Equal(t, session.Id, body.Data.SessionId)
	// ceil(len("echo reply")/4) = ceil(10/4)
	assert.Equal(t, 3, body.Data.TokenCount)

	var messages []model.ChatMessage
	require.NoError(t, db.Where("session_id = ?", session.Id).Order("timestamp asc").Find(&messages).Error)
	require.Len(t, messages, 2)
	assert.Equal(t, "user", messages[0].Role)
	assert.Equal(t, "say something", messages[0].Content)
	assert.Equal(t, "assistant", messages[1].Role)
	assert.False(t, messages[1].Timestamp.Before(messages[0].Timestamp))

	var after model.ChatSession
	require.NoError(t, db.First(&after, "id = ?", session.Id).Error)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
}
