package serverutils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"voidbitz-chat-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(module string, message string, details map[string]interface{}) {}
func (noopLogger) Info(module string, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module string, message string, details map[string]interface{})  {}
func (noopLogger) Error(module string, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                         { return nil }

func newTestApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(noopLogger{}))
	app.Get("/probe", handler)
	return app
}

func TestErrorHandlerMiddleware_StatusMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "not found maps to 404",
			err:            apperror.NotFound("Session abc not found"),
			expectedStatus: fiber.StatusNotFound,
			expectedMsg:    "Session abc not found",
		},
		{
			name:           "validation maps to 400",
			err:            apperror.Validation("Field 'Name' is required"),
			expectedStatus: fiber.StatusBadRequest,
			expectedMsg:    "Field 'Name' is required",
		},
		{
			name:           "business rule maps to 400",
			err:            apperror.BusinessRule("Cannot delete model deployment that is referenced by existing chat sessions"),
			expectedStatus: fiber.StatusBadRequest,
			expectedMsg:    "Cannot delete model deployment that is referenced by existing chat sessions",
		},
		{
			name:           "upstream maps to 502",
			err:            apperror.Upstream("The model backend failed to produce a response", assert.AnError),
			expectedStatus: fiber.StatusBadGateway,
			expectedMsg:    "The model backend failed to produce a response",
		},
		{
			name:           "unclassified maps to masked 500",
			err:            assert.AnError,
			expectedStatus: fiber.StatusInternalServerError,
			expectedMsg:    "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(func(ctx *fiber.Ctx) error {
				return tt.err
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/probe", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			var body WebResponse[any]
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.expectedStatus, body.Code)
			assert.Equal(t, tt.expectedMsg, body.Message)
		})
	}
}

func TestErrorHandlerMiddleware_FiberErrorPassthrough(t *testing.T) {
	app := newTestApp(func(ctx *fiber.Ctx) error {
		return fiber.ErrMethodNotAllowed
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/probe", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode)
}

func TestErrorHandlerMiddleware_SuccessUntouched(t *testing.T) {
	app := newTestApp(func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse("ok", "payload"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/probe", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body WebResponse[string]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "payload", body.Data)
}
