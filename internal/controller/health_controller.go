package controller

import (
	"time"

	"voidbitz-chat-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Live(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
}

type healthController struct {
	db        *gorm.DB
	startedAt time.Time
}

func NewHealthController(db *gorm.DB) IHealthController {
	return &healthController{
		db:        db,
		startedAt: time.Now().UTC(),
	}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/health/v1")
	h.Get("live", c.Live)
	h.Get("status", c.Status)
}

// Live answers as long as the process is up. No dependencies are checked.
func (c *healthController) Live(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("ok", map[string]string{
		"status": "alive",
	}))
}

// Status additionally pings the database.
func (c *healthController) Status(ctx *fiber.Ctx) error {
	dbStatus := "up"

	sqlDB, err := c.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx.Context())
	}
	if err != nil {
		dbStatus = "down"
	}

	payload := map[string]interface{}{
		"status":         "ok",
		"database":       dbStatus,
		"uptime_seconds": int64(time.Since(c.startedAt).Seconds()),
	}

	if dbStatus == "down" {
		payload["status"] = "degraded"
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.SuccessResponse("degraded", payload))
	}

	return ctx.JSON(serverutils.SuccessResponse("ok", payload))
}
