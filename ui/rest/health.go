package rest

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"
	"github.com/saharabot/sahara/core/config"
	"github.com/saharabot/sahara/infrastructure/valkey"
	"github.com/saharabot/sahara/pkg/utils"
	"gorm.io/gorm"
)

type Health struct {
	DB      *gorm.DB
	Cache   *valkey.Client
	Config  *config.Config
	Started time.Time
}

func InitRestHealth(app fiber.Router, db *gorm.DB, cache *valkey.Client, cfg *config.Config) Health {
	handler := Health{DB: db, Cache: cache, Config: cfg, Started: time.Now()}

	app.Get("/api/health", handler.GetStatus)

	return handler
}

type healthStatus struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
	NLU      string `json:"nlu"`
}

func (h *Health) GetStatus(c *fiber.Ctx) error {
	status := healthStatus{
		Status:   "ok",
		Uptime:   humanize.Time(h.Started),
		Database: "up",
		Cache:    "disabled",
		NLU:      "disabled",
	}

	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.UserContext())
	}
	if err != nil {
		status.Status = "degraded"
		status.Database = "down"
	}

	if h.Cache != nil {
		status.Cache = "up"
		if err := h.Cache.Ping(c.UserContext()); err != nil {
			status.Status = "degraded"
			status.Cache = "down"
		}
	}

	if h.Config.NLU.Enabled {
		status.NLU = h.Config.NLU.Provider
	}

	httpStatus := 200
	if status.Status != "ok" {
		httpStatus = 503
	}

	return c.Status(httpStatus).JSON(utils.ResponseData{
		Status:  httpStatus,
		Code:    "SUCCESS",
		Message: "Health status retrieved",
		Results: status,
	})
}
