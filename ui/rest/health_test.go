package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/saharabot/sahara/core/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestHealth_ReportsStatus(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "health.db")
	db, err := gorm.Open(sqlite.Open("file:"+dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	cfg := testConfig()
	cfg.NLU = config.NLUConfig{Enabled: true, Provider: "gemini"}

	app := fiber.New()
	InitRestHealth(app, db, nil, cfg)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d, want 200", resp.StatusCode)
	}

	var envelope struct {
		Results healthStatus `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Results.Status != "ok" {
		t.Fatalf("unexpected health status %q", envelope.Results.Status)
	}
	if envelope.Results.Database != "up" {
		t.Fatalf("unexpected database status %q", envelope.Results.Database)
	}
	if envelope.Results.Cache != "disabled" {
		t.Fatalf("unexpected cache status %q", envelope.Results.Cache)
	}
	if envelope.Results.NLU != "gemini" {
		t.Fatalf("unexpected nlu status %q", envelope.Results.NLU)
	}
	if envelope.Results.Uptime == "" {
		t.Fatalf("uptime missing from health report")
	}
}
