package application

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/saharabot/sahara/core/config"
	"github.com/saharabot/sahara/core/settings/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *SettingsService {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "settings.db")
	db, err := gorm.Open(sqlite.Open("file:"+dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return NewSettingsService(db)
}

func TestDynamicSettings_OverrideEnvConfig(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.Set(ctx, domain.KeyRegistrationOfficeName, "District Registration Office"); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}
	if err := svc.Set(ctx, domain.KeyNLUEnabled, "true"); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}

	ds, err := svc.GetDynamicSettings(ctx)
	if err != nil {
		t.Fatalf("GetDynamicSettings() unexpected error: %v", err)
	}

	cfg := &config.Config{
		Channel: config.ChannelConfig{
			RegistrationOffice:  "Office of the Prime Minister (OPM)",
			RegistrationHotline: "+977 1 555 0147",
		},
	}
	ds.ApplyTo(cfg)

	if cfg.Channel.RegistrationOffice != "District Registration Office" {
		t.Fatalf("office override not applied: %q", cfg.Channel.RegistrationOffice)
	}
	// Untouched keys keep their environment values.
	if cfg.Channel.RegistrationHotline != "+977 1 555 0147" {
		t.Fatalf("hotline changed without an override: %q", cfg.Channel.RegistrationHotline)
	}
	if !cfg.NLU.Enabled {
		t.Fatalf("nlu toggle override not applied")
	}
}

func TestDynamicSettings_EmptyDatabaseChangesNothing(t *testing.T) {
	svc := newTestService(t)

	ds, err := svc.GetDynamicSettings(context.Background())
	if err != nil {
		t.Fatalf("GetDynamicSettings() unexpected error: %v", err)
	}

	cfg := &config.Config{
		Channel: config.ChannelConfig{RegistrationOffice: "OPM"},
		NLU:     config.NLUConfig{Enabled: true, Model: "gemini-2.0-flash"},
	}
	ds.ApplyTo(cfg)

	if cfg.Channel.RegistrationOffice != "OPM" || !cfg.NLU.Enabled || cfg.NLU.Model != "gemini-2.0-flash" {
		t.Fatalf("empty settings table modified the config: %+v", cfg)
	}
}

func TestSettings_SetIsUpsert(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.Set(ctx, domain.KeyNLUModel, "gemini-2.0-flash"); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}
	if err := svc.Set(ctx, domain.KeyNLUModel, "gpt-4o-mini"); err != nil {
		t.Fatalf("Set() second write unexpected error: %v", err)
	}

	ds, err := svc.GetDynamicSettings(ctx)
	if err != nil {
		t.Fatalf("GetDynamicSettings() unexpected error: %v", err)
	}
	if ds.NLUModel != "gpt-4o-mini" {
		t.Fatalf("upsert kept the old value: %q", ds.NLUModel)
	}
}
