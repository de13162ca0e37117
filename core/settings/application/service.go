package application

import (
	"context"
	"strings"

	"github.com/saharabot/sahara/core/config"
	"github.com/saharabot/sahara/core/settings/domain"
	"github.com/saharabot/sahara/core/settings/infrastructure"
	"gorm.io/gorm"
)

type SettingsService struct {
	repo domain.ISettingsRepository
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{
		repo: infrastructure.NewBotSettingsGormRepository(db),
	}
}

// DynamicSettings holds the database overrides for the environment config.
// A nil or empty field means the operator left the environment value alone.
type DynamicSettings struct {
	RegistrationOffice  string
	RegistrationHotline string
	NLUEnabled          *bool
	NLUModel            string
}

func (s *SettingsService) GetDynamicSettings(ctx context.Context) (*DynamicSettings, error) {
	if err := s.repo.InitSchema(ctx); err != nil {
		return nil, err
	}

	ds := &DynamicSettings{}

	if val, _ := s.repo.Get(ctx, domain.KeyRegistrationOfficeName); val != "" {
		ds.RegistrationOffice = val
	}
	if val, _ := s.repo.Get(ctx, domain.KeyRegistrationHotline); val != "" {
		ds.RegistrationHotline = val
	}
	if val, _ := s.repo.Get(ctx, domain.KeyNLUEnabled); val != "" {
		vLower := strings.ToLower(val)
		isOn := vLower == "1" || vLower == "true" || vLower == "yes" || vLower == "on"
		ds.NLUEnabled = &isOn
	}
	if val, _ := s.repo.Get(ctx, domain.KeyNLUModel); val != "" {
		ds.NLUModel = val
	}

	return ds, nil
}

// ApplyTo folds the stored overrides into the loaded configuration.
func (ds *DynamicSettings) ApplyTo(cfg *config.Config) {
	if ds.RegistrationOffice != "" {
		cfg.Channel.RegistrationOffice = ds.RegistrationOffice
	}
	if ds.RegistrationHotline != "" {
		cfg.Channel.RegistrationHotline = ds.RegistrationHotline
	}
	if ds.NLUEnabled != nil {
		cfg.NLU.Enabled = *ds.NLUEnabled
	}
	if ds.NLUModel != "" {
		cfg.NLU.Model = ds.NLUModel
	}
}

func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	if err := s.repo.InitSchema(ctx); err != nil {
		return err
	}
	return s.repo.Set(ctx, key, value)
}

func (s *SettingsService) Delete(ctx context.Context, key string) error {
	if err := s.repo.InitSchema(ctx); err != nil {
		return err
	}
	return s.repo.Delete(ctx, key)
}
