package config

import (
	"path/filepath"
	"strings"
	"time"
)

// Config holds all application configuration in a structured way.
type Config struct {
	App      AppConfig
	Paths    PathsConfig
	Database DatabaseConfig
	Channel  ChannelConfig
	NLU      NLUConfig
	Valkey   ValkeyConfig
}

type AppConfig struct {
	Version        string
	Port           string
	Debug          bool
	Environment    string
	BasePath       string
	TrustedProxies []string
}

type PathsConfig struct {
	Storages string
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string // File path for SQLite, DB name for Postgres
}

// ChannelConfig covers the messaging-gateway side: the shared secret used to
// verify inbound webhook signatures and a development-only bypass.
type ChannelConfig struct {
	AuthToken           string
	SkipSignatureCheck  bool
	RegistrationOffice  string
	RegistrationHotline string
}

// NLUConfig selects and configures the remote intent-detection provider.
// When Enabled is false (or no API key is set) the pipeline runs on the
// local keyword classifier only.
type NLUConfig struct {
	Enabled  bool
	Provider string // "gemini" or "openai"
	APIKey   string
	Model    string
}

type ValkeyConfig struct {
	Enabled   bool
	Address   string
	Password  string
	DB        int
	KeyPrefix string
	TTL       time.Duration
}

// Global provides access to the loaded configuration globally.
var Global *Config

// LoadConfig loads configuration from environment variables or defaults.
func LoadConfig() (*Config, error) {
	storages := getEnv("APP_STORAGES_PATH", "storages")

	appCfg := AppConfig{
		Version:     "v1.2.0",
		Port:        getEnv("APP_PORT", "3000"),
		Debug:       getEnvBool("APP_DEBUG", false),
		Environment: getEnv("APP_ENV", "development"),
		BasePath:    getEnv("APP_BASE_PATH", ""),
	}
	if v := getEnv("APP_TRUSTED_PROXIES", ""); v != "" {
		appCfg.TrustedProxies = strings.Split(v, ",")
	}

	dbCfg := DatabaseConfig{
		Driver:   getEnv("DB_DRIVER", "sqlite"),
		Name:     getEnv("DB_NAME", filepath.Join(storages, "sahara.db")),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
	}

	channelCfg := ChannelConfig{
		AuthToken:           getEnv("CHANNEL_AUTH_TOKEN", ""),
		SkipSignatureCheck:  getEnvBool("CHANNEL_SKIP_SIGNATURE_CHECK", false),
		RegistrationOffice:  getEnv("REGISTRATION_OFFICE_NAME", "Office of the Prime Minister (OPM)"),
		RegistrationHotline: getEnv("REGISTRATION_HOTLINE", ""),
	}

	nluCfg := NLUConfig{
		Enabled:  getEnvBool("NLU_ENABLED", false),
		Provider: strings.ToLower(getEnv("NLU_PROVIDER", "gemini")),
		APIKey:   getEnv("NLU_API_KEY", ""),
		Model:    getEnv("NLU_MODEL", ""),
	}

	valkeyCfg := ValkeyConfig{
		Enabled:   getEnvBool("VALKEY_ENABLED", false),
		Address:   getEnv("VALKEY_ADDRESS", "localhost:6379"),
		Password:  getEnv("VALKEY_PASSWORD", ""),
		DB:        getEnvInt("VALKEY_DB", 0),
		KeyPrefix: getEnv("VALKEY_KEY_PREFIX", "sahara:"),
		TTL:       time.Duration(getEnvInt("VALKEY_TTL_SECONDS", 300)) * time.Second,
	}

	cfg := &Config{
		App:      appCfg,
		Paths:    PathsConfig{Storages: storages},
		Database: dbCfg,
		Channel:  channelCfg,
		NLU:      nluCfg,
		Valkey:   valkeyCfg,
	}

	Global = cfg
	return cfg, nil
}

// IsProduction reports whether the app runs in production mode. The
// signature-verification bypass is refused in production no matter what the
// environment says.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production")
}
