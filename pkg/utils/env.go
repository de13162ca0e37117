package utils

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadConfig reads an optional .env file from path and wires viper to the
// process environment. Missing .env files are not an error.
func LoadConfig(path string) {
	envFile := filepath.Join(path, ".env")
	_ = godotenv.Load(envFile)

	viper.SetConfigFile(envFile)
	viper.SetConfigType("env")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}
