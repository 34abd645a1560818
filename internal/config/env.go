package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Env holds process-level settings read from the environment.
type Env struct {
	Addr         string
	DataDir      string
	StoreBackend string // "file" or "sqlite"
	SlackToken   string
	SlackChannel string
}

// LoadEnv loads a .env file if present, then reads settings from
// environment variables with sensible defaults.
func LoadEnv() *Env {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("loading .env: %v", err)
	}

	return &Env{
		Addr:         getEnv("FORGE_ADDR", "127.0.0.1:5000"),
		DataDir:      getEnv("FORGE_DATA_DIR", "data"),
		StoreBackend: getEnv("FORGE_STORE", "file"),
		SlackToken:   getEnv("SLACK_BOT_TOKEN", ""),
		SlackChannel: getEnv("SLACK_CHANNEL_ID", ""),
	}
}

// ConfigPath returns the location of the consideration config file inside
// the data directory.
func (e *Env) ConfigPath() string {
	return filepath.Join(e.DataDir, "config.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
