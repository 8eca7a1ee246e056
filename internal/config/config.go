package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	AppMode string
	Client  ClientConfig
	Sandbox SandboxConfig
}

// ClientConfig holds settings for the API client side.
type ClientConfig struct {
	// BaseURL of the backend, including the /api prefix.
	BaseURL string
	// SessionPath is where the persisted session file lives.
	SessionPath string
}

// SandboxConfig holds settings for the local sandbox backend.
type SandboxConfig struct {
	Port        string
	DBPath      string
	JWTSecret   string
	TokenHours  int
	SweeperSpec string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	tokenHours, _ := strconv.Atoi(getEnv("TOKEN_HOURS", "72"))

	config := &Config{
		AppMode: appMode,
		Client: ClientConfig{
			BaseURL:     getEnv("API_URL", "http://localhost:5000/api"),
			SessionPath: getEnv("SESSION_PATH", defaultSessionPath()),
		},
		Sandbox: SandboxConfig{
			Port:       getEnv("PORT", "5000"),
			DBPath:     getEnv("DB_PATH", "zeelx.db"),
			JWTSecret:  getEnv("JWT_SECRET", "default_secret"),
			TokenHours: tokenHours,
			// Daily sweep at 00:05 marking past-due loans overdue.
			SweeperSpec: getEnv("SWEEPER_SPEC", "5 0 * * *"),
		},
	}

	AppConfig = config

	log.Printf("Configuration loaded [MODE: %s]", appMode)
	return config, nil
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zeelx/session.json"
	}
	return filepath.Join(home, ".zeelx", "session.json")
}

// getEnv gets environment variable with default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode.
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode.
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS.
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" && c.IsDev() {
		return "*"
	}
	return origins
}
