// internal/config/config.go
//
// Runtime configuration read from the environment.
// A .env file, when present, is loaded by main via godotenv before Load runs.
//
// Environment variables (defaults in parentheses):
//   PORT (5175)                      HTTP listen port
//   STORE (sqlite)                   records backend: sqlite | memory
//   DB_PATH (./data/codememory.db)   SQLite file
//   LOG_LEVEL (info)                 zerolog level
//   LOG_FORMAT (json)                json | console
//   JWT_SECRET (dev_secret_change_me)
//   PLAYER_COOKIE (codememory_player)
//   PLAYER_TOKEN_DAYS (180)
//   CLIENT_ORIGIN (http://localhost:5173)
//   DAILY_SALT (local_dev_salt)
//   CATALOG_FILE                     YAML catalog; empty uses the embedded one
//   GAME_IDLE_MINUTES (30)           close games untouched this long; 0 keeps them
//   NODE_ENV                         "production" enables Secure cookies

package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds every setting the server and CLI read at startup.
type Config struct {
	Port            string
	Store           string
	DBPath          string
	LogLevel        string
	LogFormat       string
	JWTSecret       string
	PlayerCookie    string
	PlayerTokenDays int
	ClientOrigin    string
	DailySalt       string
	CatalogFile     string
	GameIdle        time.Duration
	Production      bool
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		Port:            getEnv("PORT", "5175"),
		Store:           getEnv("STORE", "sqlite"),
		DBPath:          getEnv("DB_PATH", "./data/codememory.db"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		JWTSecret:       getEnv("JWT_SECRET", "dev_secret_change_me"),
		PlayerCookie:    getEnv("PLAYER_COOKIE", "codememory_player"),
		PlayerTokenDays: envInt("PLAYER_TOKEN_DAYS", 180),
		ClientOrigin:    getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		DailySalt:       getEnv("DAILY_SALT", "local_dev_salt"),
		CatalogFile:     os.Getenv("CATALOG_FILE"),
		GameIdle:        time.Duration(envInt("GAME_IDLE_MINUTES", 30)) * time.Minute,
		Production:      os.Getenv("NODE_ENV") == "production",
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt parses k as an integer, falling back to def when unset or invalid.
func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
