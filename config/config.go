package config

import (
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port       string
	DSN        string
	JWTSecret  string
	BcryptCost int
}

// Load reads configuration from environment variables. DSN and JWT_SECRET
// have no useful defaults and must be set for the server to work.
func Load() Config {
	return Config{
		Port:       getEnv("PORT", "3002"),
		DSN:        os.Getenv("DSN"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		BcryptCost: getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
