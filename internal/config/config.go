package config

import (
	"errors"
	"os"
	"strconv"
)

// DefaultJWTSecret is the development fallback signing secret. It is
// well known, so startup refuses it in production.
const DefaultJWTSecret = "change-me"

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort    string
	Environment   string
	MySQLDSN      string
	StoreBackend  string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	JWTSecret     string
	AdminUsername string
	AdminPassword string
	SwaggerHost   string
}

// ErrDefaultSecretInProduction is returned by Validate when the process
// is flagged production but would still sign tokens with the known default.
var ErrDefaultSecretInProduction = errors.New("JWT_SECRET must be set in production")

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		Environment:   getEnv("APP_ENV", "development"),
		MySQLDSN:      getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/app?charset=utf8mb4&parseTime=True&loc=Local"),
		StoreBackend:  getEnv("STORE_BACKEND", "mysql"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     getEnv("JWT_SECRET", DefaultJWTSecret),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin-strange"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "strange"),
		SwaggerHost:   os.Getenv("SWAGGER_HOST"),
	}
}

// IsProduction reports whether the process runs in production mode.
// Cookie security attributes and the secret check key off this.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate rejects configurations that must not reach production.
func (c *Config) Validate() error {
	if c.IsProduction() && c.JWTSecret == DefaultJWTSecret {
		return ErrDefaultSecretInProduction
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
