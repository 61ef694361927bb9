package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser     string
	DBPassword string
	DBHost     string
	DBName     string

	JWTSecret   string
	CORSOrigins []string

	LogFile  string
	LogLevel string

	// StatementTimeout bounds every service call that touches the store.
	StatementTimeout time.Duration
}

// LoadEnv reads .env when present, then the process environment.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, relying on process env")
	}

	env := Env{
		AppAddr:    getEnv("APP_ADDR", ":8080"),
		GinMode:    getEnv("GIN_MODE", ""),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBHost:     getEnv("DB_HOST", "127.0.0.1:3306"),
		DBName:     getEnv("DB_NAME", "busfleet"),
		JWTSecret:  getEnv("JWT_SECRET", "change-me"),
		LogFile:    getEnv("LOG_FILE", "./logs/busfleet.log"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}

	origins := getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			env.CORSOrigins = append(env.CORSOrigins, o)
		}
	}

	env.StatementTimeout = 5 * time.Second
	if raw := getEnv("STATEMENT_TIMEOUT", ""); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			env.StatementTimeout = d
		} else {
			logrus.WithField("value", raw).Warn("invalid STATEMENT_TIMEOUT, using default")
		}
	}

	return env
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return def
}
