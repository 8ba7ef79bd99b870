package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // APP_TIMEZONE must resolve on hosts without zoneinfo

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr     string
	GinMode     string
	DatabaseDSN string
	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins []string
	LogLevel    string
	// Location interprets trip departure dates and times.
	Location      *time.Location
	RunMigrations bool
	// AdminEmail and AdminPassword seed the first admin account when the
	// users table has none.
	AdminEmail    string
	AdminPassword string
}

var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// LoadEnv reads configuration from the environment, after loading a local
// .env file when one exists. It returns an error naming every required
// variable that is missing.
func LoadEnv() (Env, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	env := Env{
		AppAddr:       getEnv("APP_ADDR", ":8080"),
		GinMode:       getEnv("GIN_MODE", ""),
		DatabaseDSN:   getEnv("DATABASE_DSN", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   defaultCORSOrigins,
		RunMigrations: getEnvBool("RUN_MIGRATIONS", true),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
	if raw := getEnv("CORS_ALLOWED_ORIGINS", ""); raw != "" {
		env.CORSOrigins = splitCSV(raw)
	}

	var problems []string
	if env.DatabaseDSN == "" {
		problems = append(problems, "DATABASE_DSN")
	}
	if env.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET")
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil || ttl <= 0 {
		problems = append(problems, "TOKEN_TTL (invalid duration)")
	}
	env.TokenTTL = ttl

	loc, err := time.LoadLocation(getEnv("APP_TIMEZONE", "Asia/Ho_Chi_Minh"))
	if err != nil {
		problems = append(problems, "APP_TIMEZONE (unknown zone)")
	}
	env.Location = loc

	if len(problems) > 0 {
		return Env{}, fmt.Errorf("config: missing or invalid environment variables: %s", strings.Join(problems, ", "))
	}
	return env, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
