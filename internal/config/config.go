package config

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port int

	DBURL string

	// certificate upload storage
	CertDir        string
	MaxUploadBytes int64

	CORSOrigins []string

	JWTSecret           string
	JWTAccessTTLMinutes int
	BcryptCost          int

	// when false (the default) every route stays open, matching the
	// original contract; admin routes demand a token when true.
	EnforceAuth bool

	RateLimit       int
	RateLimitWindow time.Duration

	// optional seed user created at boot
	AdminEmail    string
	AdminPassword string
	AdminName     string

	TracingEnabled bool
	OTLPEndpoint   string
}

func Load() Config {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	return Config{
		Env:  getEnv("APP_ENV", "dev"),
		Port: getEnvInt("PORT", 8080),

		DBURL: buildDBURL(),

		CertDir:        getEnv("CERT_DIR", "uploads/certificates"),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),

		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),

		JWTSecret:           getEnv("JWT_SECRET", "dev-only-secret"),
		JWTAccessTTLMinutes: getEnvInt("JWT_ACCESS_TTL_MINUTES", 30),
		BcryptCost:          getEnvInt("BCRYPT_COST", 10),

		EnforceAuth: getEnvBool("AUTH_ENFORCE", false),

		RateLimit:       getEnvInt("RATE_LIMIT", 30),
		RateLimitWindow: time.Duration(getEnvInt("RATE_WINDOW_SECONDS", 60)) * time.Second,

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AdminName:     getEnv("ADMIN_NAME", "Administrator"),

		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		OTLPEndpoint:   getEnv("OTEL_EXPORTER_ENDPOINT", "localhost:4317"),
	}
}

// buildDBURL prefers a full DATABASE_URL and falls back to DB_* parts.
func buildDBURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "vendorhub")
	pass := getEnv("DB_PASSWORD", "vendorhub")
	name := getEnv("DB_NAME", "vendorhub")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)
		if err != nil {
			return fallback
		}
		return num
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return b
	}
	return fallback
}
