package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"vibeform/internal/log"
)

// Config holds process configuration read from the environment.
type Config struct {
	HTTPPort    string
	MongoURI    string
	MongoDB     string
	RedisAddr   string
	JWTSecret   string
	TokenTTL    time.Duration
	SessionTTL  time.Duration
	SummaryTTL  time.Duration
	CORSOrigins string
	LogLevel    string
}

// Load reads an optional .env file and then the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("could not read .env: %v", err)
	}

	return &Config{
		HTTPPort:    getEnv("PORT", "8080"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "vibeform"),
		RedisAddr:   strings.TrimPrefix(getEnv("REDIS_URI", "localhost:6379"), "redis://"),
		JWTSecret:   getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		TokenTTL:    getDuration("TOKEN_TTL", 7*24*time.Hour),
		SessionTTL:  getDuration("SESSION_TTL", 24*time.Hour),
		SummaryTTL:  getDuration("SUMMARY_TTL", 10*time.Minute),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	val := getEnv(key, "")
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		log.Warnf("invalid %s=%q, using %s", key, val, defaultVal)
		return defaultVal
	}
	return d
}

// AllowedOrigins splits CORSOrigins on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
