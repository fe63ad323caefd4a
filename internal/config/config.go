package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config carries the environment-supplied settings for both binaries.
// Every value has a local-development default; nothing is required.
type Config struct {
	Port         string // feedback API listen port
	MongoURI     string // document store connection string
	DBName       string
	SentimentURL string // base URL of the sentiment analyzer service
	WebhookURL   string // optional new-feedback notification target
	AnalyzerPort string // analyzer service listen port
}

// Load reads .env if present and resolves each setting against its
// local-development default.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:         getEnv("PORT", "8080"),
		MongoURI:     getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:       getEnv("DB_NAME", "feedback_hub"),
		SentimentURL: getEnv("SENTIMENT_URL", "http://localhost:8000"),
		WebhookURL:   getEnv("NOTIFY_WEBHOOK_URL", ""),
		AnalyzerPort: getEnv("ANALYZER_PORT", "8000"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
