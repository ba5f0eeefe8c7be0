package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Guide    GuideConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	NatsStreamMaxAge   time.Duration
	RedisURL           string
	JWTSecret          string
	OtelEndpoint       string
	TracingEnabled     bool
	TraceSampleRatio   float64
}

type DatabaseConfig struct {
	Connection string // empty keeps the seeded in-memory catalog
}

type AIConfig struct {
	Provider    string // "gemini", "ollama", "huggingface" or "none"
	BaseURL     string
	APIKey      string
	TabModel    string
	AdviceModel string
	Timeout     time.Duration
}

type GuideConfig struct {
	ClarificationPolicy string // "reclassify" or "reask"
	NudgeThreshold      int
	HistoryWindow       int
	MessageWait         time.Duration
	VocabularyFile      string
	SessionTTL          time.Duration
	CatalogCacheTTL     time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			NatsStreamMaxAge:   getEnvAsDuration("NATS_STREAM_MAX_AGE", 24*time.Hour),
			RedisURL:           getEnv("REDIS_URL", ""),
			JWTSecret:          getEnv("JWT_SECRET", "secret"),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			TracingEnabled:     getEnvAsBool("OTEL_ENABLED", false),
			TraceSampleRatio:   getEnvAsFloat("OTEL_SAMPLE_RATIO", 1.0),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			Provider:    getEnv("LLM_PROVIDER", "gemini"),
			BaseURL:     getEnv("LLM_BASE_URL", ""),
			APIKey:      getEnv("LLM_API_KEY", getEnv("GOOGLE_GEMINI_API_KEY", "")),
			TabModel:    getEnv("LLM_TAB_MODEL", "gemini-2.5-flash"),
			AdviceModel: getEnv("LLM_ADVICE_MODEL", "gemini-2.5-flash"),
			Timeout:     getEnvAsDuration("LLM_TIMEOUT", 30*time.Second),
		},
		Guide: GuideConfig{
			ClarificationPolicy: getEnv("GUIDE_CLARIFICATION_POLICY", "reclassify"),
			NudgeThreshold:      getEnvAsInt("GUIDE_NUDGE_THRESHOLD", 150),
			HistoryWindow:       getEnvAsInt("GUIDE_HISTORY_WINDOW", 10),
			MessageWait:         getEnvAsDuration("GUIDE_MESSAGE_WAIT", 45*time.Second),
			VocabularyFile:      getEnv("GUIDE_VOCABULARY_FILE", ""),
			SessionTTL:          getEnvAsDuration("GUIDE_SESSION_TTL", time.Hour),
			CatalogCacheTTL:     getEnvAsDuration("GUIDE_CATALOG_CACHE_TTL", 5*time.Minute),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("30s") or plain seconds ("30").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
