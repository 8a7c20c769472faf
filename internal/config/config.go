package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string

	RedisURL string

	// AssetBaseURL is only used to resolve relative image paths to
	// displayable URLs at render time; it never touches stored values.
	AssetBaseURL string

	// SessionTTLMinutes bounds how long an idle editing session survives.
	SessionTTLMinutes int

	Storage StorageConfig
	Events  EventConfig
}

type StorageConfig struct {
	Provider       string // "minio" or "local"
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	LocalPath      string
}

func LoadConfig() (*Config, error) {
	// Missing .env is fine in production; environment variables win either way.
	_ = godotenv.Load()

	return &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379"),
		AssetBaseURL:      getEnv("ASSET_BASE_URL", "http://localhost:9000"),
		SessionTTLMinutes: getEnvInt("SESSION_TTL_MINUTES", 120),
		Storage: StorageConfig{
			Provider:       getEnv("STORAGE_PROVIDER", "local"),
			MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			MinioAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			MinioSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			MinioBucket:    getEnv("MINIO_BUCKET", "question-media"),
			MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
			LocalPath:      getEnv("STORAGE_LOCAL_PATH", "./data"),
		},
		Events: LoadEventConfig(),
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
