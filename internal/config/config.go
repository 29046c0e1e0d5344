package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port             string
	LogMode          string
	SupabaseURL      string
	SupabaseKey      string
	StorageBucket    string
	TopicsTable      string
	OpenAIAPIKey     string
	OpenAIModelNotes string
	BaseURL          string
	PageSize         int
	CacheTTL         time.Duration
	FetchTimeout     time.Duration
	MaxUploadBytes   int64
}

func LoadConfig() (Config, error) {
	cfg := Config{}

	cfg.Port = envOrDefault("PORT", "8080")
	cfg.LogMode = envOrDefault("LOG_MODE", "dev")

	cfg.SupabaseURL = os.Getenv("SUPABASE_URL")
	cfg.SupabaseKey = os.Getenv("SUPABASE_KEY")
	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		return Config{}, errors.New("SUPABASE_URL and SUPABASE_KEY are required")
	}

	cfg.StorageBucket = envOrDefault("SUPABASE_BUCKET", "cbse-resources")
	cfg.TopicsTable = envOrDefault("SUPABASE_TOPICS_TABLE", "topics")

	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAIModelNotes = envOrDefault("OPENAI_MODEL_NOTES", "gpt-4o-mini")

	cfg.BaseURL = envOrDefault("BASE_URL", fmt.Sprintf("http://localhost:%s", cfg.Port))

	pageSize, err := parseIntEnv("PAGE_SIZE", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse PAGE_SIZE: %w", err)
	}
	cfg.PageSize = int(pageSize)

	cacheTTLSeconds, err := parseIntEnv("CACHE_TTL_SECONDS", 60)
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL_SECONDS: %w", err)
	}
	cfg.CacheTTL = time.Duration(cacheTTLSeconds) * time.Second

	fetchTimeoutSeconds, err := parseIntEnv("FETCH_TIMEOUT_SECONDS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse FETCH_TIMEOUT_SECONDS: %w", err)
	}
	cfg.FetchTimeout = time.Duration(fetchTimeoutSeconds) * time.Second

	maxUploadMB, err := parseIntEnv("MAX_UPLOAD_MB", 50)
	if err != nil {
		return Config{}, fmt.Errorf("parse MAX_UPLOAD_MB: %w", err)
	}
	cfg.MaxUploadBytes = maxUploadMB * 1024 * 1024

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseIntEnv(key string, fallback int64) (int64, error) {
	value := envOrDefault(key, "")
	if value == "" {
		return fallback, nil
	}

	num, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, err
	}
	return num, nil
}
