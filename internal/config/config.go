package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	APIPort  string
	LogLevel string

	APIRateLimitRPS   float64
	APIRateLimitBurst int
	APIMaxConcurrent  int

	R2Endpoint        string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2Bucket          string
	R2Region          string

	ClassifierBackends string

	OpenAIAPIKey   string
	OpenAIEndpoint string
	OpenAIModel    string

	CohereAPIKey string
	CohereModel  string

	AudioTranscribeEnabled bool
	TranscribeEndpoint     string
	TranscribeAPIKey       string
	TranscribeModel        string

	ExcerptMaxChars int
	BreakerEnabled  bool
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		APIRateLimitRPS:   mustEnvFloat("API_RATE_LIMIT_RPS", 5),
		APIRateLimitBurst: mustEnvInt("API_RATE_LIMIT_BURST", 10),
		APIMaxConcurrent:  mustEnvInt("API_MAX_CONCURRENT", 4),

		R2Endpoint:        mustEnv("R2_ENDPOINT", ""),
		R2AccessKeyID:     mustEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey: mustEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:          mustEnv("R2_BUCKET", "library"),
		R2Region:          mustEnv("R2_REGION", "auto"),

		ClassifierBackends: mustEnv("CLASSIFIER_BACKENDS", "openai,cohere"),

		OpenAIAPIKey:   mustEnv("OPENAI_API_KEY", ""),
		OpenAIEndpoint: mustEnv("OPENAI_ENDPOINT", "https://api.openai.com/v1/chat/completions"),
		OpenAIModel:    mustEnv("OPENAI_MODEL", "gpt-4o-mini"),

		CohereAPIKey: mustEnv("COHERE_API_KEY", ""),
		CohereModel:  mustEnv("COHERE_MODEL", "command-r"),

		AudioTranscribeEnabled: mustEnvBool("AUDIO_TRANSCRIBE_ENABLED", false),
		TranscribeEndpoint:     mustEnv("TRANSCRIBE_ENDPOINT", "https://api.openai.com/v1/audio/transcriptions"),
		TranscribeAPIKey:       mustEnv("TRANSCRIBE_API_KEY", ""),
		TranscribeModel:        mustEnv("TRANSCRIBE_MODEL", "whisper-1"),

		ExcerptMaxChars: mustEnvInt("EXCERPT_MAX_CHARS", 4000),
		BreakerEnabled:  mustEnvBool("BREAKER_ENABLED", true),
	}
}

// BackendOrder returns the configured classifier backend names in priority
// order, lowercased, with blanks dropped.
func (c Config) BackendOrder() []string {
	parts := strings.Split(c.ClassifierBackends, ",")
	order := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		order = append(order, name)
	}
	return order
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
