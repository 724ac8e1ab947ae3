package config

import (
	"reflect"
	"testing"
)

func TestLoadIncludesPipelineDefaults(t *testing.T) {
	t.Setenv("API_RATE_LIMIT_RPS", "")
	t.Setenv("API_RATE_LIMIT_BURST", "")
	t.Setenv("API_MAX_CONCURRENT", "")
	t.Setenv("CLASSIFIER_BACKENDS", "")
	t.Setenv("EXCERPT_MAX_CHARS", "")
	t.Setenv("R2_REGION", "")

	cfg := Load()
	if cfg.APIRateLimitRPS != 5 {
		t.Fatalf("expected default rate limit 5, got %v", cfg.APIRateLimitRPS)
	}
	if cfg.APIRateLimitBurst != 10 {
		t.Fatalf("expected default burst 10, got %d", cfg.APIRateLimitBurst)
	}
	if cfg.APIMaxConcurrent != 4 {
		t.Fatalf("expected default max concurrent 4, got %d", cfg.APIMaxConcurrent)
	}
	if cfg.ClassifierBackends != "openai,cohere" {
		t.Fatalf("expected default backend list, got %q", cfg.ClassifierBackends)
	}
	if cfg.ExcerptMaxChars != 4000 {
		t.Fatalf("expected default excerpt cap 4000, got %d", cfg.ExcerptMaxChars)
	}
	if cfg.R2Region != "auto" {
		t.Fatalf("expected default region auto, got %q", cfg.R2Region)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("API_RATE_LIMIT_RPS", "2.5")
	t.Setenv("API_MAX_CONCURRENT", "8")
	t.Setenv("AUDIO_TRANSCRIBE_ENABLED", "true")
	t.Setenv("BREAKER_ENABLED", "false")

	cfg := Load()
	if cfg.APIRateLimitRPS != 2.5 {
		t.Fatalf("expected rate limit override, got %v", cfg.APIRateLimitRPS)
	}
	if cfg.APIMaxConcurrent != 8 {
		t.Fatalf("expected max concurrent 8, got %d", cfg.APIMaxConcurrent)
	}
	if !cfg.AudioTranscribeEnabled {
		t.Fatalf("expected transcription enabled")
	}
	if cfg.BreakerEnabled {
		t.Fatalf("expected breaker disabled")
	}
}

func TestBackendOrderNormalizesList(t *testing.T) {
	cfg := Config{ClassifierBackends: " OpenAI , ,cohere,"}
	got := cfg.BackendOrder()
	want := []string{"openai", "cohere"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
