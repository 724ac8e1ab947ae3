package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shelfworks/bookintake/internal/config"
	"github.com/shelfworks/bookintake/internal/core/ports"
	"github.com/shelfworks/bookintake/internal/core/usecase"
	"github.com/shelfworks/bookintake/internal/infrastructure/classifier"
	"github.com/shelfworks/bookintake/internal/infrastructure/classifier/cohereai"
	"github.com/shelfworks/bookintake/internal/infrastructure/classifier/openai"
	"github.com/shelfworks/bookintake/internal/infrastructure/extractor/audio"
	"github.com/shelfworks/bookintake/internal/infrastructure/extractor/pdf"
	"github.com/shelfworks/bookintake/internal/infrastructure/resilience"
	"github.com/shelfworks/bookintake/internal/infrastructure/storage/r2"
	"github.com/shelfworks/bookintake/internal/infrastructure/transcriber"
	"github.com/shelfworks/bookintake/internal/infrastructure/transcriber/whisper"
	"github.com/shelfworks/bookintake/internal/observability/logging"
	"github.com/shelfworks/bookintake/internal/observability/metrics"
)

// audioExtensions are the audio source formats accepted for intake. They all
// share one extractor; dispatch happens on the lowercased extension.
var audioExtensions = []string{"mp3", "m4a", "m4b", "flac", "ogg", "wav"}

type App struct {
	Config config.Config

	Store     ports.ObjectStore
	AnalyzeUC ports.Analyzer
	Metrics   *metrics.Metrics
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger := logging.Component(slog.Default(), "bootstrap")

	store, err := r2.New(ctx, r2.Config{
		Endpoint:        cfg.R2Endpoint,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		Bucket:          cfg.R2Bucket,
		Region:          cfg.R2Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}
	logger.Info("object_store_ready", "bucket", cfg.R2Bucket)

	m := metrics.New("bookintake")

	breakerCfg := resilience.DefaultConfig()
	breakerCfg.Enabled = cfg.BreakerEnabled
	breaker := resilience.NewBreaker(breakerCfg)

	backends, err := buildClassifierBackends(cfg, breaker, m)
	if err != nil {
		return nil, err
	}
	chain := usecase.NewClassifierChain(backends...)
	logger.Info("classifier_chain_ready", "backends", len(backends))

	var stt ports.Transcriber
	if cfg.AudioTranscribeEnabled && cfg.TranscribeAPIKey != "" {
		whisperClient := whisper.New(cfg.TranscribeEndpoint, cfg.TranscribeModel, cfg.TranscribeAPIKey)
		stt = transcriber.NewGuarded(whisperClient, breaker)
	}

	extractors := map[string]ports.ContentExtractor{
		"pdf": pdf.New(cfg.ExcerptMaxChars),
	}
	audioExtractor := audio.New(stt, cfg.ExcerptMaxChars)
	for _, ext := range audioExtensions {
		extractors[ext] = audioExtractor
	}

	guard := usecase.NewIdempotencyGuard(store)
	publisher := usecase.NewPublisher(store)
	analyzeUC := usecase.NewAnalyzeUseCase(store, guard, extractors, chain, publisher)

	return &App{
		Config:    cfg,
		Store:     store,
		AnalyzeUC: analyzeUC,
		Metrics:   m,
	}, nil
}

func buildClassifierBackends(cfg config.Config, breaker *resilience.Breaker, m *metrics.Metrics) ([]ports.Classifier, error) {
	var backends []ports.Classifier
	for _, name := range cfg.BackendOrder() {
		var backend ports.Classifier
		switch name {
		case "openai":
			if cfg.OpenAIAPIKey == "" {
				continue
			}
			backend = openai.New(cfg.OpenAIEndpoint, cfg.OpenAIModel, cfg.OpenAIAPIKey)
		case "cohere":
			if cfg.CohereAPIKey == "" {
				continue
			}
			backend = cohereai.New(cfg.CohereAPIKey, cfg.CohereModel)
		default:
			return nil, fmt.Errorf("unknown classifier backend %q", name)
		}
		backends = append(backends, classifier.NewGuarded(backend, breaker, m))
	}
	return backends, nil
}
