package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	gcs "cloud.google.com/go/storage"
	"github.com/redis/go-redis/v9"

	"github.com/dave/jobwiz-sub002/internal/clock"
	"github.com/dave/jobwiz-sub002/internal/config"
	"github.com/dave/jobwiz-sub002/internal/generator"
	"github.com/dave/jobwiz-sub002/internal/infrastructure/dataset"
	"github.com/dave/jobwiz-sub002/internal/infrastructure/llm"
	"github.com/dave/jobwiz-sub002/internal/infrastructure/storage"
	"github.com/dave/jobwiz-sub002/internal/infrastructure/telegram"
	"github.com/dave/jobwiz-sub002/internal/logging"
	"github.com/dave/jobwiz-sub002/internal/ports"
	"github.com/dave/jobwiz-sub002/internal/quality"
	"github.com/dave/jobwiz-sub002/internal/quality/readability"
	"github.com/dave/jobwiz-sub002/internal/quality/repetition"
	"github.com/dave/jobwiz-sub002/internal/review"
	"github.com/dave/jobwiz-sub002/internal/usecase"
)

// Application wires configs to use cases and owns backend connections.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
	db       *sql.DB
	closers  []func() error
}

// New resolves the generator and opens the configured store and ledger.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	a := &Application{cfg: cfg, logger: baseLogger}

	registry := generator.NewRegistry(generator.NewTemplate())
	if cfg.ChatGPT.APIKey != "" {
		registry.Register(llm.NewChatGPTGenerator(cfg.ChatGPT))
	}
	gen, err := registry.Resolve(cfg.Pipeline.Generator)
	if err != nil {
		return nil, err
	}

	store, err := a.contentStore(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	ledger, err := a.completionLedger(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.Enabled() {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	a.pipeline = usecase.NewPipeline(usecase.PipelineDeps{
		Generator: gen,
		Store:     store,
		Ledger:    ledger,
		Demand:    dataset.NewSearchVolumeSource(cfg.Paths.SearchVolumePath),
		Sleeper:   clock.New(cfg.Pipeline.FastMode),
		Notifier:  notifier,
		Logger:    baseLogger.With("component", "pipeline"),
	})

	baseLogger.Debug("application wired",
		"generator", gen.Name(),
		"storage", cfg.Storage.Backend,
		"ledger", cfg.Ledger.Backend,
		"notifications", notifier != nil,
	)
	return a, nil
}

// Pipeline exposes the orchestration use case.
func (a *Application) Pipeline() *usecase.Pipeline {
	return a.pipeline
}

// Orchestrate runs the pipeline with oc.
func (a *Application) Orchestrate(ctx context.Context, oc usecase.OrchestrateConfig) (usecase.RunSummary, error) {
	if a.pipeline == nil {
		return usecase.RunSummary{}, errors.New("application has no pipeline")
	}
	return a.pipeline.Orchestrate(ctx, oc)
}

// Close releases backend connections.
func (a *Application) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *Application) contentStore(ctx context.Context) (ports.ContentStore, error) {
	switch a.cfg.Storage.Backend {
	case config.BackendPostgres:
		db, err := a.database(ctx)
		if err != nil {
			return nil, err
		}
		return storage.NewPostgresStore(db), nil
	case config.BackendGCS:
		client, err := gcs.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("gcs client: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		return storage.NewGCSStore(client, a.cfg.Storage.GCSBucket, a.cfg.Storage.GCSPrefix), nil
	default:
		return storage.NewFileStore(a.cfg.Paths.ContentDir), nil
	}
}

func (a *Application) completionLedger(ctx context.Context) (ports.CompletionLedger, error) {
	switch a.cfg.Ledger.Backend {
	case config.BackendPostgres:
		db, err := a.database(ctx)
		if err != nil {
			return nil, err
		}
		return storage.NewPostgresLedger(db), nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: a.cfg.Ledger.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("ping redis %s: %w", a.cfg.Ledger.RedisAddr, err)
		}
		a.closers = append(a.closers, client.Close)
		return storage.NewRedisLedger(client, a.cfg.Ledger.RedisKey), nil
	default:
		return storage.NewJSONLedger(a.cfg.Paths.LedgerPath), nil
	}
}

// database opens the shared Postgres handle on first use.
func (a *Application) database(ctx context.Context) (*sql.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := storage.OpenPostgres(ctx, a.cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	a.db = db
	a.closers = append(a.closers, db.Close)
	return db, nil
}

// QualityOptions maps the quality section onto analyzer options.
func QualityOptions(cfg config.Config) quality.Options {
	return quality.Options{
		Repetition: repetition.Config{
			MinPhraseLength: cfg.Quality.MinPhraseLength,
			MaxPhraseLength: cfg.Quality.MaxPhraseLength,
			Threshold:       cfg.Quality.RepetitionThreshold,
		},
		Readability: readability.Config{
			MinScore: cfg.Quality.ReadabilityMin,
			MaxScore: cfg.Quality.ReadabilityMax,
		},
		PerSection: cfg.Quality.PerSection,
	}
}

// SamplingConfig maps config onto review sampling settings.
func SamplingConfig(cfg config.Config) review.SamplingConfig {
	opts := QualityOptions(cfg)
	sc := review.DefaultSamplingConfig()
	sc.Percent = cfg.Sampling.Percent
	sc.Repetition = opts.Repetition
	sc.Readability = opts.Readability
	return sc
}

// OrchestrateConfig seeds a run from the pipeline section.
func OrchestrateConfig(cfg config.Config) usecase.OrchestrateConfig {
	oc := usecase.DefaultOrchestrateConfig()
	oc.MaxRetries = cfg.Pipeline.MaxRetries
	oc.RetryDelay = cfg.Pipeline.RetryDelay
	oc.StepDelay = cfg.Pipeline.StepDelay
	oc.Top = cfg.Pipeline.Top
	oc.Worker = cfg.Pipeline.Worker
	oc.MaxWords = cfg.Quality.MaxWords
	oc.Quality = QualityOptions(cfg)
	return oc
}
