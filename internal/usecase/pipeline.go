package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dave/jobwiz-sub002/internal/clock"
	"github.com/dave/jobwiz-sub002/internal/domain"
	"github.com/dave/jobwiz-sub002/internal/logging"
	"github.com/dave/jobwiz-sub002/internal/ports"
	"github.com/dave/jobwiz-sub002/internal/quality"
	"github.com/dave/jobwiz-sub002/internal/validation"
)

const (
	DefaultMaxRetries = 3
	DefaultRetryDelay = 2 * time.Second
	DefaultStepDelay  = time.Second
)

// ErrNoWork is returned when neither a company nor batch mode was requested.
var ErrNoWork = errors.New("no company given and batch mode is off")

// OrchestrateConfig describes one orchestration run.
type OrchestrateConfig struct {
	Company      string
	CompanyName  string
	Roles        []string
	Batch        bool
	Top          int
	MaxRetries   int
	SkipExisting bool
	DryRun       bool
	Worker       string
	RetryDelay   time.Duration
	StepDelay    time.Duration
	MaxWords     int
	Quality      quality.Options
}

// DefaultOrchestrateConfig returns three retries with a 2s backoff unit,
// skipping units already in the ledger.
func DefaultOrchestrateConfig() OrchestrateConfig {
	return OrchestrateConfig{
		Top:          10,
		MaxRetries:   DefaultMaxRetries,
		SkipExisting: true,
		RetryDelay:   DefaultRetryDelay,
		StepDelay:    DefaultStepDelay,
		MaxWords:     validation.DefaultMaxWords,
		Quality:      quality.DefaultOptions(),
	}
}

func (c OrchestrateConfig) validationOptions(item domain.WorkItem, role string) validation.Options {
	return validation.Options{Company: item.CompanySlug, Role: role, MaxWords: c.MaxWords}
}

// UnitStatus is the final state of a unit of work.
type UnitStatus string

const (
	UnitCompleted UnitStatus = "completed"
	UnitSkipped   UnitStatus = "skipped"
	UnitFailed    UnitStatus = "failed"
)

// UnitResult reports what happened to one unit of work.
type UnitResult struct {
	Item     domain.WorkItem `json:"item"`
	Status   UnitStatus      `json:"status"`
	Attempts int             `json:"attempts"`
	ModuleID string          `json:"moduleId,omitempty"`
	Flagged  bool            `json:"flaggedForReview,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// RunSummary aggregates a run. Success means nothing failed.
type RunSummary struct {
	Success   bool         `json:"success"`
	Processed int          `json:"processed"`
	Skipped   int          `json:"skipped"`
	Failed    int          `json:"failed"`
	DryRun    bool         `json:"dryRun"`
	Units     []UnitResult `json:"units"`
}

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Generator ports.Generator
	Store     ports.ContentStore
	Ledger    ports.CompletionLedger
	Demand    ports.DemandSource
	Sleeper   ports.Sleeper
	Notifier  ports.Notifier
	Logger    *slog.Logger
	Now       func() time.Time
}

// Pipeline implements the generate, check and store workflow.
type Pipeline struct {
	generator ports.Generator
	store     ports.ContentStore
	ledger    ports.CompletionLedger
	demand    ports.DemandSource
	sleeper   ports.Sleeper
	notifier  ports.Notifier
	logger    *slog.Logger
	now       func() time.Time
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	p := &Pipeline{
		generator: deps.Generator,
		store:     deps.Store,
		ledger:    deps.Ledger,
		demand:    deps.Demand,
		sleeper:   deps.Sleeper,
		notifier:  deps.Notifier,
		logger:    deps.Logger,
		now:       deps.Now,
	}
	if p.sleeper == nil {
		p.sleeper = clock.Real{}
	}
	if p.logger == nil {
		p.logger = logging.Discard()
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// WorkList expands the config into units of work, in processing order.
func (p *Pipeline) WorkList(ctx context.Context, cfg OrchestrateConfig) ([]domain.WorkItem, error) {
	if cfg.Batch {
		if p.demand == nil {
			return nil, fmt.Errorf("batch mode needs a search volume source")
		}
		companies, err := p.demand.TopCompanies(ctx, cfg.Top)
		if err != nil {
			return nil, fmt.Errorf("load top companies: %w", err)
		}
		var items []domain.WorkItem
		for _, c := range companies {
			if len(c.Roles) == 0 {
				items = append(items, domain.WorkItem{CompanySlug: c.Slug, CompanyName: c.Name})
				continue
			}
			for _, r := range c.Roles {
				items = append(items, domain.WorkItem{CompanySlug: c.Slug, CompanyName: c.Name, RoleSlug: r.Slug})
			}
		}
		return items, nil
	}

	if cfg.Company == "" {
		return nil, ErrNoWork
	}
	if len(cfg.Roles) == 0 {
		return []domain.WorkItem{{CompanySlug: cfg.Company, CompanyName: cfg.CompanyName}}, nil
	}
	items := make([]domain.WorkItem, 0, len(cfg.Roles))
	for _, role := range cfg.Roles {
		items = append(items, domain.WorkItem{CompanySlug: cfg.Company, CompanyName: cfg.CompanyName, RoleSlug: role})
	}
	return items, nil
}

// Orchestrate processes every unit of work in order. A unit that exhausts
// its retries is counted as failed and the run moves on; only setup
// problems are returned as errors.
func (p *Pipeline) Orchestrate(ctx context.Context, cfg OrchestrateConfig) (RunSummary, error) {
	if p.generator == nil {
		return RunSummary{}, fmt.Errorf("no generator configured")
	}
	items, err := p.WorkList(ctx, cfg)
	if err != nil {
		return RunSummary{}, err
	}

	completed := map[string]bool{}
	if cfg.SkipExisting && p.ledger != nil {
		records, err := p.ledger.Load(ctx)
		if err != nil {
			return RunSummary{}, fmt.Errorf("load completion ledger: %w", err)
		}
		for _, r := range records {
			completed[r.Key()] = true
		}
	}

	p.logger.Info("orchestration started",
		"units", len(items),
		"dry_run", cfg.DryRun,
		"max_retries", cfg.MaxRetries,
		"generator", p.generator.Name(),
	)

	summary := RunSummary{DryRun: cfg.DryRun, Units: make([]UnitResult, 0, len(items))}
	for _, item := range items {
		if cfg.SkipExisting && completed[item.Key()] {
			p.logger.Info("skipping completed unit", "unit", item.Key())
			summary.Skipped++
			summary.Units = append(summary.Units, UnitResult{Item: item, Status: UnitSkipped})
			continue
		}

		result := p.processUnit(ctx, item, cfg)
		switch result.Status {
		case UnitCompleted:
			summary.Processed++
			if !cfg.DryRun {
				completed[item.Key()] = true
			}
		case UnitFailed:
			summary.Failed++
		}
		summary.Units = append(summary.Units, result)
	}
	summary.Success = summary.Failed == 0

	p.logger.Info("orchestration finished",
		"processed", summary.Processed,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)

	if p.notifier != nil {
		if err := p.notifier.PublishSummary(ctx, FormatRunSummary(summary)); err != nil {
			p.logger.Warn("publish run summary", "error", err)
		}
	}
	return summary, nil
}

func (p *Pipeline) processUnit(ctx context.Context, item domain.WorkItem, cfg OrchestrateConfig) UnitResult {
	logger := p.logger.With("unit", item.Key())
	retryCount := 0
	for {
		pc, err := p.runAttempt(ctx, item, cfg, retryCount+1)
		if err == nil {
			result := UnitResult{Item: item, Status: UnitCompleted, Attempts: retryCount + 1, ModuleID: pc.PrimaryModuleID()}
			if pc.Quality != nil {
				result.Flagged = pc.Quality.Overall.FlaggedForReview
			}
			if err := p.recordCompletion(ctx, item, pc, cfg); err != nil {
				logger.Error("record completion", "error", err)
				result.Status = UnitFailed
				result.Error = err.Error()
				return result
			}
			logger.Info("unit completed", "attempts", result.Attempts, "module", result.ModuleID)
			return result
		}

		retryCount++
		if retryCount > cfg.MaxRetries {
			logger.Error("unit failed", "attempts", retryCount, "error", err)
			return UnitResult{Item: item, Status: UnitFailed, Attempts: retryCount, Error: err.Error()}
		}

		delay := time.Duration(retryCount) * cfg.RetryDelay
		logger.Warn("attempt failed, retrying", "attempt", retryCount, "delay", delay, "error", err)
		if err := p.sleeper.Sleep(ctx, delay); err != nil {
			return UnitResult{Item: item, Status: UnitFailed, Attempts: retryCount, Error: err.Error()}
		}
	}
}

// runAttempt executes the full step sequence once. A step that returns an
// error or records one on the context ends the attempt.
func (p *Pipeline) runAttempt(ctx context.Context, item domain.WorkItem, cfg OrchestrateConfig, attempt int) (*PipelineContext, error) {
	pc := &PipelineContext{Item: item, Attempt: attempt}
	for i, step := range p.Steps(cfg) {
		if i > 0 && cfg.StepDelay > 0 {
			if err := p.sleeper.Sleep(ctx, cfg.StepDelay); err != nil {
				return pc, err
			}
		}
		p.logger.Debug("running step", "unit", item.Key(), "step", step.Name, "attempt", attempt)
		if err := step.Run(ctx, pc); err != nil {
			return pc, fmt.Errorf("%s: %w", step.Name, err)
		}
		if len(pc.Errors) > 0 {
			return pc, fmt.Errorf("%s: %w", step.Name, pc.Err())
		}
	}
	return pc, nil
}

func (p *Pipeline) recordCompletion(ctx context.Context, item domain.WorkItem, pc *PipelineContext, cfg OrchestrateConfig) error {
	if cfg.DryRun || p.ledger == nil {
		return nil
	}
	err := p.ledger.Append(ctx, domain.CompletionRecord{
		CompanySlug: item.CompanySlug,
		RoleSlug:    item.RoleSlug,
		CompletedAt: p.now().UTC(),
		ModuleID:    pc.PrimaryModuleID(),
		Worker:      cfg.Worker,
	})
	if errors.Is(err, domain.ErrAlreadyCompleted) {
		p.logger.Warn("unit already recorded by another worker", "unit", item.Key())
		return nil
	}
	return err
}
