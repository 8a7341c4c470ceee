package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dave/jobwiz-sub002/internal/domain"
	"github.com/dave/jobwiz-sub002/internal/quality"
	"github.com/dave/jobwiz-sub002/internal/validation"
)

// ErrQualityFailed marks a hard quality failure. It is retried like any
// other step error.
var ErrQualityFailed = errors.New("quality control failed")

// ErrInvalidModule marks a generated module with validation errors.
var ErrInvalidModule = errors.New("generated module is invalid")

// PipelineContext is the state of one attempt at one unit of work. It is
// created per attempt and discarded afterwards.
type PipelineContext struct {
	Item          domain.WorkItem
	Attempt       int
	CompanyModule *domain.ContentModule
	QAModule      *domain.ContentModule
	Quality       *quality.Result
	Stored        bool
	Errors        []error
}

// Fail records an error; the current attempt stops after the step returns.
func (pc *PipelineContext) Fail(err error) {
	pc.Errors = append(pc.Errors, err)
}

// Err joins the recorded errors.
func (pc *PipelineContext) Err() error {
	return errors.Join(pc.Errors...)
}

// Modules returns the modules generated so far.
func (pc *PipelineContext) Modules() []domain.ContentModule {
	var out []domain.ContentModule
	if pc.CompanyModule != nil {
		out = append(out, *pc.CompanyModule)
	}
	if pc.QAModule != nil {
		out = append(out, *pc.QAModule)
	}
	return out
}

// PrimaryModuleID is the id recorded in the ledger: the Q&A module when one
// exists, otherwise the company module.
func (pc *PipelineContext) PrimaryModuleID() string {
	if pc.QAModule != nil {
		return pc.QAModule.ID
	}
	if pc.CompanyModule != nil {
		return pc.CompanyModule.ID
	}
	return ""
}

// Step is one stage of the fixed pipeline.
type Step struct {
	Name string
	Run  func(ctx context.Context, pc *PipelineContext) error
}

// Steps returns the pipeline in execution order.
func (p *Pipeline) Steps(cfg OrchestrateConfig) []Step {
	return []Step{
		{Name: "generate company module", Run: p.generateCompany(cfg)},
		{Name: "generate q&a", Run: p.generateQA(cfg)},
		{Name: "quality control", Run: p.qualityControl(cfg)},
		{Name: "store content", Run: p.storeContent(cfg)},
	}
}

func (p *Pipeline) generateCompany(cfg OrchestrateConfig) func(context.Context, *PipelineContext) error {
	return func(ctx context.Context, pc *PipelineContext) error {
		module, err := p.generator.GenerateCompanyModule(ctx, pc.Item)
		if err != nil {
			return fmt.Errorf("generate company %s: %w", pc.Item.CompanySlug, err)
		}
		res := validation.Validate(module, cfg.validationOptions(pc.Item, ""))
		if !res.Valid {
			pc.Fail(fmt.Errorf("%w: %s: %s", ErrInvalidModule, module.ID, strings.Join(res.Errors, "; ")))
			return nil
		}
		if len(res.Warnings) > 0 {
			p.logger.Debug("company module warnings", "module", module.ID, "warnings", res.Warnings)
		}
		pc.CompanyModule = &module
		return nil
	}
}

func (p *Pipeline) generateQA(cfg OrchestrateConfig) func(context.Context, *PipelineContext) error {
	return func(ctx context.Context, pc *PipelineContext) error {
		if pc.Item.RoleSlug == "" {
			return nil
		}
		module, err := p.generator.GenerateQAModule(ctx, pc.Item)
		if err != nil {
			return fmt.Errorf("generate q&a %s: %w", pc.Item.Key(), err)
		}
		res := validation.Validate(module, cfg.validationOptions(pc.Item, pc.Item.RoleSlug))
		if !res.Valid {
			pc.Fail(fmt.Errorf("%w: %s: %s", ErrInvalidModule, module.ID, strings.Join(res.Errors, "; ")))
			return nil
		}
		if len(res.Warnings) > 0 {
			p.logger.Debug("q&a module warnings", "module", module.ID, "warnings", res.Warnings)
		}
		pc.QAModule = &module
		return nil
	}
}

func (p *Pipeline) qualityControl(cfg OrchestrateConfig) func(context.Context, *PipelineContext) error {
	return func(_ context.Context, pc *PipelineContext) error {
		result := quality.Check(pc.Modules(), cfg.Quality)
		pc.Quality = &result
		if !result.Overall.Pass {
			phrases := make([]string, 0, len(result.Repetition.AIPhrases)+len(result.Repetition.RepeatedPhrases))
			for _, ph := range result.Repetition.AIPhrases {
				phrases = append(phrases, ph.Phrase)
			}
			for _, ph := range result.Repetition.RepeatedPhrases {
				phrases = append(phrases, ph.Phrase)
			}
			pc.Fail(fmt.Errorf("%w: repetition: %s", ErrQualityFailed, strings.Join(phrases, ", ")))
			return nil
		}
		if result.Overall.FlaggedForReview {
			p.logger.Info("content flagged for review",
				"unit", pc.Item.Key(),
				"readability", result.Overall.Checks.Readability,
				"facts", result.FactCount(),
			)
		}
		return nil
	}
}

func (p *Pipeline) storeContent(cfg OrchestrateConfig) func(context.Context, *PipelineContext) error {
	return func(ctx context.Context, pc *PipelineContext) error {
		modules := pc.Modules()
		if cfg.DryRun {
			ids := make([]string, 0, len(modules))
			for _, m := range modules {
				ids = append(ids, m.ID)
			}
			p.logger.Info("dry run: skipping store", "unit", pc.Item.Key(), "modules", ids)
			return nil
		}
		if p.store == nil {
			return fmt.Errorf("no content store configured")
		}
		if err := p.store.StoreModules(ctx, modules); err != nil {
			return fmt.Errorf("store %s: %w", pc.Item.Key(), err)
		}
		pc.Stored = true
		return nil
	}
}
