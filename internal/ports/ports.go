package ports

import (
	"context"
	"time"

	"github.com/dave/jobwiz-sub002/internal/domain"
)

// Generator produces content modules for a unit of work.
type Generator interface {
	Name() string
	GenerateCompanyModule(ctx context.Context, item domain.WorkItem) (domain.ContentModule, error)
	GenerateQAModule(ctx context.Context, item domain.WorkItem) (domain.ContentModule, error)
}

// ContentStore persists modules that passed quality control.
type ContentStore interface {
	StoreModules(ctx context.Context, modules []domain.ContentModule) error
}

// CompletionLedger remembers which units of work are done. Append may return
// domain.ErrAlreadyCompleted when another worker recorded the unit first.
type CompletionLedger interface {
	Load(ctx context.Context) ([]domain.CompletionRecord, error)
	Append(ctx context.Context, record domain.CompletionRecord) error
}

// Sleeper suspends between retries and rate-limit pauses.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// DemandSource ranks companies by interview demand for batch runs.
type DemandSource interface {
	TopCompanies(ctx context.Context, n int) ([]domain.CompanyDemand, error)
}

// Notifier streams run summaries to Telegram or other channels.
type Notifier interface {
	PublishSummary(ctx context.Context, summary string) error
}
