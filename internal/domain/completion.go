package domain

import (
	"errors"
	"time"
)

// CompletionRecord marks a (company, role) unit of work as done.
type CompletionRecord struct {
	CompanySlug string    `json:"companySlug"`
	RoleSlug    string    `json:"roleSlug,omitempty"`
	CompletedAt time.Time `json:"completedAt"`
	ModuleID    string    `json:"moduleId,omitempty"`
	Worker      string    `json:"worker,omitempty"`
}

// Key identifies the unit of work the record completes.
func (r CompletionRecord) Key() string {
	return UnitKey(r.CompanySlug, r.RoleSlug)
}

// UnitKey builds the ledger key for a company and optional role.
func UnitKey(company, role string) string {
	if role == "" {
		return company
	}
	return company + "/" + role
}

// ErrAlreadyCompleted is returned by ledgers that refuse to record a unit of
// work twice.
var ErrAlreadyCompleted = errors.New("unit of work already completed")
