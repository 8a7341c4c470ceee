package review

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// Status is a reviewer's decision.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPass, StatusFail:
		return st, nil
	default:
		return "", fmt.Errorf("unknown review status %q", s)
	}
}

// Result is the outcome of one human review.
type Result struct {
	ItemID           string   `json:"itemId"`
	ModuleID         string   `json:"moduleId"`
	Reviewer         string   `json:"reviewer"`
	Status           Status   `json:"status"`
	Date             string   `json:"date"`
	Issues           []string `json:"issues"`
	Notes            string   `json:"notes,omitempty"`
	TimeSpentMinutes int      `json:"timeSpentMinutes,omitempty"`
}

// DateFormat is the layout of Result.Date.
const DateFormat = time.DateOnly

var companyModuleExpr = regexp.MustCompile(`^company-([a-z0-9]+(?:-[a-z0-9]+)*)$`)

// LoadReviewResults reads the results file. A missing or malformed file
// yields an empty list.
func LoadReviewResults(path string) []Result {
	raw, err := os.ReadFile(path)
	if err != nil {
		return []Result{}
	}
	var results []Result
	if err := json.Unmarshal(raw, &results); err != nil || results == nil {
		return []Result{}
	}
	return results
}

// RecordReviewResult appends r to the results file, rewriting it whole.
func RecordReviewResult(path string, r Result) error {
	if r.Issues == nil {
		r.Issues = []string{}
	}
	results := append(LoadReviewResults(path), r)

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal review results: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}
	if err := os.WriteFile(path, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("write review results: %w", err)
	}
	return nil
}

// ReviewedCompanies collects company slugs from reviewed module ids of the
// form company-<slug>. Other module ids contribute nothing.
func ReviewedCompanies(results []Result) map[string]bool {
	out := map[string]bool{}
	for _, r := range results {
		if m := companyModuleExpr.FindStringSubmatch(r.ModuleID); m != nil {
			out[m[1]] = true
		}
	}
	return out
}
