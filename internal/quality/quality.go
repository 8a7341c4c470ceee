// Package quality runs the repetition, readability and fact analyzers over a
// set of modules and reduces them to one verdict.
package quality

import (
	"fmt"
	"strings"

	"github.com/dave/jobwiz-sub002/internal/domain"
	"github.com/dave/jobwiz-sub002/internal/quality/facts"
	"github.com/dave/jobwiz-sub002/internal/quality/readability"
	"github.com/dave/jobwiz-sub002/internal/quality/repetition"
)

// CheckStatus is the outcome of a single check.
type CheckStatus string

const (
	StatusPass         CheckStatus = "PASS"
	StatusFail         CheckStatus = "FAIL"
	StatusReviewNeeded CheckStatus = "REVIEW_NEEDED"
)

// Options configures the analyzers.
type Options struct {
	Repetition  repetition.Config  `json:"repetition" yaml:"repetition"`
	Readability readability.Config `json:"readability" yaml:"readability"`
	PerSection  bool               `json:"perSection" yaml:"perSection"`
}

// DefaultOptions returns the analyzer defaults.
func DefaultOptions() Options {
	return Options{
		Repetition:  repetition.DefaultConfig(),
		Readability: readability.DefaultConfig(),
	}
}

// Checks holds the per-check statuses.
type Checks struct {
	Repetition  CheckStatus `json:"repetition"`
	Readability CheckStatus `json:"readability"`
	Facts       CheckStatus `json:"facts"`
}

// Overall is the reduced verdict. Only repetition blocks storage; readability
// and facts only flag content for a human.
type Overall struct {
	Pass             bool   `json:"pass"`
	FlaggedForReview bool   `json:"flaggedForReview"`
	Checks           Checks `json:"checks"`
}

// Result carries every analyzer output plus the verdict.
type Result struct {
	ModuleIDs   []string           `json:"moduleIds"`
	Repetition  repetition.Result  `json:"repetition"`
	Readability readability.Result `json:"readability"`
	Facts       []facts.Report     `json:"facts"`
	Overall     Overall            `json:"overall"`
}

// FactCount is the number of facts across all reports.
func (r Result) FactCount() int {
	n := 0
	for _, report := range r.Facts {
		n += len(report.Facts)
	}
	return n
}

// Check runs all three analyzers over modules.
func Check(modules []domain.ContentModule, opts Options) Result {
	result := Result{
		ModuleIDs:   make([]string, 0, len(modules)),
		Repetition:  repetition.Detect(modules, opts.Repetition),
		Readability: readability.Analyze(modules, opts.Readability, opts.PerSection),
		Facts:       facts.ExtractModules(modules),
	}
	for _, m := range modules {
		result.ModuleIDs = append(result.ModuleIDs, m.ID)
	}

	checks := Checks{
		Repetition:  StatusPass,
		Readability: StatusPass,
		Facts:       StatusPass,
	}
	if !result.Repetition.Pass {
		checks.Repetition = StatusFail
	}
	if !result.Readability.Pass() {
		checks.Readability = StatusFail
	}
	if result.FactCount() > 0 {
		checks.Facts = StatusReviewNeeded
	}

	hardFail := checks.Repetition == StatusFail
	result.Overall = Overall{
		Pass:             !hardFail,
		FlaggedForReview: !hardFail && (checks.Facts == StatusReviewNeeded || checks.Readability == StatusFail),
		Checks:           checks,
	}
	return result
}

// Verdict is the one-word outcome used in banners.
func (r Result) Verdict() string {
	switch {
	case !r.Overall.Pass:
		return "FAIL"
	case r.Overall.FlaggedForReview:
		return "PASS (review needed)"
	default:
		return "PASS"
	}
}

// Summary renders a plain-text report of the result.
func Summary(r Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Quality check: %s\n", r.Verdict())
	fmt.Fprintf(&b, "Modules: %s\n\n", strings.Join(r.ModuleIDs, ", "))

	fmt.Fprintf(&b, "Repetition: %s (%d unique phrases)\n", r.Overall.Checks.Repetition, r.Repetition.UniquePhrases)
	for _, p := range r.Repetition.AIPhrases {
		fmt.Fprintf(&b, "  AI phrase %q x%d at %s\n", p.Phrase, p.Count, joinLocations(p.Locations))
	}
	for _, p := range r.Repetition.RepeatedPhrases {
		fmt.Fprintf(&b, "  repeated %q x%d at %s\n", p.Phrase, p.Count, joinLocations(p.Locations))
	}

	fmt.Fprintf(&b, "Readability: %s (score %.2f, %s, %d words)\n",
		r.Overall.Checks.Readability, r.Readability.Score, r.Readability.Status, r.Readability.WordCount)
	for _, s := range r.Readability.SectionScores {
		fmt.Fprintf(&b, "  %s/%s %q: %.2f %s\n", s.ModuleID, s.SectionID, s.SectionTitle, s.Score, s.Status)
	}

	fmt.Fprintf(&b, "Facts: %s (%d to verify)\n", r.Overall.Checks.Facts, r.FactCount())
	for _, report := range r.Facts {
		if len(report.Facts) == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %s: %d facts, confidence %.0f\n", report.ModuleID, len(report.Facts), report.Confidence)
		for _, f := range report.Facts {
			fmt.Fprintf(&b, "    [%s] %s (%s)\n", f.Type, f.Value, f.Location)
		}
	}
	return b.String()
}

func joinLocations(locs []domain.TextLocation) string {
	const limit = 5
	parts := make([]string, 0, limit)
	for i, loc := range locs {
		if i == limit {
			parts = append(parts, fmt.Sprintf("+%d more", len(locs)-limit))
			break
		}
		parts = append(parts, loc.String())
	}
	return strings.Join(parts, ", ")
}
