// Package review picks a prioritised sample of modules for human review and
// records the outcome of those reviews.
package review

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dave/jobwiz-sub002/internal/domain"
	"github.com/dave/jobwiz-sub002/internal/quality/readability"
	"github.com/dave/jobwiz-sub002/internal/quality/repetition"
)

// Priority orders items in the review queue.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists the tiers from most to least urgent.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

const DefaultPercent = 10

// SamplingConfig controls sample size and prioritisation.
type SamplingConfig struct {
	Percent           float64            `json:"percent" yaml:"percent"`
	PrioritizeFlagged bool               `json:"prioritizeFlagged" yaml:"prioritizeFlagged"`
	PrioritizeNew     bool               `json:"prioritizeNew" yaml:"prioritizeNew"`
	Repetition        repetition.Config  `json:"repetition" yaml:"repetition"`
	Readability       readability.Config `json:"readability" yaml:"readability"`
}

// DefaultSamplingConfig samples ten percent, flagged and unreviewed first.
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Percent:           DefaultPercent,
		PrioritizeFlagged: true,
		PrioritizeNew:     true,
		Repetition:        repetition.DefaultConfig(),
		Readability:       readability.DefaultConfig(),
	}
}

// Item is one module in the review queue.
type Item struct {
	ID       string   `json:"id"`
	ModuleID string   `json:"moduleId"`
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	FilePath string   `json:"filePath,omitempty"`
	Priority Priority `json:"priority"`
	Reason   string   `json:"reason"`
	Flags    []string `json:"flags"`
}

// Queue is the sampled review queue.
type Queue struct {
	GeneratedAt  time.Time        `json:"generatedAt"`
	Percent      float64          `json:"percent"`
	TotalModules int              `json:"totalModules"`
	SampledCount int              `json:"sampledCount"`
	Counts       map[Priority]int `json:"counts"`
	Items        []Item           `json:"items"`
}

// RunQualityChecks runs the repetition and readability checks on one module
// and describes each problem as a flag.
func RunQualityChecks(module domain.ContentModule, cfg SamplingConfig) []string {
	modules := []domain.ContentModule{module}
	flags := []string{}

	rep := repetition.Detect(modules, cfg.Repetition)
	if n := len(rep.AIPhrases); n > 0 {
		flags = append(flags, fmt.Sprintf("AI phrases: %d", n))
	}
	if n := len(rep.RepeatedPhrases); n > 0 {
		flags = append(flags, fmt.Sprintf("Repeated phrases: %d", n))
	}

	read := readability.Analyze(modules, cfg.Readability, false)
	if !read.Pass() {
		flags = append(flags, fmt.Sprintf("Readability: %s (%.1f)", read.Status, read.Score))
	}
	return flags
}

// DeterminePriority ranks an item: flags beat newness.
func DeterminePriority(flags []string, company string, reviewed map[string]bool, cfg SamplingConfig) Priority {
	switch {
	case cfg.PrioritizeFlagged && len(flags) > 0:
		return PriorityHigh
	case cfg.PrioritizeNew && !reviewed[company]:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// PriorityReason explains why an item landed in its tier.
func PriorityReason(p Priority, flags []string) string {
	switch p {
	case PriorityHigh:
		return "flagged: " + strings.Join(flags, "; ")
	case PriorityMedium:
		return "new company (no prior review)"
	default:
		return "random sample"
	}
}

// SampleSize is ceil(total × percent / 100).
func SampleSize(total int, percent float64) int {
	if total <= 0 || percent <= 0 {
		return 0
	}
	n := int(math.Ceil(float64(total) * percent / 100))
	if n > total {
		return total
	}
	return n
}

// SelectForReview fills target slots tier by tier, keeping input order
// within a tier. It returns min(target, len(items)) items.
func SelectForReview(items []Item, target int) []Item {
	if target > len(items) {
		target = len(items)
	}
	if target <= 0 {
		return []Item{}
	}
	selected := make([]Item, 0, target)
	for _, tier := range Priorities {
		for _, item := range items {
			if len(selected) == target {
				return selected
			}
			if item.Priority == tier {
				selected = append(selected, item)
			}
		}
	}
	return selected
}

// BuildItems checks and prioritises every module.
func BuildItems(files []ModuleFile, reviewed map[string]bool, cfg SamplingConfig) []Item {
	items := make([]Item, 0, len(files))
	for _, f := range files {
		company := ExtractCompany(f.Module, f.Path)
		flags := RunQualityChecks(f.Module, cfg)
		priority := DeterminePriority(flags, company, reviewed, cfg)
		items = append(items, Item{
			ID:       uuid.NewString(),
			ModuleID: f.Module.ID,
			Title:    f.Module.Title,
			Company:  company,
			FilePath: f.Path,
			Priority: priority,
			Reason:   PriorityReason(priority, flags),
			Flags:    flags,
		})
	}
	return items
}

// GenerateReviewQueue loads the files, skipping anything that is not a
// module, and samples ceil(total × percent / 100) of them.
func GenerateReviewQueue(paths []string, reviewed map[string]bool, cfg SamplingConfig, now time.Time) (Queue, error) {
	files, err := LoadModuleFiles(paths)
	if err != nil {
		return Queue{}, err
	}
	items := BuildItems(files, reviewed, cfg)
	selected := SelectForReview(items, SampleSize(len(items), cfg.Percent))

	counts := map[Priority]int{}
	for _, p := range Priorities {
		counts[p] = 0
	}
	for _, item := range selected {
		counts[item.Priority]++
	}
	return Queue{
		GeneratedAt:  now,
		Percent:      cfg.Percent,
		TotalModules: len(items),
		SampledCount: len(selected),
		Counts:       counts,
		Items:        selected,
	}, nil
}
