// Package facts extracts verifiable factual claims from content modules and
// prepares them for human sign-off.
package facts

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/dave/jobwiz-sub002/internal/domain"
	"github.com/dave/jobwiz-sub002/internal/textextract"
)

const contextRadius = 100

// Status is the verification state of a fact.
type Status string

const (
	StatusUnverified Status = "unverified"
	StatusVerified   Status = "verified"
	StatusDisputed   Status = "disputed"
)

// ExtractedFact is a single claim awaiting verification.
type ExtractedFact struct {
	ID                  string              `json:"id"`
	Type                FactType            `json:"type"`
	Value               string              `json:"value"`
	Context             string              `json:"context"`
	Location            domain.TextLocation `json:"location"`
	VerificationSources []string            `json:"verificationSources"`
	Status              Status              `json:"status"`
}

// Report collects the facts of one module.
type Report struct {
	ModuleID    string          `json:"moduleId"`
	ModuleTitle string          `json:"moduleTitle"`
	Company     string          `json:"company,omitempty"`
	Facts       []ExtractedFact `json:"facts"`
	Confidence  float64         `json:"confidenceScore"`
}

// ByType groups the report's facts by type.
func (r Report) ByType() map[FactType][]ExtractedFact {
	out := map[FactType][]ExtractedFact{}
	for _, f := range r.Facts {
		out[f.Type] = append(out[f.Type], f)
	}
	return out
}

// extractor holds the per-module dedupe set.
type extractor struct {
	seen  map[string]bool
	fold  cases.Caser
	facts []ExtractedFact
}

func newExtractor() *extractor {
	return &extractor{seen: map[string]bool{}, fold: cases.Fold()}
}

// ExtractModule scans every block of a module. Facts are deduplicated by
// type and case-folded value across the whole module.
func ExtractModule(module domain.ContentModule) Report {
	ex := newExtractor()
	for _, fragment := range textextract.Fragments(module) {
		ex.scan(fragment.Text, fragment.Location)
	}
	return Report{
		ModuleID:    module.ID,
		ModuleTitle: module.Title,
		Company:     module.CompanySlug,
		Facts:       ex.facts,
		Confidence:  Confidence(ex.facts),
	}
}

// ExtractText scans a single text, deduplicating within it.
func ExtractText(text string, loc domain.TextLocation) []ExtractedFact {
	ex := newExtractor()
	ex.scan(text, loc)
	return ex.facts
}

// ExtractModules runs ExtractModule over each module.
func ExtractModules(modules []domain.ContentModule) []Report {
	reports := make([]Report, 0, len(modules))
	for _, module := range modules {
		reports = append(reports, ExtractModule(module))
	}
	return reports
}

// AllFacts flattens the facts of several reports.
func AllFacts(reports []Report) []ExtractedFact {
	var out []ExtractedFact
	for _, r := range reports {
		out = append(out, r.Facts...)
	}
	return out
}

func (e *extractor) scan(text string, loc domain.TextLocation) {
	for _, r := range rules {
		for _, p := range r.patterns {
			for _, idx := range p.expr.FindAllStringSubmatchIndex(text, -1) {
				groups := submatches(text, idx)
				value := cleanValue(p.extract(groups))
				if utf8.RuneCountInString(value) <= 1 {
					continue
				}
				key := string(r.factType) + "\x00" + e.fold.String(value)
				if e.seen[key] {
					continue
				}
				e.seen[key] = true
				e.facts = append(e.facts, ExtractedFact{
					ID:                  uuid.NewString(),
					Type:                r.factType,
					Value:               value,
					Context:             sentenceAround(text, idx[0], idx[1]),
					Location:            loc,
					VerificationSources: []string{},
					Status:              StatusUnverified,
				})
			}
		}
	}
}

func submatches(text string, idx []int) []string {
	groups := make([]string, len(idx)/2)
	for i := range groups {
		start, end := idx[2*i], idx[2*i+1]
		if start < 0 || end < 0 {
			continue
		}
		groups[i] = text[start:end]
	}
	return groups
}

// sentenceAround expands [start,end) left to the previous sentence
// terminator and right through the next one, each side capped at
// contextRadius runes.
func sentenceAround(text string, start, end int) string {
	left := start
	for n := 0; left > 0 && n < contextRadius; n++ {
		r, size := utf8.DecodeLastRuneInString(text[:left])
		if strings.ContainsRune(".!?\n", r) {
			break
		}
		left -= size
	}

	right := end
	for n := 0; right < len(text) && n < contextRadius; n++ {
		r, size := utf8.DecodeRuneInString(text[right:])
		right += size
		if strings.ContainsRune(".!?\n", r) {
			break
		}
	}
	return strings.TrimSpace(text[left:right])
}

var (
	hardTypes = map[FactType]bool{
		FactCultureClaim:     true,
		FactInterviewProcess: true,
	}
	verifiableTypes = map[FactType]bool{
		FactFoundingYear: true,
		FactFounders:     true,
		FactHeadquarters: true,
		FactCEO:          true,
		FactMission:      true,
	}
)

// Confidence scores how trustworthy a set of facts is: hard-to-verify claims
// lower it, easily checked ones raise it. No facts means nothing to doubt.
func Confidence(facts []ExtractedFact) float64 {
	if len(facts) == 0 {
		return 100
	}
	hard, verifiable := 0, 0
	for _, f := range facts {
		if hardTypes[f.Type] {
			hard++
		}
		if verifiableTypes[f.Type] {
			verifiable++
		}
	}
	total := float64(len(facts))
	score := 100 - (float64(hard)/total)*30 + (float64(verifiable)/total)*10
	return math.Round(math.Min(100, score))
}
