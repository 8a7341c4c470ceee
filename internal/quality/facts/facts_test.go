package facts

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dave/jobwiz-sub002/internal/domain"
)

func textModule(id string, texts ...string) domain.ContentModule {
	blocks := make([]domain.ContentBlock, 0, len(texts))
	for i, text := range texts {
		blocks = append(blocks, domain.ContentBlock{
			ID:      id + "-b" + string(rune('1'+i)),
			Type:    domain.BlockText,
			Content: text,
		})
	}
	return domain.ContentModule{
		ID:          id,
		Title:       "Google Overview",
		CompanySlug: "google",
		Sections:    []domain.Section{{ID: "s1", Title: "About", Blocks: blocks}},
	}
}

func factsOfType(facts []ExtractedFact, t FactType) []ExtractedFact {
	var out []ExtractedFact
	for _, f := range facts {
		if f.Type == t {
			out = append(out, f)
		}
	}
	return out
}

func TestExtractFoundingYear(t *testing.T) {
	t.Parallel()

	report := ExtractModule(textModule("company-google", "Google was founded in 1998 by Larry Page and Sergey Brin."))

	years := factsOfType(report.Facts, FactFoundingYear)
	require.Len(t, years, 1)
	assert.Equal(t, "1998", years[0].Value)
	assert.Equal(t, StatusUnverified, years[0].Status)
	assert.Equal(t, "Google was founded in 1998 by Larry Page and Sergey Brin.", years[0].Context)
	assert.Equal(t, "company-google-b1", years[0].Location.BlockID)
	assert.NotEmpty(t, years[0].ID)
	assert.Empty(t, years[0].VerificationSources)

	founders := factsOfType(report.Facts, FactFounders)
	require.Len(t, founders, 1)
	assert.Equal(t, "Larry Page and Sergey Brin", founders[0].Value)
}

func TestExtractDeduplicatesAcrossModule(t *testing.T) {
	t.Parallel()

	sentence := "Google was founded in 1998."
	report := ExtractModule(textModule("m1", sentence, sentence))
	assert.Len(t, factsOfType(report.Facts, FactFoundingYear), 1)

	facts := ExtractText(sentence+" Again, it was FOUNDED IN 1998.", domain.TextLocation{ModuleID: "m1"})
	assert.Len(t, factsOfType(facts, FactFoundingYear), 1)
}

func TestExtractPatterns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		want  FactType
		value string
	}{
		{name: "markdown ceo", text: "**CEO:** Sundar Pichai\n", want: FactCEO, value: "Sundar Pichai"},
		{name: "prose ceo", text: "The CEO is Satya Nadella.", want: FactCEO, value: "Satya Nadella"},
		{name: "name before ceo", text: "Sundar Pichai is the CEO of Google.", want: FactCEO, value: "Sundar Pichai"},
		{name: "ceo of company", text: "The CEO of Microsoft is Satya Nadella.", want: FactCEO, value: "Satya Nadella"},
		{name: "headquarters", text: "It is headquartered in Mountain View, California.", want: FactHeadquarters, value: "Mountain View, California"},
		{name: "employees", text: "The company has over 180,000 employees worldwide.", want: FactEmployeeCount, value: "180,000"},
		{name: "revenue", text: "Annual revenue reached $282 billion last year.", want: FactRevenue, value: "$282 billion"},
		{name: "acquisition", text: "In 2006 the company acquired YouTube for a large sum.", want: FactAcquisition, value: "YouTube"},
		{name: "mission", text: "Mission: organize the world's information for everyone.", want: FactMission, value: "organize the world's information for everyone"},
		{name: "interview rounds", text: "Expect four rounds of interviews on site.", want: FactInterviewProcess, value: "four rounds of interviews"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			found := factsOfType(ExtractText(tt.text, domain.TextLocation{ModuleID: "m1"}), tt.want)
			require.NotEmpty(t, found)
			assert.Equal(t, tt.value, found[0].Value)
		})
	}
}

func TestExtractIgnoresCEOInHeadings(t *testing.T) {
	t.Parallel()

	facts := ExtractText("The CEO Interview Tips section covers leadership rounds.", domain.TextLocation{ModuleID: "m1"})
	assert.Empty(t, factsOfType(facts, FactCEO))
}

func TestExtractContextCapsLongSentence(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("é", 150) + " founded in 1998 " + strings.Repeat("ü", 150) + "."
	years := factsOfType(ExtractText(text, domain.TextLocation{ModuleID: "m1"}), FactFoundingYear)
	require.Len(t, years, 1)

	got := years[0].Context
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 99)+" founded in 1998 "+strings.Repeat("ü", 99), got)
	assert.LessOrEqual(t, utf8.RuneCountInString(got), len("founded in 1998")+2*contextRadius)
}

func TestExtractSkipsPlainProse(t *testing.T) {
	t.Parallel()

	report := ExtractModule(textModule("m1", "Practice a few problems every day and review your notes."))
	assert.Empty(t, report.Facts)
	assert.Equal(t, float64(100), report.Confidence)
}

func TestConfidence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		types []FactType
		want  float64
	}{
		{name: "no facts", want: 100},
		{name: "only verifiable capped", types: []FactType{FactFoundingYear, FactCEO}, want: 100},
		{name: "only hard", types: []FactType{FactCultureClaim}, want: 70},
		{name: "mixed", types: []FactType{FactFoundingYear, FactCultureClaim}, want: 90},
		{name: "neutral", types: []FactType{FactRevenue, FactProduct}, want: 100},
		{name: "thirds", types: []FactType{FactRevenue, FactInterviewProcess, FactInterviewProcess}, want: 80},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			facts := make([]ExtractedFact, 0, len(tt.types))
			for _, ft := range tt.types {
				facts = append(facts, ExtractedFact{Type: ft})
			}
			assert.Equal(t, tt.want, Confidence(facts))
		})
	}
}

func TestPriorityOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, PriorityHigh, PriorityOf(FactMission))
	assert.Equal(t, PriorityMedium, PriorityOf(FactAcquisition))
	assert.Equal(t, PriorityLow, PriorityOf(FactOther))
	assert.Equal(t, PriorityLow, PriorityOf(FactType("unknown")))
}

func TestRenderChecklist(t *testing.T) {
	t.Parallel()

	report := ExtractModule(textModule("company-google", "Google was founded in 1998 by Larry Page and Sergey Brin."))
	out := RenderChecklist(report, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	assert.True(t, strings.HasPrefix(out, "# Fact Verification Checklist: Google Overview\n"))
	assert.Contains(t, out, "- Generated: 2026-01-02T03:04:05Z")
	assert.Contains(t, out, "| Founding Year | High | 1 |")
	assert.Contains(t, out, "| Culture Claim | Low | 0 |")
	assert.Contains(t, out, "| CEO | High | 0 |")
	assert.Contains(t, out, "## Founding Year (High priority)")
	assert.Contains(t, out, "- [ ] **1998**")
	assert.NotContains(t, out, "## Revenue")
}

func TestRenderChecklistEmpty(t *testing.T) {
	t.Parallel()

	out := RenderChecklist(Report{ModuleID: "m1", Confidence: 100}, time.Now())
	assert.Contains(t, out, "# Fact Verification Checklist: m1")
	assert.Contains(t, out, "No factual claims detected.")
}

func TestChecklistFileName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "facts-checklist-google.md", ChecklistFileName(Report{ModuleID: "company-google", Company: "google"}))
	assert.Equal(t, "facts-checklist-qa-1.md", ChecklistFileName(Report{ModuleID: "qa-1"}))
}
