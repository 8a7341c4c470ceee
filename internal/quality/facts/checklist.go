package facts

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ChecklistFileName is the file a report's checklist is written to.
func ChecklistFileName(r Report) string {
	name := r.Company
	if name == "" {
		name = r.ModuleID
	}
	return "facts-checklist-" + name + ".md"
}

// TypeLabel turns a fact type into a heading, e.g. "Founding Year".
func TypeLabel(t FactType) string {
	if t == FactCEO {
		return "CEO"
	}
	return cases.Title(language.English).String(strings.ReplaceAll(string(t), "_", " "))
}

// RenderChecklist renders the report as a Markdown sign-off checklist.
func RenderChecklist(r Report, generatedAt time.Time) string {
	var b strings.Builder

	title := r.ModuleTitle
	if title == "" {
		title = r.ModuleID
	}
	fmt.Fprintf(&b, "# Fact Verification Checklist: %s\n\n", title)
	fmt.Fprintf(&b, "- Module: `%s`\n", r.ModuleID)
	if r.Company != "" {
		fmt.Fprintf(&b, "- Company: `%s`\n", r.Company)
	}
	fmt.Fprintf(&b, "- Generated: %s\n", generatedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "- Facts found: %d\n", len(r.Facts))
	fmt.Fprintf(&b, "- Confidence score: %.0f/100\n\n", r.Confidence)

	b.WriteString("## Verification Priority\n\n")
	b.WriteString("| Fact type | Priority | Found |\n")
	b.WriteString("|---|---|---|\n")
	grouped := r.ByType()
	for _, t := range FactTypes {
		fmt.Fprintf(&b, "| %s | %s | %d |\n", TypeLabel(t), PriorityOf(t), len(grouped[t]))
	}
	b.WriteString("\n")

	if len(r.Facts) == 0 {
		b.WriteString("No factual claims detected.\n")
		return b.String()
	}

	for _, t := range FactTypes {
		items := grouped[t]
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s (%s priority)\n\n", TypeLabel(t), PriorityOf(t))
		for _, f := range items {
			fmt.Fprintf(&b, "- [ ] **%s**\n", f.Value)
			fmt.Fprintf(&b, "  - Context: \"%s\"\n", f.Context)
			fmt.Fprintf(&b, "  - Location: %s\n", f.Location)
			if len(f.VerificationSources) > 0 {
				fmt.Fprintf(&b, "  - Sources: %s\n", strings.Join(f.VerificationSources, ", "))
			} else {
				b.WriteString("  - Sources: _add source_\n")
			}
			b.WriteString("  - Status: [ ] verified  [ ] disputed\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\nReviewer: ________  Date: ________\n")
	return b.String()
}
