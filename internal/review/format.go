package review

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var reviewChecklist = []string{
	"Content is accurate and up to date",
	"Company and role details are correct",
	"Tone is natural, no stock AI phrasing",
	"Quiz answers are correct and unambiguous",
	"No repeated boilerplate across sections",
}

// FormatMarkdown renders the queue for reviewers.
func FormatMarkdown(q Queue) string {
	var b strings.Builder
	title := cases.Title(language.English)

	b.WriteString("# Content Review Queue\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", q.GeneratedAt.UTC().Format(time.RFC3339))
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Total modules: %d\n", q.TotalModules)
	fmt.Fprintf(&b, "- Sample: %d (%g%%)\n", q.SampledCount, q.Percent)
	for _, p := range Priorities {
		fmt.Fprintf(&b, "- %s priority: %d\n", title.String(string(p)), q.Counts[p])
	}
	b.WriteString("\n")

	if len(q.Items) == 0 {
		b.WriteString("Nothing to review.\n")
		return b.String()
	}

	for _, p := range Priorities {
		var tier []Item
		for _, item := range q.Items {
			if item.Priority == p {
				tier = append(tier, item)
			}
		}
		if len(tier) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s Priority\n\n", title.String(string(p)))
		for _, item := range tier {
			fmt.Fprintf(&b, "### %s\n\n", item.Title)
			fmt.Fprintf(&b, "- Item: `%s`\n", item.ID)
			fmt.Fprintf(&b, "- Module: `%s`\n", item.ModuleID)
			fmt.Fprintf(&b, "- Company: %s\n", item.Company)
			fmt.Fprintf(&b, "- Reason: %s\n", item.Reason)
			if item.FilePath != "" {
				fmt.Fprintf(&b, "- File: `%s`\n", item.FilePath)
			}
			if len(item.Flags) > 0 {
				fmt.Fprintf(&b, "- Flags: %s\n", strings.Join(item.Flags, "; "))
			}
			b.WriteString("\n**Review checklist**\n\n")
			for _, check := range reviewChecklist {
				fmt.Fprintf(&b, "- [ ] %s\n", check)
			}
			b.WriteString("\nStatus: [ ] pass  [ ] fail\n\nNotes:\n\n")
		}
	}
	return b.String()
}

// FormatJSON renders the queue as indented JSON.
func FormatJSON(q Queue) ([]byte, error) {
	if q.Items == nil {
		q.Items = []Item{}
	}
	out, err := json.MarshalIndent(q, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal review queue: %w", err)
	}
	return append(out, '\n'), nil
}
