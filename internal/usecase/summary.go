package usecase

import (
	"fmt"
	"strings"
)

// FormatRunSummary renders a short Markdown digest of a run for chat
// notifications.
func FormatRunSummary(s RunSummary) string {
	var b strings.Builder

	status := "succeeded"
	if !s.Success {
		status = "finished with failures"
	}
	mode := ""
	if s.DryRun {
		mode = " (dry run)"
	}
	fmt.Fprintf(&b, "*Content pipeline %s*%s\n", status, mode)
	fmt.Fprintf(&b, "Processed: %d, skipped: %d, failed: %d\n", s.Processed, s.Skipped, s.Failed)

	for _, u := range s.Units {
		switch {
		case u.Status == UnitFailed:
			fmt.Fprintf(&b, "- %s failed after %d attempts: %s\n", u.Item.Key(), u.Attempts, u.Error)
		case u.Status == UnitCompleted && u.Flagged:
			fmt.Fprintf(&b, "- %s needs review (%s)\n", u.Item.Key(), u.ModuleID)
		}
	}
	return b.String()
}
