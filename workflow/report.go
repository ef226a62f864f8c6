package workflow

import (
	"fmt"
	"sort"
	"strings"
)

// GenerateReport renders a cycle summary as a Markdown report. Pure
// formatting, no side effects.
func GenerateReport(summary CycleSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Development Cycle Report\n\n")
	fmt.Fprintf(&b, "- Cycle: %s\n", summary.ID)
	fmt.Fprintf(&b, "- Started: %s\n", summary.StartedAt.Format("2006-01-02 15:04:05 UTC"))
	if summary.DryRun {
		b.WriteString("- Mode: dry run (no changes applied)\n")
	}
	b.WriteString("\n## Totals\n\n")
	fmt.Fprintf(&b, "- Proposed tasks: %d\n", summary.Proposed)
	fmt.Fprintf(&b, "- Approved tasks: %d\n", summary.Approved)
	fmt.Fprintf(&b, "- Implemented tasks: %d\n", summary.Implemented)

	if len(summary.Analysis) > 0 {
		b.WriteString("\n## Repository Analysis\n\n")
		keys := make([]string, 0, len(summary.Analysis))
		for k := range summary.Analysis {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %v\n", k, summary.Analysis[k])
		}
	}

	if len(summary.Tasks) > 0 {
		b.WriteString("\n## Tasks\n\n")
		for _, t := range summary.Tasks {
			line := fmt.Sprintf("- %s", t.Title)
			if t.ID != "" {
				line += fmt.Sprintf(" (`%s`)", t.ID)
			}
			if t.ConsensusType != "" {
				line += fmt.Sprintf(" | consensus: %s", t.ConsensusType)
			}
			if t.Implemented {
				line += ", implemented"
			}
			if t.Error != "" {
				line += fmt.Sprintf(" | error: %s", t.Error)
			}
			b.WriteString(line + "\n")
		}
	}

	return b.String()
}
