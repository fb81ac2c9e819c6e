// Package report renders analysis results as a markdown document and,
// for terminal display, through glamour.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"docktor/internal/analyzer"
	"docktor/internal/logging"
)

// Generate builds the markdown analysis report. Issues are grouped under
// severity headings, ordered high, medium, low, then unknown severities.
func Generate(res *analyzer.Result) string {
	var b strings.Builder

	b.WriteString("# Dockerfile Analysis Report\n\n")

	b.WriteString("## Overall Scores\n")
	fmt.Fprintf(&b, "Security Score: %d/100\n", res.SecurityScore)
	fmt.Fprintf(&b, "Optimization Score: %d/100\n\n", res.OptimizationScore)

	b.WriteString("## Optimization Metrics\n")
	fmt.Fprintf(&b, "- Layer Count: %d\n", res.Metrics.LayerCount)
	fmt.Fprintf(&b, "- Estimated Image Size: %s\n", res.Metrics.EstimatedSize)
	fmt.Fprintf(&b, "- Cache Efficiency: %d/100\n", res.Metrics.CacheEfficiency)
	fmt.Fprintf(&b, "- Build Time Score: %d/100\n", res.Metrics.BuildTimeScore)
	fmt.Fprintf(&b, "- Maintainability Score: %d/100\n\n", res.Metrics.MaintainabilityScore)

	b.WriteString("## Issues Found\n\n")

	issues := make([]analyzer.Issue, len(res.Issues))
	copy(issues, res.Issues)
	analyzer.SortIssues(issues)

	currentSeverity := ""
	for _, issue := range issues {
		if issue.Severity != currentSeverity {
			currentSeverity = issue.Severity
			fmt.Fprintf(&b, "### %s Severity Issues\n\n", strings.ToUpper(issue.Severity))
		}
		fmt.Fprintf(&b, "**%s**\n", issue.Category)
		fmt.Fprintf(&b, "- Description: %s\n", issue.Description)
		fmt.Fprintf(&b, "- Recommendation: %s\n", issue.Recommendation)
		if issue.LineNumber > 0 {
			fmt.Fprintf(&b, "- Line Number: %d\n", issue.LineNumber)
		}
		b.WriteString("\n")
	}

	if len(issues) == 0 {
		b.WriteString("No issues found.\n")
	}

	return b.String()
}

// Render converts the markdown report to styled terminal output. Falls
// back to the raw markdown when the renderer cannot be constructed.
func Render(markdown string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		logging.Report("glamour renderer unavailable, emitting raw markdown: %v", err)
		return markdown
	}
	out, err := r.Render(markdown)
	if err != nil {
		logging.Report("glamour render failed, emitting raw markdown: %v", err)
		return markdown
	}
	return out
}
