package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/felixgeelhaar/stackaudit/pkg/domain/evaluation"
)

const (
	maxCriticalIssues = 5
	maxNextSteps      = 3
)

var reportUses = []string{
	"Detailed analysis with a score per module",
	"Step-by-step development plan",
	"Functional and visual improvement recommendations",
	"Complete roadmap to production",
	"Task-specific prompts for the development team",
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			PaddingLeft(1).
			PaddingRight(1)
	ruleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	scoreStyle    = lipgloss.NewStyle().Bold(true)
	criticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	stepStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

func rule() string {
	return ruleStyle.Render(strings.Repeat("=", 60))
}

func renderBanner(w io.Writer) {
	fmt.Fprintln(w, titleStyle.Render("ARMONIA PROJECT EVALUATOR v2.0"))
	fmt.Fprintln(w, "Residential complex management platform")
	fmt.Fprintf(w, "Based on technical specifications %s\n", evaluation.SpecificationsVersion)
	fmt.Fprintln(w, rule())
}

// renderSummary prints the condensed view. Only the first few critical
// issues and next steps are listed; the counts cover all of them.
func renderSummary(w io.Writer, s evaluation.Summary, reportPath string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule())
	fmt.Fprintln(w, titleStyle.Render("EXECUTIVE SUMMARY"))
	fmt.Fprintln(w, rule())

	fmt.Fprintln(w, scoreStyle.Render(fmt.Sprintf("Overall compliance: %.1f%%", s.OverallCompliance)))

	if len(s.CriticalIssues) > 0 {
		fmt.Fprintln(w, criticalStyle.Render(fmt.Sprintf("Critical issues: %d", len(s.CriticalIssues))))
		for _, issue := range head(s.CriticalIssues, maxCriticalIssues) {
			fmt.Fprintf(w, "   • %s\n", issue)
		}
	} else {
		fmt.Fprintln(w, okStyle.Render("No critical issues"))
	}

	if len(s.NextSteps) > 0 {
		fmt.Fprintln(w, stepStyle.Render(fmt.Sprintf("Next steps (%d):", len(s.NextSteps))))
		for _, step := range head(s.NextSteps, maxNextSteps) {
			fmt.Fprintf(w, "   • %s\n", step)
		}
	}

	if reportPath != "" {
		fmt.Fprintf(w, "\nFull report: %s\n", reportPath)
		fmt.Fprintln(w, "\nShare the JSON report to get:")
		for _, use := range reportUses {
			fmt.Fprintf(w, "   • %s\n", use)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, okStyle.Render("Ready to transform residential management!"))
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
