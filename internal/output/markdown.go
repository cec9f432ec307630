package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/aidiff/aidiff/internal/review"
)

// typeEmoji marks issues by review type; it takes precedence over the
// severity marker so a security finding always reads as security.
var typeEmoji = map[string]string{
	"security":      "🔒",
	"performance":   "⚡",
	"accessibility": "♿",
	"quality":       "✨",
}

// severityEmoji is the fallback marker for issues without a recognized
// review type.
var severityEmoji = map[review.Severity]string{
	review.SeverityCritical: "🔒",
	review.SeverityHigh:     "⚠️",
	review.SeverityMedium:   "⚠️",
	review.SeverityLow:      "✅",
}

func issueEmoji(issue review.Issue) string {
	if e, ok := typeEmoji[issue.ReviewType]; ok {
		return e
	}
	if e, ok := severityEmoji[issue.Severity]; ok {
		return e
	}
	return "❓"
}

// Markdown renders issues as a markdown report grouped under headings. Each
// issue keeps the labeled-field layout, so a report can be parsed back into
// the same issues.
type Markdown struct{}

func (m *Markdown) Name() string { return "markdown" }

func (m *Markdown) Render(w io.Writer, r Report) error {
	var b strings.Builder

	b.WriteString("# Code Review Report\n\n")
	if len(r.Modes) > 0 {
		fmt.Fprintf(&b, "**Review types:** %s\n", strings.Join(r.Modes, ", "))
	}
	if !r.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "**Generated:** %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Fprintf(&b, "**Total issues:** %d\n", len(r.Issues))

	if len(r.Issues) == 0 {
		b.WriteString("\n✅ No issues found.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	for _, g := range groupIssues(r.Issues, r.GroupBy) {
		// A separator before the heading keeps it out of the preceding
		// issue's field values when the report is parsed back.
		fmt.Fprintf(&b, "\n---\n\n### `%s`\n", g.Key)
		for _, issue := range g.Issues {
			b.WriteString("\n---\n\n")
			fmt.Fprintf(&b, "#### %s %s\n\n", issueEmoji(issue), title(issue))
			fmt.Fprintf(&b, "**Issue:** %s\n", issue.Description)
			fmt.Fprintf(&b, "**File:** %s\n", issue.File)
			fmt.Fprintf(&b, "**Line Number:** %s\n", issue.Line)
			fmt.Fprintf(&b, "**Severity:** %s\n", issue.Severity)
			fmt.Fprintf(&b, "**Confidence:** %s\n", confidenceString(issue.Confidence))
			if issue.ReviewType != "" {
				fmt.Fprintf(&b, "**Review Type:** %s\n", issue.ReviewType)
			}
			if issue.Code != "" {
				fmt.Fprintf(&b, "**Code:**\n```\n%s\n```\n", issue.Code)
			}
			if issue.Suggestion != "" {
				fmt.Fprintf(&b, "**Suggestion:** %s\n", issue.Suggestion)
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// title is the short heading line for one issue: its severity plus the first
// sentence-ish chunk of the description.
func title(issue review.Issue) string {
	desc := issue.Description
	if i := strings.IndexAny(desc, ".\n"); i > 0 {
		desc = desc[:i]
	}
	if len(desc) > 80 {
		desc = desc[:80] + "..."
	}
	return fmt.Sprintf("[%s] %s", strings.ToUpper(string(issue.Severity)), desc)
}

func confidenceString(c int) string {
	if c == review.ConfidenceUnknown {
		return "unknown"
	}
	return fmt.Sprintf("%d", c)
}
