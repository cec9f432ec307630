package output

import (
	"fmt"
	"io"
	"strings"
)

// Plain renders issues as undecorated text for terminals and pipelines that
// want no markdown.
type Plain struct{}

func (p *Plain) Name() string { return "plain" }

func (p *Plain) Render(w io.Writer, r Report) error {
	var b strings.Builder

	b.WriteString("Code Review Report\n")
	if len(r.Modes) > 0 {
		fmt.Fprintf(&b, "Review types: %s\n", strings.Join(r.Modes, ", "))
	}
	fmt.Fprintf(&b, "Total issues: %d\n", len(r.Issues))

	if len(r.Issues) == 0 {
		b.WriteString("\nNo issues found.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	for _, g := range groupIssues(r.Issues, r.GroupBy) {
		fmt.Fprintf(&b, "\n%s\n%s\n", g.Key, strings.Repeat("=", len(g.Key)))
		for i, issue := range g.Issues {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "\n[%s] %s\n", strings.ToUpper(string(issue.Severity)), issue.Description)
			fmt.Fprintf(&b, "  File:       %s\n", issue.File)
			fmt.Fprintf(&b, "  Line:       %s\n", issue.Line)
			fmt.Fprintf(&b, "  Confidence: %s\n", confidenceString(issue.Confidence))
			if issue.ReviewType != "" {
				fmt.Fprintf(&b, "  Type:       %s\n", issue.ReviewType)
			}
			if issue.Code != "" {
				fmt.Fprintf(&b, "  Code:\n%s\n", indent(issue.Code, "    "))
			}
			if issue.Suggestion != "" {
				fmt.Fprintf(&b, "  Suggestion: %s\n", issue.Suggestion)
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
