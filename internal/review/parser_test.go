package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIssuesPlainLabels(t *testing.T) {
	raw := `Issue: SQL query built with string concatenation
File: db/users.go
Line Number: 57
Code: query := "SELECT * FROM users WHERE id = " + id
Severity: high
Confidence: 95
Review Type: security
Suggestion: Use a parameterized query
`
	issues, warnings := ParseIssues(raw)
	require.Len(t, issues, 1)
	assert.Empty(t, warnings)

	issue := issues[0]
	assert.Equal(t, "SQL query built with string concatenation", issue.Description)
	assert.Equal(t, "db/users.go", issue.File)
	assert.Equal(t, "57", issue.Line)
	assert.Equal(t, `query := "SELECT * FROM users WHERE id = " + id`, issue.Code)
	assert.Equal(t, SeverityHigh, issue.Severity)
	assert.Equal(t, 95, issue.Confidence)
	assert.Equal(t, "security", issue.ReviewType)
	assert.Equal(t, "Use a parameterized query", issue.Suggestion)
}

func TestParseIssuesMarkdownLabels(t *testing.T) {
	raw := `**Issue:** Missing alt text on image element
**File:** web/templates/home.html
**Line Number:** 12
**Severity:** Medium
**Confidence:** 80%
**Review Type:** Accessibility
**Suggestion:** Add a descriptive alt attribute
`
	issues, warnings := ParseIssues(raw)
	require.Len(t, issues, 1)
	assert.Empty(t, warnings)

	issue := issues[0]
	assert.Equal(t, "Missing alt text on image element", issue.Description)
	assert.Equal(t, SeverityMedium, issue.Severity)
	assert.Equal(t, 80, issue.Confidence, "percent sign is stripped")
	assert.Equal(t, "accessibility", issue.ReviewType, "review type is lowercased")
}

func TestParseIssuesMalformedBlockKeptWithDefaults(t *testing.T) {
	raw := `Issue: First finding
File: a.go
Line Number: 1
Severity: high
Confidence: 90

---

Severity: critical
Suggestion: Something is wrong here but the block lost its labels

---

Issue: Third finding
File: c.go
Line Number: 3
Severity: low
Confidence: 60
`
	issues, warnings := ParseIssues(raw)
	require.Len(t, issues, 3, "malformed blocks are kept, not dropped")

	malformed := issues[1]
	assert.Equal(t, "unknown", malformed.File)
	assert.Equal(t, "unknown", malformed.Line)
	assert.Equal(t, SeverityCritical, malformed.Severity)
	assert.Equal(t, ConfidenceUnknown, malformed.Confidence)
	assert.NotEmpty(t, malformed.Description, "description defaults to a block excerpt")

	require.NotEmpty(t, warnings)
	var fields []string
	for _, w := range warnings {
		assert.Equal(t, 1, w.Block)
		fields = append(fields, w.Field)
	}
	assert.Contains(t, fields, "Issue")
	assert.Contains(t, fields, "File")
	assert.Contains(t, fields, "Confidence")
}

func TestParseIssuesFencedCode(t *testing.T) {
	raw := "Issue: Shell injection\n" +
		"File: deploy.go\n" +
		"Line Number: 9\n" +
		"Code:\n" +
		"```go\n" +
		"exec.Command(\"sh\", \"-c\", userInput)\n" +
		"```\n" +
		"Severity: critical\n" +
		"Confidence: 99\n"

	issues, warnings := ParseIssues(raw)
	require.Len(t, issues, 1)
	assert.Empty(t, warnings)
	assert.Equal(t, `exec.Command("sh", "-c", userInput)`, issues[0].Code)
	assert.Equal(t, SeverityCritical, issues[0].Severity)
}

func TestParseIssuesSplitsOnIssueLabelWithoutSeparators(t *testing.T) {
	raw := `Issue: First
File: a.go
Line Number: 1
Severity: high
Confidence: 90
Issue: Second
File: b.go
Line Number: 2
Severity: low
Confidence: 50
`
	issues, _ := ParseIssues(raw)
	require.Len(t, issues, 2)
	assert.Equal(t, "First", issues[0].Description)
	assert.Equal(t, "Second", issues[1].Description)
}

func TestParseIssuesInvalidSeverityKeptVerbatim(t *testing.T) {
	raw := `Issue: Something
File: a.go
Line Number: 1
Severity: catastrophic
Confidence: 50
`
	issues, warnings := ParseIssues(raw)
	require.Len(t, issues, 1)
	assert.Equal(t, Severity("catastrophic"), issues[0].Severity)

	require.Len(t, warnings, 1)
	assert.Equal(t, "Severity", warnings[0].Field)
}

func TestParseIssuesConfidenceOutOfRange(t *testing.T) {
	raw := `Issue: Something
File: a.go
Line Number: 1
Severity: low
Confidence: 250
`
	issues, warnings := ParseIssues(raw)
	require.Len(t, issues, 1)
	assert.Equal(t, 250, issues[0].Confidence, "out-of-range value kept verbatim")
	require.Len(t, warnings, 1)
	assert.Equal(t, "Confidence", warnings[0].Field)
}

func TestParseIssuesNoIssuesFound(t *testing.T) {
	issues, warnings := ParseIssues("No issues found.")
	assert.Empty(t, issues)
	assert.Empty(t, warnings)
}

func TestParseIssuesMultilineValues(t *testing.T) {
	raw := `Issue: The retry loop swallows the error
and keeps going forever
File: retry.go
Line Number: 33
Severity: medium
Confidence: 75
Suggestion: Return the error after the final attempt
`
	issues, _ := ParseIssues(raw)
	require.Len(t, issues, 1)
	assert.Equal(t, "The retry loop swallows the error\nand keeps going forever", issues[0].Description)
}

func TestParseIssuesProseAroundBlocks(t *testing.T) {
	raw := `I reviewed the diff carefully. Here is what I found:

---

Issue: Unchecked error return
File: io.go
Line Number: 21
Severity: medium
Confidence: 85

---

That concludes the review.
`
	issues, _ := ParseIssues(raw)
	require.Len(t, issues, 1)
	assert.Equal(t, "Unchecked error return", issues[0].Description)
}
