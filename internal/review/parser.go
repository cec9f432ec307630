package review

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Field labels recognized in an issue block, in canonical order.
var fieldLabels = []string{
	"Issue",
	"File",
	"Line Number",
	"Code",
	"Severity",
	"Confidence",
	"Review Type",
	"Suggestion",
}

var separatorLine = regexp.MustCompile(`^-{3,}$`)

// ParseIssues converts a raw provider reply into issues by scanning for
// labeled-field blocks. Parsing is line-oriented and tolerant: blocks
// missing required fields are kept with the field defaulted to a sentinel
// and a warning recorded (the default-and-flag policy). The parser extracts
// literally and never filters by review mode.
func ParseIssues(raw string) ([]Issue, []ParseWarning) {
	blocks := splitBlocks(raw)

	var issues []Issue
	var warnings []ParseWarning
	for i, block := range blocks {
		fields := parseBlock(block)
		if len(fields) == 0 {
			continue // prose or noise, not an issue block
		}
		issue, ws := buildIssue(i, fields, block)
		issues = append(issues, issue)
		warnings = append(warnings, ws...)
	}
	return issues, warnings
}

// splitBlocks splits the reply on separator lines of three or more dashes.
// If no separators are present, it falls back to splitting at each line
// that starts a new "Issue:" field.
func splitBlocks(raw string) []string {
	var blocks []string
	var current []string
	sawSeparator := false

	for _, line := range strings.Split(raw, "\n") {
		if separatorLine.MatchString(strings.TrimSpace(line)) {
			sawSeparator = true
			if len(current) > 0 {
				blocks = append(blocks, strings.Join(current, "\n"))
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}

	if sawSeparator {
		return trimBlocks(blocks)
	}
	return trimBlocks(splitOnIssueLabel(raw))
}

func splitOnIssueLabel(raw string) []string {
	var blocks []string
	var current []string
	for _, line := range strings.Split(raw, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "Issue:") || strings.HasPrefix(stripped, "**Issue:**") {
			if len(current) > 0 {
				blocks = append(blocks, strings.Join(current, "\n"))
			}
			current = []string{line}
			continue
		}
		if len(current) > 0 {
			current = append(current, line)
		}
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}
	return blocks
}

func trimBlocks(blocks []string) []string {
	var out []string
	for _, b := range blocks {
		b = strings.TrimSpace(b)
		if b != "" {
			out = append(out, b)
		}
	}
	return out
}

// parseBlock extracts labeled field values from one block. Both the
// markdown form (**Field:** value) and the plain form (Field: value) are
// accepted. Values may span multiple lines until the next label; Code
// values may be fenced and the fences are stripped.
func parseBlock(block string) map[string]string {
	fields := make(map[string]string)
	var field string
	var value []string
	inFence := false

	flush := func() {
		if field == "" {
			return
		}
		val := strings.TrimSpace(strings.Join(value, "\n"))
		if field == "Code" {
			val = stripFences(val)
		}
		if _, dup := fields[field]; !dup {
			fields[field] = val
		}
		field = ""
		value = nil
	}

	for _, line := range strings.Split(block, "\n") {
		stripped := strings.TrimSpace(line)

		if !inFence {
			if label, rest, ok := matchLabel(stripped); ok {
				flush()
				field = label
				if rest != "" {
					value = append(value, rest)
				}
				if field == "Code" && strings.HasPrefix(rest, "```") && !closesFence(rest) {
					inFence = true
				}
				continue
			}
		}

		if field == "" {
			continue
		}
		value = append(value, line)
		if strings.HasPrefix(stripped, "```") {
			if inFence {
				inFence = false
			} else if field == "Code" && !closesFence(stripped) {
				inFence = true
			}
		}
	}
	flush()
	return fields
}

// closesFence reports whether a single line both opens and closes a fence.
func closesFence(s string) bool {
	return strings.Count(s, "```") >= 2
}

func matchLabel(line string) (label, rest string, ok bool) {
	for _, l := range fieldLabels {
		if v, found := strings.CutPrefix(line, "**"+l+":**"); found {
			return l, strings.TrimSpace(v), true
		}
		if v, found := strings.CutPrefix(line, l+":"); found {
			return l, strings.TrimSpace(v), true
		}
	}
	return "", "", false
}

func stripFences(val string) string {
	val = strings.TrimSpace(val)
	if !strings.HasPrefix(val, "```") && !strings.HasPrefix(val, "``") {
		return val
	}
	lines := strings.Split(val, "\n")
	if len(lines) == 1 {
		// Inline fence: ```code``` or ``code``
		return strings.Trim(val, "`")
	}
	// Drop the opening fence line (possibly carrying a language tag) and a
	// closing fence line if present.
	lines = lines[1:]
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "``") {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func buildIssue(block int, fields map[string]string, blockText string) (Issue, []ParseWarning) {
	var warnings []ParseWarning
	warn := func(field, format string, args ...any) {
		warnings = append(warnings, ParseWarning{
			Block:   block,
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	issue := Issue{
		Description: fields["Issue"],
		File:        fields["File"],
		Line:        fields["Line Number"],
		Code:        fields["Code"],
		ReviewType:  strings.ToLower(fields["Review Type"]),
		Suggestion:  fields["Suggestion"],
	}

	if issue.Description == "" {
		warn("Issue", "missing description, using block excerpt")
		issue.Description = excerpt(blockText, 100)
	}
	if issue.File == "" {
		warn("File", "missing, defaulting to %q", "unknown")
		issue.File = "unknown"
	}
	if issue.Line == "" {
		issue.Line = "unknown"
	}

	sev := Severity(strings.ToLower(fields["Severity"]))
	switch {
	case sev == "":
		warn("Severity", "missing, defaulting to %q", SeverityUnknown)
		issue.Severity = SeverityUnknown
	case !ValidSeverity(sev):
		// Keep the reported value so the data-quality problem stays visible.
		warn("Severity", "value %q outside critical/high/medium/low", fields["Severity"])
		issue.Severity = sev
	default:
		issue.Severity = normalizeSeverity(sev)
	}

	conf, err := parseConfidence(fields["Confidence"])
	switch {
	case fields["Confidence"] == "":
		warn("Confidence", "missing, defaulting to %d", ConfidenceUnknown)
		issue.Confidence = ConfidenceUnknown
	case err != nil:
		warn("Confidence", "unparseable value %q", fields["Confidence"])
		issue.Confidence = ConfidenceUnknown
	case conf < 0 || conf > 100:
		warn("Confidence", "value %d outside 0-100", conf)
		issue.Confidence = conf
	default:
		issue.Confidence = conf
	}

	return issue, warnings
}

func parseConfidence(s string) (int, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	return strconv.Atoi(s)
}

func excerpt(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
