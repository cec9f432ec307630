package review

import (
	"regexp"
	"strings"
)

// genericLabels are field names the model sometimes echoes back as the
// issue description; such blocks carry no real finding.
var genericLabels = map[string]bool{
	"issue":       true,
	"file":        true,
	"line number": true,
	"code":        true,
	"severity":    true,
	"confidence":  true,
	"review type": true,
	"suggestion":  true,
}

var (
	placeholderKey = regexp.MustCompile(`^[a-z_]*key[a-z_]*$`)
	angleTemplate  = regexp.MustCompile(`^<.*>$`)
	punctuationOnly = regexp.MustCompile(`^[\W_]+$`)
)

// FilterFalsePositives drops issues that flag placeholder values rather
// than real secrets, and blocks with no substantial content.
func FilterFalsePositives(issues []Issue) []Issue {
	var kept []Issue
	for _, issue := range issues {
		if isPlaceholderFinding(issue) {
			continue
		}
		if !hasSubstance(issue) {
			continue
		}
		kept = append(kept, issue)
	}
	return kept
}

func isPlaceholderFinding(issue Issue) bool {
	for _, val := range []string{issue.Code, issue.Suggestion, issue.Description} {
		if isPlaceholderValue(val) {
			return true
		}
	}
	return false
}

// isPlaceholderValue detects values that look like documentation templates
// (your-api-key, <API_KEY>, changeme) rather than leaked secrets.
func isPlaceholderValue(val string) bool {
	val = strings.ToLower(strings.TrimSpace(val))
	if val == "" {
		return false
	}
	switch {
	case strings.Contains(val, "your") && strings.Contains(val, "key"),
		strings.Contains(val, "example"),
		strings.Contains(val, "changeme"),
		strings.Contains(val, "placeholder"):
		return true
	}
	return placeholderKey.MatchString(val) || angleTemplate.MatchString(val)
}

func hasSubstance(issue Issue) bool {
	if strings.TrimSpace(issue.Description) == "" &&
		strings.TrimSpace(issue.Suggestion) == "" &&
		strings.TrimSpace(string(issue.Severity)) == "" {
		return false
	}
	desc := strings.ToLower(strings.TrimSpace(issue.Description))
	if desc == "" || genericLabels[desc] || punctuationOnly.MatchString(desc) {
		return false
	}
	return true
}

// FilterByModes keeps issues whose review type matches one of the requested
// modes. Issues with no review type cannot be attributed and are kept.
// This is a presentation decision made by the caller, not the parser.
func FilterByModes(issues []Issue, modes []string) []Issue {
	if len(modes) == 0 {
		return issues
	}
	want := make(map[string]bool, len(modes))
	for _, m := range modes {
		want[strings.ToLower(strings.TrimSpace(m))] = true
	}
	var kept []Issue
	for _, issue := range issues {
		if issue.ReviewType == "" || want[issue.ReviewType] {
			kept = append(kept, issue)
		}
	}
	return kept
}
