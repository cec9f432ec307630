package review

import "fmt"

// Severity represents the severity level of an issue.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"

	// SeverityUnknown is the sentinel for a missing severity field.
	SeverityUnknown Severity = "unknown"
)

// ConfidenceUnknown is the sentinel for a missing or unparseable confidence.
// It is deliberately outside the valid 0-100 range so it stays visible.
const ConfidenceUnknown = -1

// SeverityRank returns a numeric rank for sorting (higher = more severe).
// Values outside the valid set rank 0.
func SeverityRank(s Severity) int {
	switch normalizeSeverity(s) {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// ValidSeverity reports whether s is one of the four defined levels.
func ValidSeverity(s Severity) bool {
	return SeverityRank(s) > 0
}

func normalizeSeverity(s Severity) Severity {
	switch s {
	case "Critical", "CRITICAL", SeverityCritical:
		return SeverityCritical
	case "High", "HIGH", SeverityHigh:
		return SeverityHigh
	case "Medium", "MEDIUM", SeverityMedium:
		return SeverityMedium
	case "Low", "LOW", SeverityLow:
		return SeverityLow
	default:
		return s
	}
}

// Issue is one discrete finding reported by the model for a file/line.
// Issues are created only by parsing a provider response and are immutable
// for the rest of the run.
type Issue struct {
	Description string   `json:"issue"`
	File        string   `json:"file_path"`
	Line        string   `json:"line_number"`
	Code        string   `json:"code"`
	Severity    Severity `json:"severity"`
	Confidence  int      `json:"confidence"`
	ReviewType  string   `json:"review_type,omitempty"`
	Suggestion  string   `json:"suggestion"`
}

// ParseWarning records a data-quality problem found while parsing a provider
// response. Warnings are non-fatal; the issues that did parse are still used.
type ParseWarning struct {
	Block   int
	Field   string
	Message string
}

func (w ParseWarning) String() string {
	if w.Field != "" {
		return fmt.Sprintf("block %d: field %s: %s", w.Block, w.Field, w.Message)
	}
	return fmt.Sprintf("block %d: %s", w.Block, w.Message)
}
