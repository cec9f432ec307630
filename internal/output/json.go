package output

import (
	"encoding/json"
	"io"
	"sort"
	"time"

	"github.com/aidiff/aidiff/internal/review"
)

// JSON renders issues as a machine-readable report. Grouping is always by
// file; the GroupBy setting only affects the human-readable formatters.
type JSON struct{}

func (j *JSON) Name() string { return "json" }

type jsonReport struct {
	Files             []jsonFile `json:"files"`
	TotalIssues       int        `json:"total_issues"`
	AnalysisTimestamp string     `json:"analysis_timestamp"`
	ReviewTypes       []string   `json:"review_types"`
}

type jsonFile struct {
	FilePath            string         `json:"file_path"`
	Issues              []review.Issue `json:"issues"`
	ReviewTypesAnalyzed []string       `json:"review_types_analyzed"`
}

func (j *JSON) Render(w io.Writer, r Report) error {
	report := jsonReport{
		Files:       []jsonFile{},
		TotalIssues: len(r.Issues),
		ReviewTypes: r.Modes,
	}
	ts := r.GeneratedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	report.AnalysisTimestamp = ts.UTC().Format(time.RFC3339)

	for _, g := range groupIssues(r.Issues, GroupByFile) {
		types := make(map[string]bool)
		for _, issue := range g.Issues {
			if issue.ReviewType != "" {
				types[issue.ReviewType] = true
			}
		}
		seen := make([]string, 0, len(types))
		for t := range types {
			seen = append(seen, t)
		}
		sort.Strings(seen)
		report.Files = append(report.Files, jsonFile{
			FilePath:            g.Key,
			Issues:              g.Issues,
			ReviewTypesAnalyzed: seen,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
