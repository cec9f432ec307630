package output

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/aidiff/aidiff/internal/review"
)

// Grouping keys accepted by formatters.
const (
	GroupByFile = "file"
	GroupByType = "type"
)

// UnspecifiedGroup collects issues with no review type when grouping by type.
const UnspecifiedGroup = "unspecified"

// ValidGroupBy reports whether s is a supported grouping key.
func ValidGroupBy(s string) bool {
	return s == GroupByFile || s == GroupByType
}

// Report is the presentation input: the filtered issues of one run plus the
// metadata formatters print alongside them.
type Report struct {
	Issues      []review.Issue
	Modes       []string
	GroupBy     string
	GeneratedAt time.Time
}

// Formatter renders a report to a writer.
type Formatter interface {
	Render(w io.Writer, r Report) error
	Name() string
}

// Registry maps output format names to formatters. Like the provider
// registry it is built explicitly at process start.
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[string]Formatter)}
}

// Register adds a formatter under its name.
func (r *Registry) Register(f Formatter) {
	r.formatters[f.Name()] = f
}

// Get looks up a formatter by name.
func (r *Registry) Get(name string) (Formatter, error) {
	f, ok := r.formatters[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (available: %v)", name, r.Names())
	}
	return f, nil
}

// Names returns the registered format names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns a Registry with the built-in formatters registered.
func Default() *Registry {
	r := NewRegistry()
	r.Register(&Markdown{})
	r.Register(&Plain{})
	r.Register(&JSON{})
	return r
}

// group is one section of grouped output.
type group struct {
	Key    string
	Issues []review.Issue
}

// groupIssues partitions issues by file path or review type. Groups appear
// in the order their key is first seen, and issues keep their original
// relative order within a group; the parsed order carries the model's own
// ranking and is never re-sorted. Issues without a review type fall into the
// UnspecifiedGroup bucket when grouping by type.
func groupIssues(issues []review.Issue, groupBy string) []group {
	index := make(map[string]int)
	var groups []group
	for _, issue := range issues {
		key := issue.File
		if groupBy == GroupByType {
			key = issue.ReviewType
			if key == "" {
				key = UnspecifiedGroup
			}
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, group{Key: key})
		}
		groups[i].Issues = append(groups[i].Issues, issue)
	}
	return groups
}
