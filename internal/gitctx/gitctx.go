package gitctx

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// DiffUnavailableError indicates the diff could not be obtained: git is
// missing, the base reference does not resolve, or the working directory
// is not inside a repository.
type DiffUnavailableError struct {
	Reason string
	Err    error
}

func (e *DiffUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("diff unavailable: %s: %v", e.Reason, e.Err)
	}
	return "diff unavailable: " + e.Reason
}

func (e *DiffUnavailableError) Unwrap() error { return e.Err }

// IsDiffUnavailable reports whether err is a DiffUnavailableError.
func IsDiffUnavailable(err error) bool {
	var de *DiffUnavailableError
	return errors.As(err, &de)
}

// DiffOptions controls diff collection.
type DiffOptions struct {
	Staged           bool
	IncludeUntracked bool
	MaxDiffBytes     int
}

// DiffResult holds the collected diff and metadata.
type DiffResult struct {
	Diff         string
	Files        []string
	Base         string
	Truncated    bool
	DroppedFiles int
	Repo         RepoMeta
}

// RepoMeta contains git repository metadata.
type RepoMeta struct {
	Root   string
	Head   string
	Branch string
}

// GetRepoMeta collects repository metadata from git.
func GetRepoMeta() (RepoMeta, error) {
	root, err := gitOutput("rev-parse", "--show-toplevel")
	if err != nil {
		return RepoMeta{}, &DiffUnavailableError{Reason: "not a git repository", Err: err}
	}
	head, err := gitOutput("rev-parse", "HEAD")
	if err != nil {
		head = "" // new repo with no commits
	}
	branch, err := gitOutput("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		branch = ""
	}
	return RepoMeta{
		Root:   strings.TrimSpace(root),
		Head:   strings.TrimSpace(head),
		Branch: strings.TrimSpace(branch),
	}, nil
}

// IsDirty reports whether the working tree has uncommitted changes.
func IsDirty() bool {
	out, err := gitOutput("status", "--porcelain")
	if err != nil {
		return false
	}
	return strings.TrimSpace(out) != ""
}

// Diff returns the unified diff between base and the current tree. With
// opts.Staged only the index vs base is compared. With opts.IncludeUntracked
// each untracked file is appended as a synthetic all-added diff section.
// The result is cleaned of index/mode metadata and truncated to
// opts.MaxDiffBytes at whole-file boundaries.
func Diff(base string, opts DiffOptions) (DiffResult, error) {
	meta, err := GetRepoMeta()
	if err != nil {
		return DiffResult{}, err
	}

	args := []string{"diff"}
	if opts.Staged {
		args = append(args, "--cached")
	}
	args = append(args, base)

	diff, err := gitOutput(args...)
	if err != nil {
		return DiffResult{}, &DiffUnavailableError{
			Reason: fmt.Sprintf("git diff against %q failed", base),
			Err:    err,
		}
	}

	diff = Clean(diff)

	if opts.IncludeUntracked {
		untracked, err := UntrackedFiles()
		if err != nil {
			return DiffResult{}, err
		}
		for _, path := range untracked {
			data, err := os.ReadFile(path)
			if err != nil {
				continue // unreadable untracked files are skipped
			}
			diff += SyntheticDiff(path, string(data))
		}
	}

	result := DiffResult{
		Diff:  diff,
		Files: extractFiles(diff),
		Base:  base,
		Repo:  meta,
	}

	if opts.MaxDiffBytes > 0 && len(result.Diff) > opts.MaxDiffBytes {
		truncated, dropped := TruncateWholeFiles(result.Diff, opts.MaxDiffBytes)
		result.Diff = truncated
		result.Files = extractFiles(truncated)
		result.Truncated = true
		result.DroppedFiles = dropped
	}

	return result, nil
}

// UntrackedFiles returns the paths of untracked, non-ignored files.
func UntrackedFiles() ([]string, error) {
	out, err := gitOutput("ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, &DiffUnavailableError{Reason: "listing untracked files", Err: err}
	}
	var files []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// SyntheticDiff renders content as an all-added unified diff section, the
// same shape git emits for a new file. Line numbering starts at 1.
func SyntheticDiff(path, content string) string {
	lines := strings.Split(content, "\n")
	// A trailing newline yields an empty final element; git does not count it.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "diff --git a/%s b/%s\n", path, path)
	fmt.Fprintf(&b, "new file mode 100644\n")
	fmt.Fprintf(&b, "--- /dev/null\n")
	fmt.Fprintf(&b, "+++ b/%s\n", path)
	fmt.Fprintf(&b, "@@ -0,0 +1,%d @@\n", len(lines))
	for _, line := range lines {
		fmt.Fprintf(&b, "+%s\n", line)
	}
	return b.String()
}

// Clean strips index/mode metadata from a diff, keeping file boundaries,
// hunk headers, and +/-/context lines.
func Clean(diff string) string {
	var kept []string
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git "),
			strings.HasPrefix(line, "new file mode"),
			strings.HasPrefix(line, "deleted file mode"),
			strings.HasPrefix(line, "--- "),
			strings.HasPrefix(line, "+++ "),
			strings.HasPrefix(line, "@@"):
			kept = append(kept, line)
		case strings.HasPrefix(line, "+"), strings.HasPrefix(line, "-"), strings.HasPrefix(line, " "):
			kept = append(kept, line)
		}
	}
	out := strings.Join(kept, "\n")
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

// TruncateWholeFiles trims diff to at most maxBytes by dropping whole
// trailing per-file sections: the first section that would exceed the budget
// is dropped along with everything after it, so the kept sections are always
// a prefix of the original and the dropped ones a trailing suffix. It never
// cuts inside a hunk. Returns the truncated diff and the number of file
// sections dropped.
func TruncateWholeFiles(diff string, maxBytes int) (string, int) {
	if maxBytes <= 0 || len(diff) <= maxBytes {
		return diff, 0
	}
	sections := SplitSections(diff)
	var b strings.Builder
	for i, sec := range sections {
		if b.Len()+len(sec) > maxBytes {
			return b.String(), len(sections) - i
		}
		b.WriteString(sec)
	}
	return b.String(), 0
}

// SplitSections splits a diff into per-file sections on "diff --git" markers.
func SplitSections(diff string) []string {
	if strings.TrimSpace(diff) == "" {
		return nil
	}
	var sections []string
	var current strings.Builder
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "diff --git") && current.Len() > 0 {
			sections = append(sections, current.String())
			current.Reset()
		}
		current.WriteString(line)
		current.WriteString("\n")
	}
	if current.Len() > 0 {
		s := current.String()
		if strings.TrimSpace(s) != "" {
			sections = append(sections, s)
		}
	}
	return sections
}

func extractFiles(diff string) []string {
	var files []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "+++ b/") {
			f := strings.TrimPrefix(line, "+++ b/")
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	return files
}

func gitOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), fmt.Errorf("%s: %s", err, string(exitErr.Stderr))
		}
		return "", err
	}
	return string(out), nil
}
