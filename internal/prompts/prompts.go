package prompts

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed templates/*.md
var embedded embed.FS

// SectionDelimiter separates mode templates in a combined prompt so the
// instructions read as sequential sections.
const SectionDelimiter = "\n\n---\n\n"

// Modes lists the review modes with built-in templates.
var Modes = []string{"security", "accessibility", "performance", "quality"}

// TemplateNotFoundError indicates no template exists for a mode. An
// unrecognized mode is a configuration error and is fatal to the run.
type TemplateNotFoundError struct {
	Mode string
	Dir  string
}

func (e *TemplateNotFoundError) Error() string {
	if e.Dir != "" {
		return fmt.Sprintf("no prompt template for mode %q (looked in %s and built-ins)", e.Mode, e.Dir)
	}
	return fmt.Sprintf("no prompt template for mode %q", e.Mode)
}

// IsTemplateNotFound reports whether err is a TemplateNotFoundError.
func IsTemplateNotFound(err error) bool {
	var te *TemplateNotFoundError
	return errors.As(err, &te)
}

// Store loads review-mode instruction templates. Templates ship embedded in
// the binary; a directory may override them per mode with <mode>.md files.
type Store struct {
	dir string
}

// NewStore creates a Store. dir may be empty to use only built-in templates.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Load returns the template text for a mode. The override directory is
// consulted first, then the embedded templates.
func (s *Store) Load(mode string) (string, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if s.dir != "" {
		data, err := os.ReadFile(filepath.Join(s.dir, mode+".md"))
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("reading prompt template for mode %q: %w", mode, err)
		}
	}
	data, err := embedded.ReadFile("templates/" + mode + ".md")
	if err != nil {
		return "", &TemplateNotFoundError{Mode: mode, Dir: s.dir}
	}
	return string(data), nil
}

// Combine concatenates the templates for the given modes in the order
// requested, separated by SectionDelimiter. Each template appears exactly
// once even if a mode is repeated.
func (s *Store) Combine(modes []string) (string, error) {
	seen := make(map[string]bool)
	var parts []string
	for _, mode := range modes {
		key := strings.ToLower(strings.TrimSpace(mode))
		if seen[key] {
			continue
		}
		seen[key] = true
		text, err := s.Load(key)
		if err != nil {
			return "", err
		}
		parts = append(parts, strings.TrimSpace(text))
	}
	return strings.Join(parts, SectionDelimiter), nil
}
