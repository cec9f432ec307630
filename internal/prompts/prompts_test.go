package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Builtin(t *testing.T) {
	s := NewStore("")
	for _, mode := range Modes {
		text, err := s.Load(mode)
		require.NoError(t, err, "mode %s", mode)
		assert.NotEmpty(t, text)
		assert.Contains(t, text, "Review Type")
	}
}

func TestLoad_UnknownMode(t *testing.T) {
	s := NewStore("")
	_, err := s.Load("astrology")
	require.Error(t, err)
	assert.True(t, IsTemplateNotFound(err))
	assert.Contains(t, err.Error(), "astrology")
}

func TestLoad_DirOverride(t *testing.T) {
	dir := t.TempDir()
	custom := "Custom security instructions.\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "security.md"), []byte(custom), 0o644))

	s := NewStore(dir)
	text, err := s.Load("security")
	require.NoError(t, err)
	assert.Equal(t, custom, text)

	// Modes without an override fall back to the built-in template.
	text, err = s.Load("quality")
	require.NoError(t, err)
	assert.Contains(t, text, "quality")
}

func TestCombine_OrderAndUniqueness(t *testing.T) {
	s := NewStore("")
	combined, err := s.Combine([]string{"performance", "security", "performance"})
	require.NoError(t, err)

	perf, err := s.Load("performance")
	require.NoError(t, err)
	sec, err := s.Load("security")
	require.NoError(t, err)

	// Each template appears exactly once, in requested order.
	assert.Equal(t, 1, strings.Count(combined, strings.TrimSpace(perf)))
	assert.Equal(t, 1, strings.Count(combined, strings.TrimSpace(sec)))
	assert.Less(t, strings.Index(combined, strings.TrimSpace(perf)), strings.Index(combined, strings.TrimSpace(sec)))
	assert.Contains(t, combined, SectionDelimiter)
}

func TestCombine_UnknownModeFails(t *testing.T) {
	s := NewStore("")
	_, err := s.Combine([]string{"security", "nope"})
	require.Error(t, err)
	assert.True(t, IsTemplateNotFound(err))
}
