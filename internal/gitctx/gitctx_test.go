package gitctx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDiff = `diff --git a/main.go b/main.go
--- a/main.go
+++ b/main.go
@@ -1,3 +1,4 @@
 package main
+import "os"
 func main() {}
diff --git a/util.go b/util.go
--- a/util.go
+++ b/util.go
@@ -10,2 +10,3 @@
 func helper() {
+	return
 }
`

func TestSyntheticDiff(t *testing.T) {
	diff := SyntheticDiff("notes.txt", "one\ntwo\nthree\n")

	assert.Contains(t, diff, "diff --git a/notes.txt b/notes.txt")
	assert.Contains(t, diff, "new file mode 100644")
	assert.Contains(t, diff, "--- /dev/null")
	assert.Contains(t, diff, "+++ b/notes.txt")
	assert.Contains(t, diff, "@@ -0,0 +1,3 @@")
	assert.Contains(t, diff, "+one\n+two\n+three\n")
}

func TestSyntheticDiff_NoTrailingNewline(t *testing.T) {
	diff := SyntheticDiff("a.txt", "only line")
	assert.Contains(t, diff, "@@ -0,0 +1,1 @@")
	assert.Contains(t, diff, "+only line\n")
}

func TestSyntheticDiff_StartsAtLineOne(t *testing.T) {
	diff := SyntheticDiff("x", "a\nb\n")
	// Hunk header must map the new file to line 1, not 0.
	assert.Contains(t, diff, "+1,2")
	assert.NotContains(t, diff, "+0,")
}

func TestSplitSections(t *testing.T) {
	sections := SplitSections(sampleDiff)
	require.Len(t, sections, 2)
	assert.True(t, strings.HasPrefix(sections[0], "diff --git a/main.go"))
	assert.True(t, strings.HasPrefix(sections[1], "diff --git a/util.go"))
}

func TestSplitSections_Empty(t *testing.T) {
	assert.Nil(t, SplitSections(""))
	assert.Nil(t, SplitSections("   \n"))
}

func TestTruncateWholeFiles(t *testing.T) {
	sections := SplitSections(sampleDiff)
	require.Len(t, sections, 2)

	// Budget large enough for the first section only.
	budget := len(sections[0]) + 5
	truncated, dropped := TruncateWholeFiles(sampleDiff, budget)

	assert.Equal(t, sections[0], truncated)
	assert.Equal(t, 1, dropped)
	// The surviving diff must end exactly at a file boundary.
	assert.False(t, strings.Contains(truncated, "util.go"))
}

func TestTruncateWholeFiles_UnderBudget(t *testing.T) {
	truncated, dropped := TruncateWholeFiles(sampleDiff, len(sampleDiff)+1)
	assert.Equal(t, sampleDiff, truncated)
	assert.Equal(t, 0, dropped)
}

func TestTruncateWholeFiles_NeverSplitsHunks(t *testing.T) {
	// Try every budget; the result must always be a prefix of the original
	// diff made of whole sections.
	sections := SplitSections(sampleDiff)
	for budget := 1; budget < len(sampleDiff); budget++ {
		truncated, dropped := TruncateWholeFiles(sampleDiff, budget)
		assert.True(t, strings.HasPrefix(sampleDiff, truncated), "budget %d", budget)
		kept := 0
		var prefix strings.Builder
		for _, sec := range sections {
			if prefix.Len()+len(sec) > len(truncated) {
				break
			}
			prefix.WriteString(sec)
			kept++
		}
		assert.Equal(t, prefix.String(), truncated, "budget %d: not whole sections", budget)
		assert.Equal(t, len(sections)-kept, dropped, "budget %d", budget)
	}
}

func TestTruncateWholeFiles_DropsTrailingSuffix(t *testing.T) {
	big := SyntheticDiff("b.go", strings.Repeat("padding line\n", 50))
	small1 := SyntheticDiff("a.go", "x\n")
	small2 := SyntheticDiff("c.go", "y\n")
	diff := small1 + big + small2

	// The budget fits both small sections but not the big middle one. The
	// big section and everything after it must go, even though c.go alone
	// would still fit.
	budget := len(small1) + len(small2)
	truncated, dropped := TruncateWholeFiles(diff, budget)

	assert.Equal(t, small1, truncated)
	assert.Equal(t, 2, dropped)
	assert.NotContains(t, truncated, "c.go")
}

func TestClean(t *testing.T) {
	raw := "diff --git a/f.go b/f.go\n" +
		"index 123abc..456def 100644\n" +
		"--- a/f.go\n" +
		"+++ b/f.go\n" +
		"@@ -1,2 +1,2 @@\n" +
		"-old\n" +
		"+new\n" +
		" ctx\n"

	cleaned := Clean(raw)
	assert.NotContains(t, cleaned, "index 123abc")
	assert.Contains(t, cleaned, "diff --git a/f.go b/f.go")
	assert.Contains(t, cleaned, "@@ -1,2 +1,2 @@")
	assert.Contains(t, cleaned, "-old")
	assert.Contains(t, cleaned, "+new")
	assert.Contains(t, cleaned, " ctx")
}

func TestExtractFiles(t *testing.T) {
	files := extractFiles(sampleDiff)
	assert.Equal(t, []string{"main.go", "util.go"}, files)
}

func TestDiffUnavailableError(t *testing.T) {
	err := &DiffUnavailableError{Reason: "not a git repository"}
	assert.True(t, IsDiffUnavailable(err))
	assert.Contains(t, err.Error(), "not a git repository")
	assert.False(t, IsDiffUnavailable(assert.AnError))
}
