package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonEntryCount(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var n int
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".json" {
			n++
		}
	}
	return n
}

func TestCachePutGet(t *testing.T) {
	c, err := New(true, t.TempDir(), 86400)
	require.NoError(t, err)

	key := Key("anthropic", "claude-sonnet-4-20250514", "prompt body")

	_, ok := c.Get(key)
	assert.False(t, ok, "miss expected before put")

	require.NoError(t, c.Put(key, "Issue: something\n"))

	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, "Issue: something\n", got)
}

func TestCacheKeyDistinguishesInputs(t *testing.T) {
	base := Key("anthropic", "model-a", "prompt")
	assert.Equal(t, base, Key("anthropic", "model-a", "prompt"))
	assert.NotEqual(t, base, Key("openai", "model-a", "prompt"))
	assert.NotEqual(t, base, Key("anthropic", "model-b", "prompt"))
	assert.NotEqual(t, base, Key("anthropic", "model-a", "other prompt"))
}

func TestCacheTTLExpiration(t *testing.T) {
	c, err := New(true, t.TempDir(), 1)
	require.NoError(t, err)

	require.NoError(t, c.Put("expire-test", "data"))

	_, ok := c.Get("expire-test")
	assert.True(t, ok, "hit expected before expiration")

	time.Sleep(1100 * time.Millisecond)

	_, ok = c.Get("expire-test")
	assert.False(t, ok, "miss expected after TTL")
}

func TestCacheDisabled(t *testing.T) {
	c, err := New(false, "", 0)
	require.NoError(t, err)
	assert.False(t, c.Enabled())

	assert.NoError(t, c.Put("key", "value"))
	_, ok := c.Get("key")
	assert.False(t, ok)
	assert.NoError(t, c.Clear())
}

func TestCacheClear(t *testing.T) {
	dir := t.TempDir()
	c, err := New(true, dir, 86400)
	require.NoError(t, err)

	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, c.Put(key, "data"))
	}
	require.Equal(t, 3, jsonEntryCount(t, dir))

	require.NoError(t, c.Clear())
	assert.Equal(t, 0, jsonEntryCount(t, dir))
}

func TestCacheGetStats(t *testing.T) {
	dir := t.TempDir()
	c, err := New(true, dir, 86400)
	require.NoError(t, err)

	stats, err := c.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Entries)

	require.NoError(t, c.Put("key1", "value1"))
	require.NoError(t, c.Put("key2", "value2"))

	stats, err = c.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Entries)
	assert.Greater(t, stats.TotalBytes, int64(0))
	assert.Equal(t, dir, stats.Dir)
}

func TestHashKey(t *testing.T) {
	assert.Equal(t, HashKey("test"), HashKey("test"))
	assert.NotEqual(t, HashKey("test"), HashKey("other"))
	assert.Len(t, HashKey("test"), 64)
}
