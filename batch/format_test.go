package batch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wizperch/perch/batch"
)

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	t.Run("returns URL unchanged when shorter than max", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "https://x.com", batch.TruncateURL("https://x.com", 50))
	})

	t.Run("keeps the tail of long URLs", func(t *testing.T) {
		t.Parallel()
		result := batch.TruncateURL("https://blog.example.com/2024/05/a-long-post-title", 20)
		assert.Equal(t, "...a-long-post-title", result)
		assert.Len(t, result, 20)
	})

	t.Run("returns empty string for non-positive max", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, batch.TruncateURL("https://example.com", 0))
		assert.Empty(t, batch.TruncateURL("https://example.com", -1))
	})

	t.Run("returns prefix when max is too small for ellipsis", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "htt", batch.TruncateURL("https://example.com", 3))
		assert.Equal(t, "a", batch.TruncateURL("a", 2))
	})
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", batch.FormatBytes(512))
	assert.Equal(t, "1.5 KB", batch.FormatBytes(1536))
	assert.Equal(t, "2.0 MB", batch.FormatBytes(2*1024*1024))
}

func TestFormatTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "~999 tokens", batch.FormatTokens(999))
	assert.Equal(t, "~1k tokens", batch.FormatTokens(1000))
	assert.Equal(t, "~13k tokens", batch.FormatTokens(12500))
}
