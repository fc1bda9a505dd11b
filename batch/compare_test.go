package batch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wizperch/perch"
	"github.com/wizperch/perch/batch"
	"github.com/wizperch/perch/mock"
)

// byInput returns an extractor yielding the text mapped to its input.
func byInput(texts map[string]string) *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(html string) (*perch.ExtractResult, error) {
			text, ok := texts[html]
			if !ok {
				return nil, perch.Errorf(perch.EINTERNAL, "extraction failed")
			}
			return &perch.ExtractResult{Text: text}, nil
		},
		NameFn: func() string { return "mock" },
	}
}

func TestRenderingAddsContent(t *testing.T) {
	t.Parallel()

	t.Run("true when rendered text is more than 50% longer", func(t *testing.T) {
		t.Parallel()
		e := byInput(map[string]string{"http": "short", "rod": "much longer rendered text"})
		assert.True(t, batch.RenderingAddsContent("http", "rod", e))
	})

	t.Run("false at exactly 50% longer", func(t *testing.T) {
		t.Parallel()
		e := byInput(map[string]string{"http": "0123456789", "rod": "012345678901234"})
		assert.False(t, batch.RenderingAddsContent("http", "rod", e))
	})

	t.Run("counts runes rather than bytes", func(t *testing.T) {
		t.Parallel()
		e := byInput(map[string]string{"http": "댓글", "rod": "abcd"})
		assert.True(t, batch.RenderingAddsContent("http", "rod", e))
	})

	t.Run("true when plain text is empty", func(t *testing.T) {
		t.Parallel()
		e := byInput(map[string]string{"http": "", "rod": "rendered"})
		assert.True(t, batch.RenderingAddsContent("http", "rod", e))
	})

	t.Run("true when an extraction fails", func(t *testing.T) {
		t.Parallel()
		e := byInput(map[string]string{"http": "text"})
		assert.True(t, batch.RenderingAddsContent("http", "rod", e))
	})
}

func TestCompare(t *testing.T) {
	t.Parallel()

	ok := &mock.Extractor{
		ExtractFn: func(_ string) (*perch.ExtractResult, error) {
			return &perch.ExtractResult{Title: "T", Text: "héllo"}, nil
		},
		NameFn: func() string { return "ok" },
	}
	broken := &mock.Extractor{
		ExtractFn: func(_ string) (*perch.ExtractResult, error) {
			return nil, perch.Errorf(perch.EINVALID, "empty")
		},
		NameFn: func() string { return "broken" },
	}

	got := batch.Compare("<html></html>", ok, broken)

	require.Len(t, got, 2)
	assert.Equal(t, "ok", got[0].Name)
	assert.Equal(t, "T", got[0].Title)
	assert.Equal(t, 5, got[0].Length)
	assert.NoError(t, got[0].Err)
	assert.Equal(t, "broken", got[1].Name)
	assert.Error(t, got[1].Err)
}
