package fs_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wizperch/perch"
	"github.com/wizperch/perch/fs"
	"gopkg.in/yaml.v3"
)

func TestURLToPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "simple path", url: "https://news.example.com/2024/budget", want: "news.example.com/2024/budget.md"},
		{name: "trailing slash becomes index", url: "https://example.com/blog/", want: "example.com/blog/index.md"},
		{name: "root path becomes index", url: "https://example.com/", want: "example.com/index.md"},
		{name: "root without slash", url: "https://example.com", want: "example.com/index.md"},
		{name: "ignores query and fragment", url: "https://example.com/post?id=2#comments", want: "example.com/post.md"},
		{name: "lowercases host and escapes port", url: "http://Example.COM:8080/a", want: "example.com_8080/a.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.URLToPath(tt.url)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects URL without host", func(t *testing.T) {
		t.Parallel()

		_, err := fs.URLToPath("/relative/path")

		assert.Equal(t, perch.EINVALID, perch.ErrorCode(err))
	})

	for _, raw := range []string{
		"https://example.com/../../etc/passwd",
		"https://../x",
		"https://./x",
	} {
		t.Run("rejects path traversal in "+raw, func(t *testing.T) {
			t.Parallel()

			_, err := fs.URLToPath(raw)

			assert.Equal(t, perch.EINVALID, perch.ErrorCode(err))
			assert.Contains(t, perch.ErrorMessage(err), "path traversal")
		})
	}
}

// splitFrontmatter returns the decoded YAML header and the body of an
// exported page.
func splitFrontmatter(t *testing.T, doc string) (map[string]any, string) {
	t.Helper()

	require.True(t, strings.HasPrefix(doc, "---\n"))
	rest := strings.TrimPrefix(doc, "---\n")
	header, body, ok := strings.Cut(rest, "---\n\n")
	require.True(t, ok, "frontmatter should be closed")

	var fm map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(header), &fm))
	return fm, body
}

func TestFormatPage(t *testing.T) {
	t.Parallel()

	t.Run("writes frontmatter and markdown body", func(t *testing.T) {
		t.Parallel()

		got, err := fs.FormatPage(&perch.Page{
			URL:       "https://news.example.com/budget",
			Title:     `Budget: "final" vote`,
			Passage:   "Parliament passed the budget.",
			Tags:      []string{"politics", "budget"},
			Markdown:  "# Budget\n\nIt passed.",
			Content:   "Budget It passed.",
			UpdatedAt: time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		fm, body := splitFrontmatter(t, got)
		assert.Equal(t, "https://news.example.com/budget", fm["source"])
		assert.Equal(t, `Budget: "final" vote`, fm["title"])
		assert.Equal(t, "Parliament passed the budget.", fm["passage"])
		assert.Equal(t, []any{"politics", "budget"}, fm["tags"])
		assert.Equal(t, "2026-03-02", fm["saved"])
		assert.Equal(t, "# Budget\n\nIt passed.", body)
		assert.Contains(t, got, "tags: [politics, budget]")
	})

	t.Run("falls back to plain text and omits empty fields", func(t *testing.T) {
		t.Parallel()

		got, err := fs.FormatPage(&perch.Page{
			URL:     "https://example.com/a",
			Title:   "A",
			Content: "plain text",
		})
		require.NoError(t, err)

		fm, body := splitFrontmatter(t, got)
		assert.Equal(t, map[string]any{"source": "https://example.com/a", "title": "A"}, fm)
		assert.Equal(t, "plain text", body)
	})
}
