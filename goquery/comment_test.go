package goquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wizperch/perch"
	"github.com/wizperch/perch/goquery"
)

func containers(t *testing.T, raw string) []perch.Node {
	t.Helper()

	doc, err := goquery.Parse(raw)
	require.NoError(t, err)
	found, err := perch.MustEngine(perch.DefaultConfig()).FindCommentContainers(doc.Root())
	require.NoError(t, err)
	return found
}

func TestCommentExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts text author and likes", func(t *testing.T) {
		t.Parallel()

		found := containers(t, `<html><body><ul id="comments">
<li><span class="author">kim</span><p>This article changed my mind completely.</p><span class="like-count">1,204</span><button>Reply</button></li>
<li><span class="author">lee</span><p>I disagree with the second point here.</p><span class="like-count">3</span></li>
<li><span class="author">park</span><p>Thanks for sharing this detailed write-up.</p></li>
</ul></body></html>`)

		got := goquery.NewCommentExtractor().Extract(found)

		require.Len(t, got, 3)
		assert.Equal(t, "kim", got[0].Author)
		assert.Equal(t, 1204, got[0].Likes)
		assert.Contains(t, got[0].Text, "This article changed my mind completely.")
		assert.NotContains(t, got[0].Text, "Reply")
		assert.Equal(t, 0, got[0].Position)
		assert.Equal(t, "lee", got[1].Author)
		assert.Equal(t, 3, got[1].Likes)
		assert.Equal(t, 0, got[2].Likes)
		assert.Equal(t, 2, got[2].Position)
	})

	t.Run("drops short items", func(t *testing.T) {
		t.Parallel()

		found := containers(t, `<html><body><ul class="reply-list">
<li>+1</li>
<li>First!</li>
<li>This one is long enough to keep around.</li>
</ul></body></html>`)

		got := goquery.NewCommentExtractor().Extract(found)

		require.Len(t, got, 1)
		assert.Equal(t, "This one is long enough to keep around.", got[0].Text)
	})

	t.Run("deduplicates repeated text", func(t *testing.T) {
		t.Parallel()

		found := containers(t, `<html><body><div class="comments">
<article>Same comment posted twice by accident.</article>
<article>Same comment posted twice by accident.</article>
<article>A different comment with its own text.</article>
</div></body></html>`)

		got := goquery.NewCommentExtractor().Extract(found)

		require.Len(t, got, 2)
		assert.Equal(t, "A different comment with its own text.", got[1].Text)
	})

	t.Run("returns nil without containers", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, goquery.NewCommentExtractor().Extract(nil))
	})
}
