package goquery_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wizperch/perch"
	"github.com/wizperch/perch/goquery"
)

func TestNode(t *testing.T) {
	t.Parallel()

	t.Run("exposes element tag attributes and children", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<html><body><div id="x" class="a b">hi <b>there</b></div></body></html>`)
		require.NoError(t, err)

		div := perch.FindFirst(doc.Root(), func(n perch.Node) bool { return n.Tag() == "div" })

		require.NotNil(t, div)
		assert.Equal(t, perch.ElementNode, div.Type())
		assert.Equal(t, "x", div.Attr("id"))
		assert.True(t, perch.HasClass(div, "b"))
		assert.Equal(t, "hi there", perch.TextContent(div))
		assert.Equal(t, "body", div.Parent().Tag())
		require.Len(t, div.Children(), 2)
		assert.Equal(t, perch.TextNode, div.Children()[0].Type())
	})

	t.Run("compares equal by identity", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<ul><li>one</li><li>one</li></ul>`)
		require.NoError(t, err)

		first := perch.FindAll(doc.Root(), func(n perch.Node) bool { return n.Tag() == "li" })
		second := perch.FindAll(doc.Root(), func(n perch.Node) bool { return n.Tag() == "li" })

		require.Len(t, first, 2)
		assert.True(t, first[0] == second[0])
		assert.False(t, first[0] == first[1])
		assert.True(t, first[0].Parent() == first[1].Parent())
	})

	t.Run("root is a document with nil parent", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<p>hello</p>`)
		require.NoError(t, err)

		assert.Equal(t, perch.DocumentNode, doc.Root().Type())
		assert.Nil(t, doc.Root().Parent())
	})

	t.Run("unwraps to the html node", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<p>hello</p>`)
		require.NoError(t, err)

		hn, ok := goquery.HTMLNode(doc.Root())

		require.True(t, ok)
		assert.Equal(t, doc.Nodes[0], hn)

		_, ok = goquery.HTMLNode(perch.NewElement("p"))
		assert.False(t, ok)
	})
}

func TestEngineOverParsedHTML(t *testing.T) {
	t.Parallel()

	engine := perch.MustEngine(perch.DefaultConfig())

	t.Run("leaves the parsed document unchanged", func(t *testing.T) {
		t.Parallel()

		raw := `<html><body><article><p>` + strings.Repeat("Long enough body text. ", 10) +
			`</p><script>track()</script><div class="ad">Buy</div></article></body></html>`
		doc, err := goquery.Parse(raw)
		require.NoError(t, err)
		before, err := doc.Html()
		require.NoError(t, err)

		got, err := engine.Extract(doc.Root())
		require.NoError(t, err)

		after, err := doc.Html()
		require.NoError(t, err)
		assert.Equal(t, before, after)
		assert.Equal(t, perch.StrategyArticle, got.Content.Strategy)
		assert.NotContains(t, got.Content.Text, "track()")
		assert.NotContains(t, got.Content.Text, "Buy")
	})

	t.Run("finds one container for a comment list", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		b.WriteString(`<html><body><div class="comment-list">`)
		for i := 0; i < 5; i++ {
			b.WriteString(`<div>` + strings.Repeat("A thoughtful reply. ", 8) + `</div>`)
		}
		b.WriteString(`</div></body></html>`)
		doc, err := goquery.Parse(b.String())
		require.NoError(t, err)

		got, err := engine.FindCommentContainers(doc.Root())

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "comment-list", got[0].Attr("class"))
	})
}
