package goquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wizperch/perch/goquery"
)

func TestDocument_Metadata(t *testing.T) {
	t.Parallel()

	t.Run("reads head metadata", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<html><head>
<title> Field Notes </title>
<meta name="Description" content="Notes from the field">
<meta name="keywords" content="birds, notes, , birds,travel">
<link rel="shortcut icon" href="/static/icon.png">
</head><body></body></html>`)
		require.NoError(t, err)

		got := doc.Metadata("https://example.com/posts/1")

		assert.Equal(t, "Field Notes", got.Title)
		assert.Equal(t, "Notes from the field", got.Description)
		assert.Equal(t, "https://example.com/static/icon.png", got.Favicon)
		assert.Equal(t, []string{"birds", "notes", "travel"}, got.Keywords)
	})

	t.Run("falls back to open graph", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<html><head>
<meta property="og:title" content="OG Title">
<meta property="og:description" content="OG description">
</head><body></body></html>`)
		require.NoError(t, err)

		got := doc.Metadata("https://example.com/a")

		assert.Equal(t, "OG Title", got.Title)
		assert.Equal(t, "OG description", got.Description)
		assert.Nil(t, got.Keywords)
	})

	t.Run("defaults favicon to site root", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<html><head><title>x</title></head></html>`)
		require.NoError(t, err)

		got := doc.Metadata("https://example.com/deep/page")

		assert.Equal(t, "https://example.com/favicon.ico", got.Favicon)
	})

	t.Run("keeps favicon unresolved without page URL", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<html><head><link rel="icon" href="/i.png"></head></html>`)
		require.NoError(t, err)

		got := doc.Metadata("")

		assert.Equal(t, "/i.png", got.Favicon)
	})
}
