package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wizperch/perch"
	"github.com/wizperch/perch/sqlite"
)

func ptr[T any](v T) *T { return &v }

func upsertTestPage(t *testing.T, svc *sqlite.PageService, url string) *perch.Page {
	t.Helper()
	page := &perch.Page{
		URL:     url,
		Title:   "Title of " + url,
		Content: "Content of " + url,
	}
	require.NoError(t, svc.UpsertPage(context.Background(), page))
	return page
}

func TestPageService_UpsertPage(t *testing.T) {
	t.Parallel()

	t.Run("creates page with generated ID hash and timestamps", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))
		page := &perch.Page{
			URL:         "https://example.com/post",
			Title:       "Post",
			Description: "A post",
			Favicon:     "https://example.com/favicon.ico",
			Keywords:    []string{"go", "html"},
			Content:     "Hello world",
			Markdown:    "Hello world",
			Strategy:    perch.StrategyArticle,
		}

		err := svc.UpsertPage(context.Background(), page)

		require.NoError(t, err)
		assert.NotEmpty(t, page.ID)
		assert.Equal(t, sqlite.HashContent("Hello world"), page.ContentHash)
		assert.False(t, page.CreatedAt.IsZero())
		assert.Equal(t, page.CreatedAt, page.UpdatedAt)

		found, err := svc.FindPageByID(context.Background(), page.ID)
		require.NoError(t, err)
		assert.Equal(t, page.URL, found.URL)
		assert.Equal(t, []string{"go", "html"}, found.Keywords)
		assert.Equal(t, perch.StrategyArticle, found.Strategy)
		assert.Equal(t, "A post", found.Description)
	})

	t.Run("updates the page stored for the same URL", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))
		ctx := context.Background()
		first := upsertTestPage(t, svc, "https://example.com/post")

		second := &perch.Page{URL: "https://example.com/post", Title: "New title", Content: "New content"}
		require.NoError(t, svc.UpsertPage(ctx, second))

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.CreatedAt, second.CreatedAt)
		assert.True(t, second.UpdatedAt.After(first.UpdatedAt) || second.UpdatedAt.Equal(first.UpdatedAt))
		assert.NotEqual(t, first.ContentHash, second.ContentHash)

		pages, err := svc.FindPages(ctx, perch.PageFilter{})
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, "New title", pages[0].Title)
	})

	t.Run("keeps passage and tags when re-captured without them", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))
		ctx := context.Background()
		page := &perch.Page{URL: "https://example.com/a", Content: "x", Passage: "my note", Tags: []string{"read"}}
		require.NoError(t, svc.UpsertPage(ctx, page))

		again := &perch.Page{URL: "https://example.com/a", Content: "y"}
		require.NoError(t, svc.UpsertPage(ctx, again))

		assert.Equal(t, "my note", again.Passage)
		assert.Equal(t, []string{"read"}, again.Tags)
	})

	t.Run("returns error for invalid page", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))

		err := svc.UpsertPage(context.Background(), &perch.Page{})

		assert.Equal(t, perch.EINVALID, perch.ErrorCode(err))
	})
}

func TestPageService_FindPageByURL(t *testing.T) {
	t.Parallel()

	t.Run("finds page", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))
		page := upsertTestPage(t, svc, "https://example.com/a")

		found, err := svc.FindPageByURL(context.Background(), "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, page.ID, found.ID)
	})

	t.Run("returns not found for unknown URL", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))

		_, err := svc.FindPageByURL(context.Background(), "https://example.com/missing")

		assert.Equal(t, perch.ENOTFOUND, perch.ErrorCode(err))
	})
}

func TestPageService_FindPageByID(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewPageService(setupTestDB(t))

	_, err := svc.FindPageByID(context.Background(), "missing")

	assert.Equal(t, perch.ENOTFOUND, perch.ErrorCode(err))
}

func TestPageService_FindPages(t *testing.T) {
	t.Parallel()

	t.Run("orders by most recent update", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))
		upsertTestPage(t, svc, "https://example.com/a")
		upsertTestPage(t, svc, "https://example.com/b")
		upsertTestPage(t, svc, "https://example.com/a")

		pages, err := svc.FindPages(context.Background(), perch.PageFilter{})

		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Equal(t, "https://example.com/a", pages[0].URL)
		assert.Equal(t, "https://example.com/b", pages[1].URL)
	})

	t.Run("filters by tag", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.UpsertPage(ctx, &perch.Page{URL: "https://example.com/a", Tags: []string{"go", "web"}}))
		require.NoError(t, svc.UpsertPage(ctx, &perch.Page{URL: "https://example.com/b", Tags: []string{"golang"}}))

		pages, err := svc.FindPages(ctx, perch.PageFilter{Tag: ptr("go")})

		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, "https://example.com/a", pages[0].URL)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))
		for _, u := range []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"} {
			upsertTestPage(t, svc, u)
		}
		ctx := context.Background()

		firstPage, err := svc.FindPages(ctx, perch.PageFilter{Limit: 2})
		require.NoError(t, err)
		rest, err := svc.FindPages(ctx, perch.PageFilter{Offset: 2})
		require.NoError(t, err)

		require.Len(t, firstPage, 2)
		require.Len(t, rest, 1)
		assert.Equal(t, "https://example.com/1", rest[0].URL)
	})

	t.Run("filters by URL", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))
		upsertTestPage(t, svc, "https://example.com/a")
		upsertTestPage(t, svc, "https://example.com/b")

		pages, err := svc.FindPages(context.Background(), perch.PageFilter{URL: ptr("https://example.com/b")})

		require.NoError(t, err)
		require.Len(t, pages, 1)
	})
}

func TestPageService_UpdatePage(t *testing.T) {
	t.Parallel()

	t.Run("updates passage and normalizes tags", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))
		ctx := context.Background()
		page := upsertTestPage(t, svc, "https://example.com/a")

		updated, err := svc.UpdatePage(ctx, page.ID, perch.PageUpdate{
			Passage: ptr("worth rereading"),
			Tags:    []string{" go ", "", "go", "html"},
		})

		require.NoError(t, err)
		assert.Equal(t, "worth rereading", updated.Passage)
		assert.Equal(t, []string{"go", "html"}, updated.Tags)
		assert.Equal(t, page.Title, updated.Title)

		found, err := svc.FindPageByID(ctx, page.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"go", "html"}, found.Tags)
	})

	t.Run("clears tags with an empty list", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))
		ctx := context.Background()
		page := &perch.Page{URL: "https://example.com/a", Tags: []string{"old"}}
		require.NoError(t, svc.UpsertPage(ctx, page))

		_, err := svc.UpdatePage(ctx, page.ID, perch.PageUpdate{Tags: []string{}})
		require.NoError(t, err)

		found, err := svc.FindPageByID(ctx, page.ID)
		require.NoError(t, err)
		assert.Empty(t, found.Tags)
	})

	t.Run("returns not found for unknown page", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))

		_, err := svc.UpdatePage(context.Background(), "missing", perch.PageUpdate{Title: ptr("x")})

		assert.Equal(t, perch.ENOTFOUND, perch.ErrorCode(err))
	})
}

func TestPageService_DeletePage(t *testing.T) {
	t.Parallel()

	t.Run("deletes page and its comments", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		pages := sqlite.NewPageService(db)
		comments := sqlite.NewCommentService(db)
		ctx := context.Background()
		page := upsertTestPage(t, pages, "https://example.com/a")
		require.NoError(t, comments.CreateComments(ctx, []*perch.Comment{{PageID: page.ID, Text: "nice post"}}))

		require.NoError(t, pages.DeletePage(ctx, page.ID))

		_, err := pages.FindPageByID(ctx, page.ID)
		assert.Equal(t, perch.ENOTFOUND, perch.ErrorCode(err))
		found, err := comments.FindComments(ctx, perch.CommentFilter{PageID: &page.ID})
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("returns not found for unknown page", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))

		err := svc.DeletePage(context.Background(), "missing")

		assert.Equal(t, perch.ENOTFOUND, perch.ErrorCode(err))
	})
}
