package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/wizperch/perch"
)

// Compile-time interface verification.
var _ perch.PageService = (*PageService)(nil)

const pageColumns = `id, url, title, description, favicon, keywords, content, markdown,
	content_hash, strategy, passage, tags, created_at, updated_at`

// PageService implements perch.PageService using SQLite.
type PageService struct {
	db  *DB
	now func() time.Time
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db, now: time.Now}
}

// HashContent computes the xxHash of content as a hex string.
func HashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// UpsertPage inserts the page or updates the row stored for its URL.
// An empty passage or tag list on re-capture keeps the stored values so
// that notes survive a refresh.
func (s *PageService) UpsertPage(ctx context.Context, page *perch.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	keywords, err := encodeList(page.Keywords)
	if err != nil {
		return err
	}
	tags, err := encodeList(page.Tags)
	if err != nil {
		return err
	}

	now := formatTime(s.now())
	page.ContentHash = HashContent(page.Content)

	var id, passage, storedTags, createdAt, updatedAt string
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO pages (`+pageColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			favicon = excluded.favicon,
			keywords = excluded.keywords,
			content = excluded.content,
			markdown = excluded.markdown,
			content_hash = excluded.content_hash,
			strategy = excluded.strategy,
			passage = CASE WHEN excluded.passage = '' THEN pages.passage ELSE excluded.passage END,
			tags = CASE WHEN excluded.tags = '[]' THEN pages.tags ELSE excluded.tags END,
			updated_at = excluded.updated_at
		RETURNING id, passage, tags, created_at, updated_at
	`, uuid.New().String(), page.URL, page.Title, page.Description, page.Favicon, keywords,
		page.Content, page.Markdown, page.ContentHash, string(page.Strategy), page.Passage, tags,
		now, now).Scan(&id, &passage, &storedTags, &createdAt, &updatedAt)
	if err != nil {
		return err
	}

	page.ID = id
	page.Passage = passage
	if page.Tags, err = decodeList(storedTags, "tags"); err != nil {
		return err
	}
	if page.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return err
	}
	if page.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return err
	}
	return nil
}

// FindPageByID retrieves a page by ID.
func (s *PageService) FindPageByID(ctx context.Context, id string) (*perch.Page, error) {
	return s.findOne(ctx, "id", id)
}

// FindPageByURL retrieves a page by URL.
func (s *PageService) FindPageByURL(ctx context.Context, url string) (*perch.Page, error) {
	return s.findOne(ctx, "url", url)
}

func (s *PageService) findOne(ctx context.Context, column, value string) (*perch.Page, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+pageColumns+" FROM pages WHERE "+column+" = ?", value)
	page, err := scanPage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, perch.Errorf(perch.ENOTFOUND, "page not found")
	}
	if err != nil {
		return nil, err
	}
	return page, nil
}

// FindPages retrieves pages matching the filter, most recently updated first.
func (s *PageService) FindPages(ctx context.Context, filter perch.PageFilter) ([]*perch.Page, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + pageColumns + " FROM pages WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Tag != nil {
		query.WriteString(" AND EXISTS (SELECT 1 FROM json_each(pages.tags) WHERE json_each.value = ?)")
		args = append(args, *filter.Tag)
	}

	query.WriteString(" ORDER BY updated_at DESC, url ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*perch.Page
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	return pages, rows.Err()
}

// UpdatePage updates the title, passage and tags of a page.
func (s *PageService) UpdatePage(ctx context.Context, id string, upd perch.PageUpdate) (*perch.Page, error) {
	page, err := s.FindPageByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		page.Title = *upd.Title
	}
	if upd.Passage != nil {
		page.Passage = *upd.Passage
	}
	if upd.Tags != nil {
		page.Tags = normalizeTags(upd.Tags)
	}
	page.UpdatedAt = s.now().UTC()

	tags, err := encodeList(page.Tags)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE pages
		SET title = ?, passage = ?, tags = ?, updated_at = ?
		WHERE id = ?
	`, page.Title, page.Passage, tags, formatTime(page.UpdatedAt), id)
	if err != nil {
		return nil, err
	}

	return page, nil
}

// DeletePage permanently removes a page. Its comments are removed by the
// foreign key cascade.
func (s *PageService) DeletePage(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM pages WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return perch.Errorf(perch.ENOTFOUND, "page not found")
	}

	return nil
}

// normalizeTags trims, drops empty and deduplicates tags, keeping order.
func normalizeTags(tags []string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPage(row scanner) (*perch.Page, error) {
	var page perch.Page
	var strategy, keywords, tags, createdAt, updatedAt string

	if err := row.Scan(&page.ID, &page.URL, &page.Title, &page.Description, &page.Favicon,
		&keywords, &page.Content, &page.Markdown, &page.ContentHash, &strategy, &page.Passage,
		&tags, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	page.Strategy = perch.Strategy(strategy)

	var err error
	if page.Keywords, err = decodeList(keywords, "keywords"); err != nil {
		return nil, err
	}
	if page.Tags, err = decodeList(tags, "tags"); err != nil {
		return nil, err
	}
	if page.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if page.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &page, nil
}
