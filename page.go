package perch

import (
	"context"
	"time"
)

// Page represents a captured web page. Pages are keyed by URL: capturing the
// same URL again updates the stored record.
type Page struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Favicon     string    `json:"favicon,omitempty"`
	Keywords    []string  `json:"keywords,omitempty"`
	Content     string    `json:"content"`
	Markdown    string    `json:"markdown,omitempty"`
	ContentHash string    `json:"contentHash"`
	Strategy    Strategy  `json:"strategy,omitempty"`
	Passage     string    `json:"passage,omitempty"` // Summary or user note
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// PageService represents a service for managing captured pages.
type PageService interface {
	// UpsertPage creates the page, or updates the page already stored for
	// its URL. On update the stored ID and CreatedAt are kept and written
	// back into page.
	UpsertPage(ctx context.Context, page *Page) error

	// FindPageByID retrieves a page by ID.
	// Returns ENOTFOUND if page does not exist.
	FindPageByID(ctx context.Context, id string) (*Page, error)

	// FindPageByURL retrieves a page by URL.
	// Returns ENOTFOUND if page does not exist.
	FindPageByURL(ctx context.Context, url string) (*Page, error)

	// FindPages retrieves pages matching the filter, most recently updated first.
	FindPages(ctx context.Context, filter PageFilter) ([]*Page, error)

	// UpdatePage updates user-editable fields of a page.
	// Returns ENOTFOUND if page does not exist.
	UpdatePage(ctx context.Context, id string, upd PageUpdate) (*Page, error)

	// DeletePage permanently removes a page and its comments.
	// Returns ENOTFOUND if page does not exist.
	DeletePage(ctx context.Context, id string) error
}

// PageFilter represents a filter for FindPages.
type PageFilter struct {
	ID  *string `json:"id"`
	URL *string `json:"url"`
	Tag *string `json:"tag"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PageUpdate represents fields that can be updated on a page.
type PageUpdate struct {
	Title   *string  `json:"title"`
	Passage *string  `json:"passage"`
	Tags    []string `json:"tags"` // nil leaves tags unchanged
}

// PageStore persists pages to storage with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type PageStore interface {
	Save(ctx context.Context, page *Page) error
	Commit() error
	Abort() error
}
