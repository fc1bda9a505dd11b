package perch

import (
	"context"
	"time"
)

// Comment is a single discussion item captured from a page.
type Comment struct {
	ID        string    `json:"id"`
	PageID    string    `json:"pageId"`
	Author    string    `json:"author,omitempty"`
	Text      string    `json:"text"`
	Likes     int       `json:"likes"`
	Position  int       `json:"position"` // Order within the capture
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the comment contains invalid fields.
func (c *Comment) Validate() error {
	if c.PageID == "" {
		return Errorf(EINVALID, "comment page ID required")
	}
	if c.Text == "" {
		return Errorf(EINVALID, "comment text required")
	}
	return nil
}

// CommentService represents a service for managing captured comments.
type CommentService interface {
	// CreateComments stores comments in a batch.
	CreateComments(ctx context.Context, comments []*Comment) error

	// ReplaceComments atomically replaces all comments of a page with
	// comments, setting their PageID. On error the stored comments are kept.
	ReplaceComments(ctx context.Context, pageID string, comments []*Comment) error

	// FindComments retrieves comments matching the filter,
	// newest capture first and in page order within a capture.
	FindComments(ctx context.Context, filter CommentFilter) ([]*Comment, error)

	// DeleteComment permanently removes a comment.
	// Returns ENOTFOUND if comment does not exist.
	DeleteComment(ctx context.Context, id string) error

	// DeleteCommentsByPage removes all comments for a page.
	DeleteCommentsByPage(ctx context.Context, pageID string) error
}

// CommentFilter represents a filter for FindComments.
type CommentFilter struct {
	ID     *string `json:"id"`
	PageID *string `json:"pageId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
