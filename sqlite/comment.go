package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wizperch/perch"
)

// Compile-time interface verification.
var _ perch.CommentService = (*CommentService)(nil)

// CommentService implements perch.CommentService using SQLite.
type CommentService struct {
	db  *DB
	now func() time.Time
}

// NewCommentService creates a new CommentService.
func NewCommentService(db *DB) *CommentService {
	return &CommentService{db: db, now: time.Now}
}

// CreateComments stores comments in a single transaction. All comments of
// one call share a creation time, which marks them as one capture.
func (s *CommentService) CreateComments(ctx context.Context, comments []*perch.Comment) error {
	if len(comments) == 0 {
		return nil
	}
	if err := validateComments(comments); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.insertComments(ctx, tx, comments); err != nil {
		return err
	}
	return tx.Commit()
}

// ReplaceComments swaps a page's stored comments for comments in one
// transaction. On failure the previous comments are left untouched.
func (s *CommentService) ReplaceComments(ctx context.Context, pageID string, comments []*perch.Comment) error {
	if pageID == "" {
		return perch.Errorf(perch.EINVALID, "comment page ID required")
	}
	for _, c := range comments {
		c.PageID = pageID
	}
	if err := validateComments(comments); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM comments WHERE page_id = ?", pageID); err != nil {
		return err
	}
	if err := s.insertComments(ctx, tx, comments); err != nil {
		return err
	}
	return tx.Commit()
}

func validateComments(comments []*perch.Comment) error {
	for _, c := range comments {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// insertComments assigns IDs and a shared creation time and inserts
// comments within tx.
func (s *CommentService) insertComments(ctx context.Context, tx *sql.Tx, comments []*perch.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO comments (id, page_id, author, text, likes, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := s.now().UTC()
	for _, c := range comments {
		c.ID = uuid.New().String()
		c.CreatedAt = now
		if _, err := stmt.ExecContext(ctx, c.ID, c.PageID, c.Author, c.Text, c.Likes,
			c.Position, formatTime(now)); err != nil {
			return err
		}
	}
	return nil
}

// FindComments retrieves comments matching the filter, newest capture first
// and in page order within a capture.
func (s *CommentService) FindComments(ctx context.Context, filter perch.CommentFilter) ([]*perch.Comment, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, page_id, author, text, likes, position, created_at FROM comments WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.PageID != nil {
		query.WriteString(" AND page_id = ?")
		args = append(args, *filter.PageID)
	}

	query.WriteString(" ORDER BY created_at DESC, position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*perch.Comment
	for rows.Next() {
		var c perch.Comment
		var createdAt string
		if err := rows.Scan(&c.ID, &c.PageID, &c.Author, &c.Text, &c.Likes, &c.Position, &createdAt); err != nil {
			return nil, err
		}
		if c.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}

	return comments, rows.Err()
}

// DeleteComment permanently removes a comment.
func (s *CommentService) DeleteComment(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return perch.Errorf(perch.ENOTFOUND, "comment not found")
	}

	return nil
}

// DeleteCommentsByPage removes all comments for a page.
func (s *CommentService) DeleteCommentsByPage(ctx context.Context, pageID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM comments WHERE page_id = ?", pageID)
	return err
}
