package mock

import (
	"context"

	"github.com/wizperch/perch"
)

var _ perch.CommentService = (*CommentService)(nil)

// CommentService is a mock implementation of perch.CommentService.
type CommentService struct {
	CreateCommentsFn       func(ctx context.Context, comments []*perch.Comment) error
	ReplaceCommentsFn      func(ctx context.Context, pageID string, comments []*perch.Comment) error
	FindCommentsFn         func(ctx context.Context, filter perch.CommentFilter) ([]*perch.Comment, error)
	DeleteCommentFn        func(ctx context.Context, id string) error
	DeleteCommentsByPageFn func(ctx context.Context, pageID string) error
}

func (s *CommentService) CreateComments(ctx context.Context, comments []*perch.Comment) error {
	return s.CreateCommentsFn(ctx, comments)
}

func (s *CommentService) ReplaceComments(ctx context.Context, pageID string, comments []*perch.Comment) error {
	return s.ReplaceCommentsFn(ctx, pageID, comments)
}

func (s *CommentService) FindComments(ctx context.Context, filter perch.CommentFilter) ([]*perch.Comment, error) {
	return s.FindCommentsFn(ctx, filter)
}

func (s *CommentService) DeleteComment(ctx context.Context, id string) error {
	return s.DeleteCommentFn(ctx, id)
}

func (s *CommentService) DeleteCommentsByPage(ctx context.Context, pageID string) error {
	return s.DeleteCommentsByPageFn(ctx, pageID)
}
