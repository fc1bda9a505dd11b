package mock

import (
	"context"

	"github.com/wizperch/perch"
)

var _ perch.PageService = (*PageService)(nil)

// PageService is a mock implementation of perch.PageService.
type PageService struct {
	UpsertPageFn    func(ctx context.Context, page *perch.Page) error
	FindPageByIDFn  func(ctx context.Context, id string) (*perch.Page, error)
	FindPageByURLFn func(ctx context.Context, url string) (*perch.Page, error)
	FindPagesFn     func(ctx context.Context, filter perch.PageFilter) ([]*perch.Page, error)
	UpdatePageFn    func(ctx context.Context, id string, upd perch.PageUpdate) (*perch.Page, error)
	DeletePageFn    func(ctx context.Context, id string) error
}

func (s *PageService) UpsertPage(ctx context.Context, page *perch.Page) error {
	return s.UpsertPageFn(ctx, page)
}

func (s *PageService) FindPageByID(ctx context.Context, id string) (*perch.Page, error) {
	return s.FindPageByIDFn(ctx, id)
}

func (s *PageService) FindPageByURL(ctx context.Context, url string) (*perch.Page, error) {
	return s.FindPageByURLFn(ctx, url)
}

func (s *PageService) FindPages(ctx context.Context, filter perch.PageFilter) ([]*perch.Page, error) {
	return s.FindPagesFn(ctx, filter)
}

func (s *PageService) UpdatePage(ctx context.Context, id string, upd perch.PageUpdate) (*perch.Page, error) {
	return s.UpdatePageFn(ctx, id, upd)
}

func (s *PageService) DeletePage(ctx context.Context, id string) error {
	return s.DeletePageFn(ctx, id)
}
