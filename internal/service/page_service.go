package service

import (
	"context"

	"starpro_store/internal/model"
	"starpro_store/internal/repository"
	"starpro_store/internal/view"
)

// PageService runs the auth guard for a page load and builds the page view.
type PageService interface {
	Render(ctx context.Context, route string, sess *model.Session) (view.Decision, *view.Page, error)
}

type pageService struct {
	store     *repository.RecordStore
	formatter view.Formatter
}

func NewPageService(store *repository.RecordStore, formatter view.Formatter) PageService {
	return &pageService{store: store, formatter: formatter}
}

// Render returns either a redirect decision or the page for the caller's
// session (nil when logged out). Unknown routes are redirected like any other
// page the visitor may not see.
func (s *pageService) Render(_ context.Context, route string, sess *model.Session) (view.Decision, *view.Page, error) {
	r := view.Route(route)
	if dec := view.Guard(sess != nil, r); dec.Redirects() {
		return dec, nil, nil
	}

	page := s.formatter.BuildPage(r, sess, view.Snapshot{
		Customers: s.store.Customers(),
		Orders:    s.store.Orders(),
	})
	return view.Decision{}, &page, nil
}
