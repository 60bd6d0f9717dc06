package page

import "context"

// ListSource is the shared list the list page renders.
type ListSource interface {
	Refresher
	State() ListState
}

// ListPage shows every creator.
type ListPage struct {
	source ListSource
}

// NewListPage creates a ListPage over source.
func NewListPage(source ListSource) *ListPage {
	return &ListPage{source: source}
}

// Mount fetches the whole list.
func (p *ListPage) Mount(ctx context.Context) ListState {
	return p.source.Refresh(ctx)
}

// State returns the current list state.
func (p *ListPage) State() ListState {
	return p.source.State()
}

// Create navigates to the create form.
func (p *ListPage) Create() Navigation {
	return Navigation{To: AddPath}
}
