package page

import (
	"context"

	"github.com/creatorverse/creatorverse/internal/model"
	"github.com/creatorverse/creatorverse/internal/remote"
	"github.com/creatorverse/creatorverse/internal/viewstate"
)

// DetailPage shows one creator. Its record is a transient copy that is
// never merged into the shared list.
type DetailPage struct {
	collection remote.Collection
	name       string
	mounted    bool
	state      *viewstate.Controller[model.Creator]
}

// NewDetailPage creates a DetailPage for name, already URL-decoded.
func NewDetailPage(collection remote.Collection, name string) *DetailPage {
	return &DetailPage{
		collection: collection,
		name:       name,
		state:      viewstate.NewLoading[model.Creator](),
	}
}

// Name returns the requested creator name.
func (p *DetailPage) Name() string {
	return p.name
}

// Mount fetches the creator.
func (p *DetailPage) Mount(ctx context.Context) viewstate.State[model.Creator] {
	p.mounted = true
	return fetchCreator(ctx, p.collection, p.state, p.name)
}

// SetName re-fetches when the requested name changes.
func (p *DetailPage) SetName(ctx context.Context, name string) viewstate.State[model.Creator] {
	if p.mounted && name == p.name {
		return p.state.State()
	}
	p.name = name
	return p.Mount(ctx)
}

// State returns the current view-state.
func (p *DetailPage) State() viewstate.State[model.Creator] {
	return p.state.State()
}

// Edit navigates to the edit form of the loaded creator.
// It reports false while nothing is loaded.
func (p *DetailPage) Edit() (Navigation, bool) {
	s := p.state.State()
	if !s.HasData {
		return Navigation{}, false
	}
	return Navigation{To: EditPath(s.Data.Name)}, true
}

// Back always returns to the list.
func (p *DetailPage) Back() Navigation {
	return Navigation{To: RootPath}
}
