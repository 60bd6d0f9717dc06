package page

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/creatorverse/creatorverse/internal/model"
	"github.com/creatorverse/creatorverse/internal/remote"
	"github.com/creatorverse/creatorverse/internal/viewstate"
)

// EditPage edits or deletes one creator. Form is a local copy seeded on
// mount; nothing reaches the shared list until a mutation succeeds and the
// refresher runs.
type EditPage struct {
	collection   remote.Collection
	refresher    Refresher
	logger       *slog.Logger
	originalName string

	seed   *viewstate.Controller[model.Creator]
	save   *viewstate.Controller[model.Creator]
	remove *viewstate.Controller[struct{}]

	Form model.CreatorInput
}

// NewEditPage creates an EditPage for the creator named name.
func NewEditPage(collection remote.Collection, refresher Refresher, name string, logger *slog.Logger) *EditPage {
	if logger == nil {
		logger = slog.Default()
	}
	return &EditPage{
		collection:   collection,
		refresher:    refresher,
		logger:       logger,
		originalName: name,
		seed:         viewstate.NewLoading[model.Creator](),
		save:         viewstate.NewIdle[model.Creator](),
		remove:       viewstate.NewIdle[struct{}](),
	}
}

// OriginalName is the key the record was loaded under.
func (p *EditPage) OriginalName() string {
	return p.originalName
}

// Mount fetches the creator and seeds Form from it.
func (p *EditPage) Mount(ctx context.Context) viewstate.State[model.Creator] {
	s := fetchCreator(ctx, p.collection, p.seed, p.originalName)
	if !s.Failed() && s.HasData {
		p.Form = model.InputFromCreator(s.Data)
	}
	return s
}

// State returns the state of the seeding fetch.
func (p *EditPage) State() viewstate.State[model.Creator] {
	return p.seed.State()
}

// Saving reports whether an update is outstanding.
func (p *EditPage) Saving() bool {
	return p.save.State().Loading
}

// Deleting reports whether a delete is outstanding.
func (p *EditPage) Deleting() bool {
	return p.remove.State().Loading
}

// Error returns the message of the last failed mutation, if any.
func (p *EditPage) Error() string {
	if msg := p.save.State().Error; msg != "" {
		return msg
	}
	return p.remove.State().Error
}

// Submit saves input over the original record. On success the list is
// refreshed and the user moves to the detail route of the new name;
// otherwise the user stays on the form.
func (p *EditPage) Submit(ctx context.Context, input model.CreatorInput) (Navigation, bool) {
	p.Form = input
	if err := input.Validate(); err != nil {
		p.save.Fail(err.Error())
		return Navigation{}, false
	}

	patch := input.ToCreator()
	s := p.save.Run(ctx, func(ctx context.Context) remote.Result[model.Creator] {
		return p.collection.UpdateByKey(ctx, p.originalName, patch)
	})
	if s.Failed() {
		p.logger.WarnContext(ctx, "creator update failed", "name", p.originalName, "error", s.Error)
		return Navigation{}, false
	}

	p.logger.InfoContext(ctx, "creator updated", "name", p.originalName, "new_name", patch.Name)
	p.refresher.Refresh(ctx)
	return Navigation{To: DetailPath(patch.Name)}, true
}

// ConfirmPrompt is the question asked before a delete.
func (p *EditPage) ConfirmPrompt() string {
	return fmt.Sprintf("Are you sure you want to delete %q? This action cannot be undone.", p.originalName)
}

// Delete removes the original record once confirmed. Without confirmation
// nothing happens.
func (p *EditPage) Delete(ctx context.Context, confirmed bool) (Navigation, bool) {
	if !confirmed || p.originalName == "" {
		return Navigation{}, false
	}

	s := p.remove.Run(ctx, func(ctx context.Context) remote.Result[struct{}] {
		return p.collection.DeleteByKey(ctx, p.originalName)
	})
	if s.Failed() {
		p.logger.WarnContext(ctx, "creator delete failed", "name", p.originalName, "error", s.Error)
		return Navigation{}, false
	}

	p.logger.InfoContext(ctx, "creator deleted", "name", p.originalName)
	p.refresher.Refresh(ctx)
	return Navigation{To: RootPath}, true
}

// Cancel discards the form and returns to the detail route of the
// original name.
func (p *EditPage) Cancel() Navigation {
	if p.originalName == "" {
		return Navigation{To: RootPath}
	}
	return Navigation{To: DetailPath(p.originalName)}
}
