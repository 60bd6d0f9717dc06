package page

import (
	"context"
	"log/slog"

	"github.com/creatorverse/creatorverse/internal/model"
	"github.com/creatorverse/creatorverse/internal/remote"
	"github.com/creatorverse/creatorverse/internal/viewstate"
)

// CreatePage adds a new creator.
type CreatePage struct {
	collection remote.Collection
	refresher  Refresher
	logger     *slog.Logger
	save       *viewstate.Controller[model.Creator]

	Form model.CreatorInput
}

// NewCreatePage creates a CreatePage with an empty form.
func NewCreatePage(collection remote.Collection, refresher Refresher, logger *slog.Logger) *CreatePage {
	if logger == nil {
		logger = slog.Default()
	}
	return &CreatePage{
		collection: collection,
		refresher:  refresher,
		logger:     logger,
		save:       viewstate.NewIdle[model.Creator](),
	}
}

// Saving reports whether the insert is outstanding.
func (p *CreatePage) Saving() bool {
	return p.save.State().Loading
}

// Error returns the message of the last failed insert, if any.
func (p *CreatePage) Error() string {
	return p.save.State().Error
}

// Submit inserts input. On success the list is refreshed and the user
// returns to the root route.
func (p *CreatePage) Submit(ctx context.Context, input model.CreatorInput) (Navigation, bool) {
	p.Form = input
	if err := input.Validate(); err != nil {
		p.save.Fail(err.Error())
		return Navigation{}, false
	}

	c := input.ToCreator()
	s := p.save.Run(ctx, func(ctx context.Context) remote.Result[model.Creator] {
		return p.collection.Insert(ctx, c)
	})
	if s.Failed() {
		p.logger.WarnContext(ctx, "creator insert failed", "name", c.Name, "error", s.Error)
		return Navigation{}, false
	}

	p.logger.InfoContext(ctx, "creator added", "name", c.Name)
	p.refresher.Refresh(ctx)
	return Navigation{To: RootPath}, true
}

// Cancel returns to the root route.
func (p *CreatePage) Cancel() Navigation {
	return Navigation{To: RootPath}
}
