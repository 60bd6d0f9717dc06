// Package page implements the list, detail, edit and create pages.
//
// A page is built per request, mounted (which issues its primary fetch),
// and then asked for actions. Actions return a Navigation instead of
// performing it, so the HTTP layer decides how to move the browser.
package page

import (
	"context"
	"net/url"

	"github.com/creatorverse/creatorverse/internal/model"
	"github.com/creatorverse/creatorverse/internal/remote"
	"github.com/creatorverse/creatorverse/internal/viewstate"
)

// Route paths.
const (
	RootPath = "/"
	AddPath  = "/add"
)

// DetailPath returns the detail route for name.
func DetailPath(name string) string {
	return "/creator/" + url.PathEscape(name)
}

// EditPath returns the edit route for name.
func EditPath(name string) string {
	return DetailPath(name) + "/edit"
}

// DeletePath returns the delete confirmation route for name.
func DeletePath(name string) string {
	return DetailPath(name) + "/delete"
}

// DecodeName URL-decodes a name path segment. Invalid escaping is used as is.
func DecodeName(raw string) string {
	name, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return name
}

// Navigation is the route an action moves the user to.
type Navigation struct {
	To string
}

// ListState is the view-state of the shared creators list.
type ListState = viewstate.State[[]model.Creator]

// Refresher is the callback a page invokes after a successful mutation so
// the shared list is re-fetched.
type Refresher interface {
	Refresh(ctx context.Context) ListState
}

// errNoName is shown when a route carries an empty creator name.
const errNoName = "No creator name provided"

func fetchCreator(ctx context.Context, collection remote.Collection, state *viewstate.Controller[model.Creator], name string) viewstate.State[model.Creator] {
	if name == "" {
		state.Begin()
		return state.Fail(errNoName)
	}
	return state.Run(ctx, func(ctx context.Context) remote.Result[model.Creator] {
		return collection.GetByKey(ctx, name)
	})
}
