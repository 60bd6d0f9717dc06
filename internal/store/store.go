// Package store holds the shared creators list shown on the list page.
package store

import (
	"context"
	"log/slog"

	"github.com/creatorverse/creatorverse/internal/metrics"
	"github.com/creatorverse/creatorverse/internal/model"
	"github.com/creatorverse/creatorverse/internal/remote"
	"github.com/creatorverse/creatorverse/internal/viewstate"
)

// Store owns the top-level creators list. The list is only ever replaced
// wholesale by Refresh; pages never patch it.
type Store struct {
	collection remote.Collection
	state      *viewstate.Controller[[]model.Creator]
	logger     *slog.Logger
	metrics    metrics.Recorder
}

// New creates a Store in the loading state.
func New(collection remote.Collection, logger *slog.Logger, recorder metrics.Recorder) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Store{
		collection: collection,
		state:      viewstate.NewLoading[[]model.Creator](),
		logger:     logger,
		metrics:    recorder,
	}
}

// Refresh re-fetches the whole list and returns the resulting state.
func (s *Store) Refresh(ctx context.Context) viewstate.State[[]model.Creator] {
	s.metrics.IncListRefresh()

	state := s.state.Run(ctx, s.collection.ListAll)
	if state.Failed() {
		s.logger.ErrorContext(ctx, "failed to fetch creators", "error", state.Error)
	} else {
		s.logger.DebugContext(ctx, "creators refreshed", "count", len(state.Data))
	}
	return state
}

// State returns the current list snapshot.
func (s *Store) State() viewstate.State[[]model.Creator] {
	return s.state.State()
}
