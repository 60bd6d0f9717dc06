// Package remote provides the client for the hosted creators table.
//
// Backends speak Go-style (value, error). Client adapts any Backend to
// tagged Result values, so pages never inspect error types themselves.
package remote

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/creatorverse/creatorverse/internal/metrics"
	"github.com/creatorverse/creatorverse/internal/model"
)

// Backend is a transport to one logical creators table.
type Backend interface {
	List(ctx context.Context) ([]model.Creator, error)
	Get(ctx context.Context, name string) (*model.Creator, error)
	Insert(ctx context.Context, c model.Creator) (*model.Creator, error)
	Update(ctx context.Context, oldName string, c model.Creator) (*model.Creator, error)
	Delete(ctx context.Context, name string) error
}

// Pinger is implemented by backends that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Collection is the set of operations pages run against the creators table.
type Collection interface {
	ListAll(ctx context.Context) Result[[]model.Creator]
	GetByKey(ctx context.Context, name string) Result[model.Creator]
	Insert(ctx context.Context, c model.Creator) Result[model.Creator]
	UpdateByKey(ctx context.Context, oldName string, patch model.Creator) Result[model.Creator]
	DeleteByKey(ctx context.Context, name string) Result[struct{}]
}

// Client adapts a Backend to the Collection contract.
// Every call is single-shot: no retry, no deduplication.
type Client struct {
	backend Backend
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewClient creates a new Client.
func NewClient(backend Backend, logger *slog.Logger, recorder metrics.Recorder) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Client{
		backend: backend,
		logger:  logger,
		metrics: recorder,
	}
}

// ListAll fetches every record.
func (c *Client) ListAll(ctx context.Context) Result[[]model.Creator] {
	return call(ctx, c, "list", "", func() ([]model.Creator, error) {
		creators, err := c.backend.List(ctx)
		if creators == nil && err == nil {
			creators = []model.Creator{}
		}
		return creators, err
	})
}

// GetByKey fetches the record whose name matches exactly.
func (c *Client) GetByKey(ctx context.Context, name string) Result[model.Creator] {
	return call(ctx, c, "get", name, func() (model.Creator, error) {
		return deref(c.backend.Get(ctx, name))
	})
}

// Insert persists a new record and returns the stored representation.
func (c *Client) Insert(ctx context.Context, creator model.Creator) Result[model.Creator] {
	res := call(ctx, c, "insert", creator.Name, func() (model.Creator, error) {
		return deref(c.backend.Insert(ctx, creator))
	})
	if res.OK() {
		c.metrics.IncCreatorCreated()
	}
	return res
}

// UpdateByKey replaces the fields of the record named oldName.
func (c *Client) UpdateByKey(ctx context.Context, oldName string, patch model.Creator) Result[model.Creator] {
	res := call(ctx, c, "update", oldName, func() (model.Creator, error) {
		return deref(c.backend.Update(ctx, oldName, patch))
	})
	if res.OK() {
		c.metrics.IncCreatorUpdated()
	}
	return res
}

// DeleteByKey removes the record named name.
func (c *Client) DeleteByKey(ctx context.Context, name string) Result[struct{}] {
	res := call(ctx, c, "delete", name, func() (struct{}, error) {
		return struct{}{}, c.backend.Delete(ctx, name)
	})
	if res.OK() {
		c.metrics.IncCreatorDeleted()
	}
	return res
}

// Ping checks that the backend is reachable.
// Backends without a Pinger are assumed healthy.
func (c *Client) Ping(ctx context.Context) error {
	if p, ok := c.backend.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func call[T any](ctx context.Context, c *Client, op, key string, fn func() (T, error)) Result[T] {
	start := time.Now()
	v, err := fn()
	res := FromError(v, err)
	duration := time.Since(start)

	c.metrics.ObserveRemoteCall(op, outcome(res.Failure), duration)

	attrs := []slog.Attr{
		slog.String("op", op),
		slog.Float64("duration_ms", float64(duration.Microseconds())/1000),
	}
	if key != "" {
		attrs = append(attrs, slog.String("name", key))
	}

	switch res.Failure {
	case FailureNone:
		c.logger.LogAttrs(ctx, slog.LevelDebug, "remote call", attrs...)
	case FailureNotFound:
		c.logger.LogAttrs(ctx, slog.LevelWarn, "remote lookup matched no single row",
			append(attrs, slog.String("error", res.Message))...)
	case FailureRemote:
		if errors.Is(err, ErrDuplicate) {
			c.logger.LogAttrs(ctx, slog.LevelWarn, "remote write rejected duplicate name",
				append(attrs, slog.String("error", res.Message))...)
			break
		}
		c.logger.LogAttrs(ctx, slog.LevelError, "remote call failed",
			append(attrs, slog.String("failure", res.Failure.String()), slog.String("error", res.Message))...)
	default:
		c.logger.LogAttrs(ctx, slog.LevelError, "remote call failed",
			append(attrs, slog.String("failure", res.Failure.String()), slog.String("error", res.Message))...)
	}

	return res
}

func deref(c *model.Creator, err error) (model.Creator, error) {
	if err != nil {
		return model.Creator{}, err
	}
	if c == nil {
		return model.Creator{}, ErrNotFound
	}
	return *c, nil
}

func outcome(f Failure) string {
	switch f {
	case FailureNone:
		return metrics.OutcomeOK
	case FailureNotFound:
		return metrics.OutcomeNotFound
	case FailureConfig:
		return metrics.OutcomeConfig
	default:
		return metrics.OutcomeFailed
	}
}
