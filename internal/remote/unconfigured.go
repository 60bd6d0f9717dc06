package remote

import (
	"context"
	"errors"

	"github.com/creatorverse/creatorverse/internal/model"
)

// Unconfigured is a Backend whose every call fails with the configuration
// error detected at startup.
type Unconfigured struct {
	err error
}

// NewUnconfigured returns a Backend that reports reason on every call.
func NewUnconfigured(reason error) *Unconfigured {
	if reason == nil {
		reason = errors.New("remote collection settings are missing")
	}
	return &Unconfigured{err: &configError{reason: reason}}
}

func (u *Unconfigured) List(ctx context.Context) ([]model.Creator, error) {
	return nil, u.err
}

func (u *Unconfigured) Get(ctx context.Context, name string) (*model.Creator, error) {
	return nil, u.err
}

func (u *Unconfigured) Insert(ctx context.Context, c model.Creator) (*model.Creator, error) {
	return nil, u.err
}

func (u *Unconfigured) Update(ctx context.Context, oldName string, c model.Creator) (*model.Creator, error) {
	return nil, u.err
}

func (u *Unconfigured) Delete(ctx context.Context, name string) error {
	return u.err
}

// Ping always fails.
func (u *Unconfigured) Ping(ctx context.Context) error {
	return u.err
}
