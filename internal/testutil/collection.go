package testutil

import (
	"context"
	"sync"

	"github.com/creatorverse/creatorverse/internal/model"
	"github.com/creatorverse/creatorverse/internal/remote"
)

// Call records one operation received by a FakeCollection.
type Call struct {
	Op   string
	Name string
}

// FakeCollection is an in-memory remote.Collection.
// Setting a *Err field makes the matching operation fail with that message.
type FakeCollection struct {
	mu       sync.Mutex
	creators []model.Creator
	calls    []Call

	ListErr   string
	GetErr    string
	InsertErr string
	UpdateErr string
	DeleteErr string
}

// NewFakeCollection returns a FakeCollection seeded with creators.
func NewFakeCollection(creators ...model.Creator) *FakeCollection {
	return &FakeCollection{creators: append([]model.Creator(nil), creators...)}
}

// Calls returns the operations received so far.
func (f *FakeCollection) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Creators returns the stored rows.
func (f *FakeCollection) Creators() []model.Creator {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Creator(nil), f.creators...)
}

func (f *FakeCollection) record(op, name string) {
	f.calls = append(f.calls, Call{Op: op, Name: name})
}

// ListAll returns every stored row.
func (f *FakeCollection) ListAll(ctx context.Context) remote.Result[[]model.Creator] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("list", "")
	if f.ListErr != "" {
		return remote.Err[[]model.Creator](f.ListErr)
	}
	return remote.Ok(append([]model.Creator{}, f.creators...))
}

// GetByKey returns the single row named name.
func (f *FakeCollection) GetByKey(ctx context.Context, name string) remote.Result[model.Creator] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("get", name)
	if f.GetErr != "" {
		return remote.Err[model.Creator](f.GetErr)
	}
	idx := f.indexes(name)
	if len(idx) != 1 {
		return remote.NotFound[model.Creator]("JSON object requested, multiple (or no) rows returned")
	}
	return remote.Ok(f.creators[idx[0]])
}

// Insert appends c.
func (f *FakeCollection) Insert(ctx context.Context, c model.Creator) remote.Result[model.Creator] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("insert", c.Name)
	if f.InsertErr != "" {
		return remote.Err[model.Creator](f.InsertErr)
	}
	f.creators = append(f.creators, c)
	return remote.Ok(c)
}

// UpdateByKey replaces the row named oldName.
func (f *FakeCollection) UpdateByKey(ctx context.Context, oldName string, patch model.Creator) remote.Result[model.Creator] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("update", oldName)
	if f.UpdateErr != "" {
		return remote.Err[model.Creator](f.UpdateErr)
	}
	idx := f.indexes(oldName)
	if len(idx) != 1 {
		return remote.NotFound[model.Creator]("JSON object requested, multiple (or no) rows returned")
	}
	f.creators[idx[0]] = patch
	return remote.Ok(patch)
}

// DeleteByKey removes every row named name.
func (f *FakeCollection) DeleteByKey(ctx context.Context, name string) remote.Result[struct{}] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete", name)
	if f.DeleteErr != "" {
		return remote.Err[struct{}](f.DeleteErr)
	}
	kept := f.creators[:0]
	for _, c := range f.creators {
		if c.Name != name {
			kept = append(kept, c)
		}
	}
	f.creators = kept
	return remote.Ok(struct{}{})
}

func (f *FakeCollection) indexes(name string) []int {
	var idx []int
	for i, c := range f.creators {
		if c.Name == name {
			idx = append(idx, i)
		}
	}
	return idx
}
