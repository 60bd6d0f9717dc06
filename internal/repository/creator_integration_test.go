//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/creatorverse/creatorverse/internal/remote"
	"github.com/creatorverse/creatorverse/internal/testutil"
)

func TestIntegrationCreatorRepository_InsertAndGet(t *testing.T) {
	ctx, repo := newCreatorTestEnv(t)

	name := testutil.UniqueName("insert")
	c := testutil.NewTestCreatorWithImage(t, name, "https://img.example/a.png")

	stored, err := repo.Insert(ctx, c)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if stored.Name != name || stored.ImageURL == nil || *stored.ImageURL != "https://img.example/a.png" {
		t.Errorf("Insert returned %+v", stored)
	}

	got, err := repo.Get(ctx, name)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.URL != c.URL || got.Description != c.Description {
		t.Errorf("Get returned %+v, want %+v", got, c)
	}
}

func TestIntegrationCreatorRepository_AbsentImageIsNull(t *testing.T) {
	ctx, repo := newCreatorTestEnv(t)

	name := testutil.UniqueName("noimage")
	if _, err := repo.Insert(ctx, testutil.NewTestCreator(t, name)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := repo.Get(ctx, name)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ImageURL != nil {
		t.Errorf("ImageURL = %q, want nil", *got.ImageURL)
	}
}

func TestIntegrationCreatorRepository_DuplicateName(t *testing.T) {
	ctx, repo := newCreatorTestEnv(t)

	c := testutil.NewTestCreator(t, testutil.UniqueName("dup"))
	if _, err := repo.Insert(ctx, c); err != nil {
		t.Fatalf("Insert (first) failed: %v", err)
	}

	_, err := repo.Insert(ctx, c)
	if !errors.Is(err, remote.ErrDuplicate) {
		t.Errorf("expected unique violation, got %v", err)
	}
}

func TestIntegrationCreatorRepository_GetMissing(t *testing.T) {
	ctx, repo := newCreatorTestEnv(t)

	_, err := repo.Get(ctx, testutil.UniqueName("missing"))
	if !errors.Is(err, remote.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestIntegrationCreatorRepository_UpdateRenames(t *testing.T) {
	ctx, repo := newCreatorTestEnv(t)

	oldName := testutil.UniqueName("Alice")
	newName := testutil.UniqueName("Alicia")
	if _, err := repo.Insert(ctx, testutil.NewTestCreator(t, oldName)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	patch := testutil.NewTestCreator(t, newName)
	stored, err := repo.Update(ctx, oldName, patch)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if stored.Name != newName {
		t.Errorf("Name = %q, want %q", stored.Name, newName)
	}

	if _, err := repo.Get(ctx, oldName); !errors.Is(err, remote.ErrNotFound) {
		t.Errorf("old name still resolves: %v", err)
	}
	if _, err := repo.Update(ctx, oldName, patch); !errors.Is(err, remote.ErrNotFound) {
		t.Errorf("Update of missing row: expected ErrNotFound, got %v", err)
	}
}

func TestIntegrationCreatorRepository_ListAndDelete(t *testing.T) {
	ctx, repo := newCreatorTestEnv(t)

	names := []string{testutil.UniqueName("a"), testutil.UniqueName("b")}
	for _, n := range names {
		if _, err := repo.Insert(ctx, testutil.NewTestCreator(t, n)); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("List returned %d rows, want 2", len(all))
	}

	if err := repo.Delete(ctx, names[0]); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(ctx, names[0]); err != nil {
		t.Errorf("second Delete failed: %v", err)
	}

	all, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 || all[0].Name != names[1] {
		t.Errorf("List after delete = %+v", all)
	}
}

func newCreatorTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL, DefaultTable)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetCreatorsSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset creators schema: %v", err)
	}

	return ctx, repo
}
