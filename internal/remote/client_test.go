package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/creatorverse/creatorverse/internal/metrics"
	"github.com/creatorverse/creatorverse/internal/model"
)

type fakeBackend struct {
	creators []model.Creator
	err      error
	deleted  []string
}

func (f *fakeBackend) List(ctx context.Context) ([]model.Creator, error) {
	return f.creators, f.err
}

func (f *fakeBackend) Get(ctx context.Context, name string) (*model.Creator, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.creators {
		if c.Name == name {
			c := c
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeBackend) Insert(ctx context.Context, c model.Creator) (*model.Creator, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.creators = append(f.creators, c)
	return &c, nil
}

func (f *fakeBackend) Update(ctx context.Context, oldName string, c model.Creator) (*model.Creator, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.creators {
		if f.creators[i].Name == oldName {
			f.creators[i] = c
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeBackend) Delete(ctx context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	return f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		wantFailure Failure
		wantMsg     string
	}{
		{"ok", nil, FailureNone, ""},
		{"remote", errors.New("connection refused"), FailureRemote, "connection refused"},
		{"not found sentinel", ErrNotFound, FailureNotFound, "creator not found"},
		{"wrapped not found", fmt.Errorf("lookup: %w", ErrNotFound), FailureNotFound, "lookup: creator not found"},
		{"postgrest not found", &APIError{Status: 406, Code: notFoundCode, Message: "JSON object requested, multiple (or no) rows returned"}, FailureNotFound, "JSON object requested, multiple (or no) rows returned"},
		{"config", NewUnconfigured(errors.New("SUPABASE_API_KEY is not set")).err, FailureConfig, "SUPABASE_API_KEY is not set"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := FromError("value", tt.err)
			if res.Failure != tt.wantFailure {
				t.Errorf("Failure = %v, want %v", res.Failure, tt.wantFailure)
			}
			if res.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", res.Message, tt.wantMsg)
			}
			if res.OK() != (tt.err == nil) {
				t.Errorf("OK() = %v, want %v", res.OK(), tt.err == nil)
			}
		})
	}
}

func TestClient_ListAll_EmptyIsNotAbsent(t *testing.T) {
	t.Parallel()

	c := NewClient(&fakeBackend{}, discardLogger(), nil)
	res := c.ListAll(context.Background())
	if !res.OK() {
		t.Fatalf("expected ok, got %+v", res)
	}
	if res.Value == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestClient_GetByKey(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{creators: []model.Creator{{Name: "Bob", URL: "https://b.example", Description: "d"}}}
	c := NewClient(backend, discardLogger(), nil)

	res := c.GetByKey(context.Background(), "Bob")
	if !res.OK() || res.Value.Name != "Bob" {
		t.Errorf("GetByKey(Bob) = %+v", res)
	}

	res = c.GetByKey(context.Background(), "Nobody")
	if res.Failure != FailureNotFound {
		t.Errorf("GetByKey(Nobody) failure = %v, want not found", res.Failure)
	}
}

func TestClient_MutationMetrics(t *testing.T) {
	t.Parallel()

	recorder := metrics.NewInMemory()
	backend := &fakeBackend{}
	c := NewClient(backend, discardLogger(), recorder)
	ctx := context.Background()

	c.Insert(ctx, model.Creator{Name: "Alice", URL: "https://a.example", Description: "d"})
	c.UpdateByKey(ctx, "Alice", model.Creator{Name: "Alicia", URL: "https://a.example", Description: "d"})
	c.UpdateByKey(ctx, "Missing", model.Creator{Name: "Missing", URL: "https://m.example", Description: "d"})
	c.DeleteByKey(ctx, "Alicia")

	snap := recorder.Snapshot()
	if snap.CreatorsCreated != 1 || snap.CreatorsUpdated != 1 || snap.CreatorsDeleted != 1 {
		t.Errorf("unexpected mutation counters: %+v", snap)
	}
	if got := snap.RemoteCalls[metrics.RemoteCallKey{Op: "update", Outcome: metrics.OutcomeNotFound}].Count; got != 1 {
		t.Errorf("update not_found count = %d, want 1", got)
	}
	if len(backend.deleted) != 1 || backend.deleted[0] != "Alicia" {
		t.Errorf("deleted = %v, want [Alicia]", backend.deleted)
	}
}

func TestClient_FailureIsLoggedVerbatim(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	c := NewClient(&fakeBackend{err: errors.New("dial tcp 10.0.0.1:443: connect: network is unreachable")}, logger, nil)

	res := c.ListAll(context.Background())
	if res.Failure != FailureRemote {
		t.Fatalf("Failure = %v, want remote", res.Failure)
	}
	if res.Message != "dial tcp 10.0.0.1:443: connect: network is unreachable" {
		t.Errorf("Message = %q", res.Message)
	}
	if !strings.Contains(buf.String(), "network is unreachable") {
		t.Errorf("failure not logged: %s", buf.String())
	}
}

func TestClient_DuplicateNameIsWarning(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	dup := &APIError{Status: 409, Code: UniqueViolationCode, Message: `duplicate key value violates unique constraint "creators_pkey"`}
	c := NewClient(&fakeBackend{err: dup}, logger, nil)

	res := c.Insert(context.Background(), model.Creator{Name: "Bob"})
	if res.Failure != FailureRemote {
		t.Fatalf("Failure = %v, want remote", res.Failure)
	}
	if res.Message != dup.Message {
		t.Errorf("Message = %q, want %q", res.Message, dup.Message)
	}
	logged := buf.String()
	if !strings.Contains(logged, `"level":"WARN"`) || !strings.Contains(logged, "duplicate name") {
		t.Errorf("duplicate not logged as a warning: %s", logged)
	}
}

func TestClient_Unconfigured(t *testing.T) {
	t.Parallel()

	c := NewClient(NewUnconfigured(errors.New("missing SUPABASE_PROJECT_URL")), discardLogger(), nil)

	res := c.ListAll(context.Background())
	if res.Failure != FailureConfig {
		t.Errorf("Failure = %v, want config", res.Failure)
	}
	if res.Message != "missing SUPABASE_PROJECT_URL" {
		t.Errorf("Message = %q", res.Message)
	}
	if err := c.Ping(context.Background()); err == nil {
		t.Error("expected Ping to fail when unconfigured")
	}
}
