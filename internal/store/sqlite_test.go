package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "evaluations.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestSaveAndGet(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	rec := &Record{
		ID:       "eval-1",
		FitScore: 85,
		IsFit:    true,
		Result:   []byte(`{"evaluation":{"fit_score":85}}`),
	}
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("saving record: %v", err)
	}

	got, err := s.Get(ctx, "eval-1")
	if err != nil {
		t.Fatalf("fetching record: %v", err)
	}
	if got.FitScore != 85 || !got.IsFit {
		t.Fatalf("unexpected record: %+v", got)
	}
	if string(got.Result) != string(rec.Result) {
		t.Fatalf("unexpected result payload: %s", got.Result)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be populated")
	}
}

func TestGetMissingRecord(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	_, err := s.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveRejectsDuplicateIDs(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	rec := &Record{ID: "eval-1", FitScore: 10, Result: []byte(`{}`)}
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("saving record: %v", err)
	}
	if err := s.Save(ctx, rec); err == nil {
		t.Fatal("expected an error for a duplicate id")
	}
}

func TestSaveRequiresID(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	if err := s.Save(context.Background(), &Record{}); err == nil {
		t.Fatal("expected an error for a missing id")
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "middle", "new"} {
		rec := &Record{
			ID:        id,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			FitScore:  50 + i,
			Result:    []byte(`{}`),
		}
		if err := s.Save(ctx, rec); err != nil {
			t.Fatalf("saving %s: %v", id, err)
		}
	}

	records, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("listing records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "new" || records[1].ID != "middle" {
		t.Fatalf("unexpected order: %s, %s", records[0].ID, records[1].ID)
	}
}
