package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.duckdb"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// TestRecordAndRecent verifies the round trip and newest-first ordering.
func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := testContext(t)

	base := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	rows := []Invocation{
		{ID: "a", CreatedAt: base, Endpoint: "classify", Provider: "claude", Model: "m", Outcome: "ok", DurationMS: 120},
		{ID: "b", CreatedAt: base.Add(time.Minute), Endpoint: "refine", Provider: "claude", Model: "m", Outcome: "exit", DurationMS: 45, Detail: "boom"},
		{ID: "c", CreatedAt: base.Add(2 * time.Minute), Endpoint: "testpage", Provider: "gemini", Model: "m", Outcome: "input", DurationMS: 1},
	}
	for _, row := range rows {
		if err := store.Record(ctx, row); err != nil {
			t.Fatalf("record %s: %v", row.ID, err)
		}
	}

	got, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
	if got[0].ID != "c" || got[2].ID != "a" {
		t.Fatalf("rows not newest first: %+v", got)
	}
	if got[1].Detail != "boom" || got[1].Outcome != "exit" {
		t.Fatalf("row fields lost: %+v", got[1])
	}
}

// TestRecentLimit verifies the row cap.
func TestRecentLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := testContext(t)

	base := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		err := store.Record(ctx, Invocation{
			ID:        string(rune('a' + i)),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
			Endpoint:  "classify",
			Provider:  "claude",
			Model:     "m",
			Outcome:   "ok",
		})
		if err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].ID != "e" {
		t.Fatalf("unexpected first row %+v", got[0])
	}
}

// TestRecentEmpty verifies an empty log reads cleanly.
func TestRecentEmpty(t *testing.T) {
	store := openTestStore(t)

	got, err := store.Recent(testContext(t), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no rows, got %+v", got)
	}
}

// TestOpenIsIdempotent verifies reopening an existing file keeps its rows.
func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.duckdb")
	ctx := testContext(t)

	first, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	err = first.Record(ctx, Invocation{
		ID: "a", CreatedAt: time.Now().UTC(), Endpoint: "classify",
		Provider: "claude", Model: "m", Outcome: "ok",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	got, err := second.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("rows lost across reopen: %+v", got)
	}
}
