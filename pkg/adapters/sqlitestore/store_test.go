package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/user/sceneline/pkg/ports"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "segments.db"), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNew_CreatesSchema(t *testing.T) {
	store := newTestStore(t)

	var name string
	err := store.Conn().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='segments'",
	).Scan(&name)
	if err != nil {
		t.Errorf("segments table not found: %v", err)
	}
}

func TestNew_WALEnabled(t *testing.T) {
	store := newTestStore(t)

	var journalMode string
	if err := store.Conn().QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("PRAGMA journal_mode error = %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("journal_mode = %s, want wal", journalMode)
	}
}

func TestStore_CreateAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id1, err := store.CreateSegment(ctx, "video-1", 0, 4000, "intro")
	if err != nil {
		t.Fatalf("CreateSegment error = %v", err)
	}
	id2, err := store.CreateSegment(ctx, "video-1", 4000, 9000, "")
	if err != nil {
		t.Fatalf("CreateSegment error = %v", err)
	}
	if id1 == "" || id1 == id2 {
		t.Errorf("expected distinct non-empty ids, got %q and %q", id1, id2)
	}

	records, err := store.ListSegments(ctx, "video-1")
	if err != nil {
		t.Fatalf("ListSegments error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(records))
	}

	first := records[0]
	if first.ID != id1 || first.VideoID != "video-1" || first.StartMs != 0 || first.EndMs != 4000 {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.Description != "intro" {
		t.Errorf("expected description intro, got %q", first.Description)
	}
	if first.CreationIndex != 0 || records[1].CreationIndex != 1 {
		t.Errorf("expected creation indexes 0,1, got %d,%d", first.CreationIndex, records[1].CreationIndex)
	}
}

func TestStore_CreationIndexPerVideo(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.CreateSegment(ctx, "video-1", 0, 1000, "")
	store.CreateSegment(ctx, "video-1", 1000, 2000, "")
	store.CreateSegment(ctx, "video-2", 0, 3000, "")

	records, err := store.ListSegments(ctx, "video-2")
	if err != nil {
		t.Fatalf("ListSegments error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(records))
	}
	// Each video counts from zero.
	if records[0].CreationIndex != 0 {
		t.Errorf("expected creation index 0, got %d", records[0].CreationIndex)
	}
}

func TestStore_UpdateSegment(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.CreateSegment(ctx, "video-1", 0, 4000, "draft")
	if err != nil {
		t.Fatalf("CreateSegment error = %v", err)
	}

	endMs := int64(5000)
	desc := "final"
	err = store.UpdateSegment(ctx, id, ports.SegmentFields{EndMs: &endMs, Description: &desc})
	if err != nil {
		t.Fatalf("UpdateSegment error = %v", err)
	}

	records, _ := store.ListSegments(ctx, "video-1")
	if records[0].EndMs != 5000 || records[0].Description != "final" {
		t.Errorf("update not applied: %+v", records[0])
	}
	// Untouched field stays
	if records[0].StartMs != 0 {
		t.Errorf("start changed unexpectedly: %d", records[0].StartMs)
	}
}

func TestStore_UpdateSegment_NoFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, _ := store.CreateSegment(ctx, "video-1", 0, 4000, "")
	if err := store.UpdateSegment(ctx, id, ports.SegmentFields{}); err != nil {
		t.Errorf("expected no-op update to succeed, got %v", err)
	}
}

func TestStore_UpdateSegment_NotFound(t *testing.T) {
	store := newTestStore(t)

	startMs := int64(100)
	err := store.UpdateSegment(context.Background(), "missing", ports.SegmentFields{StartMs: &startMs})
	if err == nil {
		t.Error("expected error for missing segment")
	}
}

func TestStore_DeleteSegment(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, _ := store.CreateSegment(ctx, "video-1", 0, 4000, "")
	if err := store.DeleteSegment(ctx, id); err != nil {
		t.Fatalf("DeleteSegment error = %v", err)
	}

	records, _ := store.ListSegments(ctx, "video-1")
	if len(records) != 0 {
		t.Errorf("expected no segments, got %d", len(records))
	}

	if err := store.DeleteSegment(ctx, id); err == nil {
		t.Error("expected error deleting twice")
	}
}

func TestStore_ListSegments_Empty(t *testing.T) {
	store := newTestStore(t)

	records, err := store.ListSegments(context.Background(), "video-1")
	if err != nil {
		t.Fatalf("ListSegments error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty list, got %d", len(records))
	}
}
