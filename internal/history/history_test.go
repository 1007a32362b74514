package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"portal/internal/media"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "history.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	entry := media.HistoryEntry{
		Code:      "S01E01",
		Name:      "Pilot",
		VideoURL:  "https://cdn.example.com/s1.mp4",
		Position:  1234,
		Duration:  1320,
		WatchedAt: time.Unix(1700000000, 0),
	}

	if err := s.Record(ctx, entry); err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	entries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	got := entries[0]
	if got.Code != entry.Code || got.Name != entry.Name || got.VideoURL != entry.VideoURL {
		t.Errorf("entry = %+v, want %+v", got, entry)
	}
	if got.Position != entry.Position || got.Duration != entry.Duration {
		t.Errorf("position/duration = %v/%v", got.Position, got.Duration)
	}
	if !got.WatchedAt.Equal(entry.WatchedAt) {
		t.Errorf("WatchedAt = %v, want %v", got.WatchedAt, entry.WatchedAt)
	}
}

func TestRecordUpdatesExisting(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	entry := media.HistoryEntry{Code: "S01E01", Name: "Pilot", Position: 100}
	s.Record(ctx, entry)

	entry.Position = 500
	s.Record(ctx, entry)

	entries, _ := s.List(ctx)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after update, got %d", len(entries))
	}
	if entries[0].Position != 500 {
		t.Errorf("position = %f, want 500", entries[0].Position)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.Record(ctx, media.HistoryEntry{Code: "S01E01", WatchedAt: time.Unix(100, 0)})
	s.Record(ctx, media.HistoryEntry{Code: "S01E02", WatchedAt: time.Unix(300, 0)})
	s.Record(ctx, media.HistoryEntry{Code: "S01E03", WatchedAt: time.Unix(200, 0)})

	entries, _ := s.List(ctx)
	var codes []string
	for _, e := range entries {
		codes = append(codes, e.Code)
	}
	want := []string{"S01E02", "S01E03", "S01E01"}
	for i := range want {
		if i >= len(codes) || codes[i] != want[i] {
			t.Fatalf("order = %v, want %v", codes, want)
		}
	}
}

func TestRemove(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.Record(ctx, media.HistoryEntry{Code: "S01E01"})
	s.Record(ctx, media.HistoryEntry{Code: "S01E02"})

	if err := s.Remove(ctx, "S01E01"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if err := s.Remove(ctx, "S09E09"); err != nil {
		t.Fatalf("Remove() of missing entry error: %v", err)
	}

	entries, _ := s.List(ctx)
	if len(entries) != 1 || entries[0].Code != "S01E02" {
		t.Errorf("remaining = %+v, want only S01E02", entries)
	}
}

func TestClear(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.Record(ctx, media.HistoryEntry{Code: "S01E01"})
	s.Record(ctx, media.HistoryEntry{Code: "S02E01"})

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	entries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty history, got %d entries", len(entries))
	}
}

func TestRecordRequiresCode(t *testing.T) {
	s := openTestStore(t)
	if err := s.Record(context.Background(), media.HistoryEntry{Name: "nameless"}); err == nil {
		t.Error("Record() without code should fail")
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	s.Record(ctx, media.HistoryEntry{Code: "S02E01"})
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer s.Close()

	entries, _ := s.List(ctx)
	if len(entries) != 1 {
		t.Errorf("expected 1 entry after reopen, got %d", len(entries))
	}
}

func TestFormatForDisplay(t *testing.T) {
	entries := []media.HistoryEntry{
		{Code: "S01E01", Name: "Pilot", Position: 660, Duration: 1320},
		{Code: "S02E05", Name: "Get Schwifty", Position: 754},
		{Code: "S03E01"},
	}

	items := FormatForDisplay(entries)
	want := []string{"S01E01 Pilot [50%]", "S02E05 Get Schwifty [12:34]", "S03E01"}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("item %d = %q, want %q", i, items[i], want[i])
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{754, "12:34"},
		{3725, "1:02:05"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
