package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleEvent(id, tier string) AssessmentEventData {
	return AssessmentEventData{
		RequestID:    id,
		Status:       200,
		Tier:         tier,
		BaseTier:     tier,
		CGPA:         3.1,
		Level:        300,
		Department:   "Computer Science",
		Trend:        "Stable",
		MLStatus:     "available",
		MLLabel:      "Medium",
		MLConfidence: 90,
		LatencyMs:    3,
		Payload:      []byte(`{"requestId":"` + id + `"}`),
	}
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked in TestOpenFile instead.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "uniguide.db")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}

	// Reopening runs the migration against an existing schema.
	if _, err := s.EventRepo().Append(context.Background(), sampleEvent("a", "Good")); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	events, err := s2.EventRepo().List(context.Background(), QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("events after reopen = %d, want 1", len(events))
	}
}

func TestSequenceMonotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		n, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if n <= last {
			t.Errorf("sequence %d not greater than %d", n, last)
		}
		last = n
	}
}

func TestAppendAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	ev, err := repo.Append(ctx, sampleEvent("req-1", "Moderate"))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if ev.ID == 0 || ev.Sequence == 0 {
		t.Errorf("id/sequence not set: %+v", ev)
	}

	got, err := repo.Get(ctx, "req-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Sequence != ev.Sequence {
		t.Errorf("sequence = %d, want %d", got.Sequence, ev.Sequence)
	}
	if got.Tier != "Moderate" || got.Level != 300 || got.MLConfidence != 90 {
		t.Errorf("round trip mismatch: %+v", got.AssessmentEventData)
	}
	if string(got.Payload) != `{"requestId":"req-1"}` {
		t.Errorf("payload = %s", got.Payload)
	}
	if got.Timestamp.Before(before) {
		t.Errorf("timestamp %v before %v", got.Timestamp, before)
	}
}

func TestAppendRejectsEmptyAndDuplicateID(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if _, err := repo.Append(ctx, sampleEvent("", "Good")); err == nil {
		t.Error("expected error for empty request id")
	}
	if _, err := repo.Append(ctx, sampleEvent("dup", "Good")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := repo.Append(ctx, sampleEvent("dup", "Good")); err == nil {
		t.Error("expected unique constraint error for duplicate request id")
	}
}

func TestAppendNilPayload(t *testing.T) {
	s := openTestStore(t)
	data := sampleEvent("bare", "Unknown")
	data.Payload = nil
	if _, err := s.EventRepo().Append(context.Background(), data); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err := s.EventRepo().Get(context.Background(), "bare")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Payload) != 0 {
		t.Errorf("payload = %q, want empty", got.Payload)
	}
}

func TestGetNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.EventRepo().Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListNewestFirstWithFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	tiers := []string{"Good", "At Risk", "Good", "High Risk", "Good"}
	var seqs []int64
	for i, tier := range tiers {
		ev, err := repo.Append(ctx, sampleEvent(fmt.Sprintf("r%d", i), tier))
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		seqs = append(seqs, ev.Sequence)
	}

	all, err := repo.List(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("len = %d, want 5", len(all))
	}
	if all[0].RequestID != "r4" || all[4].RequestID != "r0" {
		t.Errorf("order = %s..%s, want r4..r0", all[0].RequestID, all[4].RequestID)
	}

	limited, _ := repo.List(ctx, QueryOpts{Limit: 2})
	if len(limited) != 2 {
		t.Errorf("limit: len = %d, want 2", len(limited))
	}

	good, _ := repo.List(ctx, QueryOpts{Tier: "Good"})
	if len(good) != 3 {
		t.Errorf("tier filter: len = %d, want 3", len(good))
	}

	window, _ := repo.List(ctx, QueryOpts{After: seqs[0], Before: seqs[4]})
	if len(window) != 3 {
		t.Errorf("sequence window: len = %d, want 3", len(window))
	}

	future, _ := repo.List(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if len(future) != 0 {
		t.Errorf("from filter: len = %d, want 0", len(future))
	}
}

func TestTierCounts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, tier := range []string{"Good", "At Risk", "Good", "High Risk", "Good", "At Risk"} {
		if _, err := repo.Append(ctx, sampleEvent(fmt.Sprintf("t%d", i), tier)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	counts, err := repo.TierCounts(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("tier counts: %v", err)
	}
	want := []TierCount{{"Good", 3}, {"At Risk", 2}, {"High Risk", 1}}
	if len(counts) != len(want) {
		t.Fatalf("counts = %+v, want %+v", counts, want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("counts[%d] = %+v, want %+v", i, counts[i], want[i])
		}
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := repo.Append(ctx, sampleEvent(fmt.Sprintf("x%d", i), "Good")); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	n, err := repo.Reset(ctx)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if n != 3 {
		t.Errorf("removed = %d, want 3", n)
	}

	ev, err := repo.Append(ctx, sampleEvent("after", "Good"))
	if err != nil {
		t.Fatalf("append after reset: %v", err)
	}
	if ev.Sequence <= 3 {
		t.Errorf("sequence after reset = %d, want > 3", ev.Sequence)
	}
}

func TestWithForeignKeys(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/tmp/a.db", "/tmp/a.db?_pragma=foreign_keys(1)"},
		{"file:x?mode=memory", "file:x?mode=memory&_pragma=foreign_keys(1)"},
		{"a.db?_pragma=foreign_keys(1)", "a.db?_pragma=foreign_keys(1)"},
	}
	for _, tt := range tests {
		if got := withForeignKeys(tt.in); got != tt.want {
			t.Errorf("withForeignKeys(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UNIGUIDE_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if want := filepath.Join(dir, "uniguide", "uniguide.db"); p != want {
		t.Errorf("path = %q, want %q", p, want)
	}

	t.Setenv("UNIGUIDE_DB", filepath.Join(dir, "custom", "x.db"))
	p, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("env path: %v", err)
	}
	if !strings.HasSuffix(p, filepath.Join("custom", "x.db")) {
		t.Errorf("path = %q, want env override", p)
	}
}
