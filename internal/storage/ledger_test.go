package storage

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := OpenLedger("")
	if err != nil {
		t.Fatalf("OpenLedger() failed: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestLedgerRecordAndTop(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t)

	base := time.Unix(1700000000, 0)
	for i, score := range []int{100, 50, 200, 100} {
		_, err := l.Record(ctx, RunRecord{
			Player:    "bear",
			Score:     score,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	runs, err := l.Top(ctx, 10)
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}
	if len(runs) != 4 {
		t.Fatalf("Expected 4 runs, got %d", len(runs))
	}

	want := []int{200, 100, 100, 50}
	for i, w := range want {
		if runs[i].Score != w {
			t.Errorf("runs[%d].Score = %d, expected %d", i, runs[i].Score, w)
		}
	}
	// Equal scores keep the earlier run first
	if !runs[1].CreatedAt.Before(runs[2].CreatedAt) {
		t.Errorf("tie order: %v should be before %v", runs[1].CreatedAt, runs[2].CreatedAt)
	}
}

func TestLedgerTopLimit(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t)

	for i := 0; i < 15; i++ {
		if _, err := l.Record(ctx, RunRecord{Player: "p", Score: i}); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	tests := []struct {
		limit int
		want  int
	}{
		{limit: 3, want: 3},
		{limit: 0, want: 10},
		{limit: -1, want: 10},
		{limit: 100, want: 15},
	}
	for _, tc := range tests {
		runs, err := l.Top(ctx, tc.limit)
		if err != nil {
			t.Fatalf("Top(%d) failed: %v", tc.limit, err)
		}
		if len(runs) != tc.want {
			t.Errorf("Top(%d) returned %d runs, expected %d", tc.limit, len(runs), tc.want)
		}
	}
}

func TestLedgerRecordFillsIdentity(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t)

	stored, err := l.Record(ctx, RunRecord{Player: "bear", Score: 3, Ticks: 1234, Seed: 42, Night: true})
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if stored.ID == uuid.Nil {
		t.Error("Record() should assign an ID")
	}
	if stored.CreatedAt.IsZero() {
		t.Error("Record() should assign a timestamp")
	}

	runs, err := l.Top(ctx, 1)
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}
	got := runs[0]
	if got.ID != stored.ID || got.Ticks != 1234 || got.Seed != 42 || !got.Night || got.Player != "bear" {
		t.Errorf("round trip = %+v, expected %+v", got, stored)
	}
	if !got.CreatedAt.Equal(stored.CreatedAt) {
		t.Errorf("CreatedAt = %v, expected %v", got.CreatedAt, stored.CreatedAt)
	}
}

func TestLedgerDuplicateID(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t)

	id := uuid.New()
	if _, err := l.Record(ctx, RunRecord{ID: id, Player: "a", Score: 1}); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	_, err := l.Record(ctx, RunRecord{ID: id, Player: "b", Score: 2})
	if err == nil {
		t.Fatal("Expected an error for a duplicate run ID")
	}
	if !strings.HasPrefix(err.Error(), "storage:") {
		t.Errorf("error %q should carry the storage prefix", err)
	}
}

func TestLedgerBest(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t)

	best, err := l.Best(ctx, "nobody")
	if err != nil {
		t.Fatalf("Best() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Best() with no runs = %d, expected 0", best)
	}

	for _, r := range []RunRecord{
		{Player: "alice", Score: 7},
		{Player: "alice", Score: 19},
		{Player: "bob", Score: 25},
	} {
		if _, err := l.Record(ctx, r); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	if best, _ := l.Best(ctx, "alice"); best != 19 {
		t.Errorf("Best(alice) = %d, expected 19", best)
	}
	if best, _ := l.Best(ctx, "bob"); best != 25 {
		t.Errorf("Best(bob) = %d, expected 25", best)
	}
}

func TestLedgerCount(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t)

	if n, err := l.Count(ctx); err != nil || n != 0 {
		t.Fatalf("Count() = %d, %v; expected 0", n, err)
	}
	for i := 0; i < 3; i++ {
		l.Record(ctx, RunRecord{Player: "p", Score: i})
	}
	if n, _ := l.Count(ctx); n != 3 {
		t.Errorf("Count() = %d, expected 3", n)
	}
}

func TestLedgersAreIsolated(t *testing.T) {
	ctx := context.Background()
	a := openTestLedger(t)
	b := openTestLedger(t)

	a.Record(ctx, RunRecord{Player: "p", Score: 1})

	if n, _ := b.Count(ctx); n != 0 {
		t.Errorf("second ledger sees %d runs, expected 0", n)
	}
	if a.Name() == b.Name() {
		t.Error("unnamed ledgers should get distinct names")
	}
}

func TestLedgerConcurrentRecord(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if _, err := l.Record(ctx, RunRecord{Player: "p", Score: i*10 + j}); err != nil {
					t.Errorf("Record() failed: %v", err)
				}
			}
		}(i)
	}
	wg.Wait()

	if n, _ := l.Count(ctx); n != 80 {
		t.Errorf("Count() = %d, expected 80", n)
	}
}

func TestLedgerCanceledContext(t *testing.T) {
	l := openTestLedger(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := l.Record(ctx, RunRecord{Player: "p", Score: 1}); err == nil {
		t.Error("Record() with a canceled context should fail")
	}
}
