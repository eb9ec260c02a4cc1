package scores

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestTopOrdersByScoreThenTime(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Unix(1_700_000_000, 0)

	games := []Entry{
		{Name: "ada", Score: 300, Level: 2, At: base},
		{Name: "bob", Score: 900, Level: 4, At: base.Add(time.Minute)},
		{Name: "cy", Score: 300, Level: 2, At: base.Add(-time.Minute)},
		{Name: "dee", Score: 100, Level: 1, At: base},
	}
	for _, g := range games {
		if err := s.Record(ctx, g); err != nil {
			t.Fatalf("Record(%+v): %v", g, err)
		}
	}

	top, err := s.Top(ctx, 3)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	want := []string{"bob", "cy", "ada"}
	if len(top) != len(want) {
		t.Fatalf("Top returned %d entries, want %d", len(top), len(want))
	}
	for i, e := range top {
		if e.Name != want[i] || e.Rank != i+1 {
			t.Errorf("top[%d] = %+v, want %s at rank %d", i, e, want[i], i+1)
		}
	}
	if !top[0].At.Equal(base.Add(time.Minute)) || top[0].Level != 4 {
		t.Errorf("top[0] = %+v", top[0])
	}
}

func TestRecordRejectsEmptyName(t *testing.T) {
	s := openTestStore(t)
	err := s.Record(context.Background(), Entry{Name: "  ", Score: 100})
	if !errors.Is(err, ErrEmptyName) {
		t.Errorf("Record = %v, want ErrEmptyName", err)
	}
}

func TestBest(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if best, err := s.Best(ctx, "ada"); err != nil || best != 0 {
		t.Fatalf("Best on empty db = %d, %v", best, err)
	}
	for _, score := range []int{200, 800, 500} {
		if err := s.Record(ctx, Entry{Name: "ada", Score: score, Level: 1}); err != nil {
			t.Fatal(err)
		}
	}
	if best, err := s.Best(ctx, "ada"); err != nil || best != 800 {
		t.Errorf("Best = %d, %v, want 800", best, err)
	}
}

func TestReopenKeepsScores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Record(context.Background(), Entry{Name: "ada", Score: 400, Level: 3}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	top, err := s.Top(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 1 || top[0].Score != 400 {
		t.Errorf("after reopen Top = %+v", top)
	}
}
