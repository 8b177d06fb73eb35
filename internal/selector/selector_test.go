package selector

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/starford/vimcmd/internal/apperr"
	"github.com/starford/vimcmd/internal/catalog"
	"github.com/starford/vimcmd/internal/ledger"
	"github.com/starford/vimcmd/internal/models"
	"github.com/starford/vimcmd/internal/testutil"
)

func basicCatalog() *catalog.Catalog {
	return catalog.New("basic",
		models.Command{ID: "dd", Keys: "dd", Short: "delete line", Long: "Delete the line."},
		models.Command{ID: "yy", Keys: "yy", Short: "yank line", Long: "Yank the line."},
	)
}

func bigCatalog(n int) *catalog.Catalog {
	cmds := make([]models.Command, n)
	for i := range cmds {
		id := fmt.Sprintf("c%02d", i)
		cmds[i] = models.Command{ID: id, Keys: id}
	}
	return catalog.New("big", cmds...)
}

func newSelector(t *testing.T, l *ledger.Ledger, clock *testutil.Clock) *Selector {
	t.Helper()
	return New(l, testutil.Logger(), WithClock(clock.Now))
}

func TestTodaysPick_Example(t *testing.T) {
	l := testutil.TestLedger(t)
	clock := testutil.NewClock(t, "20240101")
	s := newSelector(t, l, clock)
	cat := basicCatalog()

	first, err := s.TodaysPick(cat, "basic")
	if err != nil {
		t.Fatalf("day 1: %v", err)
	}
	if first.Status != Picked || !first.Fresh {
		t.Fatalf("day 1 result = %+v", first)
	}
	lines := testutil.LedgerLines(t, l.Path())
	if len(lines) != 1 || lines[0] != first.Command.ID+";20240101;basic" {
		t.Fatalf("ledger after day 1 = %q", lines)
	}

	again, err := s.TodaysPick(cat, "basic")
	if err != nil {
		t.Fatalf("day 1 again: %v", err)
	}
	if again.Command.ID != first.Command.ID || again.Fresh {
		t.Errorf("same-day pick = %+v, want %s (not fresh)", again, first.Command.ID)
	}
	if got := len(testutil.LedgerLines(t, l.Path())); got != 1 {
		t.Errorf("same-day pick appended, ledger has %d lines", got)
	}

	clock.SetDay(t, "20240102")
	second, err := s.TodaysPick(cat, "basic")
	if err != nil {
		t.Fatalf("day 2: %v", err)
	}
	if second.Status != Picked || second.Command.ID == first.Command.ID {
		t.Errorf("day 2 = %+v, want the other command", second)
	}
	lines = testutil.LedgerLines(t, l.Path())
	if len(lines) != 2 || lines[1] != second.Command.ID+";20240102;basic" {
		t.Errorf("ledger after day 2 = %q", lines)
	}

	clock.SetDay(t, "20240103")
	third, err := s.TodaysPick(cat, "basic")
	if err != nil {
		t.Fatalf("day 3: %v", err)
	}
	if third.Status != Exhausted {
		t.Errorf("day 3 status = %v, want exhausted", third.Status)
	}
	if got := len(testutil.LedgerLines(t, l.Path())); got != 2 {
		t.Errorf("exhaustion wrote to ledger, %d lines", got)
	}
}

func TestTodaysPick_NoRepeats(t *testing.T) {
	const m = 20
	l := testutil.TestLedger(t)
	clock := testutil.NewClock(t, "20240101")
	s := newSelector(t, l, clock)
	cat := bigCatalog(m)

	seen := make(map[string]bool)
	for i := 0; i < m; i++ {
		clock.SetDay(t, fmt.Sprintf("202402%02d", i+1))
		res, err := s.TodaysPick(cat, "big")
		if err != nil {
			t.Fatalf("day %d: %v", i+1, err)
		}
		if res.Status != Picked {
			t.Fatalf("day %d: status %v", i+1, res.Status)
		}
		if seen[res.Command.ID] {
			t.Fatalf("day %d repeated %s", i+1, res.Command.ID)
		}
		seen[res.Command.ID] = true
	}

	clock.SetDay(t, "20240301")
	res, err := s.TodaysPick(cat, "big")
	if err != nil {
		t.Fatalf("after exhaustion: %v", err)
	}
	if res.Status != Exhausted {
		t.Errorf("status = %v, want exhausted", res.Status)
	}
	if got := len(testutil.LedgerLines(t, l.Path())); got != m {
		t.Errorf("ledger lines = %d, want %d", got, m)
	}
}

func TestTodaysPick_ClearResets(t *testing.T) {
	l := testutil.TestLedger(t)
	clock := testutil.NewClock(t, "20240101")
	s := newSelector(t, l, clock)
	cat := basicCatalog()

	for _, d := range []string{"20240101", "20240102", "20240103"} {
		clock.SetDay(t, d)
		if _, err := s.TodaysPick(cat, "basic"); err != nil {
			t.Fatalf("%s: %v", d, err)
		}
	}
	if err := l.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	res, err := s.TodaysPick(cat, "basic")
	if err != nil {
		t.Fatalf("after clear: %v", err)
	}
	if res.Status != Picked || !res.Fresh {
		t.Errorf("after clear = %+v, want a fresh pick", res)
	}
}

func TestTodaysPick_SourcesIsolated(t *testing.T) {
	l := testutil.TestLedger(t)
	clock := testutil.NewClock(t, "20240101")
	s := newSelector(t, l, clock)
	cat := basicCatalog()

	for _, d := range []string{"20240101", "20240102"} {
		clock.SetDay(t, d)
		if _, err := s.TodaysPick(cat, "a"); err != nil {
			t.Fatalf("source a %s: %v", d, err)
		}
	}

	res, err := s.TodaysPick(cat, "b")
	if err != nil {
		t.Fatalf("source b: %v", err)
	}
	if res.Status != Picked || !res.Fresh {
		t.Errorf("source b = %+v, want a fresh pick", res)
	}
	lines := testutil.LedgerLines(t, l.Path())
	if len(lines) != 3 || !strings.HasSuffix(lines[2], ";20240102;b") {
		t.Errorf("ledger = %q", lines)
	}
}

func TestTodaysPick_UsesRandomIndex(t *testing.T) {
	l := testutil.TestLedger(t)
	clock := testutil.NewClock(t, "20240101")
	var gotN int
	s := New(l, testutil.Logger(), WithClock(clock.Now), WithIntn(func(n int) int {
		gotN = n
		return n - 1
	}))

	res, err := s.TodaysPick(bigCatalog(5), "big")
	if err != nil {
		t.Fatalf("TodaysPick: %v", err)
	}
	if gotN != 5 {
		t.Errorf("intn called with %d, want 5", gotN)
	}
	if res.Command.ID != "c04" {
		t.Errorf("picked %s, want c04", res.Command.ID)
	}
}

func TestTodaysPick_StaleEntryPicksAgain(t *testing.T) {
	l := testutil.TestLedger(t)
	clock := testutil.NewClock(t, "20240101")
	s := newSelector(t, l, clock)
	if err := l.Record("gone", "basic", clock.Now()); err != nil {
		t.Fatal(err)
	}

	res, err := s.TodaysPick(basicCatalog(), "basic")
	if err != nil {
		t.Fatalf("TodaysPick: %v", err)
	}
	if res.Status != Picked || !res.Fresh {
		t.Fatalf("result = %+v", res)
	}

	// The new line wins for today from now on.
	again, err := s.TodaysPick(basicCatalog(), "basic")
	if err != nil {
		t.Fatalf("TodaysPick again: %v", err)
	}
	if again.Command.ID != res.Command.ID || again.Fresh {
		t.Errorf("again = %+v", again)
	}
}

func TestTodaysPick_EmptyCatalogExhausted(t *testing.T) {
	l := testutil.TestLedger(t)
	s := newSelector(t, l, testutil.NewClock(t, "20240101"))
	res, err := s.TodaysPick(catalog.New("empty"), "empty")
	if err != nil {
		t.Fatalf("TodaysPick: %v", err)
	}
	if res.Status != Exhausted {
		t.Errorf("status = %v", res.Status)
	}
}

func TestPickAny(t *testing.T) {
	l := testutil.TestLedger(t)
	clock := testutil.NewClock(t, "20240101")
	s := New(l, testutil.Logger(), WithClock(clock.Now), WithIntn(func(int) int { return 0 }))
	cat := basicCatalog()

	// History is ignored: dd is still eligible after being used.
	if err := l.Record("dd", "basic", clock.Now()); err != nil {
		t.Fatal(err)
	}
	res, err := s.PickAny(cat)
	if err != nil {
		t.Fatalf("PickAny: %v", err)
	}
	if res.Command.ID != "dd" {
		t.Errorf("PickAny = %s, want dd", res.Command.ID)
	}
	if got := len(testutil.LedgerLines(t, l.Path())); got != 1 {
		t.Errorf("PickAny touched the ledger, %d lines", got)
	}

	_, err = s.PickAny(catalog.New("empty"))
	if !errors.Is(err, apperr.ErrEmptySource) {
		t.Errorf("err = %v, want ErrEmptySource", err)
	}
}

func TestStatusString(t *testing.T) {
	if Picked.String() != "picked" || Exhausted.String() != "exhausted" {
		t.Error("unexpected status names")
	}
}
