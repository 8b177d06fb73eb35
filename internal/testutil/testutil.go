// Package testutil provides shared test helpers for catalogs, ledgers and
// simulated days.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/starford/vimcmd/internal/ledger"
)

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WriteCatalog writes a source file with a keys;short;long header followed by
// rows and returns its path.
func WriteCatalog(t *testing.T, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "commands.csv")
	content := "keys;short;long\n" + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLedger creates a ledger in a temporary directory.
func TestLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	return ledger.New(filepath.Join(t.TempDir(), ".vimcmd_cache"), Logger())
}

// LedgerLines returns the non-empty lines of the cache file at path.
func LedgerLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Clock is a settable time source.
type Clock struct {
	now time.Time
}

// NewClock returns a clock at noon local time on day (YYYYMMDD).
func NewClock(t *testing.T, day string) *Clock {
	t.Helper()
	c := &Clock{}
	c.SetDay(t, day)
	return c
}

// SetDay moves the clock to noon local time on day (YYYYMMDD).
func (c *Clock) SetDay(t *testing.T, day string) {
	t.Helper()
	d, err := time.ParseInLocation(ledger.DateLayout, day, time.Local)
	if err != nil {
		t.Fatalf("bad day %q: %v", day, err)
	}
	c.now = d.Add(12 * time.Hour)
}

// Now returns the current simulated time.
func (c *Clock) Now() time.Time { return c.now }
