// Package ledger persists which command was picked for which source on which
// day. The ledger is one append-only, ';'-delimited text file shared by every
// source; each line is "<id>;<YYYYMMDD>;<source>" with no header row.
package ledger

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/starford/vimcmd/internal/lock"
	"github.com/starford/vimcmd/internal/storage"
)

// DateLayout is the calendar-day key stored in the ledger.
const DateLayout = "20060102"

// Entry is one persisted pick.
type Entry struct {
	ID     string
	Date   string
	Source string
}

// History maps source → date → command identifier.
type History map[string]map[string]string

// Lookup returns the identifier recorded for source on date.
func (h History) Lookup(source, date string) (string, bool) {
	id, ok := h[source][date]
	return id, ok
}

// Used returns every identifier recorded for source, across all dates.
func (h History) Used(source string) map[string]struct{} {
	used := make(map[string]struct{}, len(h[source]))
	for _, id := range h[source] {
		used[id] = struct{}{}
	}
	return used
}

// FormatDate returns the ledger key for the calendar day of t.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Ledger reads and appends to the cache file at a fixed path.
type Ledger struct {
	path   string
	logger *slog.Logger
}

// New returns a ledger backed by the file at path. The file does not need to
// exist yet.
func New(path string, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{path: path, logger: logger}
}

// Path returns the cache file location.
func (l *Ledger) Path() string { return l.path }

// Record appends one entry for id and source on the calendar day of day.
func (l *Ledger) Record(id, source string, day time.Time) error {
	return l.Append(Entry{ID: id, Date: FormatDate(day), Source: source})
}

// Append writes e as a new line at the end of the cache file.
func (l *Ledger) Append(e Entry) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'
	if err := w.Write([]string{e.ID, e.Date, e.Source}); err != nil {
		return fmt.Errorf("ledger: encode entry: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("ledger: encode entry: %w", err)
	}
	if err := storage.Append(l.path, buf.Bytes()); err != nil {
		return fmt.Errorf("ledger: %w", err)
	}
	l.logger.Debug("ledger entry recorded",
		slog.String("id", e.ID),
		slog.String("date", e.Date),
		slog.String("source", e.Source))
	return nil
}

// Entries returns every well-formed line in file order. A missing cache file
// yields no entries.
func (l *Ledger) Entries() ([]Entry, error) {
	data, err := storage.Read(l.path)
	if err != nil {
		if storage.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("ledger: %w", err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var entries []Entry
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				l.logger.Warn("skipping unreadable ledger line",
					slog.String("path", l.path),
					slog.Int("line", perr.Line),
					slog.String("error", perr.Error()))
				continue
			}
			return nil, fmt.Errorf("ledger: read %s: %w", l.path, err)
		}
		if len(record) < 3 {
			line, _ := r.FieldPos(0)
			l.logger.Warn("skipping short ledger line",
				slog.String("path", l.path),
				slog.Int("line", line),
				slog.Int("fields", len(record)))
			continue
		}
		entries = append(entries, Entry{ID: record[0], Date: record[1], Source: record[2]})
	}
	return entries, nil
}

// ReadAll builds the history of every source. When several lines exist for
// the same source and date the later line wins.
func (l *Ledger) ReadAll() (History, error) {
	entries, err := l.Entries()
	if err != nil {
		return nil, err
	}
	h := make(History)
	for _, e := range entries {
		if h[e.Source] == nil {
			h[e.Source] = make(map[string]string)
		}
		h[e.Source][e.Date] = e.ID
	}
	return h, nil
}

// Clear truncates the cache file, erasing history for every source.
func (l *Ledger) Clear() error {
	if err := storage.Truncate(l.path); err != nil {
		return fmt.Errorf("ledger: %w", err)
	}
	l.logger.Info("ledger cleared", slog.String("path", l.path))
	return nil
}

// Lock takes an exclusive advisory lock next to the cache file and returns
// the function that releases it.
func (l *Ledger) Lock() (func(), error) {
	fl, err := lock.Acquire(l.path + ".lock")
	if err != nil {
		return nil, fmt.Errorf("ledger: %w", err)
	}
	return func() {
		if err := fl.Release(); err != nil {
			l.logger.Warn("releasing ledger lock", slog.String("error", err.Error()))
		}
	}, nil
}
