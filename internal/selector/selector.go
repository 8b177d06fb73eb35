// Package selector implements the command-of-the-day policy on top of the
// usage ledger: one new pick per source and calendar day, never repeating a
// command until the source is exhausted.
package selector

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/starford/vimcmd/internal/apperr"
	"github.com/starford/vimcmd/internal/catalog"
	"github.com/starford/vimcmd/internal/ledger"
	"github.com/starford/vimcmd/internal/models"
)

// Status tags the outcome of a pick.
type Status int

const (
	// Picked means Result.Command holds the chosen command.
	Picked Status = iota
	// Exhausted means every command of the source was already shown.
	Exhausted
)

func (s Status) String() string {
	switch s {
	case Picked:
		return "picked"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result is the outcome of a pick.
type Result struct {
	Status  Status
	Command models.Command
	// Fresh is true when the pick was made (and recorded) by this call.
	Fresh bool
}

// Option configures a Selector.
type Option func(*Selector)

// WithClock overrides the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(s *Selector) {
		s.now = now
	}
}

// WithIntn overrides the random source; intn(n) must return a value in [0, n).
func WithIntn(intn func(int) int) Option {
	return func(s *Selector) {
		s.intn = intn
	}
}

// Selector chooses commands and records daily picks.
type Selector struct {
	ledger *ledger.Ledger
	logger *slog.Logger
	now    func() time.Time
	intn   func(int) int
}

// New creates a selector that records picks in l.
func New(l *ledger.Ledger, logger *slog.Logger, opts ...Option) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Selector{
		ledger: l,
		logger: logger,
		now:    time.Now,
		intn:   rand.Intn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TodaysPick returns the command for source today. A pick already recorded
// for today is returned as is; otherwise a command never recorded for source
// is chosen at random and appended to the ledger. When no such command is
// left the result is Exhausted and nothing is written.
func (s *Selector) TodaysPick(cat *catalog.Catalog, source string) (Result, error) {
	release, err := s.ledger.Lock()
	if err != nil {
		return Result{}, err
	}
	defer release()

	now := s.now()
	today := ledger.FormatDate(now)

	history, err := s.ledger.ReadAll()
	if err != nil {
		return Result{}, err
	}

	if id, ok := history.Lookup(source, today); ok {
		if cmd, found := cat.Get(id); found {
			s.logger.Debug("reusing today's pick",
				slog.String("source", source),
				slog.String("date", today),
				slog.String("id", id))
			return Result{Status: Picked, Command: cmd}, nil
		}
		s.logger.Warn("today's pick is not in the catalog, picking again",
			slog.String("source", source),
			slog.String("date", today),
			slog.String("id", id))
	}

	used := history.Used(source)
	var remaining []string
	for _, id := range cat.IDs() {
		if _, seen := used[id]; !seen {
			remaining = append(remaining, id)
		}
	}
	if len(remaining) == 0 {
		s.logger.Info("source exhausted",
			slog.String("source", source),
			slog.Int("catalog_size", cat.Len()))
		return Result{Status: Exhausted}, nil
	}

	id := remaining[s.intn(len(remaining))]
	if err := s.ledger.Record(id, source, now); err != nil {
		return Result{}, err
	}
	cmd, _ := cat.Get(id)
	s.logger.Debug("new pick recorded",
		slog.String("source", source),
		slog.String("date", today),
		slog.String("id", id),
		slog.Int("remaining", len(remaining)-1))
	return Result{Status: Picked, Command: cmd, Fresh: true}, nil
}

// PickAny returns a uniformly random command from the whole catalog without
// consulting or touching the ledger.
func (s *Selector) PickAny(cat *catalog.Catalog) (Result, error) {
	ids := cat.IDs()
	if len(ids) == 0 {
		return Result{}, fmt.Errorf("pick from %s: %w", cat.Source(), apperr.ErrEmptySource)
	}
	cmd, _ := cat.Get(ids[s.intn(len(ids))])
	return Result{Status: Picked, Command: cmd}, nil
}
