// Package internal wires configuration, catalogs, the usage ledger and the
// selector into the vimcmd operations.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/starford/vimcmd/internal/catalog"
	"github.com/starford/vimcmd/internal/ledger"
	"github.com/starford/vimcmd/internal/presenter"
	"github.com/starford/vimcmd/internal/selector"
)

// ExhaustedMessage is printed when every command of the source was shown.
const ExhaustedMessage = "Finished all Vim commands in current source! " +
	"Select a new source of Vim commands for Command OTD, or clear cache to start over"

func newApplication(opts []Option) (*application, error) {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if app.out == nil {
		app.out = os.Stdout
	}
	if app.logger == nil {
		// stdout carries the command itself; logs go to stderr.
		app.logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: app.config.App.LogLevel,
		}))
	}
	if app.source == "" {
		app.source = app.config.Sources.Default
	}
	if app.builtin == "" {
		app.builtin = BuiltinCatalogPath()
	}
	return app, nil
}

func (a *application) newLedger() *ledger.Ledger {
	return ledger.New(a.config.Cache.Path, a.logger)
}

func (a *application) newSelector() *selector.Selector {
	var opts []selector.Option
	if a.now != nil {
		opts = append(opts, selector.WithClock(a.now))
	}
	if a.intn != nil {
		opts = append(opts, selector.WithIntn(a.intn))
	}
	return selector.New(a.newLedger(), a.logger, opts...)
}

// resolveSource returns the path of the active source, installing the
// built-in catalog on first use. A source pointing anywhere else is loaded as
// is, so a mistyped path fails instead of receiving the embedded catalog.
func (a *application) resolveSource() (string, error) {
	path, _, err := a.config.Sources.Catalogs().Resolve(a.source)
	if err != nil {
		return "", err
	}
	if filepath.Clean(path) == filepath.Clean(a.builtin) {
		wrote, err := catalog.Bootstrap(path)
		if err != nil {
			return "", err
		}
		if wrote {
			a.logger.Info("installed built-in catalog", slog.String("path", path))
		}
	}
	return path, nil
}

func (a *application) loadCatalog() (*catalog.Catalog, error) {
	path, err := a.resolveSource()
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("catalog loaded",
		slog.String("source", a.source),
		slog.String("path", path),
		slog.Int("commands", cat.Len()))
	return cat, nil
}

// Run prints today's command for the selected source, picking and recording
// a new one when none was recorded today. An exhausted source prints
// ExhaustedMessage and is not an error.
func Run(_ context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}

	cat, err := app.loadCatalog()
	if err != nil {
		return err
	}

	res, err := app.newSelector().TodaysPick(cat, cat.Source())
	if err != nil {
		return err
	}
	if res.Status == selector.Exhausted {
		_, err := fmt.Fprintln(app.out, ExhaustedMessage)
		return err
	}
	return presenter.New(app.config.Display.Styled).Fprint(app.out, res.Command)
}

// ClearCache truncates the usage ledger for every source.
func ClearCache(_ context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	return app.newLedger().Clear()
}

// Random prints a random command from the selected source without reading or
// writing the ledger.
func Random(_ context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}

	cat, err := app.loadCatalog()
	if err != nil {
		return err
	}
	res, err := app.newSelector().PickAny(cat)
	if err != nil {
		return err
	}
	return presenter.New(app.config.Display.Styled).Fprint(app.out, res.Command)
}

// History prints the recorded picks of the selected source in file order.
func History(_ context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}

	cat, err := app.loadCatalog()
	if err != nil {
		return err
	}
	l := app.newLedger()
	entries, err := l.Entries()
	if err != nil {
		return err
	}
	history, err := l.ReadAll()
	if err != nil {
		return err
	}
	shown := 0
	for id := range history.Used(cat.Source()) {
		if _, ok := cat.Get(id); ok {
			shown++
		}
	}

	for _, e := range entries {
		if e.Source != cat.Source() {
			continue
		}
		line := fmt.Sprintf("%s  %s", e.Date, e.ID)
		if cmd, ok := cat.Get(e.ID); ok {
			line = fmt.Sprintf("%s  %s (%s)", e.Date, cmd.Keys, cmd.Short)
		}
		if _, err := fmt.Fprintln(app.out, line); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(app.out, "%d of %d commands shown\n", shown, cat.Len())
	return err
}

// ListSources prints the configured registry, marking the default source.
func ListSources(_ context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}

	reg := app.config.Sources.Catalogs()
	for _, name := range reg.Names() {
		marker := " "
		if name == app.config.Sources.Default {
			marker = "*"
		}
		if _, err := fmt.Fprintf(app.out, "%s %s\t%s\n", marker, name, reg[name]); err != nil {
			return err
		}
	}
	return nil
}
