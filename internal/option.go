package internal

import (
	"io"
	"log/slog"
	"time"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	source string
	// builtin is where the embedded catalog may be installed.
	builtin string
	out    io.Writer
	logger *slog.Logger
	now    func() time.Time
	intn   func(int) int
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithSource selects the source by short name or path. An empty value means
// the configured default.
func WithSource(source string) Option {
	return func(a *application) {
		a.source = source
	}
}

// WithBuiltinCatalog overrides where the embedded catalog is installed. Only
// a registry entry pointing at this path is bootstrapped.
func WithBuiltinCatalog(path string) Option {
	return func(a *application) {
		a.builtin = path
	}
}

// WithOutput sets where commands and messages are printed.
func WithOutput(w io.Writer) Option {
	return func(a *application) {
		a.out = w
	}
}

// WithLogger replaces the JSON logger built from the configuration.
func WithLogger(logger *slog.Logger) Option {
	return func(a *application) {
		a.logger = logger
	}
}

// WithClock overrides the current time used for daily picks.
func WithClock(now func() time.Time) Option {
	return func(a *application) {
		a.now = now
	}
}

// WithIntn overrides the random source used for picks.
func WithIntn(intn func(int) int) Option {
	return func(a *application) {
		a.intn = intn
	}
}
