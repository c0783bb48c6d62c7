// Package logger provides slog construction helpers and nil-safe attribute
// constructors shared by every component of the service.
package logger

import (
	"log/slog"
	"os"
)

type options struct {
	appName string
	level   slog.Level
	json    bool
	output  *os.File
}

// Option configures logger construction.
type Option func(*options)

// WithDevelopment configures human-readable text output at debug level.
func WithDevelopment(appName string) Option {
	return func(o *options) {
		o.appName = appName
		o.level = slog.LevelDebug
		o.json = false
	}
}

// WithProduction configures JSON output at info level.
func WithProduction(appName string) Option {
	return func(o *options) {
		o.appName = appName
		o.level = slog.LevelInfo
		o.json = true
	}
}

// WithLevel overrides the minimum log level.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// New creates a logger writing to stdout. Defaults to text output at info
// level when no options are given.
func New(opts ...Option) *slog.Logger {
	o := options{
		level:  slog.LevelInfo,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	handlerOpts := &slog.HandlerOptions{Level: o.level}

	var handler slog.Handler
	if o.json {
		handler = slog.NewJSONHandler(o.output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(o.output, handlerOpts)
	}

	log := slog.New(handler)
	if o.appName != "" {
		log = log.With(slog.String("app", o.appName))
	}
	return log
}
