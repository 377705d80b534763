// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

// Package logging provides centralized zerolog-based logging for ToolVerse.
//
// A single global logger is configured once at startup and shared by every
// component. Components that want a fixed field set derive a child logger:
//
//	syncLog := logging.WithComponent("datasync")
//	syncLog.Info().Int("tools", n).Msg("Sync completed")
//
// Request-scoped logging goes through Ctx, which attaches the request and
// correlation IDs stored in the context:
//
//	logging.Ctx(ctx).Warn().Err(err).Msg("Falling back to static dataset")
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration. Zero values fall back to
// DefaultConfig, except Timestamp and Caller.
type Config struct {
	Level     string // trace, debug, info, warn, error, disabled
	Format    string // json or console
	Caller    bool
	Timestamp bool
	// App is attached to every line as "app" when set, so server and CLI
	// output can share a log sink.
	App    string
	Output io.Writer
}

// DefaultConfig is what the package uses before Init: JSON at info level
// on stderr.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Timestamp: true,
		Output:    os.Stderr,
	}
}

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

//nolint:gochecknoinits // logging must work before Init is called
func init() {
	initLogger(DefaultConfig())
}

// Init replaces the global logger. Calling it again reconfigures.
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	initLogger(cfg)
}

// initLogger must be called with mu held.
func initLogger(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.MessageFieldName = "message"

	output := cfg.Output
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: "15:04:05"}
	}

	ctx := zerolog.New(output).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	if cfg.App != "" {
		ctx = ctx.Str("app", cfg.App)
	}
	log = ctx.Logger()
}

// parseLevel accepts zerolog level names plus "warning". Anything else,
// including "", is info.
func parseLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		return zerolog.WarnLevel
	}
	if level == "" {
		return zerolog.InfoLevel
	}
	l, err := zerolog.ParseLevel(level)
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}

// SetLevelString changes the level without rebuilding the logger. Used by
// config hot reload.
func SetLevelString(level string) {
	zerolog.SetGlobalLevel(parseLevel(level))
}

// With starts a child logger context from the global logger.
func With() zerolog.Context {
	mu.RLock()
	defer mu.RUnlock()
	return log.With()
}

// WithComponent returns a child logger tagged with a component name.
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

// Debug starts a debug-level event on the global logger.
func Debug() *zerolog.Event { return current().Debug() }

// Info starts an info-level event on the global logger.
func Info() *zerolog.Event { return current().Info() }

// Warn starts a warn-level event on the global logger.
func Warn() *zerolog.Event { return current().Warn() }

// Error starts an error-level event on the global logger.
func Error() *zerolog.Event { return current().Error() }

// Fatal starts a fatal-level event; the process exits after it is written.
func Fatal() *zerolog.Event { return current().Fatal() }
