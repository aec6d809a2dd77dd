// SPDX-License-Identifier: BSD-3-Clause

package supervisor

import (
	"log/slog"
	"time"
)

// config holds a Supervisor's construction options, grounded on
// service/operator/config.go's functional-options struct.
type config struct {
	watchdogInterval time.Duration
	childTimeout     time.Duration
	logger           *slog.Logger
}

func defaultConfig() config {
	return config{
		watchdogInterval: 100 * time.Millisecond,
		childTimeout:     10 * time.Second,
		logger:           slog.Default(),
	}
}

// Option configures a Supervisor at construction time.
type Option interface {
	apply(*config)
}

type watchdogIntervalOption struct{ d time.Duration }

func (o *watchdogIntervalOption) apply(c *config) { c.watchdogInterval = o.d }

// WithWatchdogInterval sets the tick period between liveness sweeps
// across all Services. Defaults to 100ms per SPEC_FULL.md §4.4.
func WithWatchdogInterval(d time.Duration) Option {
	return &watchdogIntervalOption{d: d}
}

type childTimeoutOption struct{ d time.Duration }

func (o *childTimeoutOption) apply(c *config) { c.childTimeout = o.d }

// WithChildTimeout bounds how long the oversight tree waits for a
// Service's run-loop to shut down before considering it unresponsive.
func WithChildTimeout(d time.Duration) Option {
	return &childTimeoutOption{d: d}
}

type loggerOption struct{ logger *slog.Logger }

func (o *loggerOption) apply(c *config) { c.logger = o.logger }

// WithLogger sets the logger the Supervisor and every Service it owns
// report lifecycle events through.
func WithLogger(logger *slog.Logger) Option {
	return &loggerOption{logger: logger}
}
