// SPDX-License-Identifier: BSD-3-Clause

package process

import (
	"log/slog"
	"syscall"
)

type config struct {
	useSockets bool
	stopSignal syscall.Signal
	maxRetry   int
	logger     *slog.Logger
}

func defaultConfig() config {
	return config{
		stopSignal: syscall.SIGTERM,
		maxRetry:   5,
		logger:     slog.Default(),
	}
}

// Option configures a Process at construction time. All Process fields
// are immutable after New, per SPEC_FULL.md §4.2.
type Option interface {
	apply(*config)
}

type useSocketsOption struct {
	useSockets bool
}

func (o *useSocketsOption) apply(c *config) {
	c.useSockets = o.useSockets
}

// WithUseSockets inverts the close-on-exec policy for descriptors
// other than stdio: when true, the child inherits the supervisor's
// other open descriptors instead of having them closed, so a caller
// that pre-opens listening sockets can hand them to the child.
func WithUseSockets(useSockets bool) Option {
	return &useSocketsOption{useSockets: useSockets}
}

type stopSignalOption struct {
	signal syscall.Signal
}

func (o *stopSignalOption) apply(c *config) {
	c.stopSignal = o.signal
}

// WithStopSignal sets the signal Kill delivers. Defaults to SIGTERM.
func WithStopSignal(signal syscall.Signal) Option {
	return &stopSignalOption{signal: signal}
}

type maxRetryOption struct {
	maxRetry int
}

func (o *maxRetryOption) apply(c *config) {
	c.maxRetry = o.maxRetry
}

// WithMaxRetry bounds the backoff counter; the Process becomes fatal
// once it reaches this many consecutive failed launches or premature
// deaths. Defaults to 5.
func WithMaxRetry(maxRetry int) Option {
	return &maxRetryOption{maxRetry: maxRetry}
}

type loggerOption struct {
	logger *slog.Logger
}

func (o *loggerOption) apply(c *config) {
	c.logger = o.logger
}

// WithLogger sets the logger the Process reports lifecycle events
// through. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return &loggerOption{logger: logger}
}
