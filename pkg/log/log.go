// SPDX-License-Identifier: BSD-3-Clause

package log

import (
	"log/slog"
	"sync/atomic"

	"github.com/rs/zerolog"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

var global atomic.Pointer[slog.Logger]

// New creates a structured logger that writes human-readable console
// output through zerolog, filtered to the given minimum level. This is
// the logger the CLI builds from --loglevel and installs as the global
// logger for the rest of the process.
func New(minLevel Level) *slog.Logger {
	zeroLogger := zerolog.
		New(zerolog.NewConsoleWriter()).
		With().
		Timestamp().
		Logger()

	handler := slogzerolog.Option{
		Level:  minLevel.slogLevel(),
		Logger: &zeroLogger,
	}.NewZerologHandler()

	return slog.New(handler)
}

// NewDefault creates a logger at the default minimum severity, warning,
// matching the supervisor's documented --loglevel default.
func NewDefault() *slog.Logger {
	return New(LevelWarning)
}

// SetGlobal installs l as the logger returned by Global. The CLI calls
// this once, early, so every package below it can fetch the same
// configured logger without threading it through every constructor.
func SetGlobal(l *slog.Logger) {
	global.Store(l)
}

// Global returns the logger installed by SetGlobal, or a default logger
// if none has been installed yet.
func Global() *slog.Logger {
	if l := global.Load(); l != nil {
		return l
	}
	return NewDefault()
}
