// SPDX-License-Identifier: BSD-3-Clause

package log

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level is the minimum severity a logger should emit. It mirrors the
// five-level taxonomy the supervisor's --loglevel flag accepts.
type Level int

const (
	// LevelDebug emits everything, including per-tick watchdog detail.
	LevelDebug Level = iota
	// LevelInfo emits lifecycle events: spawns, reaps, shutdown.
	LevelInfo
	// LevelWarning emits recoverable anomalies: duplicate config keys, premature exits.
	LevelWarning
	// LevelError emits anomalies that leave a Process or Service degraded.
	LevelError
	// LevelCritical emits anomalies that leave the supervisor itself unable to continue.
	LevelCritical
)

// ParseLevel parses one of critical, error, warning, info, debug.
// Matching is case-insensitive. An unrecognized name returns ErrLogLevel.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	case "critical":
		return LevelCritical, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrLogLevel, s)
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// slogLevel maps Level onto log/slog's level space. slog.LevelError is 8;
// critical is modeled one tier above it, the way the stdlib docs suggest
// for a severity beyond the built-in four.
func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarning:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelCritical:
		return slog.LevelError + 4
	default:
		return slog.LevelWarn
	}
}

// LevelCritical as a slog.Level, for call sites that want to log at
// LevelCritical through a *slog.Logger directly (slog has no named
// "Critical" method).
const SlogLevelCritical = slog.LevelError + 4
