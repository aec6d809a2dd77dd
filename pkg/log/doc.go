// SPDX-License-Identifier: BSD-3-Clause

// Package log provides the structured logging used across the
// supervisor: a single console sink built on zerolog, exposed through
// the standard library's log/slog so the rest of the module never
// imports zerolog directly.
//
// # Basic usage
//
//	l := log.New(log.LevelInfo)
//	log.SetGlobal(l)
//
//	l.Info("service started", "service", "web", "num_processes", 4)
//	l.Warn("duplicate config key", "key", "command")
//	l.Log(context.Background(), log.SlogLevelCritical, "watchdog stalled")
//
// # Level mapping
//
// The supervisor's --loglevel flag accepts five names: critical, error,
// warning, info, debug. log/slog only defines four built-in levels, so
// critical is modeled one severity step above slog.LevelError
// (SlogLevelCritical), the pattern the slog documentation itself
// recommends for a level beyond the stock set.
//
// # Adapters
//
// NewOversightLogger bridges a *slog.Logger into the logger func type
// cirello.io/oversight/v2 expects, so the supervisor's restart tree logs
// through the same sink as everything else. RedirectStdLog does the same
// for code that still logs through the standard library's log package.
package log
