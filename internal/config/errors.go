// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"errors"
	"fmt"
)

// ErrParse is the sentinel every malformed-input error wraps. Callers
// that only care whether loading the config failed because of bad
// syntax (as opposed to, say, a missing file) can test with
// errors.Is(err, config.ErrParse).
var ErrParse = errors.New("config parse error")

// ParseError carries the human-readable message and the rune offset at
// which scanning or parsing failed. Its Error() text matches the style
// of the grammar's python ancestor (config.py's ParseError messages),
// so a malformed config produces the same diagnostic regardless of
// which implementation rejected it.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (at offset %d)", e.Msg, e.Pos)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

func parseErrorf(pos int, format string, args ...any) error {
	return &ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
