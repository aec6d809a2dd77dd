// SPDX-License-Identifier: BSD-3-Clause

package log

import "errors"

var (
	// ErrLogLevel indicates an invalid log level name.
	ErrLogLevel = errors.New("invalid log level")
)
