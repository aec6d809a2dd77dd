// SPDX-License-Identifier: BSD-3-Clause

package process

import "errors"

var (
	// ErrUnknownSignal indicates a stop_signal name that does not name a
	// signal this package knows how to deliver.
	ErrUnknownSignal = errors.New("process: unknown signal name")
	// ErrSpawn wraps an OS-level failure to launch the child.
	ErrSpawn = errors.New("process: spawn failed")
	// ErrReap wraps an unexpected failure waiting for the child to exit.
	ErrReap = errors.New("process: reap failed")
)
