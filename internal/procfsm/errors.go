// SPDX-License-Identifier: BSD-3-Clause

package procfsm

import "errors"

// ErrInvalidTransition is returned by Fire when the requested trigger
// is not permitted from the machine's current state.
var ErrInvalidTransition = errors.New("procfsm: invalid transition")
