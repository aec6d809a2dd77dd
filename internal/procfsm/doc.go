// SPDX-License-Identifier: BSD-3-Clause

// Package procfsm models the Process lifecycle state machine described
// in SPEC_FULL.md §4.2 as a github.com/qmuntal/stateless graph: six
// states (stopped, starting, running, stopping, backoff, fatal) and the
// triggers that move between them. internal/process drives this
// machine; procfsm itself holds no business logic (no backoff counters,
// no timestamps) — it exists purely to make illegal transitions
// impossible to fire by accident.
package procfsm
