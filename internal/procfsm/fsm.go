// SPDX-License-Identifier: BSD-3-Clause

// Package procfsm defines the Process state machine from SPEC_FULL.md
// §4.2 on top of github.com/qmuntal/stateless, in the reduced style of
// u-bmc's pkg/state.FSM (stripped of the persistence/broadcast/tracing
// hooks that package layered on for BMC hardware state — this machine
// only needs to answer "is this transition legal").
package procfsm

import (
	"context"
	"fmt"
	"sync"

	"github.com/qmuntal/stateless"
)

// FSM is a single Process's state machine. It is safe for concurrent
// use; Fire serializes against State.
type FSM struct {
	mu      sync.RWMutex
	machine *stateless.StateMachine
}

// New builds a Process state machine starting in Stopped, wired with
// exactly the transitions drawn in SPEC_FULL.md §4.2's diagram.
func New() *FSM {
	m := stateless.NewStateMachine(Stopped)

	m.Configure(Stopped).
		Permit(TriggerSpawn, Starting)

	m.Configure(Starting).
		Permit(TriggerSpawnOK, Running).
		Permit(TriggerSpawnFail, Backoff)

	m.Configure(Running).
		Permit(TriggerKill, Stopping).
		Permit(TriggerDiedFast, Backoff).
		Permit(TriggerDiedSlow, Stopped)

	m.Configure(Stopping).
		Permit(TriggerReap, Stopped)

	m.Configure(Backoff).
		Permit(TriggerSpawn, Starting).
		PermitReentry(TriggerSpawnFail).
		Permit(TriggerExhausted, Fatal)

	m.Configure(Fatal)

	return &FSM{machine: m}
}

// State returns the machine's current state.
func (f *FSM) State() State {
	f.mu.RLock()
	defer f.mu.RUnlock()
	s, err := f.machine.State(context.Background())
	if err != nil {
		return Fatal
	}
	return s.(State)
}

// CanFire reports whether trigger is permitted from the current state.
func (f *FSM) CanFire(trigger Trigger) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	ok, err := f.machine.CanFire(trigger)
	return err == nil && ok
}

// Fire applies trigger, returning ErrInvalidTransition if it is not
// permitted from the current state.
func (f *FSM) Fire(ctx context.Context, trigger Trigger) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	before, _ := f.machine.State(ctx)
	if err := f.machine.FireCtx(ctx, trigger); err != nil {
		return fmt.Errorf("%w: %s from %v: %w", ErrInvalidTransition, trigger, before, err)
	}
	return nil
}
