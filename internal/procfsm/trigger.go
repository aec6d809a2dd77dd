// SPDX-License-Identifier: BSD-3-Clause

package procfsm

// Trigger is an event fed into the Process state machine. Process
// itself decides which trigger applies to a given OS observation
// (spawn result, watchdog probe, reap completion); the FSM only
// enforces that the transition is legal from the current state.
type Trigger string

const (
	// TriggerSpawn attempts to start the child: stopped/backoff → starting.
	TriggerSpawn Trigger = "spawn"
	// TriggerSpawnOK records a successful launch: starting → running.
	TriggerSpawnOK Trigger = "spawn_ok"
	// TriggerSpawnFail records a failed launch: starting → backoff.
	TriggerSpawnFail Trigger = "spawn_fail"
	// TriggerKill begins graceful termination: running → stopping.
	TriggerKill Trigger = "kill"
	// TriggerReap records that the child has been waited on: stopping → stopped.
	TriggerReap Trigger = "reap"
	// TriggerDiedFast records an unexpected death under the 3-second
	// premature-exit threshold: running → backoff.
	TriggerDiedFast Trigger = "died_fast"
	// TriggerDiedSlow records an unexpected death past the threshold: running → stopped.
	TriggerDiedSlow Trigger = "died_slow"
	// TriggerExhausted records that max_retry has been reached: backoff → fatal.
	TriggerExhausted Trigger = "exhausted"
)
