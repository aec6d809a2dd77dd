// SPDX-License-Identifier: BSD-3-Clause

// Package process implements component B of the supervisor: a single
// OS child process and the state machine governing its lifecycle,
// grounded on original_source/bakufu/process.py's Process class and
// translated from psutil/asyncio polling onto os/exec and
// golang.org/x/sys/unix.
package process

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/aita/bakufu/internal/procfsm"
)

// prematureExitThreshold is the minimum lifetime, per SPEC_FULL.md
// §4.2, below which a death counts against backoff rather than
// resetting it.
const prematureExitThreshold = 3 * time.Second

// reapPollInterval is the sleep between non-blocking waitpid polls.
const reapPollInterval = time.Millisecond

// Process supervises a single OS child launched from a shell command.
// It is safe for concurrent use.
type Process struct {
	command string
	cfg     config

	mu        sync.Mutex
	fsm       *procfsm.FSM
	cmd       *exec.Cmd
	backoff   int
	lastStart time.Time
	lastStop  time.Time
}

// New constructs a Process bound to command, stopped, with zero
// backoff. It does not spawn; call Spawn to launch the child.
func New(command string, opts ...Option) *Process {
	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(&cfg)
	}
	return &Process{
		command: command,
		cfg:     cfg,
		fsm:     procfsm.New(),
	}
}

// State returns the Process's current lifecycle state.
func (p *Process) State() procfsm.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fsm.State()
}

// Pid returns the child's OS pid, or 0 if no child is attached.
func (p *Process) Pid() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pidLocked()
}

func (p *Process) pidLocked() int {
	if p.cmd == nil || p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// Spawn attempts a single launch of the child if the current state
// permits it. It is a no-op if the Process is already running, mid
// transition (starting, stopping), or has reached fatal. On success it
// records last_start and transitions to
// running; on an OS-level spawn failure it increments backoff and
// transitions to backoff, becoming fatal once backoff reaches
// max_retry.
//
// This is the single-attempt model SPEC_FULL.md §9 mandates: Spawn
// makes exactly one attempt and relies on the caller (the watchdog, via
// Service.WatchProcesses) to invoke it again on the next tick.
func (p *Process) Spawn(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.fsm.State() {
	case procfsm.Running, procfsm.Fatal, procfsm.Starting, procfsm.Stopping:
		return nil
	}

	if err := p.fsm.Fire(ctx, procfsm.TriggerSpawn); err != nil {
		p.cfg.logger.Debug("spawn attempted from unexpected state", "state", p.fsm.State(), "error", err)
	}

	cmd := exec.Command("sh", "-c", p.command)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if p.cfg.useSockets {
		cmd.ExtraFiles = inheritableFiles()
	}

	if err := cmd.Start(); err != nil {
		p.backoff++
		if ferr := p.fsm.Fire(ctx, procfsm.TriggerSpawnFail); ferr != nil {
			p.cfg.logger.Debug("spawn-fail transition rejected", "error", ferr)
		}
		if p.backoff >= p.cfg.maxRetry {
			if ferr := p.fsm.Fire(ctx, procfsm.TriggerExhausted); ferr != nil {
				p.cfg.logger.Debug("exhausted transition rejected", "error", ferr)
			}
		}
		return fmt.Errorf("%w: %w", ErrSpawn, err)
	}

	p.cmd = cmd
	p.lastStart = time.Now()
	if err := p.fsm.Fire(ctx, procfsm.TriggerSpawnOK); err != nil {
		return fmt.Errorf("spawn-ok transition rejected: %w", err)
	}
	return nil
}

// Kill delivers the configured stop signal to the attached child and
// moves the Process to stopping. It is a no-op if already stopped or
// if no child is attached. Non-blocking.
func (p *Process) Kill(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fsm.State() == procfsm.Stopped {
		return nil
	}

	pid := p.pidLocked()
	if pid != 0 {
		if err := p.cmd.Process.Signal(p.cfg.stopSignal); err != nil && !isBenignSignalError(err) {
			return err
		}
	}
	if err := p.fsm.Fire(ctx, procfsm.TriggerKill); err != nil {
		p.cfg.logger.Debug("kill transition rejected", "state", p.fsm.State(), "error", err)
	}
	return nil
}

// Reap waits for the attached child to exit, polling with a
// non-blocking waitpid-style query and a short sleep between attempts.
// EINTR is retried; ECHILD is treated as already-reaped. On return it
// clears the worker, resets backoff to zero, and records last_stop. A
// Process in stopping moves to stopped; from any other state (for
// example running, when Reap is called without a prior Kill) the state
// is left unchanged.
func (p *Process) Reap(ctx context.Context) error {
	p.mu.Lock()
	pid := p.pidLocked()
	p.mu.Unlock()

	if pid != 0 {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			var ws unix.WaitStatus
			wpid, err := unix.Wait4(pid, &ws, unix.WNOHANG, nil)
			if err != nil {
				switch err {
				case unix.EINTR:
					continue
				case unix.ECHILD:
				default:
					return fmt.Errorf("%w: %w", ErrReap, err)
				}
				break
			}
			if wpid == pid {
				break
			}
			time.Sleep(reapPollInterval)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.cmd = nil
	p.backoff = 0
	p.lastStop = time.Now()
	if err := p.fsm.Fire(ctx, procfsm.TriggerReap); err != nil {
		p.cfg.logger.Debug("reap transition rejected", "state", p.fsm.State(), "error", err)
	}
	return nil
}

// IsActive is an OS-level liveness probe: it returns false if the
// child is a zombie, dead, or gone, true if it is still running. It is
// safe against races where the child disappears mid-query.
func (p *Process) IsActive() bool {
	p.mu.Lock()
	pid := p.pidLocked()
	p.mu.Unlock()
	if pid == 0 {
		return false
	}
	return isActivePid(pid)
}

// Watch performs one watchdog tick for this Process. It returns true
// if the Process is healthy or not currently expected to be running;
// false if it was expected to run but has died, in which case the
// Process self-transitions per the premature-exit threshold.
func (p *Process) Watch(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fsm.State() != procfsm.Running {
		return true
	}
	pid := p.pidLocked()
	if pid != 0 && isActivePid(pid) {
		return true
	}

	p.lastStop = time.Now()
	if pid != 0 {
		if err := p.cmd.Process.Signal(syscall.SIGTERM); err != nil && !isBenignSignalError(err) {
			p.cfg.logger.Warn("best-effort terminate of dead child failed", "pid", pid, "error", err)
		}
		// The child has already exited; a single non-blocking wait
		// collects it immediately instead of leaving a zombie behind
		// until some later Reap call happens to target this pid.
		var ws unix.WaitStatus
		_, _ = unix.Wait4(pid, &ws, unix.WNOHANG, nil)
		p.cmd = nil
	}

	delay := p.lastStop.Sub(p.lastStart)
	if delay < prematureExitThreshold {
		p.backoff++
		p.cfg.logger.Error("process exited too quickly", "pid", pid, "delay", delay)
		if err := p.fsm.Fire(ctx, procfsm.TriggerDiedFast); err != nil {
			p.cfg.logger.Debug("died-fast transition rejected", "error", err)
		}
		if p.backoff >= p.cfg.maxRetry {
			if err := p.fsm.Fire(ctx, procfsm.TriggerExhausted); err != nil {
				p.cfg.logger.Debug("exhausted transition rejected", "error", err)
			}
		}
	} else {
		p.backoff = 0
		if err := p.fsm.Fire(ctx, procfsm.TriggerDiedSlow); err != nil {
			p.cfg.logger.Debug("died-slow transition rejected", "error", err)
		}
	}
	return false
}

func isBenignSignalError(err error) bool {
	return err == os.ErrProcessDone || err == syscall.ESRCH
}
