// SPDX-License-Identifier: BSD-3-Clause

// Package service implements component C of the supervisor: a named
// replication group of identical Processes, grounded on
// original_source/bakufu/service.py's pid-keyed process map and
// start/stop shape, upgraded to hold internal/process.Process objects
// (the original held raw Popen handles) so each member gets the full
// Process state machine and respawn-in-place applies per member.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/arunsworld/nursery"

	"github.com/aita/bakufu/internal/process"
)

// Service owns a replication group of Processes sharing one command
// line, indexed by pid. The pid map is the source of truth for
// membership; a respawned member is rekeyed under its new pid so no
// stale entry outlives its Process.
type Service struct {
	name string
	cfg  config

	mu        sync.Mutex
	processes map[int]*process.Process
	stopping  bool
}

// New constructs a Service named name with the given options. It does
// not start any Processes; call Start for that.
func New(name string, opts ...Option) (*Service, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(&cfg)
	}
	if cfg.command == "" {
		return nil, fmt.Errorf("service %q: command is required", name)
	}
	if cfg.numProcesses < 1 {
		return nil, fmt.Errorf("service %q: num_processes must be >= 1, got %d", name, cfg.numProcesses)
	}
	if _, err := process.ParseSignal(cfg.stopSignal); err != nil {
		return nil, fmt.Errorf("service %q: %w", name, err)
	}

	return &Service{
		name:      name,
		cfg:       cfg,
		processes: make(map[int]*process.Process),
	}, nil
}

// Name returns the Service's configured name.
func (s *Service) Name() string {
	return s.name
}

// Len reports the current number of member Processes (live or mid-respawn).
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.processes)
}

func (s *Service) newMember() *process.Process {
	sig, _ := process.ParseSignal(s.cfg.stopSignal)
	return process.New(s.cfg.command,
		process.WithStopSignal(sig),
		process.WithMaxRetry(s.cfg.maxRetry),
		process.WithLogger(s.cfg.logger),
	)
}

// Start spawns num_processes Processes and indexes each by its pid.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	s.stopping = false
	s.mu.Unlock()

	for i := 0; i < s.cfg.numProcesses; i++ {
		p := s.newMember()
		if err := p.Spawn(ctx); err != nil {
			s.cfg.logger.Error("failed to spawn process", "service", s.name, "error", err)
		}
		s.mu.Lock()
		s.processes[p.Pid()] = p
		s.mu.Unlock()
	}

	s.cfg.logger.Info("service started", "service", s.name, "num_processes", s.cfg.numProcesses)
	return nil
}

// Stop sends the stop signal to every member Process, then concurrently
// reaps all of them; it completes when every child has exited.
// Idempotent: a Service already stopped returns immediately.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	if len(s.processes) == 0 {
		s.stopping = false
		s.mu.Unlock()
		return nil
	}
	s.stopping = true
	members := make([]*process.Process, 0, len(s.processes))
	for _, p := range s.processes {
		members = append(members, p)
	}
	s.mu.Unlock()

	s.cfg.logger.Info("stopping service", "service", s.name)

	jobs := make([]nursery.ConcurrentJob, 0, len(members))
	for _, p := range members {
		p := p
		jobs = append(jobs, func(ctx context.Context, errChan chan error) {
			if err := p.Kill(ctx); err != nil {
				errChan <- fmt.Errorf("kill pid=%d: %w", p.Pid(), err)
				return
			}
			if err := p.Reap(ctx); err != nil {
				errChan <- fmt.Errorf("reap pid=%d: %w", p.Pid(), err)
			}
		})
	}
	err := nursery.RunConcurrentlyWithContext(ctx, jobs...)

	s.mu.Lock()
	s.processes = make(map[int]*process.Process)
	s.stopping = false
	s.mu.Unlock()

	s.cfg.logger.Info("service stopped", "service", s.name)
	return err
}

// WatchProcesses asks every member Process for its health and respawns
// a replacement in place for any that report unhealthy, rekeying the
// pid map under the new pid and logging the event. It is a no-op while
// a Stop is in progress, so the watchdog cannot race a shutdown back
// toward running.
func (s *Service) WatchProcesses(ctx context.Context) {
	s.mu.Lock()
	if s.stopping {
		s.mu.Unlock()
		return
	}
	members := make(map[int]*process.Process, len(s.processes))
	for pid, p := range s.processes {
		members[pid] = p
	}
	s.mu.Unlock()

	for oldPid, p := range members {
		if !p.Watch(ctx) {
			s.cfg.logger.Warn("process died, respawning", "service", s.name, "pid", oldPid)
		}

		// Spawn is a no-op when p is already running or fatal, and the
		// sole retry attempt when p is sitting in backoff or stopped
		// from the Watch call above (or from a prior tick) — this is
		// what drives backoff's repeated attempts across ticks, per
		// the single-attempt-per-tick model.
		if err := p.Spawn(ctx); err != nil {
			s.cfg.logger.Error("respawn failed", "service", s.name, "error", err)
		}

		newPid := p.Pid()
		if newPid == oldPid {
			continue
		}
		s.mu.Lock()
		if s.stopping {
			s.mu.Unlock()
			return
		}
		delete(s.processes, oldPid)
		s.processes[newPid] = p
		s.mu.Unlock()
	}
}
