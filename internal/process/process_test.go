// SPDX-License-Identifier: BSD-3-Clause

package process

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aita/bakufu/internal/procfsm"
)

func TestSpawnReapLifecycle(t *testing.T) {
	ctx := context.Background()
	p := New("sleep 30")

	require.NoError(t, p.Spawn(ctx))
	assert.Equal(t, procfsm.Running, p.State())
	assert.NotZero(t, p.Pid())
	assert.True(t, p.IsActive())

	require.NoError(t, p.Kill(ctx))
	assert.Equal(t, procfsm.Stopping, p.State())

	require.NoError(t, p.Reap(ctx))
	assert.Equal(t, procfsm.Stopped, p.State())
	assert.Zero(t, p.Pid())
}

func TestSpawnIsANoOpWhenAlreadyRunning(t *testing.T) {
	ctx := context.Background()
	p := New("sleep 30")
	require.NoError(t, p.Spawn(ctx))
	pidBefore := p.Pid()

	require.NoError(t, p.Spawn(ctx))
	assert.Equal(t, pidBefore, p.Pid())

	require.NoError(t, p.Kill(ctx))
	require.NoError(t, p.Reap(ctx))
}

func TestWatchDetectsPrematureDeath(t *testing.T) {
	ctx := context.Background()
	p := New("true")

	require.NoError(t, p.Spawn(ctx))
	require.NoError(t, p.Reap(ctx))

	// The reap above collected the exit itself, so p has no child left
	// for Watch to observe (Reap without a prior Kill leaves the state
	// at running); exercise Watch's own death-detection path with a
	// second process whose exit is left for Watch to find.
	p2 := New("sh -c 'exit 0'")
	require.NoError(t, p2.Spawn(ctx))
	time.Sleep(20 * time.Millisecond)

	healthy := p2.Watch(ctx)
	assert.False(t, healthy)
	assert.Equal(t, procfsm.Backoff, p2.State())
}

func TestBackoffReachesFatalAfterMaxRetry(t *testing.T) {
	ctx := context.Background()
	p := New("sh -c 'exit 1'", WithMaxRetry(2))

	require.NoError(t, p.Spawn(ctx))
	time.Sleep(20 * time.Millisecond)
	p.Watch(ctx)
	assert.Equal(t, procfsm.Backoff, p.State())

	require.NoError(t, p.Spawn(ctx))
	time.Sleep(20 * time.Millisecond)
	p.Watch(ctx)

	assert.Equal(t, procfsm.Fatal, p.State())
	require.NoError(t, p.Spawn(ctx))
	assert.Equal(t, procfsm.Fatal, p.State())
}

func TestKillIsNoOpWhenStopped(t *testing.T) {
	ctx := context.Background()
	p := New("true")
	require.NoError(t, p.Kill(ctx))
	assert.Equal(t, procfsm.Stopped, p.State())
}

func TestParseSignal(t *testing.T) {
	sig, err := ParseSignal("SIGTERM")
	require.NoError(t, err)
	assert.Equal(t, "terminated", sig.String())

	_, err = ParseSignal("SIGBOGUS")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownSignal)
}
