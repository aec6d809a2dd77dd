// SPDX-License-Identifier: BSD-3-Clause

package procfsm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHappyPathLifecycle(t *testing.T) {
	ctx := context.Background()
	f := New()
	assert.Equal(t, Stopped, f.State())

	require.NoError(t, f.Fire(ctx, TriggerSpawn))
	assert.Equal(t, Starting, f.State())

	require.NoError(t, f.Fire(ctx, TriggerSpawnOK))
	assert.Equal(t, Running, f.State())

	require.NoError(t, f.Fire(ctx, TriggerKill))
	assert.Equal(t, Stopping, f.State())

	require.NoError(t, f.Fire(ctx, TriggerReap))
	assert.Equal(t, Stopped, f.State())
}

func TestBackoffUntilFatal(t *testing.T) {
	ctx := context.Background()
	f := New()

	require.NoError(t, f.Fire(ctx, TriggerSpawn))
	require.NoError(t, f.Fire(ctx, TriggerSpawnFail))
	assert.Equal(t, Backoff, f.State())

	require.NoError(t, f.Fire(ctx, TriggerSpawnFail))
	assert.Equal(t, Backoff, f.State())

	require.NoError(t, f.Fire(ctx, TriggerExhausted))
	assert.Equal(t, Fatal, f.State())

	assert.False(t, f.CanFire(TriggerSpawn))
}

func TestPrematureDeathGoesToBackoffNotStopped(t *testing.T) {
	ctx := context.Background()
	f := New()
	require.NoError(t, f.Fire(ctx, TriggerSpawn))
	require.NoError(t, f.Fire(ctx, TriggerSpawnOK))

	require.NoError(t, f.Fire(ctx, TriggerDiedFast))
	assert.Equal(t, Backoff, f.State())
}

func TestLongLivedDeathGoesToStopped(t *testing.T) {
	ctx := context.Background()
	f := New()
	require.NoError(t, f.Fire(ctx, TriggerSpawn))
	require.NoError(t, f.Fire(ctx, TriggerSpawnOK))

	require.NoError(t, f.Fire(ctx, TriggerDiedSlow))
	assert.Equal(t, Stopped, f.State())
}

func TestInvalidTransitionIsRejected(t *testing.T) {
	ctx := context.Background()
	f := New()
	err := f.Fire(ctx, TriggerKill)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, Stopped, f.State())
}

func TestBackoffCanRetrySpawn(t *testing.T) {
	ctx := context.Background()
	f := New()
	require.NoError(t, f.Fire(ctx, TriggerSpawn))
	require.NoError(t, f.Fire(ctx, TriggerSpawnFail))

	require.NoError(t, f.Fire(ctx, TriggerSpawn))
	assert.Equal(t, Starting, f.State())
}
