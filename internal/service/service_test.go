// SPDX-License-Identifier: BSD-3-Clause

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSpawnsReplicas(t *testing.T) {
	ctx := context.Background()
	svc, err := New("web", WithCommand("sleep 30"), WithNumProcesses(3))
	require.NoError(t, err)

	require.NoError(t, svc.Start(ctx))
	assert.Equal(t, 3, svc.Len())

	require.NoError(t, svc.Stop(ctx))
	assert.Equal(t, 0, svc.Len())
}

func TestStopIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, err := New("web", WithCommand("sleep 30"), WithNumProcesses(1))
	require.NoError(t, err)

	require.NoError(t, svc.Start(ctx))
	require.NoError(t, svc.Stop(ctx))
	require.NoError(t, svc.Stop(ctx))
	assert.Equal(t, 0, svc.Len())
}

func TestWatchProcessesRespawnsDeadMember(t *testing.T) {
	ctx := context.Background()
	svc, err := New("flaky", WithCommand("sh -c 'exit 0'"), WithNumProcesses(1))
	require.NoError(t, err)
	require.NoError(t, svc.Start(ctx))

	time.Sleep(20 * time.Millisecond)
	svc.WatchProcesses(ctx)

	assert.Equal(t, 1, svc.Len())
	require.NoError(t, svc.Stop(ctx))
}

func TestNewRejectsMissingCommand(t *testing.T) {
	_, err := New("broken")
	require.Error(t, err)
}

func TestNewRejectsUnknownSignal(t *testing.T) {
	_, err := New("broken", WithCommand("true"), WithStopSignal("SIGBOGUS"))
	require.Error(t, err)
}
