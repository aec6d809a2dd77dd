// SPDX-License-Identifier: BSD-3-Clause

package supervisor

import (
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bakufud.conf")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestNewBuildsServicesFromConfig(t *testing.T) {
	path := writeConfig(t, `
		service web {
			command = "sleep 30";
			num_processes = 2;
		}
		service worker {
			command = "sleep 30";
			stop_signal = "SIGINT";
		}
	`)

	sv, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"web", "worker"}, sv.Services())
}

func TestNewRejectsMissingServiceSection(t *testing.T) {
	path := writeConfig(t, `other { x = 1; }`)

	_, err := New(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoServiceSection)
}

func TestNewRejectsMissingCommand(t *testing.T) {
	path := writeConfig(t, `service broken { num_processes = 1; }`)

	_, err := New(path)
	require.Error(t, err)
}

func TestRunStopsOnSIGTERM(t *testing.T) {
	path := writeConfig(t, `
		service web {
			command = "sleep 30";
			num_processes = 1;
		}
	`)

	sv, err := New(path, WithWatchdogInterval(10*time.Millisecond))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- sv.Run(context.Background())
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after SIGTERM")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	path := writeConfig(t, `
		service web {
			command = "sleep 30";
			num_processes = 1;
		}
	`)

	sv, err := New(path, WithWatchdogInterval(10*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- sv.Run(ctx)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after context cancel")
	}
}
