// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunVersion(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"--version"}, &out, &errOut)
	assert.Equal(t, 0, code)
	assert.Equal(t, version+"\n", out.String())
}

func TestRunMissingConfigPrintsUsage(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run(nil, &out, &errOut)
	assert.Equal(t, 0, code)
	assert.Contains(t, errOut.String(), "usage: bakufud")
}

func TestRunRejectsUnknownLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bakufud.conf")
	require.NoError(t, os.WriteFile(path, []byte(`service web { command = "true"; }`), 0o644))

	var out, errOut bytes.Buffer
	code := run([]string{"--loglevel", "bogus", path}, &out, &errOut)
	assert.Equal(t, 1, code)
}

func TestRunRejectsMissingConfigFile(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{filepath.Join(t.TempDir(), "does-not-exist.conf")}, &out, &errOut)
	assert.Equal(t, 1, code)
}
