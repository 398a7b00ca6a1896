package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGrowCommand(t *testing.T) {
	out, err := execute(t, "grow", "--pushes", "4", "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, "LEN  CAP\n0    3\n4    6\n", out)
}

func TestGrowFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vecbench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: error\ngrow:\n  reserve: 10\n  pushes: 11\n"), 0644))

	out, err := execute(t, "grow", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "LEN  CAP\n0    10\n11   20\n", out)

	out, err = execute(t, "grow", "--config", path, "--pushes", "4")
	require.NoError(t, err)
	assert.Equal(t, "LEN  CAP\n0    10\n", out)

	// flag state from the previous run must not leak
	out, err = execute(t, "grow", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "LEN  CAP\n0    10\n11   20\n", out)
}

func TestBadLogLevel(t *testing.T) {
	_, err := execute(t, "grow", "--log-level", "loud")
	require.Error(t, err)
}

func TestSnapshotCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v.snap")
	out, err := execute(t, "snapshot", "--out", path, "--size", "50", "--seed", "3", "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, "snapshot "+path+" ok\n", out)
	_, err = os.Stat(path)
	require.NoError(t, err)
}
