package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRunCommand(t *testing.T) {
	stdout, stderr, err := execute(t, "run",
		"--producers", "2",
		"--items", "200",
		"--readers", "1",
		"--impls", "log,ring",
		"--log-format", "json",
	)
	require.NoError(t, err)

	assert.Contains(t, stdout, "pushes/s")
	assert.Contains(t, stdout, "log")
	assert.Contains(t, stdout, "ring")
	assert.NotContains(t, stdout, "rwmutex")
	assert.Contains(t, stderr, `"msg":"starting"`)
}

func TestRunCommandFromEnv(t *testing.T) {
	t.Setenv("LOGBENCH_BENCH_PRODUCERS", "1")
	t.Setenv("LOGBENCH_BENCH_ITEMS", "50")
	t.Setenv("LOGBENCH_BENCH_IMPLS", "mutex")

	stdout, _, err := execute(t, "run")
	require.NoError(t, err)
	assert.Contains(t, stdout, "mutex")
}

func TestRunCommandInvalidConfig(t *testing.T) {
	_, _, err := execute(t, "run", "--producers", "1", "--items", "10", "--impls", "skiplist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown implementation")
}
