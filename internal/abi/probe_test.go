package abi

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/electron-rebuild/internal/procrun"
	"github.com/conn-castle/electron-rebuild/internal/testutil"
)

func respond(stdout, stderr string) *testutil.FakeRunner {
	return &testutil.FakeRunner{Handler: func(procrun.Command) (procrun.Result, error) {
		return procrun.Result{Stdout: stdout, Stderr: stderr}, nil
	}}
}

func TestQueryABIParsesDigits(t *testing.T) {
	runner := respond("64\n", "")
	prober := &Prober{Runner: runner, BaseEnv: []string{"PATH=/usr/bin"}}

	version, err := prober.QueryABI(context.Background(), "/apps/electron")
	require.NoError(t, err)
	assert.Equal(t, ABIVersion("64"), version)
	n, err := version.Int()
	require.NoError(t, err)
	assert.Equal(t, 64, n)

	calls := runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/apps/electron", calls[0].Name)
	assert.Equal(t, []string{"-e", "console.log(process.versions.modules)"}, calls[0].Args)
	for _, key := range []string{"ELECTRON_RUN_AS_NODE", "ATOM_SHELL_INTERNAL_RUN_AS_NODE", "ELECTRON_NO_ATTACH_CONSOLE"} {
		value, ok := procrun.GetEnv(calls[0].Env, key)
		assert.True(t, ok, key)
		assert.Equal(t, "1", value, key)
	}
	path, _ := procrun.GetEnv(calls[0].Env, "PATH")
	assert.Equal(t, "/usr/bin", path)
}

func TestQueryABIInheritsProcessEnv(t *testing.T) {
	t.Setenv("ELECTRON_REBUILD_INHERIT", "parent")
	runner := respond("64", "")

	_, err := (&Prober{Runner: runner}).QueryABI(context.Background(), "electron")
	require.NoError(t, err)

	calls := runner.Calls()
	require.Len(t, calls, 1)
	value, ok := procrun.GetEnv(calls[0].Env, "ELECTRON_REBUILD_INHERIT")
	assert.True(t, ok, "child env must start from the process env")
	assert.Equal(t, "parent", value)
	_, ok = procrun.GetEnv(calls[0].Env, "ELECTRON_RUN_AS_NODE")
	assert.True(t, ok)
}

func TestQueryABIJoinsStdoutAndStderr(t *testing.T) {
	version, err := (&Prober{Runner: respond("8", "9\r\n")}).QueryABI(context.Background(), "electron")
	require.NoError(t, err)
	assert.Equal(t, ABIVersion("89"), version)
}

func TestQueryABIRejectsNonDigits(t *testing.T) {
	for _, output := range []string{"abc", "", "12\nerror", "v64", "64 "} {
		t.Run(output, func(t *testing.T) {
			_, err := (&Prober{Runner: respond(output, "")}).QueryABI(context.Background(), "electron")
			var probeErr *ProbeError
			require.True(t, errors.As(err, &probeErr), "expected ProbeError, got %v", err)
			assert.Nil(t, probeErr.Err)
		})
	}
}

func TestQueryABIProcessFailure(t *testing.T) {
	runner := &testutil.FakeRunner{Handler: func(cmd procrun.Command) (procrun.Result, error) {
		return testutil.Fail(cmd, "", "Segmentation fault", 139)
	}}
	_, err := (&Prober{Runner: runner}).QueryABI(context.Background(), "electron")

	var probeErr *ProbeError
	require.True(t, errors.As(err, &probeErr))
	assert.Equal(t, "Segmentation fault", probeErr.Output)
	var exitErr *procrun.ExitError
	assert.True(t, errors.As(err, &exitErr))
}

func TestQueryABIRequiresRunnerAndExecutable(t *testing.T) {
	_, err := (&Prober{}).QueryABI(context.Background(), "electron")
	assert.Error(t, err)
	_, err = (&Prober{Runner: respond("64", "")}).QueryABI(context.Background(), " ")
	assert.Error(t, err)
}

func TestParseABIVersion(t *testing.T) {
	version, err := ParseABIVersion(" 89 ")
	require.NoError(t, err)
	assert.Equal(t, ABIVersion("89"), version)

	for _, raw := range []string{"", "abc", "8.9", "-1"} {
		_, err := ParseABIVersion(raw)
		var parseErr *ModuleVersionParseError
		assert.True(t, errors.As(err, &parseErr), "input %q", raw)
	}
}
