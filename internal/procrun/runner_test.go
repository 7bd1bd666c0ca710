package procrun_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/electron-rebuild/internal/procrun"
	"github.com/conn-castle/electron-rebuild/internal/testutil"
)

func TestExecRunnerCapturesOutput(t *testing.T) {
	stub := testutil.WriteStubWithExit(t, t.TempDir(), "tool", "out", "err", 0)

	result, err := procrun.ExecRunner{}.Run(context.Background(), procrun.Command{Name: stub})
	require.NoError(t, err)
	assert.Equal(t, "out", result.Stdout)
	assert.Equal(t, "err", result.Stderr)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "outerr", result.Combined())
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	stub := testutil.WriteStubWithExit(t, t.TempDir(), "tool", "partial", "boom", 3)

	result, err := procrun.ExecRunner{}.Run(context.Background(), procrun.Command{Name: stub, Args: []string{"x"}})
	require.Error(t, err)
	assert.Equal(t, 3, result.ExitCode)

	var exitErr *procrun.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, "boom", exitErr.Result.Stderr)
	assert.Equal(t, "partial", exitErr.Result.Stdout)
	assert.Contains(t, err.Error(), "exited with code 3")

	captured, ok := procrun.CapturedResult(fmt.Errorf("wrapped: %w", err))
	assert.True(t, ok)
	assert.Equal(t, result, captured)
}

func TestExecRunnerMissingExecutable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	result, err := procrun.ExecRunner{}.Run(context.Background(), procrun.Command{Name: missing})
	require.Error(t, err)
	assert.Equal(t, -1, result.ExitCode)
	assert.Contains(t, err.Error(), "start "+missing)
	var exitErr *procrun.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.False(t, exitErr.Started())
}

func TestExecRunnerRequiresName(t *testing.T) {
	_, err := procrun.ExecRunner{}.Run(context.Background(), procrun.Command{Name: " "})
	require.Error(t, err)
}

func TestExecRunnerEnvAndDir(t *testing.T) {
	dir := t.TempDir()
	stub := testutil.WriteScript(t, dir, "show", `printf '%s|%s' "$MARKER" "$(pwd)"`)

	result, err := procrun.ExecRunner{}.Run(context.Background(), procrun.Command{
		Name: stub,
		Dir:  dir,
		Env:  []string{"MARKER=set", "PATH=/usr/bin:/bin"},
	})
	require.NoError(t, err)
	realDir, evalErr := filepath.EvalSymlinks(dir)
	require.NoError(t, evalErr)
	assert.Contains(t, []string{"set|" + dir, "set|" + realDir}, result.Stdout)
}

func TestExecRunnerTee(t *testing.T) {
	stub := testutil.WriteStubWithExit(t, t.TempDir(), "tool", "live", "", 0)
	var tee bytes.Buffer

	result, err := procrun.ExecRunner{Tee: &tee}.Run(context.Background(), procrun.Command{Name: stub})
	require.NoError(t, err)
	assert.Equal(t, "live", result.Stdout)
	assert.Equal(t, "live", tee.String())
}

func TestExecRunnerCanceledContextDoesNotStart(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "ran")
	stub := testutil.WriteScript(t, dir, "tool", ": > '"+marker+"'")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := procrun.ExecRunner{}.Run(ctx, procrun.Command{Name: stub})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, -1, result.ExitCode)
	assert.NoFileExists(t, marker)
}

func TestExecRunnerFinishesAfterCancel(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "done")
	stub := testutil.WriteScript(t, dir, "tool", "sleep 1; : > '"+marker+"'")
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := procrun.ExecRunner{}.Run(ctx, procrun.Command{Name: stub})
	require.NoError(t, err)
	assert.FileExists(t, marker)
}

func TestExecRunnerSignaledChild(t *testing.T) {
	stub := testutil.WriteScript(t, t.TempDir(), "tool", "kill -KILL $$")

	result, err := procrun.ExecRunner{}.Run(context.Background(), procrun.Command{Name: stub})
	require.Error(t, err)
	assert.Equal(t, -1, result.ExitCode)

	var exitErr *procrun.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.True(t, exitErr.Started())
	assert.Contains(t, err.Error(), "terminated")
	assert.NotContains(t, err.Error(), "start ")
}

func TestReportFailure(t *testing.T) {
	_, err := testutil.Fail(procrun.Command{Name: "npm"}, "stdout line\n", "stderr line\n", 1)
	var out bytes.Buffer
	procrun.ReportFailure(&out, fmt.Errorf("rebuild: %w", err))
	assert.Equal(t, "stdout line\nstderr line\n", out.String())

	out.Reset()
	procrun.ReportFailure(&out, errors.New("plain"))
	assert.Empty(t, out.String())

	procrun.ReportFailure(nil, err)
}

func TestCommandString(t *testing.T) {
	cmd := procrun.Command{Name: "npm", Args: []string{"rebuild", "--update-binary"}}
	assert.Equal(t, "npm rebuild --update-binary", cmd.String())
}
