package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/conn-castle/electron-rebuild/internal/procrun"
)

// WriteScript writes an executable shell script with the given body and returns its path.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteScript(t *testing.T, dir string, name string, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := []byte("#!/bin/sh\n" + body + "\n")
	if err := os.WriteFile(path, content, 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

// WriteStubWithExit writes a script that prints stdout and stderr and exits with exitCode.
func WriteStubWithExit(t *testing.T, dir string, name string, stdout string, stderr string, exitCode int) string {
	t.Helper()
	body := fmt.Sprintf("printf '%%s' '%s'\nprintf '%%s' '%s' >&2\nexit %d", stdout, stderr, exitCode)
	return WriteScript(t, dir, name, body)
}

// WriteCanary creates the canary file for version under dir/.node-gyp/<prefix+version>.
// prefix is "" for the plain spelling or "iojs-" for the io.js spelling.
func WriteCanary(t *testing.T, dir string, prefix string, version string) {
	t.Helper()
	canaryDir := filepath.Join(dir, ".node-gyp", prefix+version)
	if err := os.MkdirAll(canaryDir, 0o755); err != nil {
		t.Fatalf("mkdir canary dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(canaryDir, "common.gypi"), []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("write canary: %v", err)
	}
}

// WriteFile writes content to dir/name, creating parent directories.
func WriteFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// RunFunc scripts the response of a FakeRunner.
type RunFunc func(cmd procrun.Command) (procrun.Result, error)

// FakeRunner records every command it is asked to run.
// Responses come from Handler; with no Handler every command succeeds with empty output.
type FakeRunner struct {
	Handler RunFunc

	mu    sync.Mutex
	calls []procrun.Command
}

// Run records cmd and returns the scripted response.
func (f *FakeRunner) Run(_ context.Context, cmd procrun.Command) (procrun.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	f.mu.Unlock()
	if f.Handler == nil {
		return procrun.Result{}, nil
	}
	return f.Handler(cmd)
}

// Calls returns a copy of the recorded commands.
func (f *FakeRunner) Calls() []procrun.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]procrun.Command(nil), f.calls...)
}

// Fail builds the error a real runner returns for a non-zero exit.
func Fail(cmd procrun.Command, stdout string, stderr string, code int) (procrun.Result, error) {
	result := procrun.Result{Stdout: stdout, Stderr: stderr, ExitCode: code}
	return result, &procrun.ExitError{Command: cmd, Result: result, Err: fmt.Errorf("exit status %d", code)}
}

// HasArg reports whether args contains want.
func HasArg(args []string, want string) bool {
	for _, arg := range args {
		if arg == want {
			return true
		}
	}
	return false
}

// ScriptArg returns the value following "-e" in args, or "".
func ScriptArg(args []string) string {
	for i, arg := range args {
		if arg == "-e" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// Contains reports whether the inline script of cmd contains substr.
func Contains(cmd procrun.Command, substr string) bool {
	return strings.Contains(ScriptArg(cmd.Args), substr)
}
