// Package procrun runs external tools with an explicit environment and captured output.
package procrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/conn-castle/electron-rebuild/internal/messages"
)

// Command describes a single subprocess invocation.
type Command struct {
	Name string   // Executable name or path (required)
	Args []string // Arguments, excluding Name
	Dir  string   // Working directory (empty = current)
	Env  []string // Full environment in KEY=VALUE form (nil = inherit)
}

// String renders the command line for diagnostics.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Result holds the captured output of a finished subprocess.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Combined returns stdout followed by stderr.
func (r Result) Combined() string {
	return r.Stdout + r.Stderr
}

// Runner executes commands and waits for them to exit.
type Runner interface {
	// Run executes cmd and returns its captured output.
	// Non-zero exits and spawn failures return an *ExitError that still carries
	// whatever output was captured.
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExitError reports a subprocess that failed to start or exited non-zero.
type ExitError struct {
	Command Command
	Result  Result
	Err     error
}

func (e *ExitError) Error() string {
	if e.Result.ExitCode >= 0 {
		return fmt.Sprintf(messages.ProcessFailedFmt, e.Command.Name, e.Result.ExitCode, e.Err)
	}
	if e.Started() {
		return fmt.Sprintf(messages.ProcessSignaledFmt, e.Command.Name, e.Err)
	}
	return fmt.Sprintf(messages.ProcessSpawnFailedFmt, e.Command.Name, e.Err)
}

// Started reports whether the process ran at all before failing.
func (e *ExitError) Started() bool {
	if e.Result.ExitCode >= 0 {
		return true
	}
	var exitErr *exec.ExitError
	return errors.As(e.Err, &exitErr)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct {
	// Tee, when set, receives a live copy of the child's stdout and stderr.
	Tee io.Writer
}

// Run starts cmd, waits for it to exit, and captures stdout and stderr separately.
// A context that is already done prevents the start; a running child is never killed.
func (r ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	if strings.TrimSpace(c.Name) == "" {
		return Result{ExitCode: -1}, errors.New(messages.ProcessNameRequired)
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			result := Result{ExitCode: -1}
			return result, &ExitError{Command: c, Result: result, Err: err}
		}
	}

	cmd := exec.Command(c.Name, c.Args...)
	cmd.Dir = c.Dir
	if c.Env != nil {
		cmd.Env = c.Env
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = r.writer(&stdout)
	cmd.Stderr = r.writer(&stderr)

	err := cmd.Run()
	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode(cmd, err),
	}
	if err != nil {
		return result, &ExitError{Command: c, Result: result, Err: err}
	}
	return result, nil
}

func (r ExecRunner) writer(buf *bytes.Buffer) io.Writer {
	if r.Tee == nil {
		return buf
	}
	return io.MultiWriter(buf, r.Tee)
}

// exitCode returns the process exit code, or -1 when it never started or died from a signal.
func exitCode(cmd *exec.Cmd, err error) int {
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	if err == nil {
		return 0
	}
	return -1
}

// ReportFailure prints the output captured by a failed subprocess to w.
// Errors that do not wrap an *ExitError are ignored.
func ReportFailure(w io.Writer, err error) {
	if w == nil {
		return
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		return
	}
	if out := strings.TrimRight(exitErr.Result.Stdout, "\n"); out != "" {
		_, _ = fmt.Fprintln(w, out)
	}
	if out := strings.TrimRight(exitErr.Result.Stderr, "\n"); out != "" {
		_, _ = fmt.Fprintln(w, out)
	}
}

// CapturedResult returns the output carried by err when it wraps an *ExitError.
func CapturedResult(err error) (Result, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Result, true
	}
	return Result{}, false
}
