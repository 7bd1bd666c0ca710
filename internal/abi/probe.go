// Package abi reads native module ABI versions and decides whether a rebuild is needed.
package abi

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/conn-castle/electron-rebuild/internal/messages"
	"github.com/conn-castle/electron-rebuild/internal/procrun"
)

// ABIVersion is a native module ABI identifier (process.versions.modules).
// Two versions are compatible only when their digit strings are equal.
type ABIVersion string

// Int returns the numeric value of v.
func (v ABIVersion) Int() (int, error) {
	return strconv.Atoi(string(v))
}

func (v ABIVersion) String() string {
	return string(v)
}

const probeScript = "console.log(process.versions.modules)"

var digitsOnly = regexp.MustCompile(`^\d+$`)

var newlines = strings.NewReplacer("\r", "", "\n", "")

// ParseABIVersion validates a caller-supplied module version.
func ParseABIVersion(raw string) (ABIVersion, error) {
	trimmed := strings.TrimSpace(raw)
	if !digitsOnly.MatchString(trimmed) {
		return "", &ModuleVersionParseError{Value: raw}
	}
	return ABIVersion(trimmed), nil
}

// Prober asks runtime executables for their module ABI version.
type Prober struct {
	Runner procrun.Runner
	// BaseEnv is extended with the run-as-node markers for every probe; nil = the current process env.
	BaseEnv []string
}

// QueryABI runs executable in plain Node mode and parses the module version it prints.
func (p *Prober) QueryABI(ctx context.Context, executable string) (ABIVersion, error) {
	if p == nil || p.Runner == nil {
		return "", errors.New(messages.ABIRunnerRequired)
	}
	if strings.TrimSpace(executable) == "" {
		return "", errors.New(messages.ABIExecutableRequired)
	}
	cmd := procrun.Command{
		Name: executable,
		Args: []string{"-e", probeScript},
		Env:  procrun.MergeEnv(procrun.InheritEnv(p.BaseEnv), procrun.RunAsNodeEnv()),
	}
	result, err := p.Runner.Run(ctx, cmd)
	if err != nil {
		return "", &ProbeError{Executable: executable, Output: result.Combined(), Err: err}
	}
	output := newlines.Replace(result.Combined())
	if !digitsOnly.MatchString(output) {
		return "", &ProbeError{Executable: executable, Output: output}
	}
	return ABIVersion(output), nil
}
