package abi

import (
	"fmt"

	"github.com/conn-castle/electron-rebuild/internal/messages"
)

// ProbeError reports an ABI probe whose output was not a bare module version.
// Output holds the raw text for diagnostics; Err is set when the probe process failed.
type ProbeError struct {
	Executable string
	Output     string
	Err        error
}

func (e *ProbeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(messages.ABIProbeSpawnFailedFmt, e.Executable, e.Err)
	}
	return fmt.Sprintf(messages.ABIProbeFailedFmt, e.Executable, e.Output)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// ModuleVersionParseError reports an explicitly supplied module version that is not numeric.
type ModuleVersionParseError struct {
	Value string
}

func (e *ModuleVersionParseError) Error() string {
	return fmt.Sprintf(messages.ABIModuleVersionInvalidFmt, e.Value)
}
