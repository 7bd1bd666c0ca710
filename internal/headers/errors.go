package headers

import (
	"fmt"

	"github.com/conn-castle/electron-rebuild/internal/messages"
)

// HeadersMissingError reports that no canary file exists for a version.
type HeadersMissingError struct {
	Version string
	Dir     string
}

func (e *HeadersMissingError) Error() string {
	return fmt.Sprintf(messages.HeadersMissingFmt, e.Version, e.Dir, CanaryFile)
}

// InstallError reports a failed header fetch. Err usually wraps a *procrun.ExitError
// carrying node-gyp's output.
type InstallError struct {
	Version string
	Err     error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf(messages.HeadersInstallFailedFmt, e.Version, e.Err)
}

func (e *InstallError) Unwrap() error {
	return e.Err
}
