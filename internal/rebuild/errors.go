package rebuild

import (
	"fmt"

	"github.com/conn-castle/electron-rebuild/internal/messages"
)

// RebuildError reports a failed npm rebuild. Err usually wraps a *procrun.ExitError
// carrying npm's output.
type RebuildError struct {
	Version     string
	ModulesPath string
	Err         error
}

func (e *RebuildError) Error() string {
	return fmt.Sprintf(messages.RebuildFailedFmt, e.Version, e.ModulesPath, e.Err)
}

func (e *RebuildError) Unwrap() error {
	return e.Err
}
