// Package version normalizes Electron runtime versions.
package version

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/conn-castle/electron-rebuild/internal/messages"
)

// ErrRequired is returned when no runtime version was supplied.
var ErrRequired = errors.New(messages.VersionRequired)

// Normalize trims whitespace and a leading "v" and validates the result as X.Y.Z
// with optional prerelease/build metadata. The returned form is the one node-gyp
// expects for --target and for the .node-gyp/<version> directory.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrRequired
	}
	trimmed = strings.TrimPrefix(trimmed, "v")
	if _, err := semver.StrictNewVersion(trimmed); err != nil {
		return "", fmt.Errorf(messages.VersionInvalidFmt, raw)
	}
	return trimmed, nil
}

