// Package headers locates and installs the Electron header set used by node-gyp.
package headers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/conn-castle/electron-rebuild/internal/messages"
)

// CanaryFile is the file whose presence marks a version's headers as installed.
const CanaryFile = "common.gypi"

const (
	gypDirName   = ".node-gyp"
	iojsPrefix   = "iojs-"
	cacheDirName = "electron-rebuild"
	headersName  = "headers"
)

var (
	osStat         = os.Stat
	osUserCacheDir = os.UserCacheDir
)

// Cache describes a headers directory: the fake HOME handed to node-gyp, which keeps
// one subdirectory per version under .node-gyp.
type Cache struct {
	Dir string
}

// DefaultDir returns the headers root used when the caller does not supply one.
// node-gyp nests versions below it, so one root serves every version.
func DefaultDir() (string, error) {
	base, err := osUserCacheDir()
	if err != nil {
		return "", fmt.Errorf(messages.HeadersResolveDirFmt, err)
	}
	return filepath.Join(base, cacheDirName, headersName), nil
}

// ResolveDir returns dir, or DefaultDir when dir is empty.
func ResolveDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return DefaultDir()
}

// CanaryPaths returns the plain and io.js spellings of the canary file for version.
func (c Cache) CanaryPaths(version string) []string {
	return []string{
		filepath.Join(c.Dir, gypDirName, version, CanaryFile),
		filepath.Join(c.Dir, gypDirName, iojsPrefix+version, CanaryFile),
	}
}

// Installed reports whether headers for version are present.
// Only the canary file's existence is checked; a partial header set with the
// canary in place is reported as installed.
func (c Cache) Installed(version string) bool {
	for _, path := range c.CanaryPaths(version) {
		if _, err := osStat(path); err == nil {
			return true
		}
	}
	return false
}

// Require returns a *HeadersMissingError when headers for version are absent.
func (c Cache) Require(version string) error {
	if c.Installed(version) {
		return nil
	}
	return &HeadersMissingError{Version: version, Dir: c.Dir}
}
