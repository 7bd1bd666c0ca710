// Package locate finds an installed Electron prebuilt package and its executable.
package locate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/conn-castle/electron-rebuild/internal/messages"
)

// PathFileName is the sidecar inside the prebuilt package naming the executable.
const PathFileName = "path.txt"

const (
	nodeModulesDir  = "node_modules"
	packageJSONName = "package.json"
)

// PrebuiltPackages are the package names that ship the Electron binary, newest first.
var PrebuiltPackages = []string{"electron", "electron-prebuilt", "electron-prebuilt-compile"}

var (
	osStat     = os.Stat
	osReadFile = os.ReadFile
)

// Finder searches upward from Start for a node_modules directory containing a
// prebuilt package.
type Finder struct {
	Start string
}

// Locate returns the directory of the first prebuilt package found.
func (f Finder) Locate() (string, error) {
	start, err := filepath.Abs(f.Start)
	if err != nil {
		return "", err
	}
	dir := start
	for {
		modules := filepath.Join(dir, nodeModulesDir)
		if filepath.Base(dir) == nodeModulesDir {
			modules = dir
		}
		for _, name := range PrebuiltPackages {
			pkgDir := filepath.Join(modules, name)
			if info, err := osStat(filepath.Join(pkgDir, packageJSONName)); err == nil && !info.IsDir() {
				return pkgDir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf(messages.LocatePrebuiltNotFoundFmt, start, strings.Join(PrebuiltPackages, ", "))
		}
		dir = parent
	}
}

// Dir is a Locator that always returns a fixed prebuilt directory.
type Dir string

// Locate returns the directory itself.
func (d Dir) Locate() (string, error) {
	return string(d), nil
}

// ResolveExecutable reads prebuiltDir/path.txt and resolves it against prebuiltDir.
// found is false when the sidecar does not exist.
func ResolveExecutable(prebuiltDir string) (path string, found bool, err error) {
	pathFile := filepath.Join(prebuiltDir, PathFileName)
	data, err := osReadFile(pathFile)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf(messages.LocateReadPathFileFmt, pathFile, err)
	}
	rel := strings.TrimSpace(string(data))
	if rel == "" {
		return "", false, fmt.Errorf(messages.LocateEmptyPathFileFmt, pathFile)
	}
	if filepath.IsAbs(rel) {
		return rel, true, nil
	}
	return filepath.Join(prebuiltDir, filepath.FromSlash(rel)), true, nil
}

// ReadVersion returns the version field of prebuiltDir/package.json.
func ReadVersion(prebuiltDir string) (string, error) {
	path := filepath.Join(prebuiltDir, packageJSONName)
	data, err := osReadFile(path)
	if err != nil {
		return "", fmt.Errorf(messages.LocateReadPackageFmt, path, err)
	}
	var pkg struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "", fmt.Errorf(messages.LocateParsePackageFmt, path, err)
	}
	if strings.TrimSpace(pkg.Version) == "" {
		return "", fmt.Errorf(messages.LocateMissingVersionFmt, path)
	}
	return strings.TrimSpace(pkg.Version), nil
}
