package rebuild

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/conn-castle/electron-rebuild/internal/messages"
)

// ManifestName is the dependency manifest next to the module install directory.
const ManifestName = "package.json"

var osReadFile = os.ReadFile

// Manifest holds the dependency classes of a package.json.
type Manifest struct {
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

// ManifestPath returns the manifest that owns modulesPath (its parent's package.json).
func ManifestPath(modulesPath string) string {
	return filepath.Join(filepath.Dir(filepath.Clean(modulesPath)), ManifestName)
}

// ReadManifest reads and parses the manifest at path.
func ReadManifest(path string) (*Manifest, error) {
	data, err := osReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.RebuildReadManifestFmt, path, err)
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf(messages.RebuildParseManifestFmt, path, err)
	}
	return &manifest, nil
}

// Select returns the module names in the requested classes: production dependencies
// always, then devDependencies and optionalDependencies when included. Names are
// sorted within each class.
func (m *Manifest) Select(includeDev bool, includeOptional bool) []string {
	modules := sortedKeys(m.Dependencies)
	if includeDev {
		modules = append(modules, sortedKeys(m.DevDependencies)...)
	}
	if includeOptional {
		modules = append(modules, sortedKeys(m.OptionalDependencies)...)
	}
	return modules
}

func sortedKeys(deps map[string]string) []string {
	keys := make([]string, 0, len(deps))
	for name := range deps {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}
