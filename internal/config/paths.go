package config

import "path/filepath"

// FileName is the project config file name.
const FileName = ".electron-rebuild.toml"

// DefaultPath returns the config path for a module dir: the project root is the
// directory that contains node_modules.
func DefaultPath(moduleDir string) string {
	return filepath.Join(filepath.Dir(filepath.Clean(moduleDir)), FileName)
}
