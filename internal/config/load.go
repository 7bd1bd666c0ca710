package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/electron-rebuild/internal/messages"
)

// ErrConfigValidation wraps validation failures (as opposed to TOML syntax or
// filesystem errors). Callers can use errors.Is to distinguish them.
var ErrConfigValidation = errors.New("config validation failed")

var (
	osReadFile    = os.ReadFile
	homedirExpand = homedir.Expand
)

// Config is the optional per-project .electron-rebuild.toml.
// Unset fields leave the CLI defaults in place.
type Config struct {
	Version             string   `toml:"version"`
	Arch                string   `toml:"arch"`
	DistURL             string   `toml:"dist_url"`
	HeadersDir          string   `toml:"headers_dir"`
	Command             string   `toml:"command"`
	Modules             []string `toml:"modules"`
	IgnoreDev           *bool    `toml:"ignore_dev"`
	IgnoreOptional      *bool    `toml:"ignore_optional"`
	LockHeaders         *bool    `toml:"lock_headers"`
	ElectronPrebuiltDir string   `toml:"electron_prebuilt_dir"`
	NodeModuleVersion   string   `toml:"node_module_version"`
	CanaryModule        string   `toml:"canary_module"`
	Tools               Tools    `toml:"tools"`
}

// Tools overrides the host executables used to run node-gyp and npm.
type Tools struct {
	Node    string `toml:"node"`
	NodeGyp string `toml:"node_gyp"`
	NPMCli  string `toml:"npm_cli"`
}

// Load reads path if it exists. found is false (with an empty Config) when the file is absent.
func Load(path string) (cfg *Config, found bool, err error) {
	data, err := osReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf(messages.ConfigReadFileFmt, path, err)
	}
	cfg, err = Parse(data, path)
	if err != nil {
		return nil, false, err
	}
	if err := cfg.resolvePaths(filepath.Dir(path), path); err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

// Parse parses and validates config TOML data. source is used in error messages.
func Parse(data []byte, source string) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt+" "+messages.ConfigValidationGuidance, ErrConfigValidation, source, err)
	}
	if err := cfg.Validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w "+messages.ConfigValidationGuidance, ErrConfigValidation, err)
	}
	return &cfg, nil
}

// decodeStrict re-decodes with unknown-key rejection so typos do not pass silently.
func decodeStrict(data []byte) error {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&cfg)
}

// resolvePaths expands ~ and anchors relative directories at baseDir.
// Tool values without a path separator are left for PATH lookup.
func (c *Config) resolvePaths(baseDir string, source string) error {
	dirs := []*string{&c.HeadersDir, &c.ElectronPrebuiltDir}
	tools := []*string{&c.Tools.Node, &c.Tools.NodeGyp, &c.Tools.NPMCli}
	for _, field := range append(dirs, tools...) {
		if *field == "" {
			continue
		}
		expanded, err := homedirExpand(*field)
		if err != nil {
			return fmt.Errorf(messages.ConfigExpandPathFmt, source, *field, err)
		}
		*field = expanded
	}
	for _, field := range dirs {
		*field = anchor(baseDir, *field)
	}
	for _, field := range tools {
		if strings.ContainsRune(*field, '/') || strings.ContainsRune(*field, filepath.Separator) {
			*field = anchor(baseDir, *field)
		}
	}
	return nil
}

func anchor(baseDir string, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
