package procrun

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Environment variables read by node-gyp and the Electron executable.
const (
	EnvHome               = "HOME"
	EnvUserProfile        = "USERPROFILE"
	EnvRunAsNode          = "ELECTRON_RUN_AS_NODE"
	EnvAtomShellRunAsNode = "ATOM_SHELL_INTERNAL_RUN_AS_NODE"
	EnvNoAttachConsole    = "ELECTRON_NO_ATTACH_CONSOLE"
	envSeparator          = "="
	windowsGOOS           = "windows"
)

// GetEnv returns the value for the key from an env slice.
func GetEnv(env []string, key string) (string, bool) {
	for _, entry := range env {
		parts := strings.SplitN(entry, envSeparator, 2)
		if len(parts) == 2 && parts[0] == key {
			return parts[1], true
		}
	}
	return "", false
}

// SetEnv returns a copy of env with key set to value.
// The input slice is never modified.
func SetEnv(env []string, key string, value string) []string {
	entry := fmt.Sprintf("%s=%s", key, value)
	result := make([]string, 0, len(env)+1)
	replaced := false
	for _, existing := range env {
		if strings.HasPrefix(existing, key+envSeparator) {
			if !replaced {
				result = append(result, entry)
				replaced = true
			}
			continue
		}
		result = append(result, existing)
	}
	if !replaced {
		result = append(result, entry)
	}
	return result
}

var environ = os.Environ

// InheritEnv returns base, or the current process environment when base is nil.
// Callers that override a few variables start from it so children keep PATH and friends.
func InheritEnv(base []string) []string {
	if base == nil {
		return environ()
	}
	return base
}

// MergeEnv returns base with overrides applied. Overrides are applied in key order
// so the result is deterministic for a given input.
func MergeEnv(base []string, overrides map[string]string) []string {
	merged := append([]string(nil), base...)
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		merged = SetEnv(merged, key, overrides[key])
	}
	return merged
}

// HomeOverride returns the variables that point node-gyp's cache at dir.
// node-gyp resolves its home from USERPROFILE on Windows and HOME elsewhere;
// HOME is set on every platform.
func HomeOverride(goos string, dir string) map[string]string {
	overrides := map[string]string{EnvHome: dir}
	if goos == windowsGOOS {
		overrides[EnvUserProfile] = dir
	}
	return overrides
}

// RunAsNodeEnv returns the markers that make an Electron executable behave as plain Node.
// Different Electron generations honor different markers, so all three are set.
func RunAsNodeEnv() map[string]string {
	return map[string]string{
		EnvAtomShellRunAsNode: "1",
		EnvRunAsNode:          "1",
		EnvNoAttachConsole:    "1",
	}
}

// NodeScript builds the invocation for a Node tool. When script is set the tool runs
// as `node <script> args...`; otherwise the fallback executable is invoked directly.
func NodeScript(node string, script string, fallback string, args ...string) (string, []string) {
	if strings.TrimSpace(script) == "" {
		return fallback, append([]string(nil), args...)
	}
	if strings.TrimSpace(node) == "" {
		node = DefaultNode
	}
	return node, append([]string{script}, args...)
}

// DefaultNode is the host Node executable looked up on PATH.
const DefaultNode = "node"
