// Package platform maps Go platform identifiers to the names Node and Electron use.
package platform

import "runtime"

// Name returns the Node platform name for a GOOS value.
func Name(goos string) string {
	switch goos {
	case "windows":
		return "win32"
	case "solaris", "illumos":
		return "sunos"
	default:
		return goos
	}
}

// Arch returns the Node architecture name for a GOARCH value.
func Arch(goarch string) string {
	switch goarch {
	case "amd64":
		return "x64"
	case "386":
		return "ia32"
	case "ppc64le":
		return "ppc64"
	case "mipsle":
		return "mipsel"
	default:
		return goarch
	}
}

// Host returns the Node platform name of the running process.
func Host() string {
	return Name(runtime.GOOS)
}

// HostArch returns the Node architecture name of the running process.
func HostArch() string {
	return Arch(runtime.GOARCH)
}

// SupportedArches lists the architectures Electron publishes headers for.
func SupportedArches() []string {
	return []string{"x64", "ia32", "arm64", "arm"}
}

// IsSupportedArch reports whether arch is one of SupportedArches.
func IsSupportedArch(arch string) bool {
	for _, candidate := range SupportedArches() {
		if candidate == arch {
			return true
		}
	}
	return false
}
