package platform

import (
	"runtime"
	"testing"
)

func TestName(t *testing.T) {
	cases := map[string]string{
		"windows": "win32",
		"darwin":  "darwin",
		"linux":   "linux",
		"illumos": "sunos",
	}
	for goos, want := range cases {
		if got := Name(goos); got != want {
			t.Fatalf("Name(%q) = %q, want %q", goos, got, want)
		}
	}
}

func TestArch(t *testing.T) {
	cases := map[string]string{
		"amd64": "x64",
		"386":   "ia32",
		"arm64": "arm64",
		"arm":   "arm",
	}
	for goarch, want := range cases {
		if got := Arch(goarch); got != want {
			t.Fatalf("Arch(%q) = %q, want %q", goarch, got, want)
		}
	}
}

func TestHost(t *testing.T) {
	if Host() != Name(runtime.GOOS) || HostArch() != Arch(runtime.GOARCH) {
		t.Fatalf("host mapping mismatch: %s/%s", Host(), HostArch())
	}
}

func TestIsSupportedArch(t *testing.T) {
	for _, arch := range SupportedArches() {
		if !IsSupportedArch(arch) {
			t.Fatalf("expected %s to be supported", arch)
		}
	}
	if IsSupportedArch("amd64") || IsSupportedArch("") {
		t.Fatalf("Go arch names must not be accepted")
	}
}
