package terminal

import (
	"bytes"
	"os"
	"testing"
)

type fakeFile struct {
	bytes.Buffer
	fd uintptr
}

func (f *fakeFile) Fd() uintptr { return f.fd }

func stubTerminal(t *testing.T, tty bool, env map[string]string) {
	t.Helper()
	origTerm, origEnv := isTerminal, lookupEnv
	t.Cleanup(func() {
		isTerminal, lookupEnv = origTerm, origEnv
	})
	isTerminal = func(int) bool { return tty }
	lookupEnv = func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}
}

func TestIsTerminalWriter(t *testing.T) {
	stubTerminal(t, true, nil)
	if IsTerminalWriter(&bytes.Buffer{}) {
		t.Fatalf("plain buffer has no descriptor and must not be a terminal")
	}
	if !IsTerminalWriter(&fakeFile{fd: 1}) {
		t.Fatalf("expected descriptor-backed writer to be a terminal")
	}
}

func TestColorEnabled(t *testing.T) {
	tests := []struct {
		name    string
		tty     bool
		env     map[string]string
		noColor bool
		want    bool
	}{
		{name: "tty", tty: true, want: true},
		{name: "not a tty", tty: false, want: false},
		{name: "flag", tty: true, noColor: true, want: false},
		{name: "env", tty: true, env: map[string]string{EnvNoColor: "1"}, want: false},
		{name: "empty env", tty: true, env: map[string]string{EnvNoColor: ""}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubTerminal(t, tt.tty, tt.env)
			if got := ColorEnabled(&fakeFile{fd: 2}, tt.noColor); got != tt.want {
				t.Fatalf("ColorEnabled = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsTerminalWriterRealFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatalf("create temp: %v", err)
	}
	defer func() { _ = f.Close() }()
	if IsTerminalWriter(f) {
		t.Fatalf("regular file must not be a terminal")
	}
}
