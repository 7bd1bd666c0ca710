package rebuild

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/electron-rebuild/internal/headers"
	"github.com/conn-castle/electron-rebuild/internal/platform"
	"github.com/conn-castle/electron-rebuild/internal/procrun"
	"github.com/conn-castle/electron-rebuild/internal/testutil"
)

const manifestJSON = `{
  "name": "app",
  "dependencies": {"sqlite3": "^5.0.0", "leveldown": "^6.0.0"},
  "devDependencies": {"spellchecker": "^3.7.0"},
  "optionalDependencies": {"fsevents": "^2.3.0"}
}`

func newProject(t *testing.T) (modulesPath string, headersDir string) {
	t.Helper()
	root := t.TempDir()
	testutil.WriteFile(t, root, "package.json", manifestJSON)
	modulesPath = filepath.Join(root, "node_modules")
	testutil.WriteFile(t, modulesPath, ".keep", "")
	headersDir = filepath.Join(root, "headers")
	testutil.WriteCanary(t, headersDir, "", "14.0.0")
	return modulesPath, headersDir
}

func TestRebuildMissingHeadersFailsFast(t *testing.T) {
	runner := &testutil.FakeRunner{}
	orchestrator := &Orchestrator{Runner: runner}

	err := orchestrator.Rebuild(context.Background(), Request{
		Version:     "14.0.0",
		ModulesPath: t.TempDir(),
		HeadersDir:  t.TempDir(),
	})

	var missing *headers.HeadersMissingError
	require.True(t, errors.As(err, &missing), "expected HeadersMissingError, got %v", err)
	assert.Empty(t, runner.Calls())
}

func TestRebuildCommand(t *testing.T) {
	modulesPath, headersDir := newProject(t)
	runner := &testutil.FakeRunner{}
	var out bytes.Buffer
	orchestrator := &Orchestrator{Runner: runner, BaseEnv: []string{"HOME=/home/me"}, GOOS: "linux", Out: &out}

	err := orchestrator.Rebuild(context.Background(), Request{
		Version:     "14.0.0",
		ModulesPath: modulesPath,
		HeadersDir:  headersDir,
	})
	require.NoError(t, err)

	calls := runner.Calls()
	require.Len(t, calls, 1)
	call := calls[0]
	assert.Equal(t, "npm", call.Name)
	assert.Equal(t, []string{
		"rebuild",
		"--runtime=electron",
		"--target=14.0.0",
		"--arch=" + platform.HostArch(),
		"--update-binary",
	}, call.Args)
	assert.Equal(t, modulesPath, call.Dir)
	home, _ := procrun.GetEnv(call.Env, "HOME")
	assert.Equal(t, headersDir, home)
	assert.Contains(t, out.String(), "Rebuilding native modules in")
}

func TestRebuildInheritsProcessEnv(t *testing.T) {
	t.Setenv("ELECTRON_REBUILD_INHERIT", "parent")
	modulesPath, headersDir := newProject(t)
	runner := &testutil.FakeRunner{}
	orchestrator := &Orchestrator{Runner: runner, GOOS: "linux"}

	require.NoError(t, orchestrator.Rebuild(context.Background(), Request{
		Version:     "14.0.0",
		ModulesPath: modulesPath,
		HeadersDir:  headersDir,
	}))

	calls := runner.Calls()
	require.Len(t, calls, 1)
	value, ok := procrun.GetEnv(calls[0].Env, "ELECTRON_REBUILD_INHERIT")
	assert.True(t, ok, "child env must start from the process env")
	assert.Equal(t, "parent", value)
	home, _ := procrun.GetEnv(calls[0].Env, "HOME")
	assert.Equal(t, headersDir, home)
}

func TestRebuildWithNPMCliScript(t *testing.T) {
	modulesPath, headersDir := newProject(t)
	runner := &testutil.FakeRunner{}
	orchestrator := &Orchestrator{Runner: runner, Node: "/opt/node", NPMCli: "/opt/npm/bin/npm-cli.js", GOOS: "windows"}

	require.NoError(t, orchestrator.Rebuild(context.Background(), Request{
		Version:     "14.0.0",
		ModulesPath: modulesPath,
		HeadersDir:  headersDir,
		Arch:        "ia32",
		Command:     "build",
		Modules:     ParseModuleSet("sqlite3, ,leveldown"),
	}))

	call := runner.Calls()[0]
	assert.Equal(t, "/opt/node", call.Name)
	assert.Equal(t, []string{
		"/opt/npm/bin/npm-cli.js",
		"build",
		"sqlite3",
		"leveldown",
		"--runtime=electron",
		"--target=14.0.0",
		"--arch=ia32",
		"--update-binary",
	}, call.Args)
	profile, ok := procrun.GetEnv(call.Env, "USERPROFILE")
	require.True(t, ok)
	assert.Equal(t, headersDir, profile)
}

func TestArgsDependencyFilters(t *testing.T) {
	modulesPath, _ := newProject(t)
	tests := []struct {
		name           string
		modules        []string
		ignoreDev      bool
		ignoreOptional bool
		want           []string
	}{
		{
			name:      "ignore dev",
			ignoreDev: true,
			want:      []string{"leveldown", "sqlite3", "fsevents"},
		},
		{
			name:           "ignore optional",
			ignoreOptional: true,
			want:           []string{"leveldown", "sqlite3", "spellchecker"},
		},
		{
			name:           "only prod",
			ignoreDev:      true,
			ignoreOptional: true,
			want:           []string{"leveldown", "sqlite3"},
		},
		{
			name:      "explicit modules are kept first and not repeated",
			modules:   []string{"sqlite3", "custom"},
			ignoreDev: true,
			want:      []string{"sqlite3", "custom", "leveldown", "fsevents"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := Args(Request{
				Version:        "14.0.0",
				ModulesPath:    modulesPath,
				Modules:        tt.modules,
				Arch:           "x64",
				IgnoreDev:      tt.ignoreDev,
				IgnoreOptional: tt.ignoreOptional,
			})
			require.NoError(t, err)
			want := append([]string{"rebuild"}, tt.want...)
			want = append(want, "--runtime=electron", "--target=14.0.0", "--arch=x64", "--update-binary")
			assert.Equal(t, want, args)
		})
	}
}

func TestArgsMissingManifest(t *testing.T) {
	_, err := Args(Request{Version: "14.0.0", ModulesPath: filepath.Join(t.TempDir(), "node_modules"), IgnoreDev: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read dependency manifest")
}

func TestRebuildFailureCarriesOutput(t *testing.T) {
	modulesPath, headersDir := newProject(t)
	runner := &testutil.FakeRunner{Handler: func(cmd procrun.Command) (procrun.Result, error) {
		return testutil.Fail(cmd, "> sqlite3@5.0.0 install", "gyp ERR! build error", 1)
	}}
	var out bytes.Buffer
	orchestrator := &Orchestrator{Runner: runner, Out: &out}

	err := orchestrator.Rebuild(context.Background(), Request{Version: "14.0.0", ModulesPath: modulesPath, HeadersDir: headersDir})

	var rebuildErr *RebuildError
	require.True(t, errors.As(err, &rebuildErr))
	assert.Equal(t, modulesPath, rebuildErr.ModulesPath)
	var exitErr *procrun.ExitError
	assert.True(t, errors.As(err, &exitErr))
	assert.Contains(t, out.String(), "gyp ERR! build error")
	assert.Len(t, runner.Calls(), 1, "no retry after failure")
}

func TestRebuildValidatesRequest(t *testing.T) {
	var nilOrchestrator *Orchestrator
	assert.Error(t, nilOrchestrator.Rebuild(context.Background(), Request{}))
	orchestrator := &Orchestrator{Runner: &testutil.FakeRunner{}}
	assert.Error(t, orchestrator.Rebuild(context.Background(), Request{ModulesPath: "x"}))
	assert.Error(t, orchestrator.Rebuild(context.Background(), Request{Version: "14.0.0"}))
}

func TestParseModuleSet(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ParseModuleSet(" a,,b ,"))
	assert.Empty(t, ParseModuleSet(""))
}
