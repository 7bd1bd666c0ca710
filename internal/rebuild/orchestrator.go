// Package rebuild drives npm to recompile native modules against Electron headers.
package rebuild

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/conn-castle/electron-rebuild/internal/headers"
	"github.com/conn-castle/electron-rebuild/internal/messages"
	"github.com/conn-castle/electron-rebuild/internal/platform"
	"github.com/conn-castle/electron-rebuild/internal/procrun"
)

// DefaultCommand is the npm command used when a request does not name one.
const DefaultCommand = "rebuild"

const (
	npmExecutable = "npm"
	runtimeFlag   = "--runtime=electron"
	updateFlag    = "--update-binary"
)

// Request describes one rebuild invocation.
type Request struct {
	Version     string
	ModulesPath string
	// Modules is an explicit module list; empty = every dependency npm knows about.
	Modules    []string
	HeadersDir string // empty = headers.DefaultDir()
	Arch       string // empty = host architecture
	Command    string // empty = DefaultCommand
	// IgnoreDev and IgnoreOptional switch on manifest-driven module selection.
	// When either is set, production dependencies plus every class not ignored are
	// appended to Modules.
	IgnoreDev      bool
	IgnoreOptional bool
}

// Orchestrator runs the npm rebuild for a module directory.
type Orchestrator struct {
	Runner procrun.Runner
	// Node and NPMCli select `node <NPMCli>`; with NPMCli empty, npm is run from PATH.
	Node    string
	NPMCli  string
	// BaseEnv is the environment the HOME override is applied to; nil = the current process env.
	BaseEnv []string
	// GOOS selects the platform's home variable; empty = runtime.GOOS.
	GOOS string
	Out  io.Writer
}

// ParseModuleSet splits a comma-separated module list, dropping blank entries.
func ParseModuleSet(raw string) []string {
	var modules []string
	for _, name := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			modules = append(modules, trimmed)
		}
	}
	return modules
}

// Rebuild recompiles native modules under req.ModulesPath for the Electron target.
// Headers for req.Version must already be installed.
func (o *Orchestrator) Rebuild(ctx context.Context, req Request) error {
	if o == nil || o.Runner == nil {
		return errors.New(messages.RebuildRunnerRequired)
	}
	if req.Version == "" {
		return errors.New(messages.RebuildVersionRequired)
	}
	if req.ModulesPath == "" {
		return errors.New(messages.RebuildModulesPathRequired)
	}
	headersDir, err := headers.ResolveDir(req.HeadersDir)
	if err != nil {
		return err
	}
	if err := (headers.Cache{Dir: headersDir}).Require(req.Version); err != nil {
		return err
	}

	args, err := Args(req)
	if err != nil {
		return err
	}
	name, args := procrun.NodeScript(o.Node, o.NPMCli, npmExecutable, args...)
	cmd := procrun.Command{
		Name: name,
		Args: args,
		Dir:  req.ModulesPath,
		Env:  procrun.MergeEnv(procrun.InheritEnv(o.BaseEnv), procrun.HomeOverride(o.goos(), headersDir)),
	}

	out := o.out()
	_, _ = fmt.Fprintf(out, messages.RebuildRunningFmt, req.ModulesPath, req.Version, archOrHost(req.Arch))
	if _, err := o.Runner.Run(ctx, cmd); err != nil {
		procrun.ReportFailure(out, err)
		return &RebuildError{Version: req.Version, ModulesPath: req.ModulesPath, Err: err}
	}
	return nil
}

// Args returns the npm arguments for req, excluding the npm executable itself.
func Args(req Request) ([]string, error) {
	command := req.Command
	if command == "" {
		command = DefaultCommand
	}
	modules := append([]string(nil), req.Modules...)
	if req.IgnoreDev || req.IgnoreOptional {
		manifest, err := ReadManifest(ManifestPath(req.ModulesPath))
		if err != nil {
			return nil, err
		}
		modules = appendUnique(modules, manifest.Select(!req.IgnoreDev, !req.IgnoreOptional))
	}

	args := append([]string{command}, modules...)
	return append(args,
		runtimeFlag,
		"--target="+req.Version,
		"--arch="+archOrHost(req.Arch),
		updateFlag,
	), nil
}

// appendUnique appends names not already present in modules.
func appendUnique(modules []string, names []string) []string {
	seen := make(map[string]bool, len(modules)+len(names))
	for _, name := range modules {
		seen[name] = true
	}
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		modules = append(modules, name)
	}
	return modules
}

func archOrHost(arch string) string {
	if arch != "" {
		return arch
	}
	return platform.HostArch()
}

func (o *Orchestrator) goos() string {
	if o.GOOS != "" {
		return o.GOOS
	}
	return runtime.GOOS
}

func (o *Orchestrator) out() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return io.Discard
}
