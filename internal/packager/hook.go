// Package packager adapts the header install and rebuild steps to a packaging
// pipeline's after-copy hook.
package packager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/conn-castle/electron-rebuild/internal/headers"
	"github.com/conn-castle/electron-rebuild/internal/locate"
	"github.com/conn-castle/electron-rebuild/internal/messages"
	"github.com/conn-castle/electron-rebuild/internal/platform"
	"github.com/conn-castle/electron-rebuild/internal/rebuild"
)

// CopyHook is the after-copy callback a packaging pipeline invokes per target.
// done receives nil on success.
type CopyHook func(buildPath string, runtimeVersion string, platform string, arch string, done func(error))

// PrebuiltLocator finds the Electron prebuilt package directory.
type PrebuiltLocator interface {
	Locate() (string, error)
}

// HeaderInstaller ensures headers are present for a version.
type HeaderInstaller interface {
	EnsureHeaders(ctx context.Context, req headers.InstallRequest) error
}

// ModuleRebuilder recompiles native modules.
type ModuleRebuilder interface {
	Rebuild(ctx context.Context, req rebuild.Request) error
}

// PostFixer patches build metadata after a successful rebuild.
type PostFixer interface {
	Fix(ctx context.Context, modulesPath string, electronExe string) error
}

// PlatformMismatchError reports a rebuild requested for a platform other than the host's.
type PlatformMismatchError struct {
	Host   string
	Target string
}

func (e *PlatformMismatchError) Error() string {
	return fmt.Sprintf(messages.PackagerPlatformMismatchFmt, e.Target, e.Host)
}

// HookRequest carries the arguments of one hook invocation.
type HookRequest struct {
	BuildPath      string
	RuntimeVersion string
	Platform       string
	Arch           string
}

// Adapter runs locate → headers → rebuild → post-fix for a copied application.
type Adapter struct {
	Locator  PrebuiltLocator
	Headers  HeaderInstaller
	Rebuilds ModuleRebuilder
	// PostFix is optional; nil skips the step.
	PostFix PostFixer

	DistURL        string
	HeadersDir     string
	IgnoreDev      bool
	IgnoreOptional bool
	// HostPlatform overrides the detected host platform name.
	HostPlatform string
	Out          io.Writer
}

// hookState is threaded through the steps of one Run.
type hookState struct {
	req         HookRequest
	modulesPath string
	electronExe string
}

type step func(ctx context.Context, state *hookState) error

// Run executes the hook steps in order and stops at the first failure.
func (a *Adapter) Run(ctx context.Context, req HookRequest) error {
	if a.Headers == nil || a.Rebuilds == nil {
		return errors.New(messages.PackagerStepsRequired)
	}
	if host := a.hostPlatform(); req.Platform != host {
		return &PlatformMismatchError{Host: host, Target: req.Platform}
	}
	state := &hookState{
		req:         req,
		modulesPath: filepath.Join(req.BuildPath, "node_modules"),
	}
	steps := []step{a.locatePrebuilt, a.installHeaders, a.rebuildModules, a.postFix}
	for _, run := range steps {
		if err := run(ctx, state); err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintln(a.out(), messages.PackagerCompleted)
	return nil
}

// NewCopyHook returns a CopyHook backed by a. Each invocation runs synchronously
// and reports through done exactly once.
func NewCopyHook(ctx context.Context, a *Adapter) CopyHook {
	return func(buildPath string, runtimeVersion string, targetPlatform string, arch string, done func(error)) {
		done(a.Run(ctx, HookRequest{
			BuildPath:      buildPath,
			RuntimeVersion: runtimeVersion,
			Platform:       targetPlatform,
			Arch:           arch,
		}))
	}
}

// locatePrebuilt resolves the Electron executable for the post-fix step.
// A missing package or path.txt is reported but does not stop the hook.
func (a *Adapter) locatePrebuilt(_ context.Context, state *hookState) error {
	out := a.out()
	if a.Locator != nil {
		state.electronExe = a.resolveElectron(out)
	}
	_, _ = fmt.Fprintf(out, messages.PackagerRebuildingFmt, state.req.BuildPath)
	return nil
}

func (a *Adapter) resolveElectron(out io.Writer) string {
	prebuiltDir, err := a.Locator.Locate()
	if err != nil {
		_, _ = fmt.Fprintf(out, messages.PackagerLocateFailedFmt, err)
		return ""
	}
	exe, found, err := locate.ResolveExecutable(prebuiltDir)
	switch {
	case err != nil:
		_, _ = fmt.Fprintf(out, messages.PackagerLocateFailedFmt, err)
	case !found:
		_, _ = fmt.Fprintf(out, messages.PackagerPathFileMissingFmt, locate.PathFileName, prebuiltDir)
	}
	return exe
}

func (a *Adapter) installHeaders(ctx context.Context, state *hookState) error {
	return a.Headers.EnsureHeaders(ctx, headers.InstallRequest{
		Version: state.req.RuntimeVersion,
		DistURL: a.DistURL,
		Dir:     a.HeadersDir,
		Arch:    state.req.Arch,
	})
}

func (a *Adapter) rebuildModules(ctx context.Context, state *hookState) error {
	return a.Rebuilds.Rebuild(ctx, rebuild.Request{
		Version:        state.req.RuntimeVersion,
		ModulesPath:    state.modulesPath,
		HeadersDir:     a.HeadersDir,
		Arch:           state.req.Arch,
		Command:        rebuild.DefaultCommand,
		IgnoreDev:      a.IgnoreDev,
		IgnoreOptional: a.IgnoreOptional,
	})
}

func (a *Adapter) postFix(ctx context.Context, state *hookState) error {
	if a.PostFix == nil {
		return nil
	}
	if err := a.PostFix.Fix(ctx, state.modulesPath, state.electronExe); err != nil {
		return fmt.Errorf(messages.PackagerPostFixFailedFmt, state.modulesPath, err)
	}
	return nil
}

func (a *Adapter) hostPlatform() string {
	if a.HostPlatform != "" {
		return a.HostPlatform
	}
	return platform.Host()
}

func (a *Adapter) out() io.Writer {
	if a.Out != nil {
		return a.Out
	}
	return io.Discard
}
