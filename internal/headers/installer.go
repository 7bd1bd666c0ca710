package headers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/conn-castle/electron-rebuild/internal/messages"
	"github.com/conn-castle/electron-rebuild/internal/platform"
	"github.com/conn-castle/electron-rebuild/internal/procrun"
)

// DefaultDistURL is the header distribution used when none is configured.
const DefaultDistURL = "https://gh-contractor-zcbenz.s3.amazonaws.com/atom-shell/dist"

const nodeGypExecutable = "node-gyp"

// InstallRequest identifies the header set to install.
type InstallRequest struct {
	Version string
	DistURL string // empty = DefaultDistURL
	Dir     string // empty = DefaultDir()
	Arch    string // empty = host architecture
}

// Installer fetches headers with node-gyp when the cache does not have them.
type Installer struct {
	Runner procrun.Runner
	// Node and NodeGyp select `node <NodeGyp>`; with NodeGyp empty, node-gyp is run from PATH.
	Node    string
	NodeGyp string
	// BaseEnv is the environment the HOME override is applied to; nil = the current process env.
	BaseEnv []string
	// GOOS selects the platform's home variable; empty = runtime.GOOS.
	GOOS string
	Out  io.Writer
}

// EnsureHeaders installs headers for req.Version unless the canary file already exists.
func (i *Installer) EnsureHeaders(ctx context.Context, req InstallRequest) error {
	if i == nil || i.Runner == nil {
		return errors.New(messages.HeadersRunnerRequired)
	}
	if req.Version == "" {
		return errors.New(messages.HeadersVersionRequired)
	}
	dir, err := ResolveDir(req.Dir)
	if err != nil {
		return err
	}
	out := i.out()
	if (Cache{Dir: dir}).Installed(req.Version) {
		_, _ = fmt.Fprintf(out, messages.HeadersAlreadyInstalledFmt, req.Version, dir)
		return nil
	}

	arch := req.Arch
	if arch == "" {
		arch = platform.HostArch()
	}
	distURL := req.DistURL
	if distURL == "" {
		distURL = DefaultDistURL
	}
	name, args := procrun.NodeScript(i.Node, i.NodeGyp, nodeGypExecutable,
		"install",
		"--target="+req.Version,
		"--arch="+arch,
		"--dist-url="+distURL,
	)
	cmd := procrun.Command{
		Name: name,
		Args: args,
		Env:  procrun.MergeEnv(procrun.InheritEnv(i.BaseEnv), procrun.HomeOverride(i.goos(), dir)),
	}

	_, _ = fmt.Fprintf(out, messages.HeadersInstallingFmt, req.Version, arch, dir)
	if _, err := i.Runner.Run(ctx, cmd); err != nil {
		procrun.ReportFailure(out, err)
		return &InstallError{Version: req.Version, Err: err}
	}
	return nil
}

func (i *Installer) goos() string {
	if i.GOOS != "" {
		return i.GOOS
	}
	return runtime.GOOS
}

func (i *Installer) out() io.Writer {
	if i.Out != nil {
		return i.Out
	}
	return io.Discard
}
