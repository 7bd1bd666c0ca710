package main

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/conn-castle/electron-rebuild/internal/abi"
	"github.com/conn-castle/electron-rebuild/internal/headers"
	"github.com/conn-castle/electron-rebuild/internal/messages"
	"github.com/conn-castle/electron-rebuild/internal/rebuild"
)

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.appVersion {
				_, err := io.WriteString(cmd.OutOrStdout(), versionString()+"\n")
				return err
			}
			s, err := opts.resolve(cmd, "", true)
			if err != nil {
				return err
			}
			return runRebuild(cmd.Context(), newJob(cmd, s))
		},
	}
	opts.register(cmd)
	cmd.AddCommand(
		newCheckCmd(opts),
		newHeadersCmd(opts),
		newABICmd(opts),
		newPackagerHookCmd(opts),
		newDoctorCmd(opts),
	)
	return cmd
}

// job bundles the resolved settings with the collaborators built from them.
type job struct {
	settings
	env       []string
	installer *headers.Installer
	rebuilder *rebuild.Orchestrator
	decider   *abi.Decider
	print     printer
}

func newJob(cmd *cobra.Command, s settings) *job {
	out := cmd.OutOrStdout()
	var tee io.Writer
	if s.Verbose {
		tee = cmd.ErrOrStderr()
	}
	runner := newRunner(tee)
	env := environ()
	return &job{
		settings: s,
		env:      env,
		installer: &headers.Installer{
			Runner:  runner,
			Node:    s.Tools.Node,
			NodeGyp: s.Tools.NodeGyp,
			BaseEnv: env,
			Out:     out,
		},
		rebuilder: &rebuild.Orchestrator{
			Runner:  runner,
			Node:    s.Tools.Node,
			NPMCli:  s.Tools.NPMCli,
			BaseEnv: env,
			Out:     out,
		},
		decider: &abi.Decider{
			Runner:       runner,
			HostNode:     s.Tools.Node,
			CanaryModule: s.CanaryModule,
			Dir:          projectDir(s.ModuleDir),
			BaseEnv:      env,
		},
		print: newPrinter(out, s.NoColor),
	}
}

// runRebuild is the default flow: decide, install headers, rebuild.
func runRebuild(ctx context.Context, j *job) error {
	target, err := j.requireVersion()
	if err != nil {
		return err
	}
	if !j.Force {
		decision, err := j.decide(ctx)
		if err != nil {
			return err
		}
		if !decision.Needed {
			j.print.plain(messages.RebuildSkippedFmt, decision.Reason)
			j.print.notice(messages.RebuildNotNeeded)
			return nil
		}
		j.print.plain(messages.RebuildNeededFmt, decision.Reason)
	}

	return j.withHeadersLock(func() error {
		if err := j.ensureHeaders(ctx, target); err != nil {
			return err
		}
		err := j.rebuilder.Rebuild(ctx, rebuild.Request{
			Version:        target,
			ModulesPath:    j.ModuleDir,
			Modules:        j.Modules,
			HeadersDir:     j.HeadersDir,
			Arch:           j.Arch,
			Command:        j.Command,
			IgnoreDev:      j.IgnoreDev,
			IgnoreOptional: j.IgnoreOptional,
		})
		if err != nil {
			return err
		}
		j.print.success(messages.RebuildSucceeded)
		return nil
	})
}

func (j *job) decide(ctx context.Context) (abi.Decision, error) {
	if j.ElectronExe == "" && j.NodeModuleVersion == "" {
		return abi.Decision{}, errors.New(messages.ElectronExecutableNeeded)
	}
	return j.decider.IsRebuildNeeded(ctx, j.ElectronExe, j.NodeModuleVersion)
}

func (j *job) ensureHeaders(ctx context.Context, target string) error {
	return j.installer.EnsureHeaders(ctx, headers.InstallRequest{
		Version: target,
		DistURL: j.DistURL,
		Dir:     j.HeadersDir,
		Arch:    j.Arch,
	})
}

// withHeadersLock runs fn while holding the headers dir lock when locking is enabled.
func (j *job) withHeadersLock(fn func() error) (err error) {
	if !j.LockHeaders {
		return fn()
	}
	dir, err := headers.ResolveDir(j.HeadersDir)
	if err != nil {
		return err
	}
	lock, err := headers.Lock(dir)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := lock.Release(); err == nil {
			err = releaseErr
		}
	}()
	return fn()
}
