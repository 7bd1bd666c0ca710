package main

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conn-castle/electron-rebuild/internal/locate"
	"github.com/conn-castle/electron-rebuild/internal/messages"
	"github.com/conn-castle/electron-rebuild/internal/packager"
	"github.com/conn-castle/electron-rebuild/internal/platform"
	"github.com/conn-castle/electron-rebuild/internal/version"
)

type hookOptions struct {
	buildPath       string
	electronVersion string
	platform        string
}

func newPackagerHookCmd(opts *rootOptions) *cobra.Command {
	hook := &hookOptions{}
	cmd := &cobra.Command{
		Use:   messages.HookUse,
		Short: messages.HookShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(hook.buildPath) == "" {
				return errors.New(messages.HookBuildPathRequired)
			}
			cwd, err := getwd()
			if err != nil {
				return err
			}
			buildPath, err := absPath(cwd, hook.buildPath)
			if err != nil {
				return err
			}
			s, err := opts.resolve(cmd, filepath.Join(buildPath, defaultModuleDir), false)
			if err != nil {
				return err
			}
			target := s.Version
			if hook.electronVersion != "" {
				if target, err = version.Normalize(hook.electronVersion); err != nil {
					return err
				}
			}
			if target == "" {
				return version.ErrRequired
			}
			arch := s.Arch
			if arch == "" {
				arch = platform.HostArch()
			}
			targetPlatform := hook.platform
			if targetPlatform == "" {
				targetPlatform = platform.Host()
			}

			j := newJob(cmd, s)
			adapter := &packager.Adapter{
				Locator:        hookLocator(s, buildPath),
				Headers:        j.installer,
				Rebuilds:       j.rebuilder,
				DistURL:        s.DistURL,
				HeadersDir:     s.HeadersDir,
				IgnoreDev:      s.IgnoreDev,
				IgnoreOptional: s.IgnoreOptional,
				Out:            cmd.OutOrStdout(),
			}
			run := packager.NewCopyHook(cmd.Context(), adapter)
			return j.withHeadersLock(func() error {
				var hookErr error
				run(buildPath, target, targetPlatform, arch, func(err error) { hookErr = err })
				return hookErr
			})
		},
	}
	cmd.Flags().StringVar(&hook.buildPath, "build-path", "", messages.HookFlagBuildPath)
	cmd.Flags().StringVar(&hook.electronVersion, "electron-version", "", messages.HookFlagElectronVersion)
	cmd.Flags().StringVar(&hook.platform, "platform", "", messages.HookFlagPlatform)
	return cmd
}

// hookLocator prefers a configured prebuilt dir and otherwise searches up from the build path.
func hookLocator(s settings, buildPath string) packager.PrebuiltLocator {
	if s.PrebuiltDir != "" {
		return locate.Dir(s.PrebuiltDir)
	}
	return locate.Finder{Start: buildPath}
}
