package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/conn-castle/electron-rebuild/internal/abi"
	"github.com/conn-castle/electron-rebuild/internal/config"
	"github.com/conn-castle/electron-rebuild/internal/locate"
	"github.com/conn-castle/electron-rebuild/internal/messages"
	"github.com/conn-castle/electron-rebuild/internal/platform"
	"github.com/conn-castle/electron-rebuild/internal/procrun"
	"github.com/conn-castle/electron-rebuild/internal/rebuild"
	"github.com/conn-castle/electron-rebuild/internal/version"
)

const (
	flagVersion           = "version"
	flagArch              = "arch"
	flagModuleDir         = "module-dir"
	flagWhichModule       = "which-module"
	flagPrebuiltDir       = "electron-prebuilt-dir"
	flagHeadersDir        = "headers-dir"
	flagCommand           = "command"
	flagNodeModuleVersion = "node-module-version"
	flagDistURL           = "dist-url"
	flagForce             = "force"
	flagOnlyProd          = "only-prod"
	flagIgnoreDev         = "ignore-dev"
	flagIgnoreOptional    = "ignore-optional"
	flagLockHeaders       = "lock-headers"
	flagVerbose           = "verbose"
	flagNoColor           = "no-color"
	flagConfig            = "config"
	flagAppVersion        = "app-version"

	defaultModuleDir = "node_modules"
)

var (
	getwd      = os.Getwd
	environ    = os.Environ
	loadConfig = config.Load
	newRunner  = func(tee io.Writer) procrun.Runner { return procrun.ExecRunner{Tee: tee} }
)

// rootOptions holds the raw flag values shared by every command.
type rootOptions struct {
	version           string
	arch              string
	moduleDir         string
	whichModule       string
	prebuiltDir       string
	headersDir        string
	command           string
	nodeModuleVersion string
	distURL           string
	configPath        string
	force             bool
	onlyProd          bool
	ignoreDev         bool
	ignoreOptional    bool
	lockHeaders       bool
	verbose           bool
	noColor           bool
	appVersion        bool
}

func (o *rootOptions) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&o.version, flagVersion, "v", "", messages.FlagVersion)
	flags.StringVarP(&o.arch, flagArch, "a", "", messages.FlagArch)
	flags.StringVarP(&o.moduleDir, flagModuleDir, "m", "", messages.FlagModuleDir)
	flags.StringVarP(&o.whichModule, flagWhichModule, "w", "", messages.FlagWhichModule)
	flags.StringVarP(&o.prebuiltDir, flagPrebuiltDir, "e", "", messages.FlagPrebuiltDir)
	flags.StringVarP(&o.headersDir, flagHeadersDir, "d", "", messages.FlagHeadersDir)
	flags.StringVarP(&o.command, flagCommand, "c", rebuild.DefaultCommand, messages.FlagCommand)
	flags.StringVarP(&o.nodeModuleVersion, flagNodeModuleVersion, "n", "", messages.FlagNodeModuleVersion)
	flags.StringVar(&o.distURL, flagDistURL, "", messages.FlagDistURL)
	flags.StringVar(&o.configPath, flagConfig, "", messages.FlagConfig)
	flags.BoolVarP(&o.force, flagForce, "f", false, messages.FlagForce)
	flags.BoolVarP(&o.onlyProd, flagOnlyProd, "p", false, messages.FlagOnlyProd)
	flags.BoolVar(&o.ignoreDev, flagIgnoreDev, false, messages.FlagIgnoreDev)
	flags.BoolVar(&o.ignoreOptional, flagIgnoreOptional, false, messages.FlagIgnoreOptional)
	flags.BoolVar(&o.lockHeaders, flagLockHeaders, false, messages.FlagLockHeaders)
	flags.BoolVar(&o.verbose, flagVerbose, false, messages.FlagVerbose)
	flags.BoolVar(&o.noColor, flagNoColor, false, messages.FlagNoColor)
	cmd.Flags().BoolVar(&o.appVersion, flagAppVersion, false, messages.FlagAppVersion)
}

// settings is the merged view of flags, config file, and defaults.
type settings struct {
	Version           string
	Arch              string
	ModuleDir         string
	Modules           []string
	PrebuiltDir       string
	ElectronExe       string
	HeadersDir        string
	Command           string
	NodeModuleVersion abi.ABIVersion
	DistURL           string
	CanaryModule      string
	Tools             config.Tools
	Force             bool
	IgnoreDev         bool
	IgnoreOptional    bool
	LockHeaders       bool
	Verbose           bool
	NoColor           bool
}

// resolve merges flags (when changed) over the config file over defaults.
// moduleDir overrides --module-dir when non-empty; requireModuleDir rejects a
// module dir that does not exist.
func (o *rootOptions) resolve(cmd *cobra.Command, moduleDir string, requireModuleDir bool) (settings, error) {
	cwd, err := getwd()
	if err != nil {
		return settings{}, err
	}
	if moduleDir == "" {
		moduleDir = o.moduleDir
	}
	if moduleDir == "" {
		moduleDir = defaultModuleDir
	}
	moduleDir, err = absPath(cwd, moduleDir)
	if err != nil {
		return settings{}, err
	}
	if requireModuleDir {
		if err := checkDir(moduleDir); err != nil {
			return settings{}, err
		}
	}

	configPath := config.DefaultPath(moduleDir)
	if o.configPath != "" {
		if configPath, err = absPath(cwd, o.configPath); err != nil {
			return settings{}, err
		}
	}
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return settings{}, err
	}

	s := settings{
		ModuleDir:    moduleDir,
		Arch:         pick(cmd, flagArch, o.arch, cfg.Arch),
		Command:      pick(cmd, flagCommand, o.command, cfg.Command),
		DistURL:      pick(cmd, flagDistURL, o.distURL, cfg.DistURL),
		CanaryModule: cfg.CanaryModule,
		Tools:        cfg.Tools,
		Force:        o.force,
		Verbose:      o.verbose,
		NoColor:      o.noColor,
	}
	if s.Arch != "" && !platform.IsSupportedArch(s.Arch) {
		return settings{}, fmt.Errorf(messages.ArchUnsupportedFmt, s.Arch, strings.Join(platform.SupportedArches(), ", "))
	}
	if s.Command == "" {
		s.Command = rebuild.DefaultCommand
	}
	if s.HeadersDir, err = pickPath(cmd, cwd, flagHeadersDir, o.headersDir, cfg.HeadersDir); err != nil {
		return settings{}, err
	}
	if s.PrebuiltDir, err = pickPath(cmd, cwd, flagPrebuiltDir, o.prebuiltDir, cfg.ElectronPrebuiltDir); err != nil {
		return settings{}, err
	}
	if changed(cmd, flagWhichModule) {
		s.Modules = rebuild.ParseModuleSet(o.whichModule)
	} else {
		s.Modules = append([]string(nil), cfg.Modules...)
	}
	s.IgnoreDev = pickBool(cmd, flagIgnoreDev, o.ignoreDev, cfg.IgnoreDev)
	s.IgnoreOptional = pickBool(cmd, flagIgnoreOptional, o.ignoreOptional, cfg.IgnoreOptional)
	if o.onlyProd {
		s.IgnoreDev, s.IgnoreOptional = true, true
	}
	s.LockHeaders = pickBool(cmd, flagLockHeaders, o.lockHeaders, cfg.LockHeaders)

	if raw := pick(cmd, flagNodeModuleVersion, o.nodeModuleVersion, cfg.NodeModuleVersion); raw != "" {
		if s.NodeModuleVersion, err = abi.ParseABIVersion(raw); err != nil {
			return settings{}, err
		}
	}

	if s.PrebuiltDir == "" {
		// A missing prebuilt package is only fatal for operations that need it.
		if found, err := (locate.Finder{Start: moduleDir}).Locate(); err == nil {
			s.PrebuiltDir = found
		}
	}
	if s.PrebuiltDir != "" {
		exe, found, err := locate.ResolveExecutable(s.PrebuiltDir)
		if err != nil {
			return settings{}, err
		}
		if found {
			s.ElectronExe = exe
		}
	}

	rawVersion := pick(cmd, flagVersion, o.version, cfg.Version)
	if rawVersion == "" && s.PrebuiltDir != "" {
		if fromPackage, err := locate.ReadVersion(s.PrebuiltDir); err == nil {
			rawVersion = fromPackage
		}
	}
	if rawVersion != "" {
		if s.Version, err = version.Normalize(rawVersion); err != nil {
			return settings{}, err
		}
	}
	return s, nil
}

// requireVersion returns the runtime version or version.ErrRequired.
func (s settings) requireVersion() (string, error) {
	if s.Version == "" {
		return "", version.ErrRequired
	}
	return s.Version, nil
}

func changed(cmd *cobra.Command, name string) bool {
	flag := cmd.Flags().Lookup(name)
	return flag != nil && flag.Changed
}

func pick(cmd *cobra.Command, name string, flagValue string, configValue string) string {
	if changed(cmd, name) || configValue == "" {
		return strings.TrimSpace(flagValue)
	}
	return configValue
}

func pickBool(cmd *cobra.Command, name string, flagValue bool, configValue *bool) bool {
	if changed(cmd, name) || configValue == nil {
		return flagValue
	}
	return *configValue
}

// pickPath is pick for paths: flag values are expanded and made absolute against cwd.
// Config values are already anchored by config.Load.
func pickPath(cmd *cobra.Command, cwd string, name string, flagValue string, configValue string) (string, error) {
	if !changed(cmd, name) && configValue != "" {
		return configValue, nil
	}
	if strings.TrimSpace(flagValue) == "" {
		return "", nil
	}
	return absPath(cwd, flagValue)
}

func absPath(cwd string, path string) (string, error) {
	expanded, err := homedir.Expand(strings.TrimSpace(path))
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(expanded) {
		return filepath.Clean(expanded), nil
	}
	return filepath.Join(cwd, expanded), nil
}

func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf(messages.ModuleDirInvalidFmt, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf(messages.ModuleDirNotDirectoryFmt, dir)
	}
	return nil
}

// projectDir is the app root that owns moduleDir; host-runtime requires resolve from it.
func projectDir(moduleDir string) string {
	return filepath.Dir(moduleDir)
}
