package messages

// CLI messages for user-facing commands and flags.
const (
	// RootUse is the CLI command name.
	RootUse = "electron-rebuild"
	// RootShort is the short description for the root command.
	RootShort = "Rebuild native Node modules against an Electron runtime"
	RootLong  = "Checks whether native modules under the module dir were built for the Electron\n" +
		"runtime's module version and, if not, installs the matching headers and rebuilds them."

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt  = "commit %s"
	VersionBuildFmt   = "built %s"
	VersionFullFmt    = "%s (%s)"
	VersionRequired   = "runtime version is required; pass --version, set version in .electron-rebuild.toml, or install the Electron prebuilt package"
	VersionInvalidFmt = "runtime version %q must be a semantic version such as 14.0.0"

	FlagVersion           = "Electron version to build against (X.Y.Z)"
	FlagArch              = "Target architecture (x64, ia32, arm64, arm); defaults to the host architecture"
	FlagModuleDir         = "Path to the node_modules directory to rebuild"
	FlagWhichModule       = "Comma-separated list of modules to rebuild; defaults to every dependency"
	FlagPrebuiltDir       = "Path to the Electron prebuilt package (contains path.txt)"
	FlagHeadersDir        = "Directory used as HOME for node-gyp; headers are cached under .node-gyp"
	FlagCommand           = "npm command to run (rebuild, build, ...)"
	FlagNodeModuleVersion = "Electron module version to compare against instead of probing the executable"
	FlagDistURL           = "Header distribution URL passed to node-gyp"
	FlagForce             = "Rebuild even when module versions already match"
	FlagOnlyProd          = "Only rebuild production dependencies (implies --ignore-dev and --ignore-optional)"
	FlagIgnoreDev         = "Exclude devDependencies from the rebuild module list"
	FlagIgnoreOptional    = "Exclude optionalDependencies from the rebuild module list"
	FlagLockHeaders       = "Hold an advisory lock on the headers dir while installing and rebuilding"
	FlagVerbose           = "Stream node-gyp and npm output while they run"
	FlagNoColor           = "Disable colored output"
	FlagConfig            = "Path to .electron-rebuild.toml (defaults to the project root next to the module dir)"
	FlagAppVersion        = "Print the electron-rebuild version and exit"

	ArchUnsupportedFmt       = "arch %q is not supported (expected one of %s)"
	ModuleDirInvalidFmt      = "module dir %s: %w"
	ModuleDirNotDirectoryFmt = "module dir %s is not a directory"
	ElectronExecutableNeeded = "cannot determine the Electron executable; pass --electron-prebuilt-dir or --node-module-version"

	RebuildNotNeeded  = "Native modules already match the Electron module version; skipping rebuild (use --force to rebuild anyway)"
	RebuildSucceeded  = "Rebuild complete"
	RebuildNeededFmt  = "Rebuild needed: %s\n"
	RebuildSkippedFmt = "Rebuild not needed: %s\n"

	// CheckUse is the check command name.
	CheckUse          = "check"
	CheckShort        = "Report whether native modules need to be rebuilt"
	CheckFlagExitCode = "Exit with status 2 when a rebuild is needed"

	HeadersUse   = "headers"
	HeadersShort = "Install Electron headers for the target version"
	HeadersReady = "Headers ready"

	ABIUse   = "abi <executable>"
	ABIShort = "Print the module version reported by an Electron executable"

	HookUse                 = "packager-hook"
	HookShort               = "Run the packaging after-copy hook for a copied app directory"
	HookFlagBuildPath       = "Path to the copied application (contains node_modules)"
	HookFlagElectronVersion = "Electron version the package is built for"
	HookFlagPlatform        = "Target platform (darwin, linux, win32); defaults to the host platform"
	HookBuildPathRequired   = "--build-path is required"
)
