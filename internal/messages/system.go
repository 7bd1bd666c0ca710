package messages

// System messages for subprocess, header, ABI, and rebuild operations.
const (
	// ProcessNameRequired indicates a command was submitted without an executable.
	ProcessNameRequired   = "command name is required"
	ProcessFailedFmt      = "%s exited with code %d: %v"
	ProcessSpawnFailedFmt = "start %s: %v"
	ProcessSignaledFmt    = "%s terminated: %v"

	HeadersRunnerRequired      = "headers installer requires a process runner"
	HeadersVersionRequired     = "headers install requires a runtime version"
	HeadersResolveDirFmt       = "resolve default headers dir: %w"
	HeadersMissingFmt          = "headers for %s are not installed in %s (canary file %s not found); install headers before rebuilding"
	HeadersInstallFailedFmt    = "install headers for %s: %v"
	HeadersAlreadyInstalledFmt = "Headers for %s already installed in %s\n"
	HeadersInstallingFmt       = "Installing headers for %s (%s) into %s\n"
	HeadersCreateDirFmt        = "create headers dir %s: %w"
	HeadersOpenLockFmt         = "open headers lock %s: %w"
	HeadersLockFmt             = "lock headers dir %s: %w"
	HeadersLockTimeoutFmt      = "timed out after %s waiting for headers lock"

	// ABIRunnerRequired indicates an ABI probe was attempted without a process runner.
	ABIRunnerRequired          = "module version probe requires a process runner"
	ABIExecutableRequired      = "module version probe requires an executable path"
	ABIProbeFailedFmt          = "failed to check module version of %s: %q"
	ABIProbeSpawnFailedFmt     = "failed to check module version of %s: %v"
	ABIModuleVersionInvalidFmt = "module version %q must contain only digits"

	DecisionCanaryFailed   = "canary module failed to load in the host runtime"
	DecisionABIMatchFmt    = "host module version %s matches target module version %s"
	DecisionABIMismatchFmt = "host module version %s differs from target module version %s"

	RebuildRunnerRequired      = "rebuild requires a process runner"
	RebuildVersionRequired     = "rebuild requires a runtime version"
	RebuildModulesPathRequired = "rebuild requires a module install path"
	RebuildFailedFmt           = "rebuild native modules for %s in %s: %v"
	RebuildReadManifestFmt     = "read dependency manifest %s: %w"
	RebuildParseManifestFmt    = "parse dependency manifest %s: %w"
	RebuildRunningFmt          = "Rebuilding native modules in %s (target %s, %s)\n"

	PackagerPlatformMismatchFmt = "can't rebuild native modules for platform %s on %s; run the rebuild on the target platform"
	PackagerLocateFailedFmt     = "Couldn't find the Electron prebuilt package (%v); this probably means something is wrong\n"
	PackagerPathFileMissingFmt  = "Couldn't find %s in the Electron prebuilt directory %s; this probably means something is wrong\n"
	PackagerRebuildingFmt       = "Rebuilding native modules in: %s\n"
	PackagerCompleted           = "Rebuild completed successfully"
	PackagerPostFixFailedFmt    = "post-rebuild fix in %s: %w"
	PackagerStepsRequired       = "packager hook requires a header installer and a module rebuilder"

	LocatePrebuiltNotFoundFmt = "no Electron prebuilt package found above %s (looked for %s)"
	LocateReadPathFileFmt     = "read %s: %w"
	LocateEmptyPathFileFmt    = "%s is empty"
	LocateReadPackageFmt      = "read %s: %w"
	LocateParsePackageFmt     = "parse %s: %w"
	LocateMissingVersionFmt   = "%s has no version field"
)
