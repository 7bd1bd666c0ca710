package messages

// Doctor messages for the doctor command.
const (
	// DoctorUse is the doctor command name.
	DoctorUse   = "doctor"
	DoctorShort = "Check that node, npm, node-gyp, and the Electron prebuilt package are usable"

	DoctorHealthCheckFmt = "Checking rebuild environment for %s...\n"

	DoctorCheckNameConfig    = "Config"
	DoctorCheckNameTools     = "Tools"
	DoctorCheckNameModuleDir = "ModuleDir"
	DoctorCheckNamePrebuilt  = "Prebuilt"
	DoctorCheckNameHeaders   = "Headers"

	DoctorConfigLoadFailedFmt = "Failed to load configuration: %v"
	DoctorConfigLoadRecommend = "Fix the reported key in .electron-rebuild.toml or pass --config with a valid file."
	DoctorConfigLoadedFmt     = "Configuration loaded from %s"
	DoctorConfigAbsentFmt     = "No configuration file at %s; using flags and defaults"

	DoctorToolFoundFmt         = "%s resolved to %s"
	DoctorToolMissingFmt       = "%s not found: %v"
	DoctorToolMissingRecommend = "Install Node.js and npm, or point [tools] in .electron-rebuild.toml at the executables."
	DoctorToolScriptMissingFmt = "%s script %s is not readable: %v"

	DoctorModuleDirOKFmt     = "Module directory exists: %s"
	DoctorModuleDirFailedFmt = "Module directory unusable: %v"
	DoctorModuleDirRecommend = "Run npm install first or pass --module-dir."

	DoctorPrebuiltMissing          = "Electron prebuilt package not found"
	DoctorPrebuiltRecommend        = "Install electron as a dev dependency or pass --electron-prebuilt-dir / --node-module-version."
	DoctorPrebuiltPathFileFmt      = "%s is missing from %s"
	DoctorPrebuiltExecutableFmt    = "Electron executable: %s"
	DoctorPrebuiltExecutableBadFmt = "Electron executable %s is not usable: %v"

	DoctorHeadersNoVersion    = "No runtime version resolved; cannot check headers"
	DoctorHeadersInstalledFmt = "Headers for %s installed in %s"
	DoctorHeadersMissingFmt   = "Headers for %s not installed in %s; they will be fetched on the next rebuild"
	DoctorHeadersRecommend    = "Run `electron-rebuild headers` ahead of time when builds run offline."

	DoctorFailureSummary = "Some checks failed."
	DoctorFailureError   = "doctor checks failed"
	DoctorSuccessSummary = "All checks passed."

	DoctorStatusOKLabel        = "[OK]  "
	DoctorStatusWarnLabel      = "[WARN]"
	DoctorStatusFailLabel      = "[FAIL]"
	DoctorResultLineFmt        = "%s %-10s %s\n"
	DoctorRecommendationPrefix = "       > "
)
