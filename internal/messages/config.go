package messages

// Config messages for .electron-rebuild.toml loading and validation.
const (
	// ConfigReadFileFmt formats config read failures other than a missing file.
	ConfigReadFileFmt             = "read config %s: %w"
	ConfigInvalidConfigFmt        = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt     = "config %s has unrecognized keys: %v"
	ConfigInvalidVersionFmt       = "%s: version: %w"
	ConfigInvalidArchFmt          = "%s: arch %q is not supported (expected one of %s)"
	ConfigBlankCommandFmt         = "%s: command must not be blank"
	ConfigBlankModuleFmt          = "%s: modules[%d] must not be blank"
	ConfigInvalidModuleVersionFmt = "%s: node_module_version: %w"
	ConfigInvalidDistURLFmt       = "%s: dist_url %q must be an http or https URL"
	ConfigExpandPathFmt           = "%s: expand %s: %w"

	// ConfigValidationGuidance is appended to validation errors.
	ConfigValidationGuidance = "(fix .electron-rebuild.toml or remove the offending key)"
)
