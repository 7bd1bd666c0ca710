package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/conn-castle/electron-rebuild/internal/abi"
	"github.com/conn-castle/electron-rebuild/internal/messages"
	"github.com/conn-castle/electron-rebuild/internal/platform"
	"github.com/conn-castle/electron-rebuild/internal/version"
)

// Validate checks the values that are set; empty values mean "use the default".
func (c *Config) Validate(source string) error {
	if c.Version != "" {
		normalized, err := version.Normalize(c.Version)
		if err != nil {
			return fmt.Errorf(messages.ConfigInvalidVersionFmt, source, err)
		}
		c.Version = normalized
	}
	if c.Arch != "" && !platform.IsSupportedArch(c.Arch) {
		return fmt.Errorf(messages.ConfigInvalidArchFmt, source, c.Arch, strings.Join(platform.SupportedArches(), ", "))
	}
	if c.Command != "" && strings.TrimSpace(c.Command) == "" {
		return fmt.Errorf(messages.ConfigBlankCommandFmt, source)
	}
	for i, module := range c.Modules {
		if strings.TrimSpace(module) == "" {
			return fmt.Errorf(messages.ConfigBlankModuleFmt, source, i)
		}
	}
	if c.NodeModuleVersion != "" {
		if _, err := abi.ParseABIVersion(c.NodeModuleVersion); err != nil {
			return fmt.Errorf(messages.ConfigInvalidModuleVersionFmt, source, err)
		}
	}
	if c.DistURL != "" {
		parsed, err := url.Parse(c.DistURL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return fmt.Errorf(messages.ConfigInvalidDistURLFmt, source, c.DistURL)
		}
	}
	return nil
}
