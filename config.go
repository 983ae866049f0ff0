package theme

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the provider configuration
type Config struct {
	// DefaultTheme is the active name before the document asserts one
	DefaultTheme string `yaml:"defaultTheme"`
	// TokenPrefix namespaces token custom properties: --<prefix>-colors-primary
	TokenPrefix string `yaml:"tokenPrefix"`
	// Base is the theme every composition starts from
	Base Theme `yaml:"base"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() Config {
	return Config{
		DefaultTheme: Light,
		TokenPrefix:  "theme",
		Base:         DefaultBase(),
	}
}

// Validate checks the configuration is usable
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DefaultTheme) == "" {
		errs = append(errs, errors.New("defaultTheme must not be empty"))
	}
	if strings.ContainsAny(c.TokenPrefix, " \t:;") {
		errs = append(errs, fmt.Errorf("tokenPrefix %q is not a valid custom property prefix", c.TokenPrefix))
	}
	if len(c.Base) == 0 {
		errs = append(errs, errors.New("base theme must not be empty"))
	}
	return errors.Join(errs...)
}

// LoadConfig reads a YAML file and layers it over DefaultConfig
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading theme config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("loading theme config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML and layers it over DefaultConfig. A partial base
// is merged into the default base.
func ParseConfig(data []byte) (Config, error) {
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("parsing theme config: %w", err)
	}

	cfg := mergeConfigs(DefaultConfig(), file)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid theme config: %w", err)
	}
	return cfg, nil
}

func mergeConfigs(base, overlay Config) Config {
	merged := base
	if overlay.DefaultTheme != "" {
		merged.DefaultTheme = overlay.DefaultTheme
	}
	if overlay.TokenPrefix != "" {
		merged.TokenPrefix = overlay.TokenPrefix
	}
	if len(overlay.Base) > 0 {
		merged.Base = Merge(base.Base, Tokens(overlay.Base))
	}
	return merged
}

// LoadTokens reads a YAML token file, as used for descriptors and scripted environments
func LoadTokens(path string) (Tokens, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tokens %s: %w", path, err)
	}
	tokens := Tokens{}
	if err := yaml.Unmarshal(data, &tokens); err != nil {
		return nil, fmt.Errorf("parsing tokens %s: %w", path, err)
	}
	// nested mappings decode as Tokens; publish them as plain maps
	return Tokens(copyMap(tokens)), nil
}
