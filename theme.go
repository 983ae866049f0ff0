// Package theme keeps a reactive theme context in sync with the document it
// renders into. The active theme name follows the data-theme and style
// attributes of the root element and body; the published Value merges the
// base theme with design tokens exposed by the document as custom properties.
package theme

// Well known theme names
const (
	Light = "light"
	Dark  = "dark"
)

// Tokens are design token overrides keyed by category then token name. Nesting is arbitrary.
type Tokens map[string]any

// Theme is a complete theme definition
type Theme map[string]any

// Value is what the provider publishes to its subtree. It is recomputed,
// never mutated; treat Theme as read-only.
type Value struct {
	Theme  Theme  `yaml:"theme" json:"theme"`
	Type   string `yaml:"type" json:"type"`
	IsDark bool   `yaml:"isDark" json:"isDark"`
}

// NewValue builds a Value for a composed theme and a raw theme name
func NewValue(composed Theme, name string) Value {
	typ := NormalizeThemeName(name)
	return Value{
		Theme:  composed,
		Type:   typ,
		IsDark: typ == Dark,
	}
}

// Descriptor is a user supplied theme. ClassName identifies it on the
// document; Tokens, when set, are exposed under that class.
type Descriptor struct {
	ClassName string `yaml:"className"`
	Tokens    Tokens `yaml:"tokens,omitempty"`
}

// DefaultBase returns the built-in base theme. Each call returns a fresh copy.
func DefaultBase() Theme {
	return Theme{
		"colors": map[string]any{
			"background": "#ffffff",
			"foreground": "#11181c",
			"primary":    "#0072f5",
			"secondary":  "#7828c8",
			"success":    "#17c964",
			"warning":    "#f5a524",
			"error":      "#f31260",
			"border":     "#e4e4e7",
		},
		"space": map[string]any{
			"xs": "2px",
			"sm": "4px",
			"md": "8px",
			"lg": "16px",
			"xl": "32px",
		},
		"fonts": map[string]any{
			"sans": "-apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif",
			"mono": "Menlo, Monaco, 'Lucida Console', monospace",
		},
		"fontSizes": map[string]any{
			"sm":   "0.875rem",
			"base": "1rem",
			"lg":   "1.125rem",
		},
		"radii": map[string]any{
			"sm": "7px",
			"md": "12px",
			"lg": "14px",
		},
		"shadows": map[string]any{
			"sm": "0 5px 20px -5px rgba(0, 0, 0, 0.1)",
			"md": "0 8px 30px rgba(0, 0, 0, 0.15)",
		},
	}
}

// DefaultValue is the value seen by consumers mounted outside any provider
func DefaultValue() Value {
	return NewValue(DefaultBase(), Light)
}
