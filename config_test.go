package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigLayersOverDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
defaultTheme: dark
base:
  colors:
    primary: "#ff0000"
  zIndices:
    modal: 300
`))
	require.NoError(t, err)

	assert.Equal(t, Dark, cfg.DefaultTheme)
	assert.Equal(t, "theme", cfg.TokenPrefix)

	colors := cfg.Base["colors"].(map[string]any)
	assert.Equal(t, "#ff0000", colors["primary"])
	assert.Equal(t, "#7828c8", colors["secondary"])
	assert.Equal(t, 300, cfg.Base["zIndices"].(map[string]any)["modal"])
}

func TestParseConfigRejectsInvalid(t *testing.T) {
	_, err := ParseConfig([]byte("tokenPrefix: \"my prefix\"\n"))
	assert.ErrorContains(t, err, "tokenPrefix")

	_, err = ParseConfig([]byte("defaultTheme: [unclosed\n"))
	assert.ErrorContains(t, err, "parsing theme config")
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	err := Config{}.Validate()
	assert.ErrorContains(t, err, "defaultTheme")
	assert.ErrorContains(t, err, "base theme")
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tokenPrefix: app\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "app", cfg.TokenPrefix)
	assert.Equal(t, Light, cfg.DefaultTheme)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadTokens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.yaml")
	require.NoError(t, os.WriteFile(path, []byte("colors:\n  primary: \"#005f73\"\n"), 0o644))

	tokens, err := LoadTokens(path)
	require.NoError(t, err)
	assert.Equal(t, Tokens{"colors": map[string]any{"primary": "#005f73"}}, tokens)
}
