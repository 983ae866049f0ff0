package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	theme "github.com/davidroman0O/firm-theme"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestComposeWithRootTokens(t *testing.T) {
	tokens := writeFile(t, "tokens.yaml", "colors:\n  background: \"#000000\"\n")

	value, err := compose(theme.DefaultConfig(), quietLogger(), &composeFlags{
		tokensPath: tokens,
		themeName:  "dark",
	})
	require.NoError(t, err)

	assert.Equal(t, "dark", value.Type)
	assert.True(t, value.IsDark)
	assert.Equal(t, "#000000", value.Theme["colors"].(map[string]any)["background"])
}

func TestComposeOnServerIgnoresDocument(t *testing.T) {
	value, err := compose(theme.DefaultConfig(), quietLogger(), &composeFlags{
		themeName: "dark",
		server:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, theme.DefaultValue(), value)
}

func TestComposeWithUserClass(t *testing.T) {
	classTokens := writeFile(t, "ocean.yaml", "colors:\n  primary: \"#005f73\"\n")

	value, err := compose(theme.DefaultConfig(), quietLogger(), &composeFlags{
		className:      "ocean-theme",
		classTokenPath: classTokens,
	})
	require.NoError(t, err)

	assert.Equal(t, "ocean", value.Type)
	assert.Equal(t, "#005f73", value.Theme["colors"].(map[string]any)["primary"])
}

func TestComposeMissingTokensFile(t *testing.T) {
	_, err := compose(theme.DefaultConfig(), quietLogger(), &composeFlags{tokensPath: "does-not-exist.yaml"})
	assert.ErrorContains(t, err, "reading tokens")
}

func TestReplay(t *testing.T) {
	s, err := loadScript(writeFile(t, "script.yaml", `
steps:
  - name: body dark
    changes:
      - target: body
        set: {data-theme: dark}
  - name: root removed
    changes:
      - target: root
        remove: [data-theme]
  - name: ocean
    theme: {className: ocean-theme}
`))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, replay(&out, theme.DefaultConfig(), quietLogger(), s, false))

	assert.Contains(t, out.String(), "mounted: type=light isDark=false")
	assert.Contains(t, out.String(), "body dark: type=dark isDark=true")
	assert.NotContains(t, out.String(), "root removed:")
	assert.Contains(t, out.String(), "ocean: type=ocean isDark=false")
}

func TestReplayHydrate(t *testing.T) {
	s := script{
		Steps: []step{
			{Name: "server", Changes: []change{{Target: "root", Set: map[string]string{"data-theme": "dark"}}}},
			{Name: "hydrated", Hydrate: true},
		},
	}

	var out bytes.Buffer
	require.NoError(t, replay(&out, theme.DefaultConfig(), quietLogger(), s, true))

	assert.NotContains(t, out.String(), "server:")
	assert.Contains(t, out.String(), "hydrated: type=dark isDark=true")
}

func TestReplayUnknownTarget(t *testing.T) {
	s := script{Steps: []step{{Name: "bad", Changes: []change{{Target: "head"}}}}}
	err := replay(io.Discard, theme.DefaultConfig(), quietLogger(), s, false)
	assert.ErrorContains(t, err, "unknown target")
}

func TestRenderFormats(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, render(&out, formatSwatch, theme.DefaultValue()))
	assert.Contains(t, out.String(), "type=light")
	assert.Contains(t, out.String(), "#0072f5")
	assert.Contains(t, out.String(), "space")

	out.Reset()
	require.NoError(t, render(&out, formatYAML, theme.DefaultValue()))
	assert.Contains(t, out.String(), "type: light")
	assert.Contains(t, out.String(), "isDark: false")

	assert.Error(t, render(&out, "xml", theme.DefaultValue()))
}

func TestRootCommandCompose(t *testing.T) {
	cfg := writeFile(t, "theme.yaml", "defaultTheme: dark\n")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"compose", "--config", cfg, "--format", "yaml"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "type: dark")
	assert.Contains(t, out.String(), "isDark: true")
}
