package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeEmptyTokensIsCopy(t *testing.T) {
	base := DefaultBase()

	merged := Merge(base, Tokens{})
	assert.Equal(t, Copy(base), merged)

	merged["colors"].(map[string]any)["primary"] = "changed"
	assert.Equal(t, "#0072f5", base["colors"].(map[string]any)["primary"], "merge result shares no maps with base")
}

func TestMergeOverridesNestedFields(t *testing.T) {
	base := Theme{
		"colors": map[string]any{"primary": "blue", "secondary": "purple"},
		"space":  map[string]any{"sm": "4px"},
	}
	tokens := Tokens{
		"colors": map[string]any{"primary": "red"},
		"radii":  map[string]string{"sm": "2px"},
	}

	merged := Merge(base, tokens)

	assert.Equal(t, Theme{
		"colors": map[string]any{"primary": "red", "secondary": "purple"},
		"space":  map[string]any{"sm": "4px"},
		"radii":  map[string]any{"sm": "2px"},
	}, merged)
	assert.Equal(t, "blue", base["colors"].(map[string]any)["primary"])
}

func TestMergeReplacesSlicesAndScalarsWholesale(t *testing.T) {
	base := Theme{
		"fonts":   []any{"Inter", "Roboto", "sans-serif"},
		"colors":  map[string]any{"primary": "blue"},
		"opacity": 0.5,
	}
	tokens := Tokens{
		"fonts":   []any{"Mono"},
		"colors":  "none",
		"opacity": 1,
	}

	merged := Merge(base, tokens)

	assert.Equal(t, []any{"Mono"}, merged["fonts"])
	assert.Equal(t, "none", merged["colors"])
	assert.Equal(t, 1, merged["opacity"])
	assert.Len(t, base["fonts"], 3)
}

func TestMergeIsIdempotent(t *testing.T) {
	base := DefaultBase()
	tokens := Tokens{
		"colors": map[string]any{"background": "#000000"},
		"space":  map[string]any{"md": "10px"},
	}

	once := Merge(base, tokens)
	twice := Merge(Theme(once), tokens)

	assert.Equal(t, once, twice)
	assert.Equal(t, once, Merge(base, tokens))
}

func TestMergeDoesNotAliasTokens(t *testing.T) {
	inner := map[string]any{"primary": "red"}
	merged := Merge(Theme{}, Tokens{"colors": inner})

	inner["primary"] = "green"
	assert.Equal(t, "red", merged["colors"].(map[string]any)["primary"])
}

func TestCopyNil(t *testing.T) {
	assert.Equal(t, Theme{}, Copy(nil))
	assert.Equal(t, Theme{}, Merge(nil, nil))
}
