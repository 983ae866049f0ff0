package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	theme "github.com/davidroman0O/firm-theme"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	darkBadge   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f5a524")).Render("dark")
	lightBadge  = lipgloss.NewStyle().Foreground(lipgloss.Color("#0072f5")).Render("light")
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

const (
	formatSwatch = "swatch"
	formatYAML   = "yaml"
)

func render(w io.Writer, format string, v theme.Value) error {
	switch format {
	case formatYAML:
		return renderYAML(w, v)
	case formatSwatch, "":
		renderSwatches(w, v)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, formatSwatch, formatYAML)
	}
}

func renderYAML(w io.Writer, v theme.Value) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding theme value: %w", err)
	}
	return enc.Close()
}

// renderSwatches is the styling layer of the CLI: color tokens become
// background swatches, everything else is listed
func renderSwatches(w io.Writer, v theme.Value) {
	fmt.Fprintln(w, headerStyle.Render(summary(v)))

	for _, category := range sortedKeys(v.Theme) {
		tokens, ok := v.Theme[category].(map[string]any)
		if !ok {
			fmt.Fprintf(w, "  %s: %v\n", category, v.Theme[category])
			continue
		}

		fmt.Fprintln(w, mutedStyle.Render(category))
		for _, name := range sortedKeys(tokens) {
			value := fmt.Sprint(tokens[name])
			if category == "colors" {
				swatch := lipgloss.NewStyle().Background(lipgloss.Color(value)).Render("    ")
				fmt.Fprintf(w, "  %s %-12s %s\n", swatch, name, value)
				continue
			}
			fmt.Fprintf(w, "  %-12s %s\n", name, value)
		}
	}
}

func summary(v theme.Value) string {
	badge := lightBadge
	if v.IsDark {
		badge = darkBadge
	}
	return fmt.Sprintf("type=%s isDark=%t [%s]", v.Type, v.IsDark, badge)
}

func sortedKeys[M ~map[string]any](m M) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
