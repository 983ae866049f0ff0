package theme

import (
	"fmt"
	"sort"
	"strings"

	"github.com/davidroman0O/firm-theme/dom"
)

const themeClassSuffix = "-theme"

// Environment is where the provider renders. On the server there is no
// document and nothing is read from or written to it.
type Environment interface {
	IsClient() bool
	Document() dom.Document
}

type staticEnvironment struct {
	client bool
	doc    dom.Document
}

func (e staticEnvironment) IsClient() bool {
	return e.client
}

func (e staticEnvironment) Document() dom.Document {
	return e.doc
}

// ServerEnvironment renders without a document
func ServerEnvironment() Environment {
	return staticEnvironment{}
}

// ClientEnvironment renders into doc
func ClientEnvironment(doc dom.Document) Environment {
	return staticEnvironment{client: doc != nil, doc: doc}
}

// ReadActiveThemeName returns the theme asserted on el: its data-theme
// attribute, else the color-scheme declared in its inline style.
// Empty values assert nothing.
func ReadActiveThemeName(el dom.Element) (string, bool) {
	if el == nil {
		return "", false
	}
	if name, ok := el.Attribute(dom.AttrDataTheme); ok && strings.TrimSpace(name) != "" {
		return strings.TrimSpace(name), true
	}
	if style, ok := el.Attribute(dom.AttrStyle); ok {
		if scheme := dom.ParseDeclarations(style)["color-scheme"]; scheme != "" {
			return scheme, true
		}
	}
	return "", false
}

// readBodyThemeName reads the body-scoped data-theme attribute only
func readBodyThemeName(body dom.Element) (string, bool) {
	if body == nil {
		return "", false
	}
	name, ok := body.Attribute(dom.AttrDataTheme)
	name = strings.TrimSpace(name)
	return name, ok && name != ""
}

// TokenVariable is the custom property a token path is exposed as:
// --<prefix>-<path...>
func TokenVariable(prefix string, path ...string) string {
	name := strings.Join(path, "-")
	if prefix == "" {
		return "--" + name
	}
	return "--" + prefix + "-" + name
}

// ReadDesignTokens reads the overrides the document exposes for each leaf of
// base. Outside client execution it returns an empty set without touching
// anything.
func ReadDesignTokens(env Environment, base Theme, prefix string) Tokens {
	tokens := Tokens{}
	if env == nil || !env.IsClient() {
		return tokens
	}
	doc := env.Document()
	if doc == nil {
		return tokens
	}
	root := doc.DocumentElement()
	if root == nil {
		return tokens
	}

	style := doc.ComputedStyle(root)
	walkLeaves(base, nil, func(path []string) {
		value := strings.TrimSpace(style.PropertyValue(TokenVariable(prefix, path...)))
		if value == "" {
			return
		}
		setPath(tokens, path, value)
	})
	return tokens
}

// NormalizeThemeName canonicalizes a detected name or class: "dark-theme" is "dark"
func NormalizeThemeName(raw string) string {
	return strings.TrimSuffix(strings.TrimSpace(raw), themeClassSuffix)
}

// ApplyThemeIdentity stamps className on the root element, replacing any
// previous theme class, and mirrors the theme name into data-theme.
func ApplyThemeIdentity(doc dom.Document, className string) {
	if doc == nil || className == "" {
		return
	}
	root := doc.DocumentElement()
	if root == nil {
		return
	}

	classes := []string{}
	for _, class := range dom.Classes(root) {
		if isThemeClass(class) || class == className {
			continue
		}
		classes = append(classes, class)
	}
	classes = append(classes, className)

	root.SetAttribute(dom.AttrClass, strings.Join(classes, " "))
	root.SetAttribute(dom.AttrDataTheme, NormalizeThemeName(className))
}

func isThemeClass(class string) bool {
	return strings.HasSuffix(class, themeClassSuffix) || class == Light || class == Dark
}

// CreateTheme registers d's tokens as custom properties scoped to d.ClassName,
// so they become visible once the class is applied.
func CreateTheme(doc dom.Document, d Descriptor, prefix string) {
	if doc == nil || d.ClassName == "" || len(d.Tokens) == 0 {
		return
	}
	doc.AddClassRule(d.ClassName, TokenProperties(d.Tokens, prefix))
}

// TokenProperties flattens tokens into the custom properties that expose them
func TokenProperties(tokens Tokens, prefix string) map[string]string {
	properties := make(map[string]string)
	walkLeaves(tokens, nil, func(path []string) {
		properties[TokenVariable(prefix, path...)] = fmt.Sprint(valueAt(tokens, path))
	})
	return properties
}

// walkLeaves visits every non-map value in sorted key order
func walkLeaves(m map[string]any, prefix []string, visit func(path []string)) {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		path := append(append([]string{}, prefix...), key)
		if nested, ok := asMap(m[key]); ok {
			walkLeaves(nested, path, visit)
			continue
		}
		visit(path)
	}
}

func valueAt(m map[string]any, path []string) any {
	var current any = m
	for _, key := range path {
		node, ok := asMap(current)
		if !ok {
			return nil
		}
		current = node[key]
	}
	return current
}

func setPath(m map[string]any, path []string, value any) {
	for _, key := range path[:len(path)-1] {
		next, ok := m[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[key] = next
		}
		m = next
	}
	m[path[len(path)-1]] = value
}
