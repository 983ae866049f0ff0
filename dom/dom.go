// Package dom is the slice of a rendering document the theme layer reads:
// root elements, their attributes, computed custom properties and attribute
// mutation observers.
package dom

import "strings"

// Node names of the two observed roots
const (
	NodeHTML = "HTML"
	NodeBody = "BODY"
)

// Attribute names
const (
	AttrDataTheme = "data-theme"
	AttrStyle     = "style"
	AttrClass     = "class"
)

// Element is a document element
type Element interface {
	NodeName() string
	Attribute(name string) (string, bool)
	SetAttribute(name, value string)
	RemoveAttribute(name string)
}

// Style is a computed style declaration
type Style interface {
	PropertyValue(name string) string
}

// MutationRecord describes one attribute change
type MutationRecord struct {
	Type          string
	Target        Element
	AttributeName string
	OldValue      string
}

// ObserveOptions selects the mutations an observer receives
type ObserveOptions struct {
	Attributes      bool
	AttributeFilter []string
}

// Observer delivers batches of mutation records to its callback
type Observer interface {
	Observe(target Element, opts ObserveOptions) error
	Disconnect()
}

// Document is the rendering document
type Document interface {
	DocumentElement() Element
	Body() Element
	ComputedStyle(el Element) Style
	NewMutationObserver(callback func([]MutationRecord)) Observer
	// AddClassRule exposes properties on every element carrying className
	AddClassRule(className string, properties map[string]string)
}

// ParseDeclarations parses an inline style attribute ("a: b; c: d")
func ParseDeclarations(style string) map[string]string {
	declarations := make(map[string]string)
	for _, part := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		declarations[name] = strings.TrimSpace(value)
	}
	return declarations
}

// Classes splits a class attribute
func Classes(el Element) []string {
	if el == nil {
		return nil
	}
	class, _ := el.Attribute(AttrClass)
	return strings.Fields(class)
}

func wants(opts ObserveOptions, attribute string) bool {
	if !opts.Attributes {
		return false
	}
	if len(opts.AttributeFilter) == 0 {
		return true
	}
	for _, name := range opts.AttributeFilter {
		if name == attribute {
			return true
		}
	}
	return false
}
