//go:build js && wasm

package theme

import "github.com/davidroman0O/firm-theme/dom"

// BrowserEnvironment renders into the page document when there is one
func BrowserEnvironment() Environment {
	doc, ok := dom.Browser()
	if !ok {
		return ServerEnvironment()
	}
	return ClientEnvironment(doc)
}
