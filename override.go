package theme

import "github.com/davidroman0O/firm-theme/internal/firm"

// applyOverride pushes the user descriptor onto the document and into the
// store. It re-runs when the client flag or the descriptor reference changes.
func (p *Provider) applyOverride() firm.CleanUp {
	d := p.descriptor.Peek()
	if !p.client.Peek() || d == nil || d.ClassName == "" {
		return nil
	}
	doc := p.env.Document()
	if doc == nil {
		p.logger.Debug("theme override skipped", "className", d.ClassName, "error", ErrNoDocument)
		return nil
	}

	// a later rule for the same class overrides earlier ones
	if len(d.Tokens) > 0 && !p.created[d] {
		CreateTheme(doc, *d, p.config.TokenPrefix)
		p.created[d] = true
	}
	p.applyIdentity(doc, d.ClassName)

	// the watcher will see the stamped attributes too; the store gate makes that a no-op
	name := NormalizeThemeName(d.ClassName)
	if p.store.Set(name) {
		p.logger.Debug("active theme changed", "theme", name, "source", "override")
	}
	return nil
}
