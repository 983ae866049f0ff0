package theme

// compose builds the published value from the active name and, on the
// client, the document's design tokens.
func (p *Provider) compose() Value {
	p.compositions++

	tokens := Tokens{}
	if p.client.Peek() {
		tokens = ReadDesignTokens(p.env, p.config.Base, p.config.TokenPrefix)
	}
	value := NewValue(Merge(p.config.Base, tokens), p.store.Peek())

	p.logger.Debug("theme composed", "type", value.Type, "isDark", value.IsDark, "overrides", len(tokens))
	return value
}
