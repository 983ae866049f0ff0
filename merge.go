package theme

// Merge deep-merges tokens over a copy of base. Nested maps merge key by key;
// slices and scalars at an override point replace the base value wholesale.
// base is never modified and the result shares no maps with either argument.
func Merge(base Theme, tokens Tokens) Theme {
	out := Copy(base)
	mergeInto(out, tokens)
	return out
}

// Copy returns a deep copy of t
func Copy(t Theme) Theme {
	if t == nil {
		return Theme{}
	}
	return Theme(copyMap(t))
}

func mergeInto(dst, src map[string]any) {
	for key, value := range src {
		override, ok := asMap(value)
		if !ok {
			dst[key] = copyValue(value)
			continue
		}
		if existing, ok := dst[key].(map[string]any); ok {
			mergeInto(existing, override)
			continue
		}
		dst[key] = copyMap(override)
	}
}

// asMap accepts the map shapes a theme can contain: our named types and
// whatever a YAML or JSON decoder produced
func asMap(value any) (map[string]any, bool) {
	switch m := value.(type) {
	case map[string]any:
		return m, true
	case Theme:
		return m, true
	case Tokens:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, true
	default:
		return nil, false
	}
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		out[key] = copyValue(value)
	}
	return out
}

func copyValue(value any) any {
	if m, ok := asMap(value); ok {
		return copyMap(m)
	}
	switch v := value.(type) {
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = copyValue(item)
		}
		return out
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	default:
		return value
	}
}
