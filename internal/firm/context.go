package firm

// Reader is a reactive source of T: a Signal or a Memo
type Reader[T any] interface {
	Get() T
	Peek() T
}

// Context carries a value down the owner tree. Owners below the one that
// provided it resolve the nearest provider; everything else gets the fallback.
type Context[T any] struct {
	fallback T
}

// NewContext creates a context key with a fallback value
func NewContext[T any](fallback T) *Context[T] {
	return &Context[T]{fallback: fallback}
}

// Provide makes source visible to owner and its descendants
func (c *Context[T]) Provide(owner *Owner, source Reader[T]) {
	owner.provide(c, source)
}

// Lookup returns the nearest provided source
func (c *Context[T]) Lookup(owner *Owner) (Reader[T], bool) {
	value, ok := owner.lookup(c)
	if !ok {
		return nil, false
	}
	source, ok := value.(Reader[T])
	return source, ok
}

// Use returns the current value, tracked, or the fallback without a provider
func (c *Context[T]) Use(owner *Owner) T {
	if source, ok := c.Lookup(owner); ok {
		return source.Get()
	}
	return c.fallback
}

// Fallback returns the value used when no provider is found
func (c *Context[T]) Fallback() T {
	return c.fallback
}
