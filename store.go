package theme

import "github.com/davidroman0O/firm-theme/internal/firm"

// store holds the active theme name. Set is gated: writing the current name
// changes nothing and notifies nobody.
type store struct {
	name *firm.Signal[string]
}

func newStore(owner *firm.Owner, initial string) *store {
	name := firm.NewSignal(owner, initial)
	name.SetEqualityFn(func(a, b string) bool { return a == b })
	return &store{name: name}
}

// Get returns the active name, tracked
func (s *store) Get() string {
	return s.name.Get()
}

// Peek returns the active name without tracking
func (s *store) Peek() string {
	return s.name.Peek()
}

// Set reports whether name replaced a different active name
func (s *store) Set(name string) bool {
	return s.name.Set(name)
}

func (s *store) reactive() firm.Reactive {
	return s.name
}
