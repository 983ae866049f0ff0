package firm

// Memo is a derived value recomputed only when its dependencies change.
// With explicit deps only those sources trigger a recompute; with nil deps
// every source read during the computation is tracked.
type Memo[T any] struct {
	owner    *Owner
	signal   *Signal[T]
	compute  func() T
	explicit bool
	unsubs   []func()
	disposed bool
}

// NewMemo computes the initial value right away
func NewMemo[T any](owner *Owner, compute func() T, deps []Reactive) *Memo[T] {
	m := &Memo[T]{
		owner:    owner,
		compute:  compute,
		explicit: deps != nil,
	}

	if m.explicit {
		m.signal = NewSignal(owner, Untrack(owner, compute))
		m.unsubs = subscribeAll(deps, m.recompute)
	} else {
		t := newTracker()
		var initial T
		owner.withTracker(t, func() {
			initial = compute()
		})
		m.signal = NewSignal(owner, initial)
		m.unsubs = subscribeAll(t.deps, m.recompute)
	}

	owner.OnCleanup(m.dispose)
	return m
}

func (m *Memo[T]) recompute() {
	if m.disposed {
		return
	}

	if m.explicit {
		m.signal.Set(Untrack(m.owner, m.compute))
		return
	}

	unsubscribeAll(m.unsubs)
	t := newTracker()
	var value T
	m.owner.withTracker(t, func() {
		value = m.compute()
	})
	m.unsubs = subscribeAll(t.deps, m.recompute)
	m.signal.Set(value)
}

func (m *Memo[T]) dispose() {
	m.disposed = true
	unsubscribeAll(m.unsubs)
	m.unsubs = nil
}

// SetEqualityFn sets the function deciding whether a recomputed value is published
func (m *Memo[T]) SetEqualityFn(fn func(a, b T) bool) {
	m.signal.SetEqualityFn(fn)
}

// Get returns the memoized value and tracks the memo as a dependency
func (m *Memo[T]) Get() T {
	value := m.signal.Peek()
	m.owner.track(m)
	return value
}

// Peek returns the memoized value without tracking
func (m *Memo[T]) Peek() T {
	return m.signal.Peek()
}

// Subscribe calls listener each time a recompute publishes a new value
func (m *Memo[T]) Subscribe(listener func(T)) func() {
	return m.signal.Subscribe(listener)
}

func (m *Memo[T]) subscribe(fn func()) func() {
	return m.signal.subscribe(fn)
}
