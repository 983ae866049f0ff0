package firm

import (
	"reflect"

	"github.com/sasha-s/go-deadlock"
)

// Signal represents a reactive value that can be observed for changes
type Signal[T any] struct {
	owner  *Owner
	mutex  deadlock.RWMutex
	value  T
	equals func(a, b T) bool
	subs   []*subscription
}

// NewSignal creates a signal owned by owner. Values are compared with
// reflect.DeepEqual unless SetEqualityFn installs another function.
func NewSignal[T any](owner *Owner, initialValue T) *Signal[T] {
	s := &Signal[T]{
		owner: owner,
		value: initialValue,
		equals: func(a, b T) bool {
			return reflect.DeepEqual(a, b)
		},
	}

	owner.OnCleanup(func() {
		s.mutex.Lock()
		for _, sub := range s.subs {
			sub.active.Store(false)
		}
		s.subs = nil
		s.mutex.Unlock()
	})

	return s
}

// SetEqualityFn sets the function deciding whether a Set is a change
func (s *Signal[T]) SetEqualityFn(fn func(a, b T) bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.equals = fn
}

// Get returns the current value and tracks the signal as a dependency
func (s *Signal[T]) Get() T {
	value := s.Peek()
	s.owner.track(s)
	return value
}

// Peek returns the current value without tracking
func (s *Signal[T]) Peek() T {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.value
}

// Set stores newValue and notifies listeners. It reports whether the value changed;
// an equal value is dropped and nobody is notified.
func (s *Signal[T]) Set(newValue T) bool {
	s.mutex.Lock()
	if s.equals(s.value, newValue) {
		s.mutex.Unlock()
		return false
	}
	s.value = newValue
	subs := make([]*subscription, len(s.subs))
	copy(subs, s.subs)
	s.mutex.Unlock()

	// listeners run outside the lock
	s.owner.notify(subs)
	return true
}

// Update sets the signal from its current value
func (s *Signal[T]) Update(fn func(T) T) bool {
	return s.Set(fn(s.Peek()))
}

// Subscribe calls listener with the new value after every change
func (s *Signal[T]) Subscribe(listener func(T)) func() {
	return s.subscribe(func() {
		listener(s.Peek())
	})
}

func (s *Signal[T]) subscribe(fn func()) func() {
	sub := newSubscription(fn)

	s.mutex.Lock()
	s.subs = append(s.subs, sub)
	s.mutex.Unlock()

	return func() {
		sub.active.Store(false)
		s.mutex.Lock()
		defer s.mutex.Unlock()
		for i, l := range s.subs {
			if l == sub {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				break
			}
		}
	}
}
