// Package firm is the reactive core: owner-scoped signals, memos, effects
// and contexts, in the spirit of Solid.js primitives.
package firm

import (
	"sync/atomic"

	"github.com/sasha-s/go-deadlock"
)

// CleanUp releases whatever an effect or a root acquired
type CleanUp func()

// Reactive is a value effects and memos can depend on
type Reactive interface {
	subscribe(fn func()) func()
}

// Owner scopes reactive nodes. Disposing an owner disposes its children first,
// then runs its own disposables in reverse registration order.
type Owner struct {
	mutex       deadlock.Mutex
	parent      *Owner
	children    []*Owner
	disposables []func()
	values      map[any]any
	disposed    bool

	// root-only state
	batchDepth int
	batchQueue []*subscription
	queued     map[*subscription]struct{}
	observer   *tracker
}

func newOwner(parent *Owner) *Owner {
	return &Owner{
		parent: parent,
		values: make(map[any]any),
		queued: make(map[*subscription]struct{}),
	}
}

// Root creates an isolated reactive root and returns its dispose function
func Root(fn func(owner *Owner) CleanUp) func() {
	owner := newOwner(nil)
	if cleanup := fn(owner); cleanup != nil {
		owner.OnCleanup(cleanup)
	}
	return owner.Dispose
}

// Child creates an owner nested under o. A child of a disposed owner is born disposed.
func (o *Owner) Child() *Owner {
	child := newOwner(o)

	o.mutex.Lock()
	defer o.mutex.Unlock()
	if o.disposed {
		child.disposed = true
		return child
	}
	o.children = append(o.children, child)
	return child
}

// Disposed reports whether the owner has been disposed
func (o *Owner) Disposed() bool {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.disposed
}

// OnCleanup registers fn to run when the owner is disposed.
// On an already disposed owner fn runs immediately.
func (o *Owner) OnCleanup(fn func()) {
	if fn == nil {
		return
	}
	o.mutex.Lock()
	if o.disposed {
		o.mutex.Unlock()
		fn()
		return
	}
	o.disposables = append(o.disposables, fn)
	o.mutex.Unlock()
}

// Dispose tears down the owner, its children and everything registered on them
func (o *Owner) Dispose() {
	o.mutex.Lock()
	if o.disposed {
		o.mutex.Unlock()
		return
	}
	o.disposed = true
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.children = nil
	disposables := o.disposables
	o.disposables = nil
	o.mutex.Unlock()

	for _, child := range children {
		child.Dispose()
	}

	// LIFO
	for i := len(disposables) - 1; i >= 0; i-- {
		disposables[i]()
	}

	if parent := o.parent; parent != nil {
		parent.mutex.Lock()
		for i, child := range parent.children {
			if child == o {
				parent.children = append(parent.children[:i], parent.children[i+1:]...)
				break
			}
		}
		parent.mutex.Unlock()
	}

	o.mutex.Lock()
	o.values = nil
	o.mutex.Unlock()
}

func (o *Owner) root() *Owner {
	r := o
	for r.parent != nil {
		r = r.parent
	}
	return r
}

func (o *Owner) provide(key, value any) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	if o.disposed {
		return
	}
	o.values[key] = value
}

// lookup walks the owner chain; values in children shadow their parents
func (o *Owner) lookup(key any) (any, bool) {
	for ctx := o; ctx != nil; ctx = ctx.parent {
		ctx.mutex.Lock()
		if ctx.disposed {
			ctx.mutex.Unlock()
			return nil, false
		}
		value, ok := ctx.values[key]
		ctx.mutex.Unlock()
		if ok {
			return value, true
		}
	}
	return nil, false
}

// subscription is one listener registered on a reactive source
type subscription struct {
	fn     func()
	active atomic.Bool
}

func newSubscription(fn func()) *subscription {
	s := &subscription{fn: fn}
	s.active.Store(true)
	return s
}

func (s *subscription) run() {
	if s.active.Load() {
		s.fn()
	}
}

// notify runs the listeners now, or queues them once each when the root is batching
func (o *Owner) notify(subs []*subscription) {
	root := o.root()

	root.mutex.Lock()
	if root.batchDepth > 0 {
		for _, sub := range subs {
			if _, ok := root.queued[sub]; ok {
				continue
			}
			root.queued[sub] = struct{}{}
			root.batchQueue = append(root.batchQueue, sub)
		}
		root.mutex.Unlock()
		return
	}
	root.mutex.Unlock()

	for _, sub := range subs {
		sub.run()
	}
}

// Batch defers notifications raised inside fn until the outermost batch returns.
// A listener notified several times inside the batch runs once.
func Batch(owner *Owner, fn func()) {
	root := owner.root()

	root.mutex.Lock()
	root.batchDepth++
	root.mutex.Unlock()

	fn()

	root.mutex.Lock()
	root.batchDepth--
	if root.batchDepth > 0 {
		root.mutex.Unlock()
		return
	}
	updates := root.batchQueue
	root.batchQueue = nil
	root.queued = make(map[*subscription]struct{})
	root.mutex.Unlock()

	for _, update := range updates {
		update.run()
	}
}

// tracker collects the sources read while an auto-tracked node runs
type tracker struct {
	deps []Reactive
	seen map[Reactive]struct{}
}

func newTracker() *tracker {
	return &tracker{seen: make(map[Reactive]struct{})}
}

func (t *tracker) add(r Reactive) {
	if _, ok := t.seen[r]; ok {
		return
	}
	t.seen[r] = struct{}{}
	t.deps = append(t.deps, r)
}

func (o *Owner) track(r Reactive) {
	root := o.root()
	root.mutex.Lock()
	t := root.observer
	root.mutex.Unlock()
	if t != nil {
		t.add(r)
	}
}

func (o *Owner) withTracker(t *tracker, fn func()) {
	root := o.root()
	root.mutex.Lock()
	prev := root.observer
	root.observer = t
	root.mutex.Unlock()

	defer func() {
		root.mutex.Lock()
		root.observer = prev
		root.mutex.Unlock()
	}()
	fn()
}

// Untrack reads inside fn without creating dependencies
func Untrack[T any](owner *Owner, fn func() T) T {
	var result T
	owner.withTracker(nil, func() {
		result = fn()
	})
	return result
}

func subscribeAll(deps []Reactive, fn func()) []func() {
	unsubs := make([]func(), 0, len(deps))
	for _, dep := range deps {
		if dep == nil {
			continue
		}
		unsubs = append(unsubs, dep.subscribe(fn))
	}
	return unsubs
}

func unsubscribeAll(unsubs []func()) {
	for _, unsub := range unsubs {
		unsub()
	}
}
