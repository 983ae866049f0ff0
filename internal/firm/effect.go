package firm

// Effect is a side effect that runs once on creation and again whenever a
// dependency changes. The CleanUp returned by the previous run is called
// before each re-run and on disposal.
//
// deps follows Memo: explicit list, nil for automatic tracking. An empty
// non-nil list runs the effect exactly once for the owner's lifetime.
type Effect struct {
	owner    *Owner
	execute  func() CleanUp
	explicit bool
	unsubs   []func()
	cleanup  CleanUp
	disposed bool
	running  bool
	pending  bool
}

// NewEffect creates an effect and runs it immediately
func NewEffect(owner *Owner, execute func() CleanUp, deps []Reactive) *Effect {
	e := &Effect{
		owner:    owner,
		execute:  execute,
		explicit: deps != nil,
	}

	if e.explicit {
		e.unsubs = subscribeAll(deps, e.run)
	}
	e.run()

	owner.OnCleanup(e.Dispose)
	return e
}

func (e *Effect) run() {
	if e.disposed {
		return
	}
	// a change raised by the effect itself re-runs it after the current pass
	if e.running {
		e.pending = true
		return
	}
	e.running = true
	defer func() { e.running = false }()

	for {
		e.pending = false

		if e.cleanup != nil {
			cleanup := e.cleanup
			e.cleanup = nil
			cleanup()
		}

		if e.explicit {
			e.owner.withTracker(nil, func() {
				e.cleanup = e.execute()
			})
		} else {
			unsubscribeAll(e.unsubs)
			t := newTracker()
			e.owner.withTracker(t, func() {
				e.cleanup = e.execute()
			})
			e.unsubs = subscribeAll(t.deps, e.run)
		}

		if !e.pending || e.disposed {
			return
		}
	}
}

// Dispose stops the effect and runs its last cleanup
func (e *Effect) Dispose() {
	if e.disposed {
		return
	}

	e.disposed = true
	unsubscribeAll(e.unsubs)
	e.unsubs = nil
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
}
