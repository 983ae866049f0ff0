package theme

import (
	"log/slog"

	"github.com/davidroman0O/firm-theme/dom"
	"github.com/davidroman0O/firm-theme/internal/firm"
)

var valueContext = firm.NewContext(DefaultValue())

// Props configure a mounted provider
type Props struct {
	// Theme is an optional user descriptor; once on the client it decides the active theme
	Theme *Descriptor
	// DisableBaseline skips the baseline hook
	DisableBaseline bool
	// Children mount under the provider and can call UseTheme with the owner they get
	Children func(owner *firm.Owner)
}

// Option configures Mount
type Option func(*options)

type options struct {
	config        Config
	logger        *slog.Logger
	baseline      func(Value)
	applyIdentity func(doc dom.Document, className string)
}

// WithConfig replaces DefaultConfig
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithLogger sets the logger; "subsystem=theme" is added to it
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBaseline installs the baseline styles hook, called with every published value
func WithBaseline(fn func(Value)) Option {
	return func(o *options) {
		o.baseline = fn
	}
}

// WithIdentityApplier replaces ApplyThemeIdentity
func WithIdentityApplier(fn func(doc dom.Document, className string)) Option {
	return func(o *options) {
		if fn != nil {
			o.applyIdentity = fn
		}
	}
}

// Provider is a mounted theme context
type Provider struct {
	owner         *firm.Owner
	env           Environment
	config        Config
	logger        *slog.Logger
	applyIdentity func(doc dom.Document, className string)

	store      *store
	client     *firm.Signal[bool]
	descriptor *firm.Signal[*Descriptor]
	value      *firm.Memo[Value]

	created      map[*Descriptor]bool
	compositions int
}

// Mount creates a provider under owner. The theme name starts at the
// configured default; on the client the document is observed until Unmount
// or until owner is disposed.
func Mount(owner *firm.Owner, env Environment, props Props, opts ...Option) *Provider {
	o := options{
		config:        DefaultConfig(),
		logger:        slog.Default(),
		applyIdentity: ApplyThemeIdentity,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if env == nil {
		env = ServerEnvironment()
	}

	p := &Provider{
		owner:         owner.Child(),
		env:           env,
		config:        o.config,
		logger:        o.logger.With("subsystem", "theme"),
		applyIdentity: o.applyIdentity,
		created:       make(map[*Descriptor]bool),
	}

	p.store = newStore(p.owner, p.config.DefaultTheme)
	p.client = firm.NewSignal(p.owner, env.IsClient())
	p.descriptor = firm.NewSignal(p.owner, props.Theme)
	p.descriptor.SetEqualityFn(func(a, b *Descriptor) bool { return a == b })

	p.value = firm.NewMemo(p.owner, p.compose, []firm.Reactive{p.store.reactive(), p.client})

	firm.NewEffect(p.owner, p.watch, []firm.Reactive{p.client})
	firm.NewEffect(p.owner, p.applyOverride, []firm.Reactive{p.client, p.descriptor})
	if !props.DisableBaseline && o.baseline != nil {
		firm.NewEffect(p.owner, func() firm.CleanUp {
			o.baseline(p.value.Peek())
			return nil
		}, []firm.Reactive{p.value})
	}

	valueContext.Provide(p.owner, p.value)
	if props.Children != nil {
		props.Children(p.owner)
	}

	p.logger.Debug("theme provider mounted", "client", env.IsClient(), "theme", p.store.Peek())
	return p
}

// watch runs the mutation watcher while executing on the client
func (p *Provider) watch() firm.CleanUp {
	if !p.client.Peek() {
		return nil
	}

	w, err := startWatcher(p.env.Document(), p.store, p.logger)
	if err != nil {
		// rendering goes on with the last known theme
		p.logger.Warn("theme watcher not started", "error", err)
		return nil
	}
	return w.stop
}

// Value returns the published context value
func (p *Provider) Value() Value {
	return p.value.Peek()
}

// ActiveName returns the raw active theme name
func (p *Provider) ActiveName() string {
	return p.store.Peek()
}

// Subscribe calls fn with every newly published value
func (p *Provider) Subscribe(fn func(Value)) func() {
	return p.value.Subscribe(fn)
}

// SetTheme replaces the user descriptor. Passing the same pointer again is a no-op.
func (p *Provider) SetTheme(d *Descriptor) {
	p.descriptor.Set(d)
}

// Hydrate re-reads whether execution is client side, as after server
// rendered markup is taken over by the client.
func (p *Provider) Hydrate() {
	if p.client.Set(p.env.IsClient()) {
		p.logger.Debug("theme provider hydrated", "client", p.client.Peek())
	}
}

// Unmount releases the document subscription and stops all updates
func (p *Provider) Unmount() {
	p.owner.Dispose()
}

// UseTheme returns the value of the nearest provider above owner, or
// DefaultValue without one. Inside an auto-tracked effect or memo the read is
// a dependency.
func UseTheme(owner *firm.Owner) Value {
	return valueContext.Use(owner)
}
