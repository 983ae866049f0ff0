package dom

import (
	"errors"
	"fmt"

	"github.com/sasha-s/go-deadlock"
)

var (
	// ErrForeignNode is returned when observing an element of another document
	ErrForeignNode = errors.New("dom: node does not belong to this document")
	// ErrNothingObserved is returned when ObserveOptions select no mutations
	ErrNothingObserved = errors.New("dom: observe options select no mutations")
)

// Memory is an in-memory document. Mutation records are queued as attributes
// change and delivered to observers, one batch per observer, by Flush; this
// mirrors a browser delivering observer callbacks after the mutating task.
type Memory struct {
	mutex     deadlock.Mutex
	root      *memoryElement
	body      *memoryElement
	rootProps map[string]string
	rules     []classRule
	observers []*memoryObserver
}

type classRule struct {
	className  string
	properties map[string]string
}

// NewMemory creates a document with an html root and a body
func NewMemory() *Memory {
	d := &Memory{rootProps: make(map[string]string)}
	d.root = &memoryElement{doc: d, name: NodeHTML, attrs: make(map[string]string)}
	d.body = &memoryElement{doc: d, name: NodeBody, attrs: make(map[string]string)}
	return d
}

// DocumentElement returns the html element
func (d *Memory) DocumentElement() Element {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.root == nil {
		return nil
	}
	return d.root
}

// Body returns the body element, nil once detached
func (d *Memory) Body() Element {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.body == nil {
		return nil
	}
	return d.body
}

// DetachBody removes the body, as in a document that is still parsing
func (d *Memory) DetachBody() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.body = nil
}

// SetRootProperty sets a custom property on the :root stylesheet rule
func (d *Memory) SetRootProperty(name, value string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.rootProps[name] = value
}

// AddClassRule registers a ".className { ... }" rule
func (d *Memory) AddClassRule(className string, properties map[string]string) {
	props := make(map[string]string, len(properties))
	for k, v := range properties {
		props[k] = v
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.rules = append(d.rules, classRule{className: className, properties: props})
}

// ComputedStyle resolves custom properties for el: inherited values from the
// root, then :root, then class rules in registration order, then inline style.
func (d *Memory) ComputedStyle(el Element) Style {
	target, ok := el.(*memoryElement)
	if !ok || target.doc != d {
		return memoryStyle{}
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()
	return memoryStyle(d.computeLocked(target))
}

func (d *Memory) computeLocked(el *memoryElement) map[string]string {
	props := make(map[string]string)
	if el == d.root {
		for k, v := range d.rootProps {
			props[k] = v
		}
	} else if d.root != nil {
		for k, v := range d.computeLocked(d.root) {
			props[k] = v
		}
	}

	classes := make(map[string]bool)
	for _, c := range Classes(&lockedElement{el}) {
		classes[c] = true
	}
	for _, rule := range d.rules {
		if !classes[rule.className] {
			continue
		}
		for k, v := range rule.properties {
			props[k] = v
		}
	}

	for k, v := range ParseDeclarations(el.attrs[AttrStyle]) {
		props[k] = v
	}
	return props
}

// NewMutationObserver creates an observer bound to this document
func (d *Memory) NewMutationObserver(callback func([]MutationRecord)) Observer {
	return &memoryObserver{
		doc:      d,
		callback: callback,
		targets:  make(map[*memoryElement]ObserveOptions),
	}
}

// Pending reports whether any observer has undelivered records
func (d *Memory) Pending() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	for _, o := range d.observers {
		if len(o.pending) > 0 {
			return true
		}
	}
	return false
}

// Flush delivers queued records until no observer has any left. Callbacks run
// one at a time on the calling goroutine; records they cause are delivered in
// a later round.
func (d *Memory) Flush() {
	for {
		type delivery struct {
			observer *memoryObserver
			records  []MutationRecord
		}

		d.mutex.Lock()
		var deliveries []delivery
		for _, o := range d.observers {
			if len(o.pending) == 0 {
				continue
			}
			deliveries = append(deliveries, delivery{observer: o, records: o.pending})
			o.pending = nil
		}
		d.mutex.Unlock()

		if len(deliveries) == 0 {
			return
		}
		for _, dl := range deliveries {
			if dl.observer.connected() {
				dl.observer.callback(dl.records)
			}
		}
	}
}

func (d *Memory) recordLocked(el *memoryElement, attribute, oldValue string) {
	for _, o := range d.observers {
		opts, ok := o.targets[el]
		if !ok || !wants(opts, attribute) {
			continue
		}
		o.pending = append(o.pending, MutationRecord{
			Type:          "attributes",
			Target:        el,
			AttributeName: attribute,
			OldValue:      oldValue,
		})
	}
}

type memoryElement struct {
	doc   *Memory
	name  string
	attrs map[string]string
}

func (e *memoryElement) NodeName() string {
	return e.name
}

func (e *memoryElement) Attribute(name string) (string, bool) {
	e.doc.mutex.Lock()
	defer e.doc.mutex.Unlock()
	value, ok := e.attrs[name]
	return value, ok
}

func (e *memoryElement) SetAttribute(name, value string) {
	e.doc.mutex.Lock()
	defer e.doc.mutex.Unlock()
	old := e.attrs[name]
	e.attrs[name] = value
	e.doc.recordLocked(e, name, old)
}

func (e *memoryElement) RemoveAttribute(name string) {
	e.doc.mutex.Lock()
	defer e.doc.mutex.Unlock()
	old, ok := e.attrs[name]
	if !ok {
		return
	}
	delete(e.attrs, name)
	e.doc.recordLocked(e, name, old)
}

func (e *memoryElement) String() string {
	return fmt.Sprintf("<%s>", e.name)
}

// lockedElement reads attributes of an element whose document lock is held
type lockedElement struct {
	*memoryElement
}

func (e *lockedElement) Attribute(name string) (string, bool) {
	value, ok := e.attrs[name]
	return value, ok
}

type memoryStyle map[string]string

func (s memoryStyle) PropertyValue(name string) string {
	return s[name]
}

type memoryObserver struct {
	doc      *Memory
	callback func([]MutationRecord)
	targets  map[*memoryElement]ObserveOptions
	pending  []MutationRecord
	active   bool
}

func (o *memoryObserver) Observe(target Element, opts ObserveOptions) error {
	el, ok := target.(*memoryElement)
	if !ok || el.doc != o.doc {
		return ErrForeignNode
	}
	if !opts.Attributes {
		return ErrNothingObserved
	}

	o.doc.mutex.Lock()
	defer o.doc.mutex.Unlock()
	o.targets[el] = opts
	if !o.active {
		o.active = true
		o.doc.observers = append(o.doc.observers, o)
	}
	return nil
}

func (o *memoryObserver) Disconnect() {
	o.doc.mutex.Lock()
	defer o.doc.mutex.Unlock()
	o.active = false
	o.pending = nil
	o.targets = make(map[*memoryElement]ObserveOptions)
	for i, other := range o.doc.observers {
		if other == o {
			o.doc.observers = append(o.doc.observers[:i], o.doc.observers[i+1:]...)
			break
		}
	}
}

func (o *memoryObserver) connected() bool {
	o.doc.mutex.Lock()
	defer o.doc.mutex.Unlock()
	return o.active
}
