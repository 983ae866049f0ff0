package theme

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/davidroman0O/firm-theme/dom"
)

var (
	// ErrNoDocument means client execution was reported without a document
	ErrNoDocument = errors.New("theme: no document to observe")
	// ErrMissingRootNodes means the root element or the body is absent
	ErrMissingRootNodes = errors.New("theme: document has no root element or body")
)

// watchedAttributes are the attributes whose mutations can change the theme
var watchedAttributes = []string{dom.AttrDataTheme, dom.AttrStyle}

// watcher forwards theme names observed on the document into the store.
// It owns one observer covering both root nodes; stop releases it.
type watcher struct {
	doc      dom.Document
	store    *store
	logger   *slog.Logger
	observer dom.Observer
	stopped  bool
}

// startWatcher seeds the store from the root element, then observes the root
// element and the body.
func startWatcher(doc dom.Document, s *store, logger *slog.Logger) (*watcher, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	root, body := doc.DocumentElement(), doc.Body()
	if root == nil || body == nil {
		return nil, ErrMissingRootNodes
	}

	w := &watcher{doc: doc, store: s, logger: logger}
	w.syncRoot()

	w.observer = doc.NewMutationObserver(w.handle)
	opts := dom.ObserveOptions{Attributes: true, AttributeFilter: watchedAttributes}
	for _, el := range []dom.Element{root, body} {
		if err := w.observer.Observe(el, opts); err != nil {
			w.observer.Disconnect()
			return nil, fmt.Errorf("observe %s: %w", el.NodeName(), err)
		}
	}

	logger.Debug("watching document theme attributes", "attributes", watchedAttributes)
	return w, nil
}

// handle processes one batch. Only the first record decides which node is
// read: a body target reads the body's data-theme and stops there.
func (w *watcher) handle(records []dom.MutationRecord) {
	if w.stopped {
		return
	}

	if len(records) > 0 && records[0].Target != nil && records[0].Target.NodeName() == dom.NodeBody {
		if name, ok := readBodyThemeName(w.doc.Body()); ok {
			w.set(name, "body")
		}
		return
	}
	w.syncRoot()
}

func (w *watcher) syncRoot() {
	if name, ok := ReadActiveThemeName(w.doc.DocumentElement()); ok {
		w.set(name, "root")
	}
}

func (w *watcher) set(name, source string) {
	if w.store.Set(name) {
		w.logger.Debug("active theme changed", "theme", name, "source", source)
	}
}

func (w *watcher) stop() {
	if w.stopped {
		return
	}
	w.stopped = true
	w.observer.Disconnect()
	w.logger.Debug("stopped watching document theme attributes")
}
