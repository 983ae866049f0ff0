//go:build js && wasm

package dom

import (
	"fmt"
	"sort"
	"strings"
	"syscall/js"
)

// Browser returns the page document; false when there is none
func Browser() (Document, bool) {
	doc := js.Global().Get("document")
	if doc.IsUndefined() || doc.IsNull() {
		return nil, false
	}
	return &browserDocument{doc: doc}, true
}

type browserDocument struct {
	doc   js.Value
	sheet js.Value
}

func wrap(v js.Value) Element {
	if v.IsUndefined() || v.IsNull() {
		return nil
	}
	return browserElement{v: v}
}

func (d *browserDocument) DocumentElement() Element {
	return wrap(d.doc.Get("documentElement"))
}

func (d *browserDocument) Body() Element {
	return wrap(d.doc.Get("body"))
}

func (d *browserDocument) ComputedStyle(el Element) Style {
	be, ok := el.(browserElement)
	if !ok {
		return browserStyle{}
	}
	return browserStyle{v: js.Global().Call("getComputedStyle", be.v)}
}

func (d *browserDocument) AddClassRule(className string, properties map[string]string) {
	if d.sheet.IsUndefined() {
		d.sheet = d.doc.Call("createElement", "style")
		d.doc.Get("head").Call("appendChild", d.sheet)
	}

	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var rule strings.Builder
	fmt.Fprintf(&rule, ".%s {", className)
	for _, name := range names {
		fmt.Fprintf(&rule, " %s: %s;", name, properties[name])
	}
	rule.WriteString(" }\n")

	d.sheet.Set("textContent", d.sheet.Get("textContent").String()+rule.String())
}

func (d *browserDocument) NewMutationObserver(callback func([]MutationRecord)) Observer {
	o := &browserObserver{}
	o.fn = js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		list := args[0]
		records := make([]MutationRecord, 0, list.Length())
		for i := 0; i < list.Length(); i++ {
			r := list.Index(i)
			records = append(records, MutationRecord{
				Type:          jsString(r.Get("type")),
				Target:        wrap(r.Get("target")),
				AttributeName: jsString(r.Get("attributeName")),
				OldValue:      jsString(r.Get("oldValue")),
			})
		}
		callback(records)
		return nil
	})
	o.v = js.Global().Get("MutationObserver").New(o.fn)
	return o
}

type browserElement struct {
	v js.Value
}

func (e browserElement) NodeName() string {
	return e.v.Get("nodeName").String()
}

func (e browserElement) Attribute(name string) (string, bool) {
	if !e.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.v.Call("getAttribute", name).String(), true
}

func (e browserElement) SetAttribute(name, value string) {
	e.v.Call("setAttribute", name, value)
}

func (e browserElement) RemoveAttribute(name string) {
	e.v.Call("removeAttribute", name)
}

type browserStyle struct {
	v js.Value
}

func (s browserStyle) PropertyValue(name string) string {
	if s.v.Type() != js.TypeObject {
		return ""
	}
	return strings.TrimSpace(s.v.Call("getPropertyValue", name).String())
}

type browserObserver struct {
	v        js.Value
	fn       js.Func
	released bool
}

func (o *browserObserver) Observe(target Element, opts ObserveOptions) (err error) {
	be, ok := target.(browserElement)
	if !ok {
		return ErrForeignNode
	}
	if !opts.Attributes {
		return ErrNothingObserved
	}

	init := map[string]any{"attributes": true}
	if len(opts.AttributeFilter) > 0 {
		filter := make([]any, len(opts.AttributeFilter))
		for i, name := range opts.AttributeFilter {
			filter[i] = name
		}
		init["attributeFilter"] = filter
	}

	// observe throws on detached or invalid targets
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dom: observe: %v", r)
		}
	}()
	o.v.Call("observe", be.v, init)
	return nil
}

func (o *browserObserver) Disconnect() {
	if o.released {
		return
	}
	o.released = true
	o.v.Call("disconnect")
	o.fn.Release()
}

func jsString(v js.Value) string {
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}
