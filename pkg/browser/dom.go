//go:build js && wasm

// Package browser binds the landing page state to the DOM.
package browser

import (
	"fmt"
	"syscall/js"
	"time"

	"rema-viva-landing/pkg/analytics"
	"rema-viva-landing/pkg/modal"
)

const focusableSelector = `a[href], button:not([disabled]), input:not([type="hidden"]):not([disabled]), select, textarea, [tabindex]:not([tabindex="-1"])`

// DOMHost implements modal.Host on the live document.
type DOMHost struct {
	doc    js.Value
	window js.Value
	nextID int
}

// NewDOMHost binds to the global window.
func NewDOMHost() *DOMHost {
	w := js.Global()
	return &DOMHost{doc: w.Get("document"), window: w}
}

var _ modal.Host = (*DOMHost)(nil)

func (h *DOMHost) ActiveElement() string {
	el := h.doc.Get("activeElement")
	if !el.Truthy() {
		return ""
	}
	return h.ensureID(el)
}

func (h *DOMHost) Focus(id string) {
	if el := h.byID(id); el.Truthy() {
		el.Call("focus")
	}
}

func (h *DOMHost) SetScrollLocked(locked bool) {
	overflow := ""
	if locked {
		overflow = "hidden"
	}
	h.doc.Get("body").Get("style").Set("overflow", overflow)
}

func (h *DOMHost) Focusables(kind modal.Kind) []string {
	dialog := h.byID(kind.DialogID())
	if !dialog.Truthy() {
		return nil
	}
	nodes := dialog.Call("querySelectorAll", focusableSelector)
	n := nodes.Get("length").Int()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, h.ensureID(nodes.Index(i)))
	}
	return ids
}

func (h *DOMHost) AddKeyListener(fn func(modal.Key) bool) func() {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		ev := args[0]
		if fn(modal.Key{Name: ev.Get("key").String(), Shift: ev.Get("shiftKey").Bool()}) {
			ev.Call("preventDefault")
		}
		return nil
	})
	h.doc.Call("addEventListener", "keydown", cb)
	return func() {
		h.doc.Call("removeEventListener", "keydown", cb)
		cb.Release()
	}
}

func (h *DOMHost) AfterFunc(d time.Duration, fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		cb.Release()
		fn()
		return nil
	})
	h.window.Call("setTimeout", cb, d.Milliseconds())
}

func (h *DOMHost) byID(id string) js.Value {
	if id == "" {
		return js.Null()
	}
	return h.doc.Call("getElementById", id)
}

// ensureID gives anonymous elements an id so focus can be tracked by id.
func (h *DOMHost) ensureID(el js.Value) string {
	id := el.Get("id").String()
	if id != "" {
		return id
	}
	h.nextID++
	id = fmt.Sprintf("landing-focus-%d", h.nextID)
	el.Set("id", id)
	return id
}

// WindowNavigator opens destinations with window.open.
type WindowNavigator struct{}

func (WindowNavigator) OpenInNewTab(url string) {
	win := js.Global().Call("open", url, "_blank")
	if !win.Truthy() {
		// popup blocked after the delay; fall back to same-tab navigation
		js.Global().Get("location").Set("href", url)
	}
}

// DataLayerSink pushes events to window.dataLayer.
func DataLayerSink(ev analytics.Event) {
	dl := js.Global().Get("dataLayer")
	if !dl.Truthy() {
		return
	}
	dl.Call("push", toJS(ev.Entry()))
}

// toJS converts nested maps and slices js.ValueOf cannot take directly.
func toJS(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = toJS(val)
		}
		return out
	case analytics.Params:
		return toJS(map[string]any(t))
	case []map[string]any:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = toJS(m)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = toJS(e)
		}
		return out
	default:
		return t
	}
}
