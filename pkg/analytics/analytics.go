// Package analytics records page events in the shape GTM's dataLayer
// expects.
package analytics

import "sync"

// Event names pushed to the data layer.
const (
	EventButtonClick   = "button_click"
	EventViewItem      = "view_item"
	EventBeginCheckout = "begin_checkout"
	EventFormSubmit    = "form_submit"
	EventGenerateLead  = "generate_lead"
	EventDownload      = "download"
	EventFAQOpen       = "faq_open"
	EventSocialClick   = "social_click"
	EventLinkClick     = "link_click"
	EventPageView      = "page_view"
	EventTimeOnPage    = "time_on_page"
	EventScroll        = "scroll"
)

// Params are the event fields merged next to the "event" key.
type Params map[string]any

// Event is one data layer entry.
type Event struct {
	Name   string
	Params Params
}

// Entry flattens the event the way dataLayer.push receives it.
func (e Event) Entry() map[string]any {
	out := make(map[string]any, len(e.Params)+1)
	for k, v := range e.Params {
		out[k] = v
	}
	out["event"] = e.Name
	return out
}

// Tracker receives page events.
type Tracker interface {
	Track(name string, params Params)
}

// Nop drops every event. It is used outside production.
type Nop struct{}

func (Nop) Track(string, Params) {}

// DataLayer keeps events in order and forwards each to an optional sink.
type DataLayer struct {
	mu     sync.Mutex
	events []Event
	sink   func(Event)
}

// NewDataLayer returns a recorder. sink may be nil.
func NewDataLayer(sink func(Event)) *DataLayer {
	return &DataLayer{sink: sink}
}

func (d *DataLayer) Track(name string, params Params) {
	ev := Event{Name: name, Params: params}
	d.mu.Lock()
	d.events = append(d.events, ev)
	sink := d.sink
	d.mu.Unlock()
	if sink != nil {
		sink(ev)
	}
}

// Events returns a copy of everything tracked so far.
func (d *DataLayer) Events() []Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Event, len(d.events))
	copy(out, d.events)
	return out
}

// Named returns the tracked events with the given name.
func (d *DataLayer) Named(name string) []Event {
	var out []Event
	for _, ev := range d.Events() {
		if ev.Name == name {
			out = append(out, ev)
		}
	}
	return out
}
