// Package modal manages the page's dialogs: which one is open, scroll
// locking, focus save/restore and the keyboard focus trap.
package modal

import (
	"errors"
	"sync"
	"time"
)

// Kind names a dialog.
type Kind string

const (
	KindFree    Kind = "free"
	KindPaid    Kind = "paid"
	KindTerms   Kind = "terms"
	KindPrivacy Kind = "privacy"
)

// DialogID is the element id of the dialog container.
func (k Kind) DialogID() string {
	return "modal-" + string(k)
}

// Phase is the lifecycle of the open dialog.
type Phase int

const (
	PhaseClosed Phase = iota
	PhaseOpen
	PhaseSubmitting
)

func (p Phase) String() string {
	switch p {
	case PhaseOpen:
		return "open"
	case PhaseSubmitting:
		return "submitting"
	default:
		return "closed"
	}
}

// Key is a keydown event reduced to what the manager looks at.
type Key struct {
	Name  string
	Shift bool
}

const (
	KeyEscape = "Escape"
	KeyTab    = "Tab"
)

// Host is the page the dialogs live in.
type Host interface {
	// ActiveElement returns the id of the focused element, or "".
	ActiveElement() string
	// Focus moves keyboard focus to the element with the given id.
	Focus(id string)
	// SetScrollLocked suspends or restores page scrolling.
	SetScrollLocked(locked bool)
	// Focusables lists the ids of the focusable descendants of the dialog,
	// in document order.
	Focusables(kind Kind) []string
	// AddKeyListener installs a document keydown listener. The listener
	// returns true when the default action must be prevented. The returned
	// func removes it.
	AddKeyListener(fn func(Key) bool) (remove func())
	// AfterFunc runs fn once after d. It must not call fn synchronously.
	AfterFunc(d time.Duration, fn func())
}

var (
	ErrNotOpen    = errors.New("modal: no dialog is open")
	ErrSubmitting = errors.New("modal: submission in progress")
)

// DefaultFocusDelay gives the dialog time to render before focusing it.
const DefaultFocusDelay = 100 * time.Millisecond

// Manager allows at most one open dialog.
type Manager struct {
	host       Host
	focusDelay time.Duration

	mu          sync.Mutex
	active      Kind
	phase       Phase
	generation  int
	lastFocused string
	removeKeys  func()

	// OnClose runs after a dialog closes, e.g. to reset its form.
	OnClose func(Kind)
}

// NewManager returns a manager with every dialog closed.
func NewManager(host Host, focusDelay time.Duration) *Manager {
	if focusDelay <= 0 {
		focusDelay = DefaultFocusDelay
	}
	return &Manager{host: host, focusDelay: focusDelay}
}

// Open shows the dialog. If another dialog is open it is closed first and
// the focus saved by the first open is kept.
func (m *Manager) Open(kind Kind) error {
	m.mu.Lock()
	if m.phase == PhaseSubmitting {
		m.mu.Unlock()
		return ErrSubmitting
	}
	var closed Kind
	wasOpen := m.phase == PhaseOpen
	if wasOpen {
		closed = m.active
		m.teardown(false)
	} else {
		m.lastFocused = m.host.ActiveElement()
	}

	m.active = kind
	m.phase = PhaseOpen
	m.generation++
	gen := m.generation
	m.host.SetScrollLocked(true)
	m.removeKeys = m.host.AddKeyListener(m.HandleKey)
	m.host.AfterFunc(m.focusDelay, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.generation == gen && m.phase != PhaseClosed {
			m.host.Focus(kind.DialogID())
		}
	})
	onClose := m.OnClose
	m.mu.Unlock()

	if wasOpen && onClose != nil {
		onClose(closed)
	}
	return nil
}

// Close hides the open dialog and restores the page.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.phase == PhaseClosed {
		m.mu.Unlock()
		return ErrNotOpen
	}
	kind := m.active
	m.teardown(true)
	onClose := m.OnClose
	m.mu.Unlock()

	if onClose != nil {
		onClose(kind)
	}
	return nil
}

// teardown must be called with mu held.
func (m *Manager) teardown(restoreFocus bool) {
	if m.removeKeys != nil {
		m.removeKeys()
		m.removeKeys = nil
	}
	m.phase = PhaseClosed
	m.active = ""
	m.generation++
	if !restoreFocus {
		return
	}
	m.host.SetScrollLocked(false)
	if m.lastFocused != "" {
		m.host.Focus(m.lastFocused)
	}
	m.lastFocused = ""
}

// BeginSubmit moves the open dialog to the submitting phase.
func (m *Manager) BeginSubmit() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.phase {
	case PhaseClosed:
		return ErrNotOpen
	case PhaseSubmitting:
		return ErrSubmitting
	}
	m.phase = PhaseSubmitting
	return nil
}

// Active returns the open dialog.
func (m *Manager) Active() (Kind, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active, m.phase != PhaseClosed
}

// Phase returns the current lifecycle phase.
func (m *Manager) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// HandleKey reacts to a keydown while a dialog is open. Escape closes the
// dialog unless a submission is running. Tab and Shift+Tab wrap between the
// first and last focusable elements. It returns true when the browser's
// default action must be prevented.
func (m *Manager) HandleKey(k Key) bool {
	switch k.Name {
	case KeyEscape:
		if m.Phase() != PhaseOpen {
			return false
		}
		return m.Close() == nil
	case KeyTab:
		return m.trapTab(k.Shift)
	}
	return false
}

func (m *Manager) trapTab(shift bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase == PhaseClosed {
		return false
	}
	items := m.host.Focusables(m.active)
	if len(items) == 0 {
		return false
	}
	first, last := items[0], items[len(items)-1]
	current := m.host.ActiveElement()
	switch {
	case shift && current == first:
		m.host.Focus(last)
		return true
	case !shift && current == last:
		m.host.Focus(first)
		return true
	}
	return false
}
