package modal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	focused    string
	locked     bool
	focusables map[Kind][]string
	listeners  map[int]func(Key) bool
	nextID     int
	pending    []func()
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		focused: "cta-free",
		focusables: map[Kind][]string{
			KindFree: {"free-close", "free-nome", "free-email", "free-whatsapp", "free-submit"},
			KindPaid: {"paid-close", "paid-nome", "paid-submit"},
		},
		listeners: map[int]func(Key) bool{},
	}
}

func (h *fakeHost) ActiveElement() string                { return h.focused }
func (h *fakeHost) Focus(id string)                      { h.focused = id }
func (h *fakeHost) SetScrollLocked(locked bool)          { h.locked = locked }
func (h *fakeHost) Focusables(kind Kind) []string        { return h.focusables[kind] }
func (h *fakeHost) AfterFunc(_ time.Duration, fn func()) { h.pending = append(h.pending, fn) }

func (h *fakeHost) AddKeyListener(fn func(Key) bool) func() {
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	return func() { delete(h.listeners, id) }
}

func (h *fakeHost) press(k Key) bool {
	prevent := false
	for _, fn := range h.listeners {
		if fn(k) {
			prevent = true
		}
	}
	return prevent
}

func (h *fakeHost) flush() {
	pending := h.pending
	h.pending = nil
	for _, fn := range pending {
		fn()
	}
}

func TestOpenThenEscapeRestoresFocus(t *testing.T) {
	t.Parallel()

	host := newFakeHost()
	m := NewManager(host, 0)
	var closed []Kind
	m.OnClose = func(k Kind) { closed = append(closed, k) }

	require.NoError(t, m.Open(KindFree))
	assert.True(t, host.locked)
	assert.Len(t, host.listeners, 1)

	host.flush()
	assert.Equal(t, KindFree.DialogID(), host.focused)

	assert.True(t, host.press(Key{Name: KeyEscape}))
	_, open := m.Active()
	assert.False(t, open)
	assert.False(t, host.locked)
	assert.Equal(t, "cta-free", host.focused)
	assert.Empty(t, host.listeners)
	assert.Equal(t, []Kind{KindFree}, closed)
}

func TestFocusTrapWrapsBothWays(t *testing.T) {
	t.Parallel()

	host := newFakeHost()
	m := NewManager(host, 0)
	require.NoError(t, m.Open(KindFree))
	host.flush()

	host.focused = "free-close"
	assert.True(t, host.press(Key{Name: KeyTab, Shift: true}))
	assert.Equal(t, "free-submit", host.focused)

	assert.True(t, host.press(Key{Name: KeyTab}))
	assert.Equal(t, "free-close", host.focused)

	host.focused = "free-email"
	assert.False(t, host.press(Key{Name: KeyTab}))
	assert.False(t, host.press(Key{Name: KeyTab, Shift: true}))
	assert.Equal(t, "free-email", host.focused)
}

func TestOpeningSecondDialogClosesFirst(t *testing.T) {
	t.Parallel()

	host := newFakeHost()
	m := NewManager(host, 0)
	var closed []Kind
	m.OnClose = func(k Kind) { closed = append(closed, k) }

	require.NoError(t, m.Open(KindFree))
	host.focused = "free-nome"
	require.NoError(t, m.Open(KindPaid))

	kind, open := m.Active()
	assert.True(t, open)
	assert.Equal(t, KindPaid, kind)
	assert.Equal(t, []Kind{KindFree}, closed)
	assert.Len(t, host.listeners, 1)

	host.flush()
	assert.Equal(t, KindPaid.DialogID(), host.focused)

	require.NoError(t, m.Close())
	assert.Equal(t, "cta-free", host.focused)
}

func TestStaleFocusTimerIsIgnored(t *testing.T) {
	t.Parallel()

	host := newFakeHost()
	m := NewManager(host, 0)
	require.NoError(t, m.Open(KindFree))
	require.NoError(t, m.Close())

	host.flush()
	assert.Equal(t, "cta-free", host.focused)
}

func TestSubmittingPhase(t *testing.T) {
	t.Parallel()

	host := newFakeHost()
	m := NewManager(host, 0)

	assert.ErrorIs(t, m.BeginSubmit(), ErrNotOpen)
	require.NoError(t, m.Open(KindPaid))
	require.NoError(t, m.BeginSubmit())
	assert.Equal(t, PhaseSubmitting, m.Phase())

	assert.ErrorIs(t, m.BeginSubmit(), ErrSubmitting)
	assert.ErrorIs(t, m.Open(KindFree), ErrSubmitting)
	assert.False(t, host.press(Key{Name: KeyEscape}))
	assert.Equal(t, PhaseSubmitting, m.Phase())

	require.NoError(t, m.Close())
	assert.Equal(t, PhaseClosed, m.Phase())
	assert.ErrorIs(t, m.Close(), ErrNotOpen)
}

func TestKeysIgnoredWhenClosed(t *testing.T) {
	t.Parallel()

	m := NewManager(newFakeHost(), 0)
	assert.False(t, m.HandleKey(Key{Name: KeyEscape}))
	assert.False(t, m.HandleKey(Key{Name: KeyTab}))
	assert.False(t, m.HandleKey(Key{Name: "Enter"}))
}
