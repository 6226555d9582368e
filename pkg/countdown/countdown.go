// Package countdown implements the urgency timer shown in the hero section.
//
// The timer is cosmetic. It is not tied to a real deadline, and in the
// default mode it restarts from the configured value every time it reaches
// zero.
package countdown

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects what happens when the countdown reaches 00:00:00.
type Mode string

const (
	// ModeWrap restarts from the restart value.
	ModeWrap Mode = "wrap"
	// ModeHalt stays at zero and stops ticking.
	ModeHalt Mode = "halt"
)

// ParseMode accepts "wrap" or "halt". An empty string means ModeWrap.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeWrap:
		return ModeWrap, nil
	case ModeHalt:
		return ModeHalt, nil
	default:
		return "", fmt.Errorf("unknown countdown mode %q", s)
	}
}

// State is the remaining time. Hours are 0-23, minutes and seconds 0-59.
type State struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// DefaultRestart is the value a wrapping countdown restarts from.
var DefaultRestart = State{Hours: 23, Minutes: 59, Seconds: 59}

// Valid reports whether every component is within bounds.
func (s State) Valid() bool {
	return s.Hours >= 0 && s.Hours <= 23 &&
		s.Minutes >= 0 && s.Minutes <= 59 &&
		s.Seconds >= 0 && s.Seconds <= 59
}

// IsZero reports whether the countdown shows 00:00:00.
func (s State) IsZero() bool {
	return s.Hours == 0 && s.Minutes == 0 && s.Seconds == 0
}

// Formatted holds the two-digit strings rendered on the page.
type Formatted struct {
	Hours   string `json:"hours"`
	Minutes string `json:"minutes"`
	Seconds string `json:"seconds"`
}

// Format pads each component to two digits.
func (s State) Format() Formatted {
	return Formatted{
		Hours:   fmt.Sprintf("%02d", s.Hours),
		Minutes: fmt.Sprintf("%02d", s.Minutes),
		Seconds: fmt.Sprintf("%02d", s.Seconds),
	}
}

func (s State) String() string {
	f := s.Format()
	return f.Hours + ":" + f.Minutes + ":" + f.Seconds
}

// ParseState reads "HH:MM:SS".
func ParseState(s string) (State, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return State{}, fmt.Errorf("countdown value %q: want HH:MM:SS", s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return State{}, fmt.Errorf("countdown value %q: %w", s, err)
		}
		nums[i] = n
	}
	st := State{Hours: nums[0], Minutes: nums[1], Seconds: nums[2]}
	if !st.Valid() {
		return State{}, fmt.Errorf("countdown value %q out of range", s)
	}
	return st, nil
}

// Step applies one tick of the decrement rule. The second return value is
// false when the countdown was already at zero, in which case restart is
// returned; callers in halt mode ignore it and stop.
func Step(s State, restart State) (State, bool) {
	switch {
	case s.Seconds > 0:
		s.Seconds--
	case s.Minutes > 0:
		s.Minutes--
		s.Seconds = 59
	case s.Hours > 0:
		s.Hours--
		s.Minutes = 59
		s.Seconds = 59
	default:
		return restart, false
	}
	return s, true
}

// Tick advances s by one second under the given mode. In halt mode a zero
// state stays zero.
func Tick(s State, mode Mode, restart State) State {
	next, ok := Step(s, restart)
	if !ok && mode == ModeHalt {
		return State{}
	}
	return next
}
