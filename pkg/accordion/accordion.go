// Package accordion tracks which FAQ questions are expanded.
package accordion

import "sort"

// Accordion is a set of open question indices. Any number of questions can
// be open at once; toggling one never touches the others.
type Accordion struct {
	open map[int]bool
	// OnOpen is called with the index of a question that was just expanded.
	OnOpen func(index int)
}

// New returns an accordion with every question collapsed.
func New() *Accordion {
	return &Accordion{open: map[int]bool{}}
}

// Toggle flips question i and returns whether it is now open.
func (a *Accordion) Toggle(i int) bool {
	if a.open[i] {
		delete(a.open, i)
		return false
	}
	a.open[i] = true
	if a.OnOpen != nil {
		a.OnOpen(i)
	}
	return true
}

// IsOpen reports whether question i is expanded.
func (a *Accordion) IsOpen(i int) bool {
	return a.open[i]
}

// OpenIndices lists the expanded questions in ascending order.
func (a *Accordion) OpenIndices() []int {
	out := make([]int, 0, len(a.open))
	for i := range a.open {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
