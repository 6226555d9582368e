package landing

import (
	"math"
	"time"

	"rema-viva-landing/pkg/analytics"
)

// ScrollMilestones are the depths, in percent, reported once per page.
var ScrollMilestones = []int{25, 50, 75, 90}

const (
	// MinTimeOnPage is the shortest visit worth a time_on_page event.
	MinTimeOnPage = 10 * time.Second
	// BackToTopOffset is how far, in CSS pixels, the page must be scrolled
	// before the back-to-top button shows.
	BackToTopOffset = 300
)

// PageView records the initial page load.
func (p *Page) PageView(location, path string) {
	p.tracker.Track(analytics.EventPageView, analytics.Params{
		"page_title":    p.site.Brand.Title,
		"page_location": location,
		"page_path":     path,
	})
}

// LeaveAfter records how long the visitor stayed. Visits of MinTimeOnPage
// or less are not reported, and only the first call counts.
func (p *Page) LeaveAfter(spent time.Duration) bool {
	seconds := int(spent.Round(time.Second) / time.Second)
	if seconds <= int(MinTimeOnPage/time.Second) {
		return false
	}
	p.mu.Lock()
	if p.left {
		p.mu.Unlock()
		return false
	}
	p.left = true
	p.mu.Unlock()

	p.tracker.Track(analytics.EventTimeOnPage, analytics.Params{
		"time_seconds": seconds,
		"page_title":   p.site.Brand.Title,
	})
	return true
}

// Scrolled reports every milestone up to pct that was not reported yet and
// returns them in order. A fast scroll can pass several milestones at once.
func (p *Page) Scrolled(pct int) []int {
	var reached []int
	p.mu.Lock()
	for _, m := range ScrollMilestones {
		if pct >= m && !p.scrolled[m] {
			p.scrolled[m] = true
			reached = append(reached, m)
		}
	}
	p.mu.Unlock()

	for _, m := range reached {
		p.tracker.Track(analytics.EventScroll, analytics.Params{
			"scroll_percentage": m,
			"page_title":        p.site.Brand.Title,
		})
	}
	return reached
}

// BackToTop records a click on the floating back-to-top button.
func (p *Page) BackToTop() {
	p.tracker.Track(analytics.EventButtonClick, analytics.Params{
		"button_name":     "voltar_ao_topo",
		"button_location": "floating",
	})
}

// ShowBackToTop reports whether the button is visible at scroll offset y.
func ShowBackToTop(y float64) bool {
	return y > BackToTopOffset
}

// ScrollPercent converts a scroll offset into a depth in [0, 100]. A page
// shorter than the viewport is fully read.
func ScrollPercent(y, scrollHeight, viewport float64) int {
	scrollable := scrollHeight - viewport
	if scrollable <= 0 {
		return 100
	}
	pct := int(math.Round(y / scrollable * 100))
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}
