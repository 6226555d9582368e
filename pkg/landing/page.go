// Package landing ties the page widgets together: the modal forms, the
// product selection, the submission dispatcher, the FAQ and the countdown.
// It has no DOM dependency; the browser build supplies the host, sender and
// navigator.
package landing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"rema-viva-landing/pkg/accordion"
	"rema-viva-landing/pkg/analytics"
	"rema-viva-landing/pkg/config"
	"rema-viva-landing/pkg/countdown"
	"rema-viva-landing/pkg/forms"
	"rema-viva-landing/pkg/modal"
	"rema-viva-landing/pkg/models"
)

// Tone styles a status message.
type Tone string

const (
	ToneLoading Tone = "loading"
	ToneSuccess Tone = "success"
	ToneError   Tone = "error"
)

const (
	MsgFixErrors = "Por favor, corrija os erros no formulário."
	MsgNoProduct = "Produto não selecionado."
)

const (
	currencyBRL  = "BRL"
	leadSource   = "landing_page"
	itemCategory = "material_biblico"
)

// Deps are the collaborators a Page needs.
type Deps struct {
	Host      modal.Host
	Sender    Sender
	Navigator Navigator
	Tracker   analytics.Tracker
	Logger    *zap.Logger
	// NewTicker drives the countdown. Defaults to a real one-second ticker.
	NewTicker func(time.Duration) countdown.Ticker
}

// Page is the state of one landing page.
type Page struct {
	site    *config.Site
	host    modal.Host
	sender  Sender
	nav     Navigator
	tracker analytics.Tracker
	logger  *zap.Logger
	ticker  func(time.Duration) countdown.Ticker

	modals *modal.Manager
	faq    *accordion.Accordion

	mu       sync.Mutex
	form     *forms.Form
	selected *models.SelectedProduct
	status   string
	timer    *countdown.Timer
	scrolled map[int]bool
	left     bool

	// OnStatus is called whenever the status message changes.
	OnStatus func(text string, tone Tone)
	// OnClose is called after a dialog closes and its form was reset.
	OnClose func(modal.Kind)
}

// NewPage builds a page for site. Host and Navigator are required.
func NewPage(site *config.Site, deps Deps) *Page {
	if deps.Tracker == nil {
		deps.Tracker = analytics.Nop{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	p := &Page{
		site:     site,
		host:     deps.Host,
		sender:   deps.Sender,
		nav:      deps.Navigator,
		tracker:  deps.Tracker,
		logger:   deps.Logger,
		ticker:   deps.NewTicker,
		modals:   modal.NewManager(deps.Host, site.Submission.FocusDelay),
		faq:      accordion.New(),
		form:     forms.NewForm(),
		scrolled: map[int]bool{},
	}
	p.modals.OnClose = p.modalClosed
	p.faq.OnOpen = p.faqOpened
	return p
}

// Modals exposes the dialog manager, mainly for key handling.
func (p *Page) Modals() *modal.Manager { return p.modals }

// OpenFree opens the free lesson dialog with an empty form.
func (p *Page) OpenFree(location string) error {
	if err := p.modals.Open(modal.KindFree); err != nil {
		return err
	}
	p.mu.Lock()
	p.form.Reset()
	p.mu.Unlock()
	p.tracker.Track(analytics.EventButtonClick, analytics.Params{
		"button_name":     "material_gratuito",
		"button_location": location,
	})
	return nil
}

// SelectProduct opens the paid dialog for a catalog entry.
func (p *Page) SelectProduct(kind models.ProductKind, location string) error {
	product, ok := p.site.Product(kind)
	if !ok {
		return fmt.Errorf("%w: %q", config.ErrUnknownProduct, kind)
	}
	if err := p.modals.Open(modal.KindPaid); err != nil {
		return err
	}
	sel := product.Selection()
	p.mu.Lock()
	p.form.Reset()
	p.selected = &sel
	p.mu.Unlock()

	p.tracker.Track(analytics.EventViewItem, analytics.Params{
		"currency": currencyBRL,
		"value":    product.Price,
		"items": []map[string]any{{
			"item_id":       string(product.Kind),
			"item_name":     product.Name,
			"price":         product.Price,
			"item_category": itemCategory,
		}},
	})
	p.tracker.Track(analytics.EventButtonClick, analytics.Params{
		"button_name":     "comprar_" + string(product.Kind),
		"button_location": location,
		"product_id":      string(product.Kind),
		"product_price":   product.Price,
	})
	return nil
}

// OpenDocument opens the terms or privacy dialog from a link at location.
func (p *Page) OpenDocument(kind modal.Kind, location string) error {
	if kind != modal.KindTerms && kind != modal.KindPrivacy {
		return fmt.Errorf("landing: %q is not a document dialog", kind)
	}
	if err := p.modals.Open(kind); err != nil {
		return err
	}
	p.tracker.Track(analytics.EventLinkClick, analytics.Params{
		"link_type":     string(kind),
		"link_location": location,
	})
	return nil
}

// Close closes whatever dialog is open.
func (p *Page) Close() error {
	return p.modals.Close()
}

// Selected returns the product the paid dialog is selling, if any.
func (p *Page) Selected() *models.SelectedProduct {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.selected == nil {
		return nil
	}
	sel := *p.selected
	return &sel
}

// Input stores a keystroke and returns the value to display.
func (p *Page) Input(field models.Field, value string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form.Set(field, value)
}

// Errors returns the current field errors.
func (p *Page) Errors() models.FormErrors {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form.Errors()
}

// Status returns the last status message.
func (p *Page) Status() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *Page) setStatus(text string, tone Tone) {
	p.mu.Lock()
	p.status = text
	onStatus := p.OnStatus
	p.mu.Unlock()
	if onStatus != nil {
		onStatus(text, tone)
	}
}

// SubmitActive submits the form of the open dialog.
func (p *Page) SubmitActive(ctx context.Context) (BestEffortSubmission, error) {
	kind, ok := p.modals.Active()
	switch {
	case !ok:
		return BestEffortSubmission{}, modal.ErrNotOpen
	case kind == modal.KindFree:
		return p.Submit(ctx, models.KindFree, nil)
	case kind == modal.KindPaid:
		return p.Submit(ctx, models.KindPaid, p.Selected())
	}
	return BestEffortSubmission{}, fmt.Errorf("landing: dialog %q has no form", kind)
}

// Submit validates the form, sends it best-effort and schedules the
// redirect. The redirect happens whether or not the send succeeded; only a
// validation failure or a missing product stops the flow.
func (p *Page) Submit(ctx context.Context, kind models.SubmissionKind, product *models.SelectedProduct) (BestEffortSubmission, error) {
	var productKind models.ProductKind
	switch kind {
	case models.KindFree:
		product = nil
	case models.KindPaid:
		if product == nil {
			p.setStatus(MsgNoProduct, ToneError)
			return BestEffortSubmission{}, ErrNoProduct
		}
		productKind = product.Kind
	default:
		return BestEffortSubmission{}, fmt.Errorf("%w: %q", config.ErrUnknownKind, kind)
	}

	redirect, err := p.site.RedirectFor(kind, productKind)
	if err != nil {
		return BestEffortSubmission{}, err
	}

	mode := forms.ModeFree
	if kind == models.KindPaid {
		mode = forms.ModePaid
	}
	p.mu.Lock()
	ok := p.form.Validate(mode)
	errs := p.form.Errors()
	values := p.form.Values()
	p.mu.Unlock()
	if !ok {
		p.setStatus(MsgFixErrors, ToneError)
		return BestEffortSubmission{}, &forms.ValidationError{Fields: errs}
	}

	if err := p.modals.BeginSubmit(); err != nil {
		return BestEffortSubmission{}, err
	}
	p.setStatus(p.site.Submission.SendingText, ToneLoading)

	formParams := p.formParams(kind, product)
	if product != nil {
		p.tracker.Track(analytics.EventBeginCheckout, analytics.Params{
			"currency": currencyBRL,
			"value":    product.Price,
			"items": []map[string]any{{
				"item_id":   string(product.Kind),
				"item_name": product.DisplayName,
				"price":     product.Price,
				"quantity":  1,
			}},
		})
	}
	p.tracker.Track(analytics.EventFormSubmit, withStatus(formParams, "started"))

	result := SendBestEffort(ctx, p.sender, models.NewLeadPayload(values, kind, product))
	if !result.Delivered() {
		p.logger.Warn("lead send failed, redirecting anyway",
			zap.String("kind", string(kind)),
			zap.Error(result.Err),
		)
	}

	p.tracker.Track(analytics.EventFormSubmit, withStatus(formParams, "success"))
	if kind == models.KindFree {
		p.tracker.Track(analytics.EventDownload, analytics.Params{
			"download_type": string(kind),
			"file_name":     "lição_amostra",
			"value":         0,
			"currency":      currencyBRL,
		})
		p.tracker.Track(analytics.EventGenerateLead, analytics.Params{
			"lead_type":   string(kind),
			"lead_source": leadSource,
		})
		p.setStatus(p.site.Submission.FreeSuccess, ToneSuccess)
	} else {
		p.tracker.Track(analytics.EventGenerateLead, analytics.Params{
			"lead_type":     string(kind),
			"lead_source":   leadSource,
			"product_id":    string(product.Kind),
			"product_name":  product.DisplayName,
			"product_price": product.Price,
		})
		p.setStatus(p.site.Submission.PaidSuccess, ToneSuccess)
	}

	p.host.AfterFunc(p.site.Submission.RedirectDelay, func() {
		p.nav.OpenInNewTab(redirect.URL)
		if err := p.modals.Close(); err != nil {
			p.logger.Debug("dialog already closed before redirect", zap.Error(err))
		}
	})
	return result, nil
}

func (p *Page) formParams(kind models.SubmissionKind, product *models.SelectedProduct) analytics.Params {
	if product == nil {
		return analytics.Params{
			"form_type": string(kind),
			"form_name": "download_gratuito",
		}
	}
	return analytics.Params{
		"form_type":     string(kind),
		"form_name":     "checkout",
		"product_id":    string(product.Kind),
		"product_name":  product.DisplayName,
		"product_price": product.Price,
	}
}

func withStatus(params analytics.Params, status string) analytics.Params {
	out := make(analytics.Params, len(params)+1)
	for k, v := range params {
		out[k] = v
	}
	out["form_status"] = status
	return out
}

func (p *Page) modalClosed(kind modal.Kind) {
	p.mu.Lock()
	p.form.Reset()
	if kind == modal.KindPaid {
		p.selected = nil
	}
	onClose := p.OnClose
	p.mu.Unlock()
	if onClose != nil {
		onClose(kind)
	}
}

// ToggleFAQ flips question i and returns whether it is now open.
func (p *Page) ToggleFAQ(i int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.faq.Toggle(i)
}

// FAQOpen reports whether question i is expanded.
func (p *Page) FAQOpen(i int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.faq.IsOpen(i)
}

func (p *Page) faqOpened(i int) {
	question := ""
	if i >= 0 && i < len(p.site.FAQ) {
		question = p.site.FAQ[i].Question
		if r := []rune(question); len(r) > 100 {
			question = string(r[:100])
		}
	}
	p.tracker.Track(analytics.EventFAQOpen, analytics.Params{
		"faq_index":    i,
		"faq_question": question,
	})
}

// SocialClick records a click on a social profile link.
func (p *Page) SocialClick(platform, location string) {
	p.tracker.Track(analytics.EventSocialClick, analytics.Params{
		"social_platform": platform,
		"link_location":   location,
	})
}

// StartCountdown starts the urgency timer from the given value, or from
// the configured initial value when from is nil. onTick receives every new
// value. Once started, later calls only return the current value.
func (p *Page) StartCountdown(ctx context.Context, from *countdown.State, onTick func(countdown.State)) countdown.State {
	p.mu.Lock()
	if p.timer == nil {
		cfg := p.site.CountdownTimerConfig()
		if from != nil && from.Valid() {
			cfg.Initial = *from
		}
		cfg.NewTicker = p.ticker
		cfg.OnTick = onTick
		p.timer = countdown.New(cfg)
	}
	t := p.timer
	p.mu.Unlock()
	t.Start(ctx)
	return t.Snapshot()
}

// StopCountdown stops the timer and waits for its goroutine to exit.
func (p *Page) StopCountdown() {
	p.mu.Lock()
	t := p.timer
	p.mu.Unlock()
	if t != nil {
		t.Stop()
	}
}
