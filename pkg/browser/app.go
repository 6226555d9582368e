//go:build js && wasm

package browser

import (
	"context"
	"errors"
	"strconv"
	"syscall/js"
	"time"

	"go.uber.org/zap"

	"rema-viva-landing/pkg/analytics"
	"rema-viva-landing/pkg/config"
	"rema-viva-landing/pkg/countdown"
	"rema-viva-landing/pkg/forms"
	"rema-viva-landing/pkg/landing"
	"rema-viva-landing/pkg/modal"
	"rema-viva-landing/pkg/models"
)

var leadFields = []models.Field{models.FieldName, models.FieldEmail, models.FieldPhone}

// App owns the page and the js.Func callbacks bound to it.
type App struct {
	doc      js.Value
	page     *landing.Page
	handlers []js.Func
	logger   *zap.Logger

	sendingLabel string
	submitLabels map[modal.Kind]string
}

// Run reads the embedded site document, binds every control and blocks
// until ctx is done.
func Run(ctx context.Context, endpoint string) error {
	doc := js.Global().Get("document")
	raw := doc.Call("getElementById", "site-config")
	if !raw.Truthy() {
		return errors.New("site config element missing")
	}
	site, err := config.ParseSiteJSON([]byte(raw.Get("textContent").String()))
	if err != nil {
		return err
	}

	logger, err := consoleLogger()
	if err != nil {
		return err
	}

	var tracker analytics.Tracker = analytics.Nop{}
	if js.Global().Get("dataLayer").Truthy() {
		tracker = analytics.NewDataLayer(DataLayerSink)
	}

	app := &App{
		doc:          doc,
		logger:       logger,
		sendingLabel: site.Submission.SendingText,
		submitLabels: map[modal.Kind]string{},
	}
	app.page = landing.NewPage(site, landing.Deps{
		Host:      NewDOMHost(),
		Sender:    landing.NewHTTPSender(endpoint, 0),
		Navigator: WindowNavigator{},
		Tracker:   tracker,
		Logger:    logger,
	})
	app.page.OnClose = app.dialogClosed
	app.page.OnStatus = app.showStatus

	app.bindOpeners()
	app.bindForms(ctx)
	app.bindFAQ()
	app.bindSocial()
	app.bindEngagement(time.Now())
	app.startCountdown(ctx)

	<-ctx.Done()
	app.page.StopCountdown()
	app.release()
	return nil
}

func (a *App) on(el js.Value, event string, fn func(this js.Value, ev js.Value)) {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := js.Undefined()
		if len(args) > 0 {
			ev = args[0]
		}
		fn(this, ev)
		return nil
	})
	el.Call("addEventListener", event, cb)
	a.handlers = append(a.handlers, cb)
}

func (a *App) each(selector string, fn func(el js.Value)) {
	nodes := a.doc.Call("querySelectorAll", selector)
	for i := 0; i < nodes.Get("length").Int(); i++ {
		fn(nodes.Index(i))
	}
}

func (a *App) byID(id string) js.Value {
	return a.doc.Call("getElementById", id)
}

func (a *App) release() {
	for _, fn := range a.handlers {
		fn.Release()
	}
	a.handlers = nil
}

func (a *App) bindOpeners() {
	a.each(`[data-action="open-free"]`, func(el js.Value) {
		a.on(el, "click", func(this, ev js.Value) {
			ev.Call("preventDefault")
			if err := a.page.OpenFree(this.Get("dataset").Get("location").String()); err == nil {
				a.showDialog(modal.KindFree)
			}
		})
	})
	a.each(`[data-action="select-product"]`, func(el js.Value) {
		a.on(el, "click", func(this, ev js.Value) {
			ev.Call("preventDefault")
			ds := this.Get("dataset")
			kind := models.ProductKind(ds.Get("product").String())
			if err := a.page.SelectProduct(kind, ds.Get("location").String()); err != nil {
				a.logger.Warn("product selection failed", zap.Error(err))
				return
			}
			if sel := a.page.Selected(); sel != nil {
				a.byID("paid-product").Set("innerHTML", "")
				a.byID("paid-product").Set("textContent", sel.DisplayName+" "+sel.PriceLabel)
				if input := a.byID("paid-produto"); input.Truthy() {
					input.Set("value", string(sel.Kind))
				}
			}
			a.showDialog(modal.KindPaid)
		})
	})
	a.each(`[data-action="open-document"]`, func(el js.Value) {
		a.on(el, "click", func(this, ev js.Value) {
			ev.Call("preventDefault")
			ds := this.Get("dataset")
			kind := modal.Kind(ds.Get("dialog").String())
			if err := a.page.OpenDocument(kind, ds.Get("location").String()); err == nil {
				a.showDialog(kind)
			}
		})
	})
	a.each(`[data-action="close"]`, func(el js.Value) {
		a.on(el, "click", func(_, ev js.Value) {
			ev.Call("preventDefault")
			if a.page.Modals().Phase() == modal.PhaseOpen {
				_ = a.page.Close()
			}
		})
	})
	a.each(`.modal`, func(el js.Value) {
		a.on(el, "click", func(this, ev js.Value) {
			if ev.Get("target").Equal(this) && a.page.Modals().Phase() == modal.PhaseOpen {
				_ = a.page.Close()
			}
		})
	})
}

func (a *App) bindForms(ctx context.Context) {
	for _, kind := range []modal.Kind{modal.KindFree, modal.KindPaid} {
		kind := kind
		for _, field := range leadFields {
			field := field
			input := a.byID(string(kind) + "-" + string(field))
			if !input.Truthy() {
				continue
			}
			a.on(input, "input", func(this, _ js.Value) {
				shown := a.page.Input(field, this.Get("value").String())
				if shown != this.Get("value").String() {
					this.Set("value", shown)
				}
				a.setFieldError(kind, field, "")
			})
		}
		if button := a.byID(string(kind) + "-submit"); button.Truthy() {
			a.submitLabels[kind] = button.Get("textContent").String()
		}
		form := a.byID(string(kind) + "-form")
		if !form.Truthy() {
			continue
		}
		a.on(form, "submit", func(_, ev js.Value) {
			ev.Call("preventDefault")
			go a.submit(ctx, kind)
		})
	}
}

func (a *App) submit(ctx context.Context, kind modal.Kind) {
	button := a.byID(string(kind) + "-submit")
	button.Set("disabled", true)

	_, err := a.page.SubmitActive(ctx)
	if err == nil {
		// re-enabled by dialogClosed after the redirect
		button.Set("textContent", a.sendingLabel)
		return
	}
	button.Set("disabled", false)

	var verr *forms.ValidationError
	if errors.As(err, &verr) {
		for _, field := range leadFields {
			a.setFieldError(kind, field, verr.Fields[field])
		}
		return
	}
	a.logger.Warn("submission stopped", zap.Error(err))
}

func (a *App) setFieldError(kind modal.Kind, field models.Field, msg string) {
	el := a.byID(string(kind) + "-" + string(field) + "-error")
	if !el.Truthy() {
		return
	}
	el.Set("textContent", msg)
	el.Set("hidden", msg == "")
}

func (a *App) showDialog(kind modal.Kind) {
	a.each(".modal", func(el js.Value) {
		el.Set("hidden", el.Get("id").String() != kind.DialogID())
	})
}

func (a *App) dialogClosed(kind modal.Kind) {
	if el := a.byID(kind.DialogID()); el.Truthy() {
		el.Set("hidden", true)
	}
	for _, field := range leadFields {
		if input := a.byID(string(kind) + "-" + string(field)); input.Truthy() {
			input.Set("value", "")
		}
		a.setFieldError(kind, field, "")
	}
	if button := a.byID(string(kind) + "-submit"); button.Truthy() {
		button.Set("disabled", false)
		if label, ok := a.submitLabels[kind]; ok {
			button.Set("textContent", label)
		}
	}
}

func (a *App) showStatus(text string, tone landing.Tone) {
	el := a.byID("status")
	if !el.Truthy() {
		return
	}
	el.Set("textContent", text)
	el.Set("className", "status status-"+string(tone))
	el.Set("hidden", text == "")
}

func (a *App) bindFAQ() {
	a.each(`[data-faq-index]`, func(el js.Value) {
		a.on(el, "click", func(this, _ js.Value) {
			i, err := strconv.Atoi(this.Get("dataset").Get("faqIndex").String())
			if err != nil {
				return
			}
			open := a.page.ToggleFAQ(i)
			this.Call("setAttribute", "aria-expanded", strconv.FormatBool(open))
			if answer := a.byID("faq-answer-" + strconv.Itoa(i)); answer.Truthy() {
				answer.Set("hidden", !open)
			}
		})
	})
}

func (a *App) bindSocial() {
	a.each(`[data-social]`, func(el js.Value) {
		a.on(el, "click", func(this, _ js.Value) {
			a.page.SocialClick(this.Get("dataset").Get("social").String(), "footer")
		})
	})
}

// bindEngagement reports the page view and hooks the window scroll and
// pagehide events.
func (a *App) bindEngagement(loaded time.Time) {
	window := js.Global()
	location := window.Get("location")
	a.page.PageView(location.Get("href").String(), location.Get("pathname").String())

	backToTop := a.byID("back-to-top")
	a.on(window, "scroll", func(_, _ js.Value) {
		y := window.Get("scrollY").Float()
		if backToTop.Truthy() {
			backToTop.Set("hidden", !landing.ShowBackToTop(y))
		}
		height := a.doc.Get("documentElement").Get("scrollHeight").Float()
		a.page.Scrolled(landing.ScrollPercent(y, height, window.Get("innerHeight").Float()))
	})
	if backToTop.Truthy() {
		a.on(backToTop, "click", func(_, _ js.Value) {
			a.page.BackToTop()
			window.Call("scrollTo", map[string]any{"top": 0, "behavior": "smooth"})
		})
	}
	a.on(window, "pagehide", func(_, _ js.Value) {
		a.page.LeaveAfter(time.Since(loaded))
	})
}

func (a *App) startCountdown(ctx context.Context) {
	hours, minutes, seconds := a.byID("countdown-hours"), a.byID("countdown-minutes"), a.byID("countdown-seconds")
	if !hours.Truthy() || !minutes.Truthy() || !seconds.Truthy() {
		return
	}
	var from *countdown.State
	text := hours.Get("textContent").String() + ":" + minutes.Get("textContent").String() + ":" + seconds.Get("textContent").String()
	if s, err := countdown.ParseState(text); err == nil {
		from = &s
	}
	a.page.StartCountdown(ctx, from, func(s countdown.State) {
		f := s.Format()
		hours.Set("textContent", f.Hours)
		minutes.Set("textContent", f.Minutes)
		seconds.Set("textContent", f.Seconds)
	})
}
