// Package web renders the landing page from the site document.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"rema-viva-landing/pkg/config"
	"rema-viva-landing/pkg/content"
	"rema-viva-landing/pkg/countdown"
	"rema-viva-landing/pkg/modal"
	"rema-viva-landing/pkg/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// FAQEntry is a question with its answer already rendered.
type FAQEntry struct {
	Index    int
	Question string
	Answer   template.HTML
	Open     bool
}

// View is the per-request part of the page. The zero value renders the
// page with every dialog closed.
type View struct {
	// OpenModal re-opens a dialog server side, used by the no-JS fallback.
	OpenModal modal.Kind
	Form      models.LeadFormData
	Errors    models.FormErrors
	Selected  *models.SelectedProduct
	Status    string
	Countdown countdown.State
	// OpenFAQ lists questions rendered expanded.
	OpenFAQ []int
}

type pageData struct {
	Site      *config.Site
	View      View
	Countdown countdown.Formatted
	FAQ       []FAQEntry
	Terms     template.HTML
	Privacy   template.HTML
	Analytics bool
	Kinds     kindNames
}

// kindNames exposes the wire values to the templates.
type kindNames struct {
	Free, Paid                        models.SubmissionKind
	ModalFree, ModalPaid              modal.Kind
	ModalTerms, ModalPrivacy          modal.Kind
	FieldName, FieldEmail, FieldPhone models.Field
}

// Renderer holds the parsed templates and the pre-rendered markdown.
type Renderer struct {
	tmpl      *template.Template
	site      *config.Site
	faq       []FAQEntry
	terms     template.HTML
	privacy   template.HTML
	analytics bool
}

// NewRenderer parses the templates and renders the FAQ and legal markdown
// once. analytics controls whether the tag manager snippet is emitted.
func NewRenderer(site *config.Site, analytics bool) (*Renderer, error) {
	funcs := template.FuncMap{
		"lower":    strings.ToLower,
		"dialogID": func(k modal.Kind) string { return k.DialogID() },
		"fieldID":  fieldID,
		"leadForm": leadForm,
	}
	tmpl, err := template.New("page").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}

	md := content.NewRenderer()
	faq := make([]FAQEntry, len(site.FAQ))
	for i, item := range site.FAQ {
		answer, err := md.Render(item.Answer)
		if err != nil {
			return nil, fmt.Errorf("faq %d: %w", i, err)
		}
		faq[i] = FAQEntry{Index: i, Question: item.Question, Answer: answer}
	}
	legal, err := md.RenderAll([]string{site.Legal.Terms, site.Legal.Privacy})
	if err != nil {
		return nil, fmt.Errorf("legal documents: %w", err)
	}

	return &Renderer{
		tmpl:      tmpl,
		site:      site,
		faq:       faq,
		terms:     legal[0],
		privacy:   legal[1],
		analytics: analytics && (site.Analytics.GTMContainerID != "" || site.Analytics.GA4MeasurementID != ""),
	}, nil
}

// Render writes the full page. The output is buffered so a template error
// never leaves a half-written response.
func (r *Renderer) Render(w io.Writer, v View) error {
	faq := make([]FAQEntry, len(r.faq))
	copy(faq, r.faq)
	for _, i := range v.OpenFAQ {
		if i >= 0 && i < len(faq) {
			faq[i].Open = true
		}
	}
	if v.Errors == nil {
		v.Errors = models.FormErrors{}
	}

	data := pageData{
		Site:      r.site,
		View:      v,
		Countdown: v.Countdown.Format(),
		FAQ:       faq,
		Terms:     r.terms,
		Privacy:   r.privacy,
		Analytics: r.analytics,
		Kinds: kindNames{
			Free:         models.KindFree,
			Paid:         models.KindPaid,
			ModalFree:    modal.KindFree,
			ModalPaid:    modal.KindPaid,
			ModalTerms:   modal.KindTerms,
			ModalPrivacy: modal.KindPrivacy,
			FieldName:    models.FieldName,
			FieldEmail:   models.FieldEmail,
			FieldPhone:   models.FieldPhone,
		},
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// leadFormData feeds the "leadForm" template for one dialog.
type leadFormData struct {
	Kind       modal.Kind
	Submission models.SubmissionKind
	Form       models.LeadFormData
	Errors     models.FormErrors
	Selected   *models.SelectedProduct
	Names      kindNames
}

// leadForm only carries values and errors into the dialog the view opened.
func leadForm(data pageData, kind modal.Kind) leadFormData {
	out := leadFormData{
		Kind:       kind,
		Submission: models.KindFree,
		Errors:     models.FormErrors{},
		Names:      data.Kinds,
	}
	if kind == modal.KindPaid {
		out.Submission = models.KindPaid
		out.Selected = data.View.Selected
	}
	if data.View.OpenModal == kind {
		out.Form = data.View.Form
		out.Errors = data.View.Errors
	}
	return out
}

// fieldID is the element id of a form input, e.g. "free-email".
func fieldID(k modal.Kind, f models.Field) string {
	return string(k) + "-" + string(f)
}
