package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rema-viva-landing/pkg/config"
	"rema-viva-landing/pkg/countdown"
	"rema-viva-landing/pkg/forms"
	"rema-viva-landing/pkg/landing"
	"rema-viva-landing/pkg/modal"
	"rema-viva-landing/pkg/models"
	"rema-viva-landing/pkg/services"
	"rema-viva-landing/pkg/web"
)

// CountdownSource reports the current urgency timer value.
type CountdownSource interface {
	Snapshot() countdown.State
}

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	submissionService services.LeadSubmissionService
	renderer          *web.Renderer
	site              *config.Site
	clock             CountdownSource
	logger            *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	submissionService services.LeadSubmissionService,
	renderer *web.Renderer,
	site *config.Site,
	clock CountdownSource,
	logger *zap.Logger,
) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		submissionService: submissionService,
		renderer:          renderer,
		site:              site,
		clock:             clock,
		logger:            logger,
	}
}

// Register mounts every route on r.
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Page)
	r.GET("/health", h.HealthCheck)
	r.GET("/api/countdown", h.Countdown)
	r.POST("/api/leads", h.HandleLeadJSON)
	r.POST("/leads", h.HandleLeadForm)
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Countdown returns the server side timer so a page served from cache
// starts from a fresh value.
func (h *Handlers) Countdown(c *gin.Context) {
	s := h.countdownState()
	c.JSON(http.StatusOK, gin.H{
		"hours":     s.Hours,
		"minutes":   s.Minutes,
		"seconds":   s.Seconds,
		"formatted": s.String(),
	})
}

func (h *Handlers) countdownState() countdown.State {
	if h.clock == nil {
		s, _ := h.site.CountdownInitial()
		return s
	}
	return h.clock.Snapshot()
}

// Page renders the landing page. The modal and produto query parameters
// open a dialog server side for browsers without JavaScript.
func (h *Handlers) Page(c *gin.Context) {
	view := web.View{Countdown: h.countdownState()}
	switch kind := modal.Kind(c.Query("modal")); kind {
	case modal.KindFree, modal.KindTerms, modal.KindPrivacy:
		view.OpenModal = kind
	case modal.KindPaid:
		if p, ok := h.site.Product(models.ProductKind(c.Query("produto"))); ok {
			sel := p.Selection()
			view.OpenModal = kind
			view.Selected = &sel
		}
	}
	h.render(c, http.StatusOK, view)
}

// HandleLeadJSON accepts a lead from the page script.
func (h *Handlers) HandleLeadJSON(c *gin.Context) {
	var req models.LeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("error parsing lead JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}

	lead, err := h.submissionService.Prepare(req)
	if err != nil {
		var verr *forms.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusUnprocessableEntity, models.LeadResponse{
				Status:  "error",
				Message: landing.MsgFixErrors,
				Errors:  verr.Fields,
			})
		case errors.Is(err, services.ErrBadRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	h.relay(c, lead)

	c.JSON(http.StatusOK, models.LeadResponse{
		Status:       "success",
		Message:      h.successMessage(lead.Payload.Kind),
		RedirectURL:  lead.Redirect.URL,
		SubmissionID: lead.ID,
	})
}

// HandleLeadForm is the no-JavaScript path: a plain form post that ends in
// a 303 to the document or checkout.
func (h *Handlers) HandleLeadForm(c *gin.Context) {
	var req models.LeadRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid form")
		return
	}

	lead, err := h.submissionService.Prepare(req)
	if err != nil {
		var verr *forms.ValidationError
		if !errors.As(err, &verr) {
			if errors.Is(err, services.ErrBadRequest) {
				c.String(http.StatusBadRequest, err.Error())
				return
			}
			_ = c.Error(err)
			c.String(http.StatusInternalServerError, "internal error")
			return
		}
		view := web.View{
			OpenModal: modal.KindFree,
			Form:      req.LeadFormData,
			Errors:    verr.Fields,
			Status:    landing.MsgFixErrors,
			Countdown: h.countdownState(),
		}
		if req.Kind == models.KindPaid {
			view.OpenModal = modal.KindPaid
			if p, ok := h.site.Product(models.ProductKind(strings.TrimSpace(req.Product))); ok {
				sel := p.Selection()
				view.Selected = &sel
			}
		}
		h.render(c, http.StatusUnprocessableEntity, view)
		return
	}

	h.relay(c, lead)
	c.Redirect(http.StatusSeeOther, lead.Redirect.URL)
}

// relay sends the lead in the background; the response never waits for
// the spreadsheet.
func (h *Handlers) relay(c *gin.Context, lead services.Lead) {
	ctx := context.WithoutCancel(c.Request.Context())
	go h.submissionService.ProcessLead(ctx, lead)
}

func (h *Handlers) successMessage(kind models.SubmissionKind) string {
	if kind == models.KindPaid {
		return h.site.Submission.PaidSuccess
	}
	return h.site.Submission.FreeSuccess
}

func (h *Handlers) render(c *gin.Context, status int, view web.View) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(c.Writer, view); err != nil {
		h.logger.Error("error rendering page", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}
