package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rema-viva-landing/pkg/clients/appscript"
	"rema-viva-landing/pkg/config"
	"rema-viva-landing/pkg/dedupe"
	"rema-viva-landing/pkg/forms"
	"rema-viva-landing/pkg/models"
	"rema-viva-landing/pkg/utils"
)

const forgetTimeout = 2 * time.Second

// ErrBadRequest wraps submissions naming an unknown kind or product.
var ErrBadRequest = errors.New("bad lead request")

// Lead is a validated submission ready to relay.
type Lead struct {
	ID       string
	Key      string
	Payload  models.LeadPayload
	Redirect models.Redirect
}

// LeadSubmissionService defines the interface for handling form submissions
type LeadSubmissionService interface {
	// Prepare validates the request against the form rules and the catalog.
	Prepare(req models.LeadRequest) (Lead, error)
	// ProcessLead relays the lead to the spreadsheet. Errors are logged,
	// never returned: the visitor is redirected either way.
	ProcessLead(ctx context.Context, lead Lead)
}

type leadSubmissionServiceImpl struct {
	site         *config.Site
	sheetClient  appscript.Client
	guard        dedupe.Guard
	relayTimeout time.Duration
	logger       *zap.Logger
}

// NewLeadSubmissionService creates a new submission service
func NewLeadSubmissionService(
	site *config.Site,
	sheetClient appscript.Client,
	guard dedupe.Guard,
	relayTimeout time.Duration,
	logger *zap.Logger,
) LeadSubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &leadSubmissionServiceImpl{
		site:         site,
		sheetClient:  sheetClient,
		guard:        guard,
		relayTimeout: relayTimeout,
		logger:       logger,
	}
}

func (s *leadSubmissionServiceImpl) Prepare(req models.LeadRequest) (Lead, error) {
	if !req.Kind.Valid() {
		return Lead{}, fmt.Errorf("%w: unknown kind %q", ErrBadRequest, req.Kind)
	}

	var selected *models.SelectedProduct
	productKind := models.ProductKind(strings.TrimSpace(req.Product))
	if req.Kind == models.KindPaid {
		p, ok := s.site.Product(productKind)
		if !ok {
			return Lead{}, fmt.Errorf("%w: unknown product %q", ErrBadRequest, req.Product)
		}
		sel := p.Selection()
		selected = &sel
	}

	mode := forms.ModeFree
	if req.Kind == models.KindPaid {
		mode = forms.ModePaid
	}
	if errs, ok := forms.Validate(req.LeadFormData, mode); !ok {
		return Lead{}, &forms.ValidationError{Fields: errs}
	}

	redirect, err := s.site.RedirectFor(req.Kind, productKind)
	if err != nil {
		return Lead{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	values := models.LeadFormData{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
		Phone: strings.TrimSpace(req.Phone),
	}
	return Lead{
		ID:       uuid.NewString(),
		Key:      utils.LeadKey(values.Email, string(req.Kind), string(productKind)),
		Payload:  models.NewLeadPayload(values, req.Kind, selected),
		Redirect: redirect,
	}, nil
}

func (s *leadSubmissionServiceImpl) ProcessLead(ctx context.Context, lead Lead) {
	log := s.logger.With(
		zap.String("submission_id", lead.ID),
		zap.String("lead_key", lead.Key),
		zap.String("kind", string(lead.Payload.Kind)),
	)

	if s.relayTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.relayTimeout)
		defer cancel()
	}

	if s.guard != nil {
		first, err := s.guard.FirstSeen(ctx, lead.Key)
		if err != nil {
			// A broken dedupe store must not cost a lead.
			log.Warn("dedupe check failed", zap.Error(err))
		} else if !first {
			log.Info("skipping duplicate lead")
			return
		}
	}

	if err := appscript.Send(ctx, s.sheetClient, lead.Payload); err != nil {
		log.Error("error relaying lead to spreadsheet", zap.Error(err))
		s.forget(lead.Key, log)
		return
	}
	log.Info("lead relayed")
}

// forget releases the key of a lead that was never stored so a retry is
// relayed. The request context may already be done by now.
func (s *leadSubmissionServiceImpl) forget(key string, log *zap.Logger) {
	if s.guard == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), forgetTimeout)
	defer cancel()
	if err := s.guard.Forget(ctx, key); err != nil {
		log.Warn("error releasing lead key", zap.Error(err))
	}
}
