package landing

import (
	"context"
	"errors"

	"rema-viva-landing/pkg/models"
)

// ErrNoProduct is returned when the paid form is submitted without a
// selected product.
var ErrNoProduct = errors.New("landing: no product selected")

// Sender delivers a lead row to the collection endpoint.
type Sender interface {
	Send(ctx context.Context, payload models.LeadPayload) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, payload models.LeadPayload) error

func (f SenderFunc) Send(ctx context.Context, payload models.LeadPayload) error {
	return f(ctx, payload)
}

// Navigator opens external destinations.
type Navigator interface {
	OpenInNewTab(url string)
}

// BestEffortSubmission is the outcome of a send whose result never changes
// what happens next. Err is kept for logging only.
type BestEffortSubmission struct {
	Payload models.LeadPayload
	Err     error
}

// Delivered reports whether the sender returned without error. An opaque
// cross-origin request reports true even when nothing was stored.
func (b BestEffortSubmission) Delivered() bool {
	return b.Err == nil
}

// SendBestEffort calls s and records the outcome.
func SendBestEffort(ctx context.Context, s Sender, payload models.LeadPayload) BestEffortSubmission {
	if s == nil {
		return BestEffortSubmission{Payload: payload}
	}
	return BestEffortSubmission{Payload: payload, Err: s.Send(ctx, payload)}
}
