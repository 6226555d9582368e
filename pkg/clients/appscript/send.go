package appscript

import (
	"context"
	"errors"
	"fmt"

	"rema-viva-landing/pkg/models"
)

// Send appends the row as JSON and retries once as text/plain when the JSON
// request fails. A row refused by the script itself is not retried.
func Send(ctx context.Context, c Client, payload models.LeadPayload) error {
	err := c.AppendLead(ctx, payload)
	if err == nil || errors.Is(err, ErrRemote) {
		return err
	}
	if ctx.Err() != nil {
		return err
	}
	if backupErr := c.AppendLeadText(ctx, payload); backupErr != nil {
		return fmt.Errorf("json: %v; text: %w", err, backupErr)
	}
	return nil
}
