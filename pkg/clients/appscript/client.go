package appscript

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"rema-viva-landing/pkg/models"
)

// Client defines the interface for appending lead rows to the spreadsheet
// web app
type Client interface {
	AppendLead(ctx context.Context, payload models.LeadPayload) error
	AppendLeadText(ctx context.Context, payload models.LeadPayload) error
}

// ErrRemote is returned when the web app answers {"result":"error"}.
var ErrRemote = errors.New("spreadsheet endpoint reported an error")

type clientImpl struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new spreadsheet web app client
func NewClient(endpoint string, timeout time.Duration, logger *zap.Logger) Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &clientImpl{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// response mirrors what doPost returns.
type response struct {
	Result  string `json:"result"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *clientImpl) AppendLead(ctx context.Context, payload models.LeadPayload) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonPayload))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, payload.Kind)
}

// AppendLeadText posts the same JSON as text/plain. doPost parses the raw
// body, so the row is identical.
func (c *clientImpl) AppendLeadText(ctx context.Context, payload models.LeadPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	return c.do(req, payload.Kind)
}

func (c *clientImpl) do(req *http.Request, kind models.SubmissionKind) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error appending lead row: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("error from spreadsheet endpoint: status %d: %s", resp.StatusCode, string(body))
	}

	// Apps Script sometimes answers with an HTML page after its redirect;
	// only a JSON body can be checked.
	var parsed response
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Result == "error" {
		return fmt.Errorf("%w: %s", ErrRemote, parsed.Error)
	}

	c.logger.Info("lead row appended",
		zap.String("kind", string(kind)),
		zap.String("content_type", req.Header.Get("Content-Type")),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
