package landing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"rema-viva-landing/pkg/models"
)

// HTTPSender posts leads to the landing server's JSON endpoint, which
// reprices them from the catalog and relays them to the spreadsheet.
type HTTPSender struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPSender returns a sender posting to endpoint, e.g. "/api/leads".
func NewHTTPSender(endpoint string, timeout time.Duration) *HTTPSender {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSender{endpoint: endpoint, httpClient: &http.Client{Timeout: timeout}}
}

func (s *HTTPSender) Send(ctx context.Context, payload models.LeadPayload) error {
	phone := payload.Phone
	if phone == models.PhoneNotProvided {
		phone = ""
	}
	req := models.LeadRequest{
		LeadFormData: models.LeadFormData{Name: payload.Name, Email: payload.Email, Phone: phone},
		Kind:         payload.Kind,
		Product:      string(payload.ProductID),
	}
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("error marshaling lead: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("error sending lead: %w", err)
	}
	defer resp.Body.Close()

	var out models.LeadResponse
	_ = json.NewDecoder(resp.Body).Decode(&out)
	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(out.Message)
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("lead endpoint returned %d: %s", resp.StatusCode, msg)
	}
	return nil
}
