package landing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rema-viva-landing/pkg/models"
)

func TestHTTPSenderPostsLeadRequest(t *testing.T) {
	var got models.LeadRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(models.LeadResponse{Status: "success"})
	}))
	defer srv.Close()

	payload := models.NewLeadPayload(
		models.LeadFormData{Name: "Ana", Email: "ana@example.com"},
		models.KindPaid,
		&models.SelectedProduct{Kind: "kit3", DisplayName: "Kit", PriceLabel: "R$ 49,90"},
	)
	err := NewHTTPSender(srv.URL, time.Second).Send(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, "kit3", got.Product)
	assert.Equal(t, models.KindPaid, got.Kind)
	assert.Empty(t, got.Phone)
}

func TestHTTPSenderReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(models.LeadResponse{Status: "error", Message: "Email inválido"})
	}))
	defer srv.Close()

	res := SendBestEffort(context.Background(), NewHTTPSender(srv.URL, time.Second), models.LeadPayload{Kind: models.KindFree})
	assert.False(t, res.Delivered())
	assert.ErrorContains(t, res.Err, "422")
}
