package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLeadPayload(t *testing.T) {
	t.Parallel()

	values := LeadFormData{Name: "Ana", Email: "ana@example.com"}

	free := NewLeadPayload(values, KindFree, nil)
	assert.Equal(t, PhoneNotProvided, free.Phone)
	assert.Empty(t, free.Product)
	assert.Empty(t, free.Price)

	values.Phone = "(11) 98765-4321"
	paid := NewLeadPayload(values, KindPaid, &SelectedProduct{Kind: "kit3", DisplayName: "Kit", PriceLabel: "R$ 49,90"})
	assert.Equal(t, "(11) 98765-4321", paid.Phone)
	assert.Equal(t, "Kit", paid.Product)
	assert.Equal(t, "R$ 49,90", paid.Price)
	assert.Equal(t, ProductKind("kit3"), paid.ProductID)

	row, err := json.Marshal(paid)
	assert.NoError(t, err)
	assert.Contains(t, string(row), `"tipo":"pago"`)
	assert.NotContains(t, string(row), "kit3")
}
