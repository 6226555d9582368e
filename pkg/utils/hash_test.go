package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashString(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		HashString(""))
}

func TestLeadKeyNormalizesEmail(t *testing.T) {
	t.Parallel()

	a := LeadKey(" Ana@Example.com", "pago", "kit3")
	b := LeadKey("ana@example.com ", "pago", "kit3")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, LeadKey("ana@example.com", "pago", "serie1"))
	assert.NotEqual(t, a, LeadKey("ana@example.com", "gratuito", ""))
	assert.Len(t, a, 64)
}
