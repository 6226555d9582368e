package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rema-viva-landing/pkg/models"
)

func valid() models.LeadFormData {
	return models.LeadFormData{Name: "Ana Paula", Email: "ana@igreja.org.br"}
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantMsg string
	}{
		{"empty", "", MsgNameRequired},
		{"blank", "   ", MsgNameRequired},
		{"one trimmed char", "  a ", MsgNameTooShort},
		{"two chars", "Jo", ""},
		{"accented", "Zé", ""},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			v := valid()
			v.Name = tc.value
			errs, ok := Validate(v, ModeFree)
			assert.Equal(t, tc.wantMsg == "", ok)
			assert.Equal(t, tc.wantMsg, errs[models.FieldName])
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   string
		wantMsg string
	}{
		{"", MsgEmailRequired},
		{"  ", MsgEmailRequired},
		{"foo", MsgEmailInvalid},
		{"foo@bar", MsgEmailInvalid},
		{"foo @bar.com", MsgEmailInvalid},
		{"foo@bar.com", ""},
	}
	for _, tc := range tests {
		v := valid()
		v.Email = tc.value
		errs, ok := Validate(v, ModePaid)
		assert.Equal(t, tc.wantMsg == "", ok, tc.value)
		assert.Equal(t, tc.wantMsg, errs[models.FieldEmail], tc.value)
	}
}

func TestValidatePhoneIsOptional(t *testing.T) {
	t.Parallel()

	for _, phone := range []string{"", "   ", "(11) 98765-4321", "(14) 3322-1100", "11987654321"} {
		v := valid()
		v.Phone = phone
		errs, ok := Validate(v, ModeFree)
		assert.True(t, ok, phone)
		assert.Empty(t, errs, phone)
	}

	for _, phone := range []string{"123", "(11) 9876-543", "telefone"} {
		v := valid()
		v.Phone = phone
		errs, ok := Validate(v, ModeFree)
		assert.False(t, ok, phone)
		assert.Equal(t, MsgPhoneInvalid, errs[models.FieldPhone], phone)
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	t.Parallel()

	errs, ok := Validate(models.LeadFormData{Name: "a", Email: "x", Phone: "1"}, ModeFree)
	require.False(t, ok)
	assert.Len(t, errs, 3)
}

func TestValidateModesShareRules(t *testing.T) {
	t.Parallel()

	values := models.LeadFormData{Name: "Ana", Email: "ana@", Phone: "(14) 9999"}
	free, freeOK := Validate(values, ModeFree)
	paid, paidOK := Validate(values, ModePaid)
	assert.False(t, freeOK)
	assert.Equal(t, freeOK, paidOK)
	assert.Equal(t, free, paid)
}

func TestFormatPhone(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                "",
		"1":               "1",
		"11":              "11",
		"119":             "(11) 9",
		"119876":          "(11) 9876",
		"1198765":         "(11) 9876-5",
		"1198765432":      "(11) 9876-5432",
		"11987654321":     "(11) 98765-4321",
		"119876543210000": "(11) 98765-4321",
		"(11) 98765-4321": "(11) 98765-4321",
		"+55 abc 11 9":    "(55) 119",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatPhone(in), in)
	}
}

func TestFormSetClearsOnlyEditedField(t *testing.T) {
	t.Parallel()

	f := NewForm()
	require.False(t, f.Validate(ModeFree))
	require.True(t, f.Errors().Has(models.FieldName))
	require.True(t, f.Errors().Has(models.FieldEmail))

	f.Set(models.FieldName, "x")
	errs := f.Errors()
	assert.False(t, errs.Has(models.FieldName))
	assert.True(t, errs.Has(models.FieldEmail))
}

func TestFormMasksPhoneAndTrims(t *testing.T) {
	t.Parallel()

	f := NewForm()
	shown := f.Set(models.FieldPhone, "11987654321")
	assert.Equal(t, "(11) 98765-4321", shown)
	f.Set(models.FieldName, "  Marcos Costa ")
	f.Set(models.FieldEmail, " marcos@example.com")

	require.True(t, f.Validate(ModeFree))
	assert.Equal(t, models.LeadFormData{
		Name:  "Marcos Costa",
		Email: "marcos@example.com",
		Phone: "(11) 98765-4321",
	}, f.Values())

	f.Reset()
	assert.Equal(t, models.LeadFormData{}, f.Values())
	assert.Empty(t, f.Errors())
}
