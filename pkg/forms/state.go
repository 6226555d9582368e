package forms

import (
	"strings"

	"rema-viva-landing/pkg/models"
)

// Form is the in-memory state behind one modal form. It is created empty
// when a modal opens and cleared when the modal closes or a submission
// goes through.
type Form struct {
	values models.LeadFormData
	errors models.FormErrors
}

// NewForm returns an empty form.
func NewForm() *Form {
	return &Form{errors: models.FormErrors{}}
}

// Set stores a keystroke. The phone field is masked. Only the edited
// field's error is cleared.
func (f *Form) Set(field models.Field, value string) string {
	switch field {
	case models.FieldName:
		f.values.Name = value
	case models.FieldEmail:
		f.values.Email = value
	case models.FieldPhone:
		value = FormatPhone(value)
		f.values.Phone = value
	default:
		return value
	}
	delete(f.errors, field)
	return value
}

// Get returns the raw value of a field as displayed.
func (f *Form) Get(field models.Field) string {
	switch field {
	case models.FieldName:
		return f.values.Name
	case models.FieldEmail:
		return f.values.Email
	case models.FieldPhone:
		return f.values.Phone
	}
	return ""
}

// Validate recomputes the error set from scratch.
func (f *Form) Validate(mode Mode) bool {
	errs, ok := Validate(f.values, mode)
	f.errors = errs
	return ok
}

// Errors returns a copy of the current errors.
func (f *Form) Errors() models.FormErrors {
	out := make(models.FormErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Values returns the trimmed values as they are sent.
func (f *Form) Values() models.LeadFormData {
	return models.LeadFormData{
		Name:  strings.TrimSpace(f.values.Name),
		Email: strings.TrimSpace(f.values.Email),
		Phone: strings.TrimSpace(f.values.Phone),
	}
}

// Reset clears values and errors.
func (f *Form) Reset() {
	f.values = models.LeadFormData{}
	f.errors = models.FormErrors{}
}
