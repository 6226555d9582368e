package forms

import (
	"sort"
	"strings"

	"rema-viva-landing/pkg/models"
)

// ValidationError is returned when a submission is blocked by field errors.
type ValidationError struct {
	Fields models.FormErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return "invalid form fields: " + strings.Join(keys, ", ")
}
