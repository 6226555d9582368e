package forms

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"rema-viva-landing/pkg/models"
)

// Mode tells Validate which modal the values come from. Both modes apply
// the same rules today.
type Mode int

const (
	ModeFree Mode = iota
	ModePaid
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\(?\d{2}\)?\s?\d{4,5}-?\d{4}$`)
)

const minNameLength = 2

// Messages shown under each input.
const (
	MsgNameRequired  = "Nome é obrigatório"
	MsgNameTooShort  = "Nome deve ter pelo menos 2 caracteres"
	MsgEmailRequired = "Email é obrigatório"
	MsgEmailInvalid  = "Email inválido"
	MsgPhoneInvalid  = "WhatsApp inválido. Use o formato: (14) 99999-9999"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the lead form rules
// registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		if err := registerRules(v); err != nil {
			panic(err)
		}
		validate = v
	})
	return validate
}

func registerRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"trimmin":    trimMin,
		"looseemail": looseEmail,
		"brphone":    brazilianPhone,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func looseEmail(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

// brazilianPhone accepts blank input; the field is optional.
func brazilianPhone(fl validator.FieldLevel) bool {
	v := strings.TrimSpace(fl.Field().String())
	return v == "" || phonePattern.MatchString(v)
}

// trimMin checks the rune count after trimming whitespace. The parameter
// defaults to minNameLength.
func trimMin(fl validator.FieldLevel) bool {
	want := minNameLength
	if p := fl.Param(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return false
		}
		want = n
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= want
}

// Validate checks the form values and returns the errors keyed by field
// along with whether the form can be submitted. Free and paid forms share
// the same rules.
func Validate(values models.LeadFormData, _ Mode) (models.FormErrors, bool) {
	errs := models.FormErrors{}

	err := Validator().Struct(values)
	var verrs validator.ValidationErrors
	if err != nil && !errors.As(err, &verrs) {
		// Only returned for invalid input types, which LeadFormData is not.
		panic(err)
	}
	for _, fe := range verrs {
		switch fe.StructField() {
		case "Name":
			errs[models.FieldName] = nameMessage(values.Name)
		case "Email":
			errs[models.FieldEmail] = emailMessage(values.Email, fe.Tag())
		case "Phone":
			errs[models.FieldPhone] = MsgPhoneInvalid
		}
	}
	return errs, len(errs) == 0
}

func nameMessage(name string) string {
	if strings.TrimSpace(name) == "" {
		return MsgNameRequired
	}
	return MsgNameTooShort
}

func emailMessage(email, tag string) string {
	if tag == "required" || strings.TrimSpace(email) == "" {
		return MsgEmailRequired
	}
	return MsgEmailInvalid
}
