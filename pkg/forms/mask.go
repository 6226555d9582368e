package forms

import "strings"

// FormatPhone masks a Brazilian phone number as it is typed. Non-digits are
// dropped and punctuation is inserted by digit count; anything past eleven
// digits is discarded.
//
//	"11"          -> "11"
//	"119876"      -> "(11) 9876"
//	"1198765432"  -> "(11) 9876-5432"
//	"11987654321" -> "(11) 98765-4321"
func FormatPhone(value string) string {
	digits := onlyDigits(value)
	switch n := len(digits); {
	case n <= 2:
		return digits
	case n <= 6:
		return "(" + digits[:2] + ") " + digits[2:]
	case n <= 10:
		return "(" + digits[:2] + ") " + digits[2:6] + "-" + digits[6:]
	default:
		return "(" + digits[:2] + ") " + digits[2:7] + "-" + digits[7:11]
	}
}

func onlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
