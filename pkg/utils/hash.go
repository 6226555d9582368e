package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashString creates a SHA-256 hash of the input string
func HashString(input string) string {
	h := sha256.New()
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))
}

// LeadKey hashes the parts that make two submissions the same lead. Email
// is compared case-insensitively so the raw address never leaves the
// process.
func LeadKey(email, kind, product string) string {
	return HashString(strings.ToLower(strings.TrimSpace(email)) + "|" + kind + "|" + product)
}
