package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// AddressExternalIDPrefix marks synthetic external ids derived from an
// address fingerprint, for providers that expose no email or phone.
const AddressExternalIDPrefix = "address_hash:"

// Address is a loosely structured postal address as received from a
// provider. Field casing, whitespace and punctuation vary across sources.
type Address struct {
	Name       string `json:"name,omitempty"`
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// IsZero reports whether every field is empty after trimming.
func (a Address) IsZero() bool {
	for _, f := range a.fields() {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// Fingerprint returns a stable hex-encoded SHA-256 hash of the normalized
// address. Identical real-world addresses with different casing, punctuation
// or spacing hash identically. Missing fields are treated as empty strings,
// so the function is total. Unit/suite differences are preserved:
// over-merging is worse than under-merging.
func (a Address) Fingerprint() string {
	parts := make([]string, 0, 7)
	for _, f := range a.fields() {
		parts = append(parts, normalizeAddressField(f))
	}
	canonical := strings.Join(parts, "|")
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

// ExternalID returns the synthetic external id used when an address is the
// only identifying signal for a record.
func (a Address) ExternalID() string {
	return AddressExternalIDPrefix + a.Fingerprint()
}

// fields returns the address fields in canonical concatenation order.
func (a Address) fields() []string {
	return []string{a.Name, a.Line1, a.Line2, a.City, a.State, a.PostalCode, a.Country}
}

// normalizeAddressField lowercases, strips punctuation and collapses
// whitespace runs into single spaces.
func normalizeAddressField(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	prevSpace := true
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r):
			if !prevSpace {
				b.WriteRune(' ')
				prevSpace = true
			}
		default:
			// Punctuation is dropped without inserting a space so that
			// "St." and "St" collapse to the same token.
		}
	}

	return strings.TrimRight(b.String(), " ")
}
