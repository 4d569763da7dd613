package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressFingerprint(t *testing.T) {
	base := Address{
		Name:       "John Doe",
		Line1:      "123 Main St",
		Line2:      "Apt 4B",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62704",
		Country:    "US",
	}

	t.Run("stable across calls", func(t *testing.T) {
		assert.Equal(t, base.Fingerprint(), base.Fingerprint())
	})

	t.Run("hex encoded sha256", func(t *testing.T) {
		fp := base.Fingerprint()
		assert.Len(t, fp, 64)
		assert.Equal(t, strings.ToLower(fp), fp)
	})

	t.Run("casing does not matter", func(t *testing.T) {
		other := base
		other.Name = "JOHN DOE"
		other.Line1 = "123 MAIN ST"
		assert.Equal(t, base.Fingerprint(), other.Fingerprint())
	})

	t.Run("punctuation does not matter", func(t *testing.T) {
		other := base
		other.Line1 = "123 Main St."
		assert.Equal(t, base.Fingerprint(), other.Fingerprint())
	})

	t.Run("whitespace runs collapse", func(t *testing.T) {
		other := base
		other.Line1 = "  123   Main  St "
		assert.Equal(t, base.Fingerprint(), other.Fingerprint())
	})

	t.Run("unit difference is a different address", func(t *testing.T) {
		other := base
		other.Line2 = "Apt 5B"
		assert.NotEqual(t, base.Fingerprint(), other.Fingerprint())
	})

	t.Run("missing fields hash as empty", func(t *testing.T) {
		partial := Address{Line1: "123 Main St", City: "Springfield"}
		assert.NotEmpty(t, partial.Fingerprint())
		assert.NotEqual(t, base.Fingerprint(), partial.Fingerprint())
	})

	t.Run("field values cannot bleed across fields", func(t *testing.T) {
		a := Address{City: "Springfield IL"}
		b := Address{City: "Springfield", State: "IL"}
		assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	})
}

func TestAddressExternalID(t *testing.T) {
	addr := Address{Line1: "123 Main St", City: "Springfield"}
	id := addr.ExternalID()
	assert.True(t, strings.HasPrefix(id, AddressExternalIDPrefix))
	assert.Equal(t, AddressExternalIDPrefix+addr.Fingerprint(), id)
}

func TestAddressIsZero(t *testing.T) {
	assert.True(t, Address{}.IsZero())
	assert.True(t, Address{Line1: "   ", City: "\t"}.IsZero())
	assert.False(t, Address{City: "Springfield"}.IsZero())
}
