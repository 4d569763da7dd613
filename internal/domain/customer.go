package domain

import (
	"strings"
	"time"
	"unicode"

	"github.com/asaskevich/govalidator"
	"github.com/tidwall/gjson"
)

// Provider identifies the external system a customer signal came from.
type Provider string

const (
	ProviderStorefront   Provider = "storefront"
	ProviderMarketplace  Provider = "marketplace"
	ProviderAccounting   Provider = "accounting"
	ProviderFulfillment  Provider = "fulfillment"
	ProviderManual       Provider = "manual"
	ProviderSelfReported Provider = "self_reported"
)

// IsValid reports whether p is a known provider.
func (p Provider) IsValid() bool {
	switch p {
	case ProviderStorefront, ProviderMarketplace, ProviderAccounting,
		ProviderFulfillment, ProviderManual, ProviderSelfReported:
		return true
	}
	return false
}

// Customer is the unified identity record. It exists independently of any
// provider and is the merge target for all CustomerIdentity rows.
type Customer struct {
	ID              int64           `json:"id"`
	PrimaryEmail    *NullableString `json:"primary_email,omitempty"`
	PrimaryPhone    *NullableString `json:"primary_phone,omitempty"`
	FirstName       *NullableString `json:"first_name,omitempty"`
	LastName        *NullableString `json:"last_name,omitempty"`
	Company         *NullableString `json:"company,omitempty"`
	IsVIP           bool            `json:"is_vip"`
	CreditRiskLevel *NullableString `json:"credit_risk_level,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// FullName returns "first last" with empty parts skipped.
func (c *Customer) FullName() string {
	parts := make([]string, 0, 2)
	if v := c.FirstName.StringValue(); v != "" {
		parts = append(parts, v)
	}
	if v := c.LastName.StringValue(); v != "" {
		parts = append(parts, v)
	}
	return strings.Join(parts, " ")
}

// CustomerIdentity is one observed (provider, externalId-or-derived-key)
// signal pointing at a customer. (provider, external_id) is unique when
// external_id is non-null; an identity never spans two customers.
type CustomerIdentity struct {
	ID         string          `json:"id"`
	CustomerID int64           `json:"customer_id"`
	Provider   Provider        `json:"provider"`
	ExternalID *NullableString `json:"external_id,omitempty"`
	Email      *NullableString `json:"email,omitempty"`
	Phone      *NullableString `json:"phone,omitempty"`
	Metadata   MapOfAny        `json:"metadata,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// MetadataString reads a string field out of the metadata JSON by gjson
// path, returning "" when metadata is absent or the path does not resolve.
func (ci *CustomerIdentity) MetadataString(path string) string {
	if ci.Metadata == nil {
		return ""
	}
	raw, err := ci.Metadata.Value()
	if err != nil || raw == nil {
		return ""
	}
	return gjson.GetBytes(raw.([]byte), path).String()
}

// ResolveAction is the outcome of an identity resolution.
type ResolveAction string

const (
	ResolveActionCreated   ResolveAction = "created"
	ResolveActionUpdated   ResolveAction = "updated"
	ResolveActionLinked    ResolveAction = "linked"
	ResolveActionAmbiguous ResolveAction = "ambiguous"
)

// ResolveInput carries whatever identifying fields a provider record
// exposes. Everything except Provider is optional.
type ResolveInput struct {
	Provider   Provider `json:"provider" valid:"required"`
	ExternalID string   `json:"external_id,omitempty"`
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	FirstName  string   `json:"first_name,omitempty"`
	LastName   string   `json:"last_name,omitempty"`
	Company    string   `json:"company,omitempty"`
	Metadata   MapOfAny `json:"metadata,omitempty"`
}

// Validate checks the input before resolution. A missing identifying signal
// is not an error here: the resolver deliberately accepts name-only records
// and creates a customer with no other signal.
func (i *ResolveInput) Validate() error {
	if !i.Provider.IsValid() {
		return NewValidationError("unknown provider: " + string(i.Provider))
	}
	if i.Email != "" && !govalidator.IsEmail(i.Email) {
		return NewValidationError("invalid email format: " + i.Email)
	}
	return nil
}

// NormalizedEmail returns the email lowercased and trimmed.
func (i *ResolveInput) NormalizedEmail() string {
	return NormalizeEmail(i.Email)
}

// NormalizedPhone returns the phone reduced to digits.
func (i *ResolveInput) NormalizedPhone() string {
	return NormalizePhone(i.Phone)
}

// HasIdentifyingSignal reports whether the input carries anything beyond a
// name. Callers should classify signal-less records as unlinkable instead
// of resolving them.
func (i *ResolveInput) HasIdentifyingSignal() bool {
	return i.ExternalID != "" || i.NormalizedEmail() != "" || i.NormalizedPhone() != ""
}

// ResolveResult is the resolver's decision. CustomerID is zero when the
// action is ambiguous.
type ResolveResult struct {
	Action     ResolveAction `json:"action"`
	CustomerID int64         `json:"customer_id,omitempty"`
}

// MergeCandidate pairs another customer with the signals it shares with the
// customer under review. Never persisted, always recomputed at review time.
type MergeCandidate struct {
	CustomerID     int64 `json:"customer_id"`
	MatchedOnEmail bool  `json:"matched_on_email"`
	MatchedOnPhone bool  `json:"matched_on_phone"`
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizePhone strips everything but digits so formatting differences
// between providers cannot defeat an exact match.
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
