package domain

import (
	"strings"

	"github.com/asaskevich/govalidator"
)

// Ranked search scoring tiers. Tier 1 (exact) scores 10-15, tier 2 (strong
// partial) 5-9, tier 3 (fuzzy) is capped so that stacked fuzzy signals can
// never overtake an exact match: 3 + 1 + 1 + 0.5 = 5.5 < 10.
const (
	ScoreExactFullName        = 15.0
	ScoreExactFullNameSwapped = 14.0
	ScoreExactEmail           = 13.0
	ScoreExactPhone           = 12.0
	ScoreExactIdentityEmail   = 11.0
	ScoreExactSingleToken     = 10.0

	ScoreBothTokensPrefix  = 7.0
	ScoreSingleTokenPrefix = 5.0

	ScoreNameSimilarityCap    = 3.0
	ScoreEmailSimilarityCap   = 1.0
	ScoreCompanySimilarityCap = 1.0
	ScoreFullTextRankCap      = 0.5

	// ScoreFloor discards noise: anything below it is not worth showing.
	ScoreFloor = 0.5

	// TrigramThreshold is the stage-A candidate retrieval similarity cutoff.
	TrigramThreshold = 0.2

	// CandidateSetLimit bounds stage-A regardless of corpus size.
	CandidateSetLimit = 200

	// DefaultSearchLimit applies when the caller passes a non-positive limit.
	DefaultSearchLimit = 20
)

// RankedCustomer is a search hit with its tiered score.
type RankedCustomer struct {
	Customer
	Score float64 `json:"score"`
}

// QueryKind classifies a raw search query for the degraded fallback path.
type QueryKind string

const (
	QueryKindEmail QueryKind = "email"
	QueryKindPhone QueryKind = "phone"
	QueryKindName  QueryKind = "name"
)

// DetectQueryKind applies simplified type detection: a valid email address,
// else a string that is mostly digits once separators are stripped, else a
// name.
func DetectQueryKind(query string) QueryKind {
	q := strings.TrimSpace(query)
	if govalidator.IsEmail(q) {
		return QueryKindEmail
	}
	digits := NormalizePhone(q)
	if len(digits) >= 4 && len(digits)*2 >= len(q) {
		return QueryKindPhone
	}
	return QueryKindName
}
