package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/harborcrm/harbor/internal/domain"
)

type searchRepository struct {
	db *sql.DB
}

// NewSearchRepository creates a new PostgreSQL ranked search repository
func NewSearchRepository(db *sql.DB) domain.SearchRepository {
	return &searchRepository{db: db}
}

// rankedSearchQuery is the two-stage search. Stage A (candidates CTE) uses
// only cheap index-backed filters: identity array membership, trigram
// similarity above a low threshold, or a full-text match, capped at a fixed
// candidate-set size. Stage B scores only those candidates with the tier
// constants from the domain package. Fuzzy components are capped so stacked
// weak signals can never outrank an exact match, and the name similarity
// sub-term uses GREATEST so several similarity measures agreeing on the
// same signal are not double-rewarded.
//
// Parameters: $1 raw query, $2 lowercased query, $3 query digits,
// $4 email array, $5 phone array, $6 result limit.
var rankedSearchQuery = fmt.Sprintf(`
	WITH candidates AS (
		SELECT c.*
		FROM customers c
		WHERE c.id IN (
				SELECT ci.customer_id
				FROM customer_identities ci
				WHERE lower(coalesce(ci.email, '')) = ANY($4)
				   OR ($3 <> '' AND regexp_replace(coalesce(ci.phone, ''), '[^0-9]', '', 'g') = ANY($5))
			)
		   OR lower(coalesce(c.primary_email, '')) = ANY($4)
		   OR ($3 <> '' AND regexp_replace(coalesce(c.primary_phone, ''), '[^0-9]', '', 'g') = ANY($5))
		   OR similarity(lower(concat_ws(' ', c.first_name, c.last_name)), $2) > %[1]v
		   OR similarity(lower(coalesce(c.company, '')), $2) > %[1]v
		   OR to_tsvector('simple', concat_ws(' ', c.first_name, c.last_name, c.company, c.primary_email)) @@ plainto_tsquery('simple', $1)
		LIMIT %[2]d
	),
	scored AS (
		SELECT c.*,
			CASE
				WHEN lower(concat_ws(' ', c.first_name, c.last_name)) = $2 THEN %[3]v
				WHEN lower(concat_ws(' ', c.last_name, c.first_name)) = $2 THEN %[4]v
				WHEN position(' ' in $2) = 0
					AND (lower(coalesce(c.first_name, '')) = $2 OR lower(coalesce(c.last_name, '')) = $2) THEN %[5]v
				WHEN split_part($2, ' ', 2) <> '' AND (
						(lower(coalesce(c.first_name, '')) LIKE split_part($2, ' ', 1) || '%%'
							AND lower(coalesce(c.last_name, '')) LIKE split_part($2, ' ', 2) || '%%')
					OR (lower(coalesce(c.first_name, '')) LIKE split_part($2, ' ', 2) || '%%'
							AND lower(coalesce(c.last_name, '')) LIKE split_part($2, ' ', 1) || '%%')
				) THEN %[6]v
				WHEN position(' ' in $2) = 0 AND (
						lower(coalesce(c.first_name, '')) LIKE $2 || '%%'
					OR lower(coalesce(c.last_name, '')) LIKE $2 || '%%'
				) THEN %[7]v
				ELSE 0
			END
			+ CASE WHEN lower(coalesce(c.primary_email, '')) = $2 THEN %[8]v ELSE 0 END
			+ CASE WHEN $3 <> '' AND regexp_replace(coalesce(c.primary_phone, ''), '[^0-9]', '', 'g') = $3 THEN %[9]v ELSE 0 END
			+ CASE
				WHEN lower(coalesce(c.primary_email, '')) <> $2 AND EXISTS (
					SELECT 1 FROM customer_identities ci
					WHERE ci.customer_id = c.id AND lower(coalesce(ci.email, '')) = $2
				) THEN %[10]v
				ELSE 0
			END
			+ LEAST(GREATEST(
					similarity(lower(concat_ws(' ', c.first_name, c.last_name)), $2),
					similarity(lower(coalesce(c.first_name, '')), $2),
					similarity(lower(coalesce(c.last_name, '')), $2)
				) * %[11]v, %[11]v)
			+ LEAST(similarity(lower(coalesce(c.primary_email, '')), $2) * %[12]v, %[12]v)
			+ LEAST(similarity(lower(coalesce(c.company, '')), $2) * %[13]v, %[13]v)
			+ LEAST(ts_rank(
					to_tsvector('simple', concat_ws(' ', c.first_name, c.last_name, c.company, c.primary_email)),
					plainto_tsquery('simple', $1)
				)::numeric, %[14]v)
			AS score
		FROM candidates c
	)
	SELECT %[16]s, score
	FROM scored
	WHERE score >= %[15]v
	ORDER BY score DESC, is_vip DESC, updated_at DESC, id DESC
	LIMIT $6
`,
	domain.TrigramThreshold,
	domain.CandidateSetLimit,
	domain.ScoreExactFullName,
	domain.ScoreExactFullNameSwapped,
	domain.ScoreExactSingleToken,
	domain.ScoreBothTokensPrefix,
	domain.ScoreSingleTokenPrefix,
	domain.ScoreExactEmail,
	domain.ScoreExactPhone,
	domain.ScoreExactIdentityEmail,
	domain.ScoreNameSimilarityCap,
	domain.ScoreEmailSimilarityCap,
	domain.ScoreCompanySimilarityCap,
	domain.ScoreFullTextRankCap,
	domain.ScoreFloor,
	domain.CustomerColumns,
)

func (r *searchRepository) RankedSearch(ctx context.Context, query string, limit int) ([]*domain.RankedCustomer, error) {
	q := strings.TrimSpace(query)
	lowered := strings.ToLower(q)
	digits := domain.NormalizePhone(q)

	emails := []string{lowered}
	phones := []string{}
	if digits != "" {
		phones = append(phones, digits)
	}

	rows, err := r.db.QueryContext(ctx, rankedSearchQuery,
		q,
		lowered,
		digits,
		pq.Array(emails),
		pq.Array(phones),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to run ranked search: %w", err)
	}
	defer rows.Close()

	return scanRankedRows(rows)
}

// FallbackSearch is the degraded path used when the scoring query fails for
// any reason: plain ILIKE filtering over the base customer table with
// simplified query-type detection and the same deterministic tie-break.
func (r *searchRepository) FallbackSearch(ctx context.Context, query string, limit int) ([]*domain.RankedCustomer, error) {
	q := strings.TrimSpace(query)

	builder := sq.Select(domain.CustomerColumns + ", 0::float8 AS score").
		From("customers").
		OrderBy("is_vip DESC", "updated_at DESC", "id DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar)

	switch domain.DetectQueryKind(q) {
	case domain.QueryKindEmail:
		builder = builder.Where(sq.ILike{"primary_email": "%" + q + "%"})
	case domain.QueryKindPhone:
		builder = builder.Where(
			sq.Expr("regexp_replace(coalesce(primary_phone, ''), '[^0-9]', '', 'g') LIKE ?",
				"%"+domain.NormalizePhone(q)+"%"),
		)
	default:
		pattern := "%" + strings.ToLower(q) + "%"
		builder = builder.Where(sq.Or{
			sq.Expr("lower(concat_ws(' ', first_name, last_name)) LIKE ?", pattern),
			sq.Expr("lower(coalesce(company, '')) LIKE ?", pattern),
		})
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build fallback query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to run fallback search: %w", err)
	}
	defer rows.Close()

	return scanRankedRows(rows)
}

func scanRankedRows(rows *sql.Rows) ([]*domain.RankedCustomer, error) {
	var results []*domain.RankedCustomer
	for rows.Next() {
		ranked, err := domain.ScanRankedCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		results = append(results, ranked)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search rows: %w", err)
	}

	return results, nil
}
