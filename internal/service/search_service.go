package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/harborcrm/harbor/internal/domain"
	"github.com/harborcrm/harbor/pkg/logger"
)

// SearchService is the operator-facing fuzzy customer search. The ranked
// two-stage query is the normal path; any scoring failure degrades to a
// plain substring search so search stays available, never unavailable.
type SearchService struct {
	searchRepo domain.SearchRepository
	logger     logger.Logger
}

func NewSearchService(searchRepo domain.SearchRepository, logger logger.Logger) *SearchService {
	return &SearchService{
		searchRepo: searchRepo,
		logger:     logger,
	}
}

func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]*domain.RankedCustomer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.NewValidationError("search query is required")
	}
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}

	results, err := s.searchRepo.RankedSearch(ctx, query, limit)
	if err == nil {
		return results, nil
	}

	s.logger.WithFields(map[string]interface{}{
		"query": query,
		"error": err.Error(),
	}).Warn("Ranked search failed, falling back to substring search")

	results, fallbackErr := s.searchRepo.FallbackSearch(ctx, query, limit)
	if fallbackErr != nil {
		return nil, fmt.Errorf("fallback search failed after ranked search error (%v): %w", err, fallbackErr)
	}

	return results, nil
}
