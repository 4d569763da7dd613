package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/harborcrm/harbor/internal/domain"
	"github.com/harborcrm/harbor/pkg/logger"
)

// RunOptions controls one batch run for a source.
type RunOptions struct {
	// FullResync ignores the stored cursor on read. The cursor is still
	// written after every page, so an interrupted full resync resumes as if
	// incremental from the partial position; callers needing a true
	// from-zero restart must pass an explicit StartCursor.
	FullResync bool
	// StartCursor, when set, overrides the stored cursor as the starting
	// position.
	StartCursor json.RawMessage
}

// SyncService drives incremental sync runs for one external source at a
// time. It owns the cursor bookkeeping and per-batch metrics; the provider
// fetch function is supplied by the caller. Records are processed one at a
// time; the unit of crash recovery is the page.
type SyncService struct {
	resolver   domain.Resolver
	cursorRepo domain.CursorRepository
	logger     logger.Logger
}

func NewSyncService(
	resolver domain.Resolver,
	cursorRepo domain.CursorRepository,
	logger logger.Logger,
) *SyncService {
	return &SyncService{
		resolver:   resolver,
		cursorRepo: cursorRepo,
		logger:     logger,
	}
}

// RunBatch pulls pages from fetch until the source is exhausted or the
// context is cancelled, resolving each record and advancing the cursor
// after every page. The returned stats are owned by this run: each
// invocation gets its own accumulator, never a shared counter.
//
// Per-record failures (malformed input, ambiguous-adjacent validation
// errors) are counted and skipped; one bad record never aborts a batch.
// Infrastructure failures abort the run: the cursor's last_error is
// recorded and last_success_at is left untouched.
func (s *SyncService) RunBatch(ctx context.Context, sourceType string, fetch domain.PageFetcher, opts RunOptions) (*domain.BatchStats, error) {
	if sourceType == "" {
		return nil, domain.NewValidationError("source type is required")
	}
	if fetch == nil {
		return nil, domain.NewValidationError("page fetcher is required")
	}

	runID := uuid.New().String()
	log := s.logger.WithFields(map[string]interface{}{
		"run_id": runID,
		"source": sourceType,
	})

	position, err := s.startPosition(ctx, sourceType, opts)
	if err != nil {
		return nil, err
	}

	stats := &domain.BatchStats{}

	for {
		if err := ctx.Err(); err != nil {
			// Stopping between pages is safe: the cursor only advances on
			// page completion.
			return stats, err
		}

		page, err := fetch(ctx, position)
		if err != nil {
			s.recordFailure(ctx, sourceType, position, err)
			return stats, fmt.Errorf("failed to fetch page for %s: %w", sourceType, err)
		}

		pageStats, err := s.processPage(ctx, page, log)
		stats.Add(pageStats)
		if err != nil {
			s.recordFailure(ctx, sourceType, page.NextCursor, err)
			return stats, err
		}

		if err := s.cursorRepo.UpdateCursor(ctx, domain.UpdateCursorParams{
			SourceType:       sourceType,
			CursorValue:      page.NextCursor,
			ItemsSyncedDelta: int64(pageStats.Processed()),
		}); err != nil {
			return stats, fmt.Errorf("failed to advance cursor for %s: %w", sourceType, err)
		}
		position = page.NextCursor

		if !page.HasMore {
			break
		}
	}

	log.WithFields(map[string]interface{}{
		"fetched":   stats.Fetched,
		"created":   stats.Created,
		"updated":   stats.Updated,
		"linked":    stats.Linked,
		"unlinked":  stats.Unlinked,
		"ambiguous": stats.Ambiguous,
		"errors":    stats.Errors,
	}).Info("Sync batch completed")

	if stats.Ambiguous > 0 {
		log.WithField("ambiguous", stats.Ambiguous).Warn("Ambiguous matches require review")
	}

	return stats, nil
}

func (s *SyncService) startPosition(ctx context.Context, sourceType string, opts RunOptions) (json.RawMessage, error) {
	if opts.StartCursor != nil {
		return opts.StartCursor, nil
	}
	if opts.FullResync {
		return nil, nil
	}

	cursor, err := s.cursorRepo.GetCursor(ctx, sourceType)
	if err != nil {
		var notFound *domain.ErrCursorNotFound
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cursor for %s: %w", sourceType, err)
	}
	return cursor.CursorValue, nil
}

// processPage resolves every record on the page. Validation failures and
// signal-less records are counted and skipped; any other error aborts the
// page.
func (s *SyncService) processPage(ctx context.Context, page *domain.SourcePage, log logger.Logger) (*domain.BatchStats, error) {
	stats := &domain.BatchStats{}

	for _, record := range page.Records {
		stats.Fetched++

		hasAddress := record.Address != nil && !record.Address.IsZero()
		if !record.Input.HasIdentifyingSignal() && !hasAddress {
			// Unlinkable by classification: nothing to resolve against.
			stats.Unlinked++
			continue
		}

		result, err := s.resolver.Resolve(ctx, record.Input, record.Address)
		if err != nil {
			var validation domain.ValidationError
			if errors.As(err, &validation) {
				stats.Errors++
				log.WithField("error", err.Error()).Warn("Skipping malformed record")
				continue
			}
			return stats, fmt.Errorf("resolution failed: %w", err)
		}

		stats.Count(result.Action)
		if result.Action == domain.ResolveActionAmbiguous {
			stats.Unlinked++
		}
	}

	return stats, nil
}

// recordFailure writes the batch error onto the cursor row without touching
// last_success_at. The cursor value still advances to the supplied
// position: forward progress is preferred over retrying a poison record.
func (s *SyncService) recordFailure(ctx context.Context, sourceType string, position json.RawMessage, cause error) {
	if err := s.cursorRepo.UpdateCursor(ctx, domain.UpdateCursorParams{
		SourceType:  sourceType,
		CursorValue: position,
		SyncError:   cause.Error(),
	}); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"source": sourceType,
			"error":  err.Error(),
		}).Error("Failed to record sync error on cursor")
	}
}
