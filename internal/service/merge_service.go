package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/harborcrm/harbor/internal/domain"
	"github.com/harborcrm/harbor/pkg/logger"
)

// MergeService surfaces duplicate-customer candidates and performs the
// operator-triggered consolidation. Merging is never automatic.
type MergeService struct {
	customerRepo domain.CustomerRepository
	identityRepo domain.IdentityRepository
	mergeRepo    domain.MergeRepository
	logger       logger.Logger
}

func NewMergeService(
	customerRepo domain.CustomerRepository,
	identityRepo domain.IdentityRepository,
	mergeRepo domain.MergeRepository,
	logger logger.Logger,
) *MergeService {
	return &MergeService{
		customerRepo: customerRepo,
		identityRepo: identityRepo,
		mergeRepo:    mergeRepo,
		logger:       logger,
	}
}

// FindMergeCandidates collects the full set of emails and phones across the
// customer's identities and reports every other customer sharing any of
// them, with the signal(s) that matched. Read-only and recomputed on every
// call so it always reflects current data.
func (s *MergeService) FindMergeCandidates(ctx context.Context, customerID int64) ([]*domain.MergeCandidate, error) {
	customer, err := s.customerRepo.GetCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	identities, err := s.identityRepo.ListIdentities(ctx, customerID)
	if err != nil {
		return nil, err
	}

	emails := make(map[string]bool)
	phones := make(map[string]bool)
	if v := domain.NormalizeEmail(customer.PrimaryEmail.StringValue()); v != "" {
		emails[v] = true
	}
	if v := domain.NormalizePhone(customer.PrimaryPhone.StringValue()); v != "" {
		phones[v] = true
	}
	for _, identity := range identities {
		if v := domain.NormalizeEmail(identity.Email.StringValue()); v != "" {
			emails[v] = true
		}
		if v := domain.NormalizePhone(identity.Phone.StringValue()); v != "" {
			phones[v] = true
		}
	}

	var mu sync.Mutex
	byID := make(map[int64]*domain.MergeCandidate)
	record := func(ids []int64, viaEmail bool) {
		mu.Lock()
		defer mu.Unlock()
		for _, id := range ids {
			candidate, ok := byID[id]
			if !ok {
				candidate = &domain.MergeCandidate{CustomerID: id}
				byID[id] = candidate
			}
			if viaEmail {
				candidate.MatchedOnEmail = true
			} else {
				candidate.MatchedOnPhone = true
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for email := range emails {
		email := email
		g.Go(func() error {
			ids, err := s.mergeRepo.FindCustomerIDsSharingEmail(gctx, email, customerID)
			if err != nil {
				return err
			}
			record(ids, true)
			return nil
		})
	}
	for phone := range phones {
		phone := phone
		g.Go(func() error {
			ids, err := s.mergeRepo.FindCustomerIDsSharingPhone(gctx, phone, customerID)
			if err != nil {
				return err
			}
			record(ids, false)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to find merge candidates: %w", err)
	}

	candidates := make([]*domain.MergeCandidate, 0, len(byID))
	for _, candidate := range byID {
		candidates = append(candidates, candidate)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].CustomerID < candidates[j].CustomerID
	})

	return candidates, nil
}

// MergeCustomers validates the merge set and runs the consolidation
// transaction. Invariant violations are rejected before the transaction
// opens, so there are never partial effects.
func (s *MergeService) MergeCustomers(ctx context.Context, primaryID int64, mergeIDs []int64) error {
	if primaryID <= 0 {
		return &domain.ErrMergeConflict{Message: "primary customer id is required"}
	}
	if len(mergeIDs) == 0 {
		return &domain.ErrMergeConflict{Message: "merge set is empty"}
	}

	seen := make(map[int64]bool, len(mergeIDs))
	for _, id := range mergeIDs {
		if id == primaryID {
			return &domain.ErrMergeConflict{Message: fmt.Sprintf("cannot merge customer %d into itself", primaryID)}
		}
		if seen[id] {
			return &domain.ErrMergeConflict{Message: fmt.Sprintf("duplicate customer id %d in merge set", id)}
		}
		seen[id] = true
	}

	if err := s.mergeRepo.MergeCustomers(ctx, primaryID, mergeIDs); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"primary_id": primaryID,
			"merge_ids":  mergeIDs,
			"error":      err.Error(),
		}).Error("Customer merge failed")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"primary_id": primaryID,
		"merge_ids":  mergeIDs,
	}).Info("Merged customers")

	return nil
}
