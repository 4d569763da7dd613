package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/harborcrm/harbor/internal/domain"
	"github.com/harborcrm/harbor/pkg/logger"
)

// ResolverService decides, for every inbound provider record, whether it
// belongs to an already-known customer, a new customer, or an ambiguous
// situation requiring human review. It is stateless between calls; all
// state lives in the database, so concurrent job instances may share one
// instance.
type ResolverService struct {
	customerRepo domain.CustomerRepository
	identityRepo domain.IdentityRepository
	logger       logger.Logger
}

func NewResolverService(
	customerRepo domain.CustomerRepository,
	identityRepo domain.IdentityRepository,
	logger logger.Logger,
) *ResolverService {
	return &ResolverService{
		customerRepo: customerRepo,
		identityRepo: identityRepo,
		logger:       logger,
	}
}

// Resolve applies the decision algorithm in priority order:
//  1. exact (provider, external_id) hit -> updated
//  2. no external id but an address -> retry 1 with the address fingerprint
//     as a synthetic external id
//  3. email then phone candidate search: zero candidates -> created, one ->
//     linked, two or more -> ambiguous (no write, customer id zero)
//
// Races on the external-id path are absorbed by the database unique
// constraint: losing a first-sighting race converges on the winner's row.
func (s *ResolverService) Resolve(ctx context.Context, input domain.ResolveInput, addr *domain.Address) (*domain.ResolveResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	externalID := input.ExternalID
	if externalID == "" && addr != nil && !addr.IsZero() {
		externalID = addr.ExternalID()
		if input.Metadata == nil {
			input.Metadata = domain.MapOfAny{}
		}
		input.Metadata["address_hash"] = addr.Fingerprint()
	}
	if input.Metadata == nil {
		input.Metadata = domain.MapOfAny{}
	}
	input.Metadata["has_email"] = input.NormalizedEmail() != ""

	if externalID != "" {
		result, err := s.resolveByExternalID(ctx, input, externalID)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
	}

	result, err := s.resolveByContactSignals(ctx, input, externalID)
	if err == nil {
		return result, nil
	}

	// A unique violation here means another sync inserted the same
	// (provider, external_id) between our lookup and our write. The row now
	// exists, so the exact-identity branch must succeed.
	var conflict *domain.ErrIdentityConflict
	if errors.As(err, &conflict) && externalID != "" {
		s.logger.WithFields(map[string]interface{}{
			"provider":    string(input.Provider),
			"external_id": externalID,
		}).Info("Lost identity insert race, converging on existing row")

		result, retryErr := s.resolveByExternalID(ctx, input, externalID)
		if retryErr != nil {
			return nil, retryErr
		}
		if result != nil {
			return result, nil
		}
		return nil, fmt.Errorf("identity conflict without existing row: %w", err)
	}

	return nil, err
}

// resolveByExternalID handles the exact identity hit. Returns (nil, nil)
// when no identity exists for (provider, externalID).
func (s *ResolverService) resolveByExternalID(ctx context.Context, input domain.ResolveInput, externalID string) (*domain.ResolveResult, error) {
	identity, err := s.identityRepo.GetIdentity(ctx, input.Provider, externalID)
	if err != nil {
		var notFound *domain.ErrIdentityNotFound
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up identity: %w", err)
	}

	if hash := identity.MetadataString("address_hash"); hash != "" {
		s.logger.WithFields(map[string]interface{}{
			"provider":     string(input.Provider),
			"address_hash": hash,
		}).Debug("Refreshing address-derived identity")
	}

	// Refresh the identity row in place; the upsert converges concurrent
	// refreshes of the same key.
	identity.Email = mergeNullable(identity.Email, input.NormalizedEmail())
	identity.Phone = mergeNullable(identity.Phone, input.Phone)
	for k, v := range input.Metadata {
		if identity.Metadata == nil {
			identity.Metadata = domain.MapOfAny{}
		}
		identity.Metadata[k] = v
	}
	if _, err := s.identityRepo.UpsertIdentity(ctx, identity); err != nil {
		return nil, fmt.Errorf("failed to refresh identity: %w", err)
	}

	if err := s.customerRepo.RefreshCustomer(ctx, identity.CustomerID, customerPatch(input)); err != nil {
		return nil, fmt.Errorf("failed to refresh customer: %w", err)
	}

	return &domain.ResolveResult{
		Action:     domain.ResolveActionUpdated,
		CustomerID: identity.CustomerID,
	}, nil
}

// resolveByContactSignals searches existing customers by exact email, then
// exact phone, and creates, links or flags based on the distinct candidate
// set.
func (s *ResolverService) resolveByContactSignals(ctx context.Context, input domain.ResolveInput, externalID string) (*domain.ResolveResult, error) {
	candidates, err := s.collectCandidates(ctx, input)
	if err != nil {
		return nil, err
	}

	switch len(candidates) {
	case 0:
		return s.createCustomer(ctx, input, externalID)
	case 1:
		return s.linkCustomer(ctx, input, externalID, candidates[0])
	default:
		// More than one existing customer could own this record. Do not
		// create, do not link, do not guess.
		s.logger.WithFields(map[string]interface{}{
			"provider":   string(input.Provider),
			"candidates": candidates,
		}).Warn("Ambiguous identity match, leaving record unlinked for review")
		return &domain.ResolveResult{Action: domain.ResolveActionAmbiguous}, nil
	}
}

// collectCandidates returns the distinct customer ids matching the input's
// email or phone, email candidates first (a stronger signal).
func (s *ResolverService) collectCandidates(ctx context.Context, input domain.ResolveInput) ([]int64, error) {
	var candidates []int64
	seen := make(map[int64]bool)

	if email := input.NormalizedEmail(); email != "" {
		ids, err := s.customerRepo.FindCustomerIDsByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("failed to search by email: %w", err)
		}
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				candidates = append(candidates, id)
			}
		}
	}

	if phone := input.NormalizedPhone(); phone != "" {
		ids, err := s.customerRepo.FindCustomerIDsByPhone(ctx, phone)
		if err != nil {
			return nil, fmt.Errorf("failed to search by phone: %w", err)
		}
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				candidates = append(candidates, id)
			}
		}
	}

	return candidates, nil
}

func (s *ResolverService) createCustomer(ctx context.Context, input domain.ResolveInput, externalID string) (*domain.ResolveResult, error) {
	customer := customerPatch(input)
	identity := identityFromInput(input, externalID)

	if err := s.customerRepo.CreateCustomerWithIdentity(ctx, customer, identity); err != nil {
		return nil, err
	}

	return &domain.ResolveResult{
		Action:     domain.ResolveActionCreated,
		CustomerID: customer.ID,
	}, nil
}

func (s *ResolverService) linkCustomer(ctx context.Context, input domain.ResolveInput, externalID string, customerID int64) (*domain.ResolveResult, error) {
	identity := identityFromInput(input, externalID)
	identity.CustomerID = customerID

	if err := s.identityRepo.CreateIdentity(ctx, identity); err != nil {
		return nil, err
	}

	// Fill previously-null customer fields only; a link never overwrites
	// data a higher-authority source already populated.
	if err := s.customerRepo.FillCustomerNulls(ctx, customerID, customerPatch(input)); err != nil {
		return nil, fmt.Errorf("failed to fill customer fields: %w", err)
	}

	return &domain.ResolveResult{
		Action:     domain.ResolveActionLinked,
		CustomerID: customerID,
	}, nil
}

func customerPatch(input domain.ResolveInput) *domain.Customer {
	return &domain.Customer{
		PrimaryEmail: domain.StringOrNull(input.NormalizedEmail()),
		PrimaryPhone: domain.StringOrNull(input.Phone),
		FirstName:    domain.StringOrNull(input.FirstName),
		LastName:     domain.StringOrNull(input.LastName),
		Company:      domain.StringOrNull(input.Company),
	}
}

func identityFromInput(input domain.ResolveInput, externalID string) *domain.CustomerIdentity {
	return &domain.CustomerIdentity{
		Provider:   input.Provider,
		ExternalID: domain.StringOrNull(externalID),
		Email:      domain.StringOrNull(input.NormalizedEmail()),
		Phone:      domain.StringOrNull(input.Phone),
		Metadata:   input.Metadata,
	}
}

// mergeNullable keeps the existing value unless it is null and the new
// value is non-empty.
func mergeNullable(existing *domain.NullableString, value string) *domain.NullableString {
	if value == "" {
		return existing
	}
	if existing == nil || existing.IsNull {
		return domain.NonNullString(value)
	}
	return existing
}
