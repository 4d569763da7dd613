package domain

import (
	"context"
)

//go:generate mockgen -destination=mocks/mock_services.go -package=mocks github.com/harborcrm/harbor/internal/domain Resolver

// Resolver decides, for one inbound provider record, whether it belongs to
// a known customer, a new customer, or requires human review.
type Resolver interface {
	Resolve(ctx context.Context, input ResolveInput, addr *Address) (*ResolveResult, error)
}
