package docq

import "github.com/kailas-cloud/docq/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound             = domain.ErrNotFound
	ErrInvalidNumber        = domain.ErrInvalidNumber
	ErrMisconfiguredSearch  = domain.ErrMisconfiguredSearch
	ErrBuilderSpent         = domain.ErrBuilderSpent
	ErrUnsupportedPredicate = domain.ErrUnsupportedPredicate
	ErrInvalidQuery         = domain.ErrInvalidQuery
	ErrInvalidRecord        = domain.ErrInvalidRecord
)
