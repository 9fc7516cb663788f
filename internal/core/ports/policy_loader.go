package ports

import "go.trai.ch/cargosync/internal/core/domain"

// PolicyLoader defines the interface for sourcing the crate policy.
//
//go:generate mockgen -source=policy_loader.go -destination=mocks/mock_policy_loader.go -package=mocks
type PolicyLoader interface {
	// Load returns the compiled-in base policy, extended by the overlay file
	// at path when it exists.
	Load(path string) (domain.Policy, error)
}
