package ports

import "go.trai.ch/cargosync/internal/core/domain"

// ChecksumGuard tracks content hashes of the generated-from source files.
// Drift is a policy gate for the verify command, not a data-integrity check.
//
//go:generate mockgen -source=checksum_guard.go -destination=mocks/mock_checksum_guard.go -package=mocks
type ChecksumGuard interface {
	// Current hashes every tracked file that exists. Missing files are
	// omitted from the result, not reported as errors.
	Current(layout domain.Layout) (map[string]string, error)

	// CheckDrift compares current hashes against the persisted record and
	// returns the destination paths of every tracked file that changed.
	// An absent record treats every tracked file as drifted.
	CheckDrift(layout domain.Layout) ([]string, error)

	// Save overwrites the persisted record with the current hash snapshot.
	// Called once, only after a fully successful regeneration cycle.
	Save(layout domain.Layout) error
}
