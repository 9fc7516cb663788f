package ports

import "go.trai.ch/cargosync/internal/core/domain"

// ManifestLoader defines the interface for parsing Cargo manifests and lockfiles.
//
//go:generate mockgen -source=manifest_loader.go -destination=mocks/mock_manifest_loader.go -package=mocks
type ManifestLoader interface {
	// Load parses a Cargo.toml into a read-only manifest snapshot. Relative
	// path fields are resolved to absolute form against the file's directory.
	Load(path string) (*domain.Manifest, error)

	// LoadLockfile parses a Cargo.lock, reduced to the package entries.
	LoadLockfile(path string) (*domain.Lockfile, error)
}
