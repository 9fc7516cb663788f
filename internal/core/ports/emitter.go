package ports

import "go.trai.ch/cargosync/internal/core/domain"

// WorkspaceEmitter defines the interface for serializing merged dependency
// data back into manifest files. Emitted path fields are re-relativized
// against the destination file's directory.
//
//go:generate mockgen -source=emitter.go -destination=mocks/mock_emitter.go -package=mocks
type WorkspaceEmitter interface {
	// WriteMemberManifest writes the downstream member-crate manifest: the
	// fixed package header plus the merged [dependencies] block.
	WriteMemberManifest(path string, merged *domain.MergedDeps) error

	// WriteWorkspaceManifest writes the downstream root workspace manifest:
	// fixed header, preserved features and members, merged workspace
	// dependencies, target-conditional stanzas and patch stanzas.
	WriteWorkspaceManifest(path string, emission domain.WorkspaceEmission) error

	// WriteVendorConfig writes the vendoring config: the source-redirect
	// lines captured from cargo vendor plus the fixed preprocessing footer.
	// vendoredDir is the vendored crate tree relative to the source root,
	// in slash form.
	WriteVendorConfig(path string, lines []string, vendoredDir string) error
}
