package ports

import "context"

// Toolchain defines the interface for invoking the external cargo binary.
// Both operations block until completion and surface a non-zero exit as a
// fatal error; no partial-state cleanup is attempted.
//
//go:generate mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type Toolchain interface {
	// Check locates the cargo binary and verifies its version without
	// running a subcommand.
	Check() error

	// Path returns the resolved location of the cargo binary.
	Path() string

	// Update regenerates the lock entries of a single package, running
	// `cargo update -p <pkg>` with workingDir as the working directory.
	Update(ctx context.Context, workingDir, pkg string) error

	// Vendor vendors all dependencies of the given manifest into outputDir,
	// running from workingDir. It returns the config lines cargo printed on
	// stdout for redirecting crate sources at the vendored directory.
	Vendor(ctx context.Context, workingDir, manifestPath, outputDir string) ([]string, error)
}
