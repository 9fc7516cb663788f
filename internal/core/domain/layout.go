package domain

import "path/filepath"

const (
	// OverlayDirName is the default name of the downstream overlay directory.
	OverlayDirName = "comm"

	// WorkspaceDirName is the name of the rust workspace directory inside the overlay.
	WorkspaceDirName = "rust"

	// MemberCrateName is the name of the downstream member crate.
	MemberCrateName = "gkrust"

	// HackCrateName is the workspace-hack placeholder package. It is always the
	// first emitted dependency of the member crate.
	HackCrateName = "mozilla-central-workspace-hack"

	// SharedCrateName is the shared-library bridge package. It is always emitted
	// directly below the workspace-hack entry.
	SharedCrateName = "gkrust-shared"

	// CratesRegistry is the patch source identity of the crates registry.
	CratesRegistry = "crates-io"

	// ChecksumFileName is the name of the persisted checksum record.
	ChecksumFileName = "checksums.json"

	// PolicyFileName is the name of the optional policy overlay file.
	PolicyFileName = "policy.yaml"

	// VendorConfigName is the name of the generated vendoring config, relative
	// to the downstream workspace directory.
	VendorConfigName = ".cargo/config.toml.in"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// Checksum record keys for the tracked upstream files. The key strings are a
// persisted format: existing checksums.json files use them.
const (
	KeyWorkspaceManifest = "mc_workspace_toml"
	KeyMemberManifest    = "mc_gkrust_toml"
	KeyHackManifest      = "mc_hack_toml"
	KeyLockfile          = "mc_cargo_lock"
)

// TrackedFiles maps checksum record keys to file paths relative to the source root.
var TrackedFiles = map[string]string{
	KeyWorkspaceManifest: "Cargo.toml",
	KeyMemberManifest:    "toolkit/library/rust/shared/Cargo.toml",
	KeyHackManifest:      "build/workspace-hack/Cargo.toml",
	KeyLockfile:          "Cargo.lock",
}

// TrackedKeys lists the checksum record keys in a stable reporting order.
var TrackedKeys = []string{
	KeyWorkspaceManifest,
	KeyMemberManifest,
	KeyHackManifest,
	KeyLockfile,
}

// FeaturesToPreserve lists features on local member-crate dependencies that are
// not present upstream but must survive regeneration.
var FeaturesToPreserve = []string{
	"mailnews",
}

// Layout resolves every file the synthesis pipeline touches, anchored at the
// upstream source root. Overlay is the downstream overlay directory name.
type Layout struct {
	Root    string
	Overlay string
}

// NewLayout creates a Layout for the given source root and overlay directory.
// An empty overlay falls back to OverlayDirName.
func NewLayout(root, overlay string) Layout {
	if overlay == "" {
		overlay = OverlayDirName
	}
	return Layout{Root: root, Overlay: overlay}
}

// WorkspaceDir returns the downstream rust workspace directory.
func (l Layout) WorkspaceDir() string {
	return filepath.Join(l.Root, l.Overlay, WorkspaceDirName)
}

// WorkspaceManifest returns the regenerated downstream workspace manifest path.
func (l Layout) WorkspaceManifest() string {
	return filepath.Join(l.WorkspaceDir(), "Cargo.toml")
}

// MemberDir returns the downstream member crate directory.
func (l Layout) MemberDir() string {
	return filepath.Join(l.WorkspaceDir(), MemberCrateName)
}

// MemberManifest returns the regenerated downstream member crate manifest path.
func (l Layout) MemberManifest() string {
	return filepath.Join(l.MemberDir(), "Cargo.toml")
}

// UpstreamLockfile returns the upstream-resolved lockfile path.
func (l Layout) UpstreamLockfile() string {
	return filepath.Join(l.Root, "Cargo.lock")
}

// WorkspaceLockfile returns the downstream workspace lockfile path.
func (l Layout) WorkspaceLockfile() string {
	return filepath.Join(l.WorkspaceDir(), "Cargo.lock")
}

// SharedCrateDir returns the canonical upstream location of the shared-library
// bridge crate.
func (l Layout) SharedCrateDir() string {
	return filepath.Join(l.Root, "toolkit", "library", "rust", "shared")
}

// ThirdPartyDir returns the downstream vendored crate tree.
func (l Layout) ThirdPartyDir() string {
	return filepath.Join(l.Root, l.Overlay, "third_party", "rust")
}

// VendorConfig returns the generated vendoring config path.
func (l Layout) VendorConfig() string {
	return filepath.Join(l.WorkspaceDir(), filepath.FromSlash(VendorConfigName))
}

// ChecksumFile returns the persisted checksum record path.
func (l Layout) ChecksumFile() string {
	return filepath.Join(l.Root, l.Overlay, WorkspaceDirName, ChecksumFileName)
}

// PolicyFile returns the optional policy overlay file path.
func (l Layout) PolicyFile() string {
	return filepath.Join(l.Root, l.Overlay, WorkspaceDirName, PolicyFileName)
}

// TrackedPath returns the absolute path of a tracked file by checksum key.
func (l Layout) TrackedPath(key string) string {
	return filepath.Join(l.Root, filepath.FromSlash(TrackedFiles[key]))
}
