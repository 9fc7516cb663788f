package domain

// MergedDeps is the output of the dependency merge: the combined descriptors
// plus the exact key order they must be emitted in. Identical content in a
// different key order is a behavioral difference for review purposes.
type MergedDeps struct {
	Deps *DepSet
	Keys []string
}

// WorkspaceEmission bundles everything the root workspace manifest is
// regenerated from. Features and Members are opaque pass-through data.
type WorkspaceEmission struct {
	Features      []Feature
	Members       []string
	WorkspaceDeps *DepSet
	TargetDeps    []TargetDeps
	Patches       *PatchSet
}

// Policy is the allow/deny surface applied to the regenerated lockfile.
// It is threaded explicitly from the orchestrator into the scan.
type Policy struct {
	// Deny maps crate names that must never be vendored to a human-readable reason.
	Deny map[string]string

	// RequireOverride lists crate names that must resolve to a local override,
	// never to an external registry source.
	RequireOverride []string
}

// ViolationKind classifies a policy violation.
type ViolationKind string

const (
	// ViolationDenied marks a denylisted crate found in the lockfile.
	ViolationDenied ViolationKind = "undesirable"

	// ViolationNotOverridden marks a crate that must be overridden but still
	// resolved to an external registry source.
	ViolationNotOverridden ViolationKind = "non_overridden"
)

// Violation is one policy failure found in the regenerated lockfile.
type Violation struct {
	Kind    ViolationKind
	Crate   string
	Version string
	Source  string
	Reason  string
}
