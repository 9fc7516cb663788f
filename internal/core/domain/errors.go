package domain

import "go.trai.ch/zerr"

var (
	// ErrManifestNotFound is returned when a source manifest does not exist on disk.
	ErrManifestNotFound = zerr.New("manifest not found")

	// ErrManifestParseFailed is returned when a manifest is not valid TOML.
	ErrManifestParseFailed = zerr.New("failed to parse manifest")

	// ErrLockfileParseFailed is returned when a lockfile is not valid TOML.
	ErrLockfileParseFailed = zerr.New("failed to parse lockfile")

	// ErrManifestWriteFailed is returned when a regenerated manifest cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write manifest")

	// ErrLockfileCopyFailed is returned when the upstream lockfile cannot be copied downstream.
	ErrLockfileCopyFailed = zerr.New("failed to copy lockfile")

	// ErrToolchainUnavailable is returned when cargo cannot be located or fails its version check.
	ErrToolchainUnavailable = zerr.New("cargo not found or version mismatch")

	// ErrToolchainInvocationFailed is returned when an external cargo invocation exits non-zero.
	ErrToolchainInvocationFailed = zerr.New("cargo invocation failed")

	// ErrVendorConfigWriteFailed is returned when the vendoring config file cannot be written.
	ErrVendorConfigWriteFailed = zerr.New("failed to write vendoring config")

	// ErrChecksumReadFailed is returned when the checksum record cannot be read.
	ErrChecksumReadFailed = zerr.New("failed to read checksum record")

	// ErrChecksumWriteFailed is returned when the checksum record cannot be written.
	ErrChecksumWriteFailed = zerr.New("failed to write checksum record")

	// ErrPolicyViolation is returned when the regenerated lockfile contains denylisted
	// or non-overridden crates. Violations are collected and reported together.
	ErrPolicyViolation = zerr.New("new rust crates were not vendored")

	// ErrPolicyConfigParseFailed is returned when the policy overlay file cannot be parsed.
	ErrPolicyConfigParseFailed = zerr.New("failed to parse policy config")

	// ErrConfigDrift is returned by the verify command when tracked manifests
	// changed without the regeneration pipeline being re-run.
	ErrConfigDrift = zerr.New("rust dependencies are out of sync")
)
