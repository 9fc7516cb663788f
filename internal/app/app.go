// Package app implements the application layer for cargosync.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/cargosync/internal/core/domain"
	"go.trai.ch/cargosync/internal/core/ports"
	"go.trai.ch/cargosync/internal/engine/merge"
	"go.trai.ch/cargosync/internal/engine/policy"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	manifests ports.ManifestLoader
	emitter   ports.WorkspaceEmitter
	toolchain ports.Toolchain
	guard     ports.ChecksumGuard
	policies  ports.PolicyLoader
	logger    ports.Logger
}

// New creates a new App instance.
func New(
	manifests ports.ManifestLoader,
	emitter ports.WorkspaceEmitter,
	toolchain ports.Toolchain,
	guard ports.ChecksumGuard,
	policies ports.PolicyLoader,
	log ports.Logger,
) *App {
	return &App{
		manifests: manifests,
		emitter:   emitter,
		toolchain: toolchain,
		guard:     guard,
		policies:  policies,
		logger:    log,
	}
}

// Sync regenerates the downstream workspace manifests from the upstream
// ones, copies the upstream lockfile over and relocks the member crate.
// The toolchain is checked before anything is rewritten.
func (a *App) Sync(ctx context.Context, layout domain.Layout) error {
	if err := a.toolchain.Check(); err != nil {
		return err
	}

	if err := a.regenerate(layout); err != nil {
		return err
	}

	src := layout.UpstreamLockfile()
	dst := layout.WorkspaceLockfile()
	a.logger.Info(fmt.Sprintf("syncing %s with %s", src, dst))
	if err := copyFile(src, dst); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrLockfileCopyFailed.Error()),
			"source", src), "destination", dst)
	}

	a.logger.Info(fmt.Sprintf("updating %s in the downstream workspace", domain.MemberCrateName))
	return a.toolchain.Update(ctx, layout.WorkspaceDir(), domain.MemberCrateName)
}

// Vendor runs a full sync, revendors all third-party crates and rewrites the
// vendoring config, then scans the resulting lockfile against the crate policy.
func (a *App) Vendor(ctx context.Context, layout domain.Layout) error {
	if err := a.Sync(ctx, layout); err != nil {
		return err
	}

	thirdParty := layout.ThirdPartyDir()
	if _, err := os.Stat(thirdParty); err == nil {
		a.logger.Info("removing " + thirdParty)
		if err := os.RemoveAll(thirdParty); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to remove vendored crate tree"), "path", thirdParty)
		}
	} else {
		a.logger.Warn("cannot find " + thirdParty)
	}

	// cargo vendor wants paths relative to the source root it runs in.
	manifestRel, err := filepath.Rel(layout.Root, layout.WorkspaceManifest())
	if err != nil {
		return zerr.Wrap(err, "failed to resolve workspace manifest path")
	}
	outputRel, err := filepath.Rel(layout.Root, thirdParty)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve vendored crate tree path")
	}

	a.logger.Info("running cargo vendor")
	lines, err := a.toolchain.Vendor(ctx, layout.Root, manifestRel, outputRel)
	if err != nil {
		return err
	}

	// The last two stdout lines repeat the config file instruction banner.
	if len(lines) >= 2 {
		lines = lines[:len(lines)-2]
	}

	if err := a.emitter.WriteVendorConfig(layout.VendorConfig(), lines, filepath.ToSlash(outputRel)); err != nil {
		return err
	}

	return a.checkCrates(layout)
}

// Verify compares the tracked upstream files against the persisted checksum
// record and fails when any of them changed since the last vendor run.
func (a *App) Verify(layout domain.Layout) error {
	drifted, err := a.guard.CheckDrift(layout)
	if err != nil {
		return err
	}

	if len(drifted) > 0 {
		detail := fmt.Errorf("files: %s\nrun `cargosync vendor` to regenerate",
			strings.Join(drifted, ", "))
		return errors.Join(domain.ErrConfigDrift, detail)
	}

	a.logger.Info("rust dependencies are okay")
	return nil
}

// regenerate rebuilds the two downstream manifests from the upstream ones and
// persists the checksum record of the files they were derived from.
func (a *App) regenerate(layout domain.Layout) error {
	upWorkspace, err := a.manifests.Load(layout.TrackedPath(domain.KeyWorkspaceManifest))
	if err != nil {
		return err
	}
	upShared, err := a.manifests.Load(layout.TrackedPath(domain.KeyMemberManifest))
	if err != nil {
		return err
	}
	upHack, err := a.manifests.Load(layout.TrackedPath(domain.KeyHackManifest))
	if err != nil {
		return err
	}

	// The previous generation output carries the state to preserve: features
	// and members on the workspace side, local path deps on the member side.
	downWorkspace, err := a.manifests.Load(layout.WorkspaceManifest())
	if err != nil {
		return err
	}
	downMember, err := a.manifests.Load(layout.MemberManifest())
	if err != nil {
		return err
	}

	merged := merge.Dependencies(merge.Input{
		Upstream:       upShared.Dependencies,
		Local:          downMember.Dependencies,
		WorkspaceDir:   layout.WorkspaceDir(),
		SharedCrateDir: layout.SharedCrateDir(),
	})

	if err := a.emitter.WriteMemberManifest(layout.MemberManifest(), merged); err != nil {
		return err
	}

	emission := domain.WorkspaceEmission{
		Features:      downWorkspace.Features,
		Members:       downWorkspace.WorkspaceMembers,
		WorkspaceDeps: upWorkspace.WorkspaceDeps,
		TargetDeps:    upHack.TargetDeps,
		Patches:       merge.Patches(upWorkspace.Patches),
	}
	if err := a.emitter.WriteWorkspaceManifest(layout.WorkspaceManifest(), emission); err != nil {
		return err
	}

	return a.guard.Save(layout)
}

// checkCrates scans the regenerated lockfile against the crate policy. Every
// violation is reported before the scan fails as a whole.
func (a *App) checkCrates(layout domain.Layout) error {
	a.logger.Info("checking for unwanted crates")

	lock, err := a.manifests.LoadLockfile(layout.WorkspaceLockfile())
	if err != nil {
		return err
	}
	pol, err := a.policies.Load(layout.PolicyFile())
	if err != nil {
		return err
	}

	violations := policy.Scan(lock, pol)
	for _, v := range violations {
		a.logger.Error(violationError(v))
	}
	if len(violations) > 0 {
		return zerr.With(domain.ErrPolicyViolation, "violations", len(violations))
	}
	return nil
}

func violationError(v domain.Violation) error {
	switch v.Kind {
	case domain.ViolationNotOverridden:
		err := zerr.New(fmt.Sprintf("crate %s v%s must be overridden but isn't", v.Crate, v.Version))
		return zerr.With(err, "source", v.Source)
	default:
		err := zerr.New(fmt.Sprintf("crate %s is not desirable", v.Crate))
		return zerr.With(err, "reason", v.Reason)
	}
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, domain.FilePerm)
}
