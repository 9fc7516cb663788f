// Package merge combines the upstream shared-library dependency set with the
// downstream member crate's local dependencies into one ordered set for
// emission. The output key order is part of the contract: the regenerated
// manifests are reviewed as diffs.
package merge

import (
	"path/filepath"
	"slices"

	"go.trai.ch/cargosync/internal/core/domain"
)

// Input carries the two dependency sets to merge plus the directories the
// merge rules are anchored at.
type Input struct {
	// Upstream is the full dependency set of the upstream shared-library manifest.
	Upstream *domain.DepSet

	// Local is the dependency set of the previously generated downstream
	// member manifest. Only entries whose path resolves to a direct child of
	// WorkspaceDir count as local; the depth-one rule is deliberate.
	Local *domain.DepSet

	// WorkspaceDir is the downstream workspace directory.
	WorkspaceDir string

	// SharedCrateDir is the canonical upstream location of the shared-library
	// bridge crate, forced into the merged set.
	SharedCrateDir string
}

// Dependencies merges the upstream and local sets per the workspace synthesis
// rules: the workspace-hack and shared-library entries are replaced wholesale
// and lead the key order, local definitions win over upstream ones, local keys
// surface at the top in descending order, preserved feature flags survive, and
// redundant default-feature markers are stripped.
func Dependencies(in Input) *domain.MergedDeps {
	local, preserved := classifyLocal(in.Local, in.WorkspaceDir)

	deps := in.Upstream.Clone()
	deps.Delete(domain.HackCrateName)
	deps.Delete(domain.SharedCrateName)

	keys := deps.Keys()
	slices.Sort(keys)
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		seen[k] = true
	}

	// Local definitions win unconditionally over upstream ones.
	for _, name := range local.Keys() {
		d, _ := local.Get(name)
		deps.Set(name, d.Clone())
	}

	// Prepend local keys in descending order so the most recently added local
	// dependency ends up nearest the top, directly below the two leaders.
	localKeys := local.Keys()
	slices.Sort(localKeys)
	slices.Reverse(localKeys)
	for _, name := range localKeys {
		if seen[name] {
			continue
		}
		keys = append([]string{name}, keys...)
		seen[name] = true
	}

	deps.Set(domain.HackCrateName, domain.Dependency{
		Version:  "0.1",
		Features: []string{domain.MemberCrateName},
		Optional: true,
	})
	deps.Set(domain.SharedCrateName, domain.Dependency{
		Version: "0.1.0",
		Path:    in.SharedCrateDir,
	})

	keys = append([]string{domain.SharedCrateName}, keys...)
	keys = append([]string{domain.HackCrateName}, keys...)

	for _, name := range keys {
		d, ok := deps.Get(name)
		if !ok {
			continue
		}
		if flags := preserved[name]; len(flags) > 0 {
			d.Features = mergeFront(flags, d.Features)
		}
		d.DefaultFeatures = nil
		deps.Set(name, d)
	}

	return &domain.MergedDeps{Deps: deps, Keys: keys}
}

// Patches prepares the upstream patch set for re-emission: the workspace-hack
// crate patches itself in the upstream crates-registry group, which is
// meaningless once the name is reused downstream.
func Patches(upstream *domain.PatchSet) *domain.PatchSet {
	patches := upstream.Clone()
	for _, src := range patches.Sources() {
		if src == domain.CratesRegistry {
			patches.Group(src).Delete(domain.HackCrateName)
		}
	}
	return patches
}

// classifyLocal splits the member manifest's dependencies into the local set
// (path resolves to a direct child of the workspace directory) and the feature
// flags that must survive the merge. Preserved features are collected from
// every pathed dependency, not only depth-one ones.
func classifyLocal(member *domain.DepSet, workspaceDir string) (*domain.DepSet, map[string][]string) {
	local := domain.NewDepSet()
	preserved := make(map[string][]string)

	if member == nil {
		return local, preserved
	}

	for _, name := range member.Keys() {
		dep, _ := member.Get(name)
		if dep.Path == "" {
			continue
		}

		var keep []string
		for _, f := range dep.Features {
			if slices.Contains(domain.FeaturesToPreserve, f) {
				keep = append(keep, f)
			}
		}
		if len(keep) > 0 {
			preserved[name] = keep
		}

		if filepath.Dir(filepath.Clean(dep.Path)) == filepath.Clean(workspaceDir) {
			local.Set(name, dep)
		}
	}

	return local, preserved
}

// mergeFront places the preserved flags first and appends the remaining
// features, de-duplicated.
func mergeFront(front, rest []string) []string {
	out := append([]string(nil), front...)
	for _, f := range rest {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
