// Package policy enforces the crate allow/deny surface over a regenerated
// lockfile. The policy value is threaded in explicitly by the orchestrator;
// there is no package-level mutable state.
package policy

import (
	"slices"

	"go.trai.ch/cargosync/internal/core/domain"
)

// Base returns the compiled-in policy. The overlay file, when present,
// extends these lists; it never removes entries.
func Base() domain.Policy {
	return domain.Policy{
		Deny: map[string]string{
			"openssl":         "use the in-tree NSS bindings instead of linking openssl",
			"openssl-sys":     "use the in-tree NSS bindings instead of linking openssl",
			"rust-crypto":     "unmaintained; use in-tree crypto primitives",
			"rustc-serialize": "deprecated; use serde",
			"cmake":           "crates must not drive cmake builds from cargo",
		},
		RequireOverride: []string{
			"autocfg",
		},
	}
}

// Merge extends base with an overlay policy. Deny reasons from the overlay
// win on conflict, mirroring how local definitions shadow upstream ones.
func Merge(base, overlay domain.Policy) domain.Policy {
	out := domain.Policy{
		Deny:            make(map[string]string, len(base.Deny)+len(overlay.Deny)),
		RequireOverride: append([]string(nil), base.RequireOverride...),
	}
	for name, reason := range base.Deny {
		out.Deny[name] = reason
	}
	for name, reason := range overlay.Deny {
		out.Deny[name] = reason
	}
	for _, name := range overlay.RequireOverride {
		if !slices.Contains(out.RequireOverride, name) {
			out.RequireOverride = append(out.RequireOverride, name)
		}
	}
	return out
}

// Scan walks every package entry of the lockfile and collects violations.
// A require-override crate that still carries a registry source field failed
// to resolve to its local override; a denylisted crate must not appear at all.
// All violations of one run are reported together.
func Scan(lock *domain.Lockfile, pol domain.Policy) []domain.Violation {
	var violations []domain.Violation

	for _, pkg := range lock.Packages {
		switch {
		case slices.Contains(pol.RequireOverride, pkg.Name):
			// A local override leaves no source field in the lockfile.
			if pkg.Source != "" {
				violations = append(violations, domain.Violation{
					Kind:    domain.ViolationNotOverridden,
					Crate:   pkg.Name,
					Version: pkg.Version,
					Source:  pkg.Source,
				})
			}
		case pol.Deny[pkg.Name] != "":
			violations = append(violations, domain.Violation{
				Kind:    domain.ViolationDenied,
				Crate:   pkg.Name,
				Version: pkg.Version,
				Reason:  pol.Deny[pkg.Name],
			})
		}
	}

	return violations
}
