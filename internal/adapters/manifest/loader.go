// Package manifest implements Cargo manifest parsing and regeneration.
// Parsing decodes each section kind into typed records in a single pass;
// emission uses a minimal fixed-layout formatter so the regenerated files
// stay reviewable as diffs.
package manifest

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.trai.ch/cargosync/internal/core/domain"
	"go.trai.ch/zerr"
)

// Loader implements ports.ManifestLoader using BurntSushi/toml. Source key
// order is recovered from toml.MetaData so emission can preserve it.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

type rawPackage struct {
	Name string `toml:"name"`
}

type rawWorkspace struct {
	Members      []string                  `toml:"members"`
	Dependencies map[string]toml.Primitive `toml:"dependencies"`
}

type rawTarget struct {
	Dependencies map[string]toml.Primitive `toml:"dependencies"`
}

type rawManifest struct {
	Package      rawPackage                           `toml:"package"`
	Dependencies map[string]toml.Primitive            `toml:"dependencies"`
	Patch        map[string]map[string]toml.Primitive `toml:"patch"`
	Workspace    rawWorkspace                         `toml:"workspace"`
	Features     map[string][]string                  `toml:"features"`
	Target       map[string]rawTarget                 `toml:"target"`
}

// rawDep is the table form of a dependency descriptor. Both spellings of the
// default-features marker occur in the wild.
type rawDep struct {
	Version            string   `toml:"version"`
	Path               string   `toml:"path"`
	Git                string   `toml:"git"`
	Branch             string   `toml:"branch"`
	Rev                string   `toml:"rev"`
	Package            string   `toml:"package"`
	Features           []string `toml:"features"`
	Optional           bool     `toml:"optional"`
	DefaultFeatures    *bool    `toml:"default-features"`
	DefaultFeaturesAlt *bool    `toml:"default_features"`
}

// Load parses the Cargo.toml at path into a read-only snapshot. Every
// relative path field is resolved against the manifest's own directory before
// the document is handed to any merger, because emission re-derives the
// relative form against a different destination directory.
func (l *Loader) Load(path string) (*domain.Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestNotFound.Error()), "path", path)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrManifestNotFound, "path", abs)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "path", abs)
	}

	var raw rawManifest
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "path", abs)
	}

	m := &domain.Manifest{
		Location:         abs,
		Dir:              filepath.Dir(abs),
		PackageName:      raw.Package.Name,
		Dependencies:     domain.NewDepSet(),
		Patches:          domain.NewPatchSet(),
		WorkspaceDeps:    domain.NewDepSet(),
		WorkspaceMembers: raw.Workspace.Members,
	}

	if err := l.decodeSections(md, raw, m); err != nil {
		return nil, zerr.With(err, "path", abs)
	}

	return m, nil
}

func (l *Loader) decodeSections(md toml.MetaData, raw rawManifest, m *domain.Manifest) error {
	for _, key := range md.Keys() {
		switch {
		case len(key) == 2 && key[0] == "dependencies":
			prim, ok := raw.Dependencies[key[1]]
			if !ok {
				continue
			}
			dep, err := decodeDep(md, prim, m.Dir)
			if err != nil {
				return err
			}
			m.Dependencies.Set(key[1], dep)

		case len(key) == 3 && key[0] == "patch":
			group, ok := raw.Patch[key[1]]
			if !ok {
				continue
			}
			prim, ok := group[key[2]]
			if !ok {
				continue
			}
			dep, err := decodeDep(md, prim, m.Dir)
			if err != nil {
				return err
			}
			m.Patches.Group(key[1]).Set(key[2], dep)

		case len(key) == 3 && key[0] == "workspace" && key[1] == "dependencies":
			prim, ok := raw.Workspace.Dependencies[key[2]]
			if !ok {
				continue
			}
			dep, err := decodeDep(md, prim, m.Dir)
			if err != nil {
				return err
			}
			m.WorkspaceDeps.Set(key[2], dep)

		case len(key) == 2 && key[0] == "features":
			implies, ok := raw.Features[key[1]]
			if !ok {
				continue
			}
			m.Features = append(m.Features, domain.Feature{Name: key[1], Implies: implies})

		case len(key) == 4 && key[0] == "target" && key[2] == "dependencies":
			target, ok := raw.Target[key[1]]
			if !ok {
				continue
			}
			prim, ok := target.Dependencies[key[3]]
			if !ok {
				continue
			}
			dep, err := decodeDep(md, prim, m.Dir)
			if err != nil {
				return err
			}
			l.targetSet(m, key[1]).Set(key[3], dep)
		}
	}

	return nil
}

// targetSet returns the dependency set for a target expression, appending a
// new stanza in first-seen order.
func (l *Loader) targetSet(m *domain.Manifest, target string) *domain.DepSet {
	for i := range m.TargetDeps {
		if m.TargetDeps[i].Target == target {
			return m.TargetDeps[i].Deps
		}
	}
	m.TargetDeps = append(m.TargetDeps, domain.TargetDeps{Target: target, Deps: domain.NewDepSet()})
	return m.TargetDeps[len(m.TargetDeps)-1].Deps
}

// decodeDep normalizes one dependency entry. A bare string value becomes a
// descriptor whose only field is that version string; this is the only
// implicit coercion performed.
func decodeDep(md toml.MetaData, prim toml.Primitive, dir string) (domain.Dependency, error) {
	var version string
	if err := md.PrimitiveDecode(prim, &version); err == nil {
		return domain.Dependency{Version: version}, nil
	}

	var raw rawDep
	if err := md.PrimitiveDecode(prim, &raw); err != nil {
		return domain.Dependency{}, zerr.Wrap(err, domain.ErrManifestParseFailed.Error())
	}

	dep := domain.Dependency{
		Version:         raw.Version,
		Git:             raw.Git,
		Branch:          raw.Branch,
		Rev:             raw.Rev,
		Package:         raw.Package,
		Features:        raw.Features,
		Optional:        raw.Optional,
		DefaultFeatures: raw.DefaultFeatures,
	}
	if dep.DefaultFeatures == nil {
		dep.DefaultFeatures = raw.DefaultFeaturesAlt
	}

	if raw.Path != "" {
		p := raw.Path
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		dep.Path = filepath.Clean(p)
	}

	return dep, nil
}
