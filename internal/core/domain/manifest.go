// Package domain contains the pure data model for the cargo workspace
// synthesis pipeline: parsed manifests, dependency descriptors, the emission
// value model and the sentinel errors shared across the application.
package domain

// Dependency describes a single dependency or patch entry from a Cargo
// manifest. A bare string entry in the source is normalized into a descriptor
// whose only populated field is Version.
//
// Path is always absolute at rest. It is resolved against the owning
// manifest's directory during parse and converted back to a relative path
// against the destination directory only at emission time.
type Dependency struct {
	Version  string
	Path     string
	Git      string
	Branch   string
	Rev      string
	Package  string
	Features []string
	Optional bool

	// DefaultFeatures captures either spelling of the default-features marker.
	// The merger strips it from member-crate dependencies before emission.
	DefaultFeatures *bool
}

// Clone returns a deep copy of the dependency.
func (d Dependency) Clone() Dependency {
	c := d
	if d.Features != nil {
		c.Features = append([]string(nil), d.Features...)
	}
	if d.DefaultFeatures != nil {
		v := *d.DefaultFeatures
		c.DefaultFeatures = &v
	}
	return c
}

// DepSet is an insertion-ordered mapping from dependency name to descriptor.
// Emission order is review-significant, so plain Go maps are not enough.
type DepSet struct {
	keys []string
	deps map[string]Dependency
}

// NewDepSet creates an empty DepSet.
func NewDepSet() *DepSet {
	return &DepSet{deps: make(map[string]Dependency)}
}

// Set stores a descriptor, appending the name to the key order if it is new.
func (s *DepSet) Set(name string, d Dependency) {
	if _, ok := s.deps[name]; !ok {
		s.keys = append(s.keys, name)
	}
	s.deps[name] = d
}

// Get returns the descriptor for name.
func (s *DepSet) Get(name string) (Dependency, bool) {
	d, ok := s.deps[name]
	return d, ok
}

// Delete removes name from the set, preserving the order of the remaining keys.
func (s *DepSet) Delete(name string) {
	if _, ok := s.deps[name]; !ok {
		return
	}
	delete(s.deps, name)
	for i, k := range s.keys {
		if k == name {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the names in insertion order.
func (s *DepSet) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Len returns the number of entries.
func (s *DepSet) Len() int {
	return len(s.keys)
}

// Clone returns a deep copy of the set.
func (s *DepSet) Clone() *DepSet {
	c := NewDepSet()
	for _, k := range s.keys {
		c.Set(k, s.deps[k].Clone())
	}
	return c
}

// PatchSet is an insertion-ordered mapping from patch source identity
// (a registry alias such as "crates-io", or a git URL) to its override set.
type PatchSet struct {
	sources []string
	groups  map[string]*DepSet
}

// NewPatchSet creates an empty PatchSet.
func NewPatchSet() *PatchSet {
	return &PatchSet{groups: make(map[string]*DepSet)}
}

// Group returns the override set for a patch source, creating it on first use.
func (p *PatchSet) Group(source string) *DepSet {
	g, ok := p.groups[source]
	if !ok {
		g = NewDepSet()
		p.groups[source] = g
		p.sources = append(p.sources, source)
	}
	return g
}

// Sources returns the patch source identities in insertion order.
func (p *PatchSet) Sources() []string {
	return append([]string(nil), p.sources...)
}

// Clone returns a deep copy of the patch set.
func (p *PatchSet) Clone() *PatchSet {
	c := NewPatchSet()
	for _, src := range p.sources {
		g := c.Group(src)
		for _, k := range p.groups[src].Keys() {
			d, _ := p.groups[src].Get(k)
			g.Set(k, d.Clone())
		}
	}
	return c
}

// Feature is one entry of a [features] table: a feature name and the features
// it implies. The list is opaque pass-through data, never reinterpreted.
type Feature struct {
	Name    string
	Implies []string
}

// TargetDeps holds the dependency set of one target-conditional table, keyed
// by the literal target expression (e.g. a cfg() string).
type TargetDeps struct {
	Target string
	Deps   *DepSet
}

// Manifest is a read-only snapshot of one parsed Cargo.toml.
type Manifest struct {
	// Location is the absolute path of the file; Dir its containing directory,
	// used as the anchor for every relative path found inside it.
	Location string
	Dir      string

	// PackageName is the [package] name, if present.
	PackageName string

	Dependencies  *DepSet
	Patches       *PatchSet
	WorkspaceDeps *DepSet

	// WorkspaceMembers preserves the [workspace] members list verbatim.
	WorkspaceMembers []string

	Features   []Feature
	TargetDeps []TargetDeps
}

// LockPackage is one [[package]] entry of a Cargo.lock. Source is empty when
// the package resolved to a local override instead of an external registry.
type LockPackage struct {
	Name    string
	Version string
	Source  string
}

// Lockfile is a parsed Cargo.lock, reduced to the fields the policy scan needs.
type Lockfile struct {
	Packages []LockPackage
}
