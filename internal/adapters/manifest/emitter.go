package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/cargosync/internal/core/domain"
	"go.trai.ch/zerr"
)

// Emitter implements ports.WorkspaceEmitter. It deliberately does not use a
// round-trip TOML serializer: the regenerated files are reviewed by humans,
// and the fixed layout keeps diff noise down across syncs.
type Emitter struct{}

// NewEmitter creates a new Emitter.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// WriteMemberManifest writes the member-crate manifest: the fixed package
// header plus the merged [dependencies] block in its exact key order.
func (e *Emitter) WriteMemberManifest(path string, merged *domain.MergedDeps) error {
	destDir := filepath.Dir(path)

	var deps strings.Builder
	deps.WriteString("[dependencies]\n")
	for _, key := range merged.Keys {
		dep, ok := merged.Deps.Get(key)
		if !ok {
			continue
		}
		deps.WriteString(domain.EncodeEntry(key, depValue(dep, destDir)) + "\n")
	}

	content := fmt.Sprintf(memberTemplate, strings.TrimSpace(deps.String()))
	return writeFile(path, content)
}

// WriteWorkspaceManifest writes the root workspace manifest. Features and
// members pass through untouched; every path field is re-relativized against
// the destination directory.
func (e *Emitter) WriteWorkspaceManifest(path string, em domain.WorkspaceEmission) error {
	destDir := filepath.Dir(path)

	var b strings.Builder
	b.WriteString(workspaceHeader)

	b.WriteString("\n[features]\n")
	for _, f := range em.Features {
		b.WriteString(domain.EncodeInlineEntry(f.Name, domain.Strings(f.Implies)) + "\n")
	}

	b.WriteString("\n[workspace]\n")
	b.WriteString(domain.EncodeEntry("members", domain.Strings(em.Members)) + "\n")

	b.WriteString("\n[workspace.dependencies]\n")
	if em.WorkspaceDeps != nil {
		for _, name := range em.WorkspaceDeps.Keys() {
			dep, _ := em.WorkspaceDeps.Get(name)
			b.WriteString(domain.EncodeEntry(name, depValue(dep, destDir)) + "\n")
		}
	}

	for _, td := range em.TargetDeps {
		target := strings.ReplaceAll(td.Target, `"`, `\"`)
		for _, name := range td.Deps.Keys() {
			dep, _ := td.Deps.Get(name)
			b.WriteString("\n[target.\"" + target + "\".dependencies." + name + "]\n")
			for _, line := range depFieldLines(dep, destDir) {
				b.WriteString(line + "\n")
			}
		}
	}

	if em.Patches != nil {
		for _, src := range em.Patches.Sources() {
			b.WriteString("\n[patch." + patchHeader(src) + "]\n")
			if src == domain.CratesRegistry {
				// The workspace-hack crate always redirects to the workspace
				// directory itself.
				redirect := domain.NewTable().Set("path", domain.String("."))
				b.WriteString(domain.EncodeEntry(domain.HackCrateName, redirect) + "\n")
			}
			group := em.Patches.Group(src)
			for _, name := range group.Keys() {
				dep, _ := group.Get(name)
				b.WriteString(domain.EncodeEntry(name, depValue(dep, destDir)) + "\n")
			}
		}
	}

	return writeFile(path, strings.TrimSpace(b.String())+"\n")
}

// WriteVendorConfig writes the captured cargo vendor output followed by the
// preprocessing footer.
func (e *Emitter) WriteVendorConfig(path string, lines []string, vendoredDir string) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrVendorConfigWriteFailed.Error()), "path", path)
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line + "\n")
	}
	b.WriteString(fmt.Sprintf(vendorConfigFooter, vendoredDir))

	if err := os.WriteFile(path, []byte(b.String()), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrVendorConfigWriteFailed.Error()), "path", path)
	}
	return nil
}

// patchHeader quotes a patch source identity when it is a URL rather than a
// registry alias.
func patchHeader(source string) string {
	if strings.Contains(source, ":/") {
		return `"` + source + `"`
	}
	return source
}

// depValue converts a descriptor into an ordered inline table, re-relativizing
// the path field against the destination directory.
func depValue(d domain.Dependency, destDir string) *domain.Table {
	t := domain.NewTable()
	if d.Version != "" {
		t.Set("version", domain.String(d.Version))
	}
	if d.Path != "" {
		t.Set("path", domain.String(relativePath(destDir, d.Path)))
	}
	if d.Git != "" {
		t.Set("git", domain.String(d.Git))
	}
	if d.Branch != "" {
		t.Set("branch", domain.String(d.Branch))
	}
	if d.Rev != "" {
		t.Set("rev", domain.String(d.Rev))
	}
	if d.Package != "" {
		t.Set("package", domain.String(d.Package))
	}
	if len(d.Features) > 0 {
		t.Set("features", domain.Strings(d.Features))
	}
	if d.Optional {
		t.Set("optional", domain.Bool(true))
	}
	if d.DefaultFeatures != nil {
		t.Set("default-features", domain.Bool(*d.DefaultFeatures))
	}
	return t
}

// depFieldLines renders a descriptor as individual entries, one per field,
// for target-conditional sub-table stanzas.
func depFieldLines(d domain.Dependency, destDir string) []string {
	var lines []string
	appendEntry := func(key string, v domain.Value) {
		lines = append(lines, domain.EncodeEntry(key, v))
	}

	if d.Version != "" {
		appendEntry("version", domain.String(d.Version))
	}
	if d.Path != "" {
		appendEntry("path", domain.String(relativePath(destDir, d.Path)))
	}
	if d.Git != "" {
		appendEntry("git", domain.String(d.Git))
	}
	if d.Branch != "" {
		appendEntry("branch", domain.String(d.Branch))
	}
	if d.Rev != "" {
		appendEntry("rev", domain.String(d.Rev))
	}
	if d.Package != "" {
		appendEntry("package", domain.String(d.Package))
	}
	if len(d.Features) > 0 {
		appendEntry("features", domain.Strings(d.Features))
	}
	if d.Optional {
		appendEntry("optional", domain.Bool(true))
	}
	if d.DefaultFeatures != nil {
		appendEntry("default-features", domain.Bool(*d.DefaultFeatures))
	}
	return lines
}

// relativePath re-derives the relative form of an absolute path against the
// destination directory, in slash form for manifest portability.
func relativePath(destDir, path string) string {
	rel, err := filepath.Rel(destDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	return nil
}
