package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cargosync/internal/adapters/manifest"
	"go.trai.ch/cargosync/internal/core/domain"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "Cargo.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDependencies(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "gkrust-shared"

[dependencies]
nserror = { path = "../xpcom/nserror" }
bare = "0.5"
zzz = { version = "1.0", features = ["a", "b"], optional = true, default-features = false }
`)

	m, err := manifest.NewLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gkrust-shared", m.PackageName)
	assert.Equal(t, dir, m.Dir)

	// Source order survives parsing.
	assert.Equal(t, []string{"nserror", "bare", "zzz"}, m.Dependencies.Keys())

	nserror, ok := m.Dependencies.Get("nserror")
	require.True(t, ok)
	assert.Equal(t, filepath.Clean(filepath.Join(dir, "..", "xpcom", "nserror")), nserror.Path)
	assert.True(t, filepath.IsAbs(nserror.Path))

	// A bare string entry is coerced into a version-only descriptor.
	bare, ok := m.Dependencies.Get("bare")
	require.True(t, ok)
	assert.Equal(t, domain.Dependency{Version: "0.5"}, bare)

	zzz, ok := m.Dependencies.Get("zzz")
	require.True(t, ok)
	assert.Equal(t, "1.0", zzz.Version)
	assert.Equal(t, []string{"a", "b"}, zzz.Features)
	assert.True(t, zzz.Optional)
	require.NotNil(t, zzz.DefaultFeatures)
	assert.False(t, *zzz.DefaultFeatures)
}

func TestLoadDefaultFeaturesAltSpelling(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[dependencies]
dep = { version = "1", default_features = false }
`)

	m, err := manifest.NewLoader().Load(path)
	require.NoError(t, err)

	dep, ok := m.Dependencies.Get("dep")
	require.True(t, ok)
	require.NotNil(t, dep.DefaultFeatures)
	assert.False(t, *dep.DefaultFeatures)
}

func TestLoadPatches(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[patch.crates-io]
foo = { path = "third_party/rust/foo" }
mozilla-central-workspace-hack = { path = "build/workspace-hack" }

[patch."https://github.com/example/repo"]
bar = { rev = "abc123" }
`)

	m, err := manifest.NewLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"crates-io", "https://github.com/example/repo"}, m.Patches.Sources())
	assert.Equal(t,
		[]string{"foo", "mozilla-central-workspace-hack"},
		m.Patches.Group("crates-io").Keys())

	foo, ok := m.Patches.Group("crates-io").Get("foo")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "third_party", "rust", "foo"), foo.Path)

	bar, ok := m.Patches.Group("https://github.com/example/repo").Get("bar")
	require.True(t, ok)
	assert.Equal(t, "abc123", bar.Rev)
}

func TestLoadWorkspaceAndFeatures(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[features]
default = []
mailnews = ["gkrust-shared/mailnews"]

[workspace]
members = ["gkrust"]

[workspace.dependencies]
wdep = "1"
pathed = { path = "sub/pathed" }
`)

	m, err := manifest.NewLoader().Load(path)
	require.NoError(t, err)

	require.Len(t, m.Features, 2)
	assert.Equal(t, "default", m.Features[0].Name)
	assert.Empty(t, m.Features[0].Implies)
	assert.Equal(t, "mailnews", m.Features[1].Name)
	assert.Equal(t, []string{"gkrust-shared/mailnews"}, m.Features[1].Implies)

	assert.Equal(t, []string{"gkrust"}, m.WorkspaceMembers)
	assert.Equal(t, []string{"wdep", "pathed"}, m.WorkspaceDeps.Keys())
}

func TestLoadTargetDependencies(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[target."cfg(windows)".dependencies]
winapi = { version = "0.3", features = ["winuser"] }

[target."cfg(unix)".dependencies]
libc = "0.2"
`)

	m, err := manifest.NewLoader().Load(path)
	require.NoError(t, err)

	require.Len(t, m.TargetDeps, 2)
	assert.Equal(t, "cfg(windows)", m.TargetDeps[0].Target)
	assert.Equal(t, []string{"winapi"}, m.TargetDeps[0].Deps.Keys())
	assert.Equal(t, "cfg(unix)", m.TargetDeps[1].Target)

	winapi, ok := m.TargetDeps[0].Deps.Get("winapi")
	require.True(t, ok)
	assert.Equal(t, []string{"winuser"}, winapi.Features)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := manifest.NewLoader().Load(filepath.Join(t.TempDir(), "Cargo.toml"))
	require.ErrorContains(t, err, domain.ErrManifestNotFound.Error())
}

func TestLoadInvalidTOML(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "not = valid = toml")

	_, err := manifest.NewLoader().Load(path)
	require.ErrorContains(t, err, domain.ErrManifestParseFailed.Error())
}

func TestLoadLockfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Cargo.lock")
	require.NoError(t, os.WriteFile(path, []byte(`
version = 3

[[package]]
name = "autocfg"
version = "1.1.0"
source = "registry+https://github.com/rust-lang/crates.io-index"

[[package]]
name = "gkrust"
version = "0.1.0"
`), 0o644))

	lock, err := manifest.NewLoader().LoadLockfile(path)
	require.NoError(t, err)

	require.Len(t, lock.Packages, 2)
	assert.Equal(t, domain.LockPackage{
		Name:    "autocfg",
		Version: "1.1.0",
		Source:  "registry+https://github.com/rust-lang/crates.io-index",
	}, lock.Packages[0])
	assert.Equal(t, domain.LockPackage{Name: "gkrust", Version: "0.1.0"}, lock.Packages[1])
}

func TestLoadLockfileMissing(t *testing.T) {
	_, err := manifest.NewLoader().LoadLockfile(filepath.Join(t.TempDir(), "Cargo.lock"))
	require.ErrorContains(t, err, domain.ErrManifestNotFound.Error())
}
