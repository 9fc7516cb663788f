package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cargosync/internal/adapters/checksum"
	"go.trai.ch/cargosync/internal/adapters/manifest"
	"go.trai.ch/cargosync/internal/app"
	"go.trai.ch/cargosync/internal/core/domain"
)

// sourceTree lays out a minimal but real source tree: the three tracked
// upstream manifests, the upstream lockfile and the two downstream manifests
// a previous generation would have left behind.
var sourceTree = map[string]string{
	"Cargo.toml": `[workspace]
members = ["toolkit/library/rust"]

[workspace.dependencies]
nserror = { path = "xpcom/rust/nserror" }
serde = "1.0"

[patch.crates-io]
mozilla-central-workspace-hack = { path = "build/workspace-hack" }
rure = { path = "third_party/rust/rure" }
`,
	"toolkit/library/rust/shared/Cargo.toml": `[package]
name = "gkrust-shared"
version = "0.1.0"

[dependencies]
nserror = { path = "../../../../xpcom/rust/nserror" }
mozglue-static = { path = "../../../../mozglue/static/rust" }
serde = { version = "1.0", default-features = false }
`,
	"build/workspace-hack/Cargo.toml": `[package]
name = "mozilla-central-workspace-hack"
version = "0.1.0"

[target."cfg(windows)".dependencies]
winapi = { version = "0.3", features = ["winuser"] }
`,
	"Cargo.lock": "# upstream lockfile\n",
	"comm/rust/Cargo.toml": `[workspace]
members = ["gkrust"]

[features]
default = []
mailnews = ["gkrust/mailnews"]
`,
	"comm/rust/gkrust/Cargo.toml": `[package]
name = "gkrust"
version = "0.1.0"

[dependencies]
mail = { path = "../mail", features = ["mailnews"] }
nserror = { path = "../../../xpcom/rust/nserror" }
`,
}

func writeSourceTree(t *testing.T) domain.Layout {
	t.Helper()

	root := t.TempDir()
	for rel, content := range sourceTree {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return domain.NewLayout(root, "comm")
}

// readOutputs snapshots every file a sync writes.
func readOutputs(t *testing.T, layout domain.Layout) map[string]string {
	t.Helper()

	out := make(map[string]string)
	for name, path := range map[string]string{
		"member":    layout.MemberManifest(),
		"workspace": layout.WorkspaceManifest(),
		"checksums": layout.ChecksumFile(),
		"lockfile":  layout.WorkspaceLockfile(),
	} {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		out[name] = string(data)
	}
	return out
}

// Resyncing an already-synced tree rewrites every output byte-identically:
// the regenerated manifests feed the next run's merge without perturbing it.
func TestResyncKeepsOutputsStable(t *testing.T) {
	layout := writeSourceTree(t)
	a := app.New(manifest.NewLoader(), manifest.NewEmitter(), &fakeToolchain{},
		checksum.NewGuard(), &fakePolicies{}, &recordLogger{})

	require.NoError(t, a.Sync(context.Background(), layout))
	first := readOutputs(t, layout)

	require.NoError(t, a.Sync(context.Background(), layout))
	second := readOutputs(t, layout)

	assert.Equal(t, first, second)

	// Sanity on the first run's shape, so equality is not vacuous.
	assert.Contains(t, first["member"], "mozilla-central-workspace-hack = {")
	assert.Contains(t, first["member"], `mail = { path = "../mail", features = ["mailnews"] }`)
	assert.Contains(t, first["workspace"], `members = [`)
	assert.Contains(t, first["checksums"], domain.KeyLockfile)
}
