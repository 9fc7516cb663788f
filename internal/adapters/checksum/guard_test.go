package checksum_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cargosync/internal/adapters/checksum"
	"go.trai.ch/cargosync/internal/core/domain"
)

// seedTree writes all four tracked files under a fresh source root.
func seedTree(t *testing.T) domain.Layout {
	t.Helper()
	root := t.TempDir()
	layout := domain.NewLayout(root, "comm")

	for _, key := range domain.TrackedKeys {
		path := layout.TrackedPath(key)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("content of "+key), 0o644))
	}
	return layout
}

func TestCurrentSkipsMissingFiles(t *testing.T) {
	layout := seedTree(t)
	require.NoError(t, os.Remove(layout.TrackedPath(domain.KeyHackManifest)))

	current, err := checksum.NewGuard().Current(layout)
	require.NoError(t, err)

	assert.Len(t, current, len(domain.TrackedKeys)-1)
	assert.NotContains(t, current, domain.KeyHackManifest)
	assert.Contains(t, current, domain.KeyLockfile)
}

func TestCheckDriftWithoutRecord(t *testing.T) {
	layout := seedTree(t)

	drifted, err := checksum.NewGuard().CheckDrift(layout)
	require.NoError(t, err)

	// An absent record means everything needs regenerating.
	assert.Equal(t, []string{
		"Cargo.toml",
		"toolkit/library/rust/shared/Cargo.toml",
		"build/workspace-hack/Cargo.toml",
		"Cargo.lock",
	}, drifted)
}

func TestSaveThenCheckDriftIsClean(t *testing.T) {
	layout := seedTree(t)
	g := checksum.NewGuard()

	require.NoError(t, g.Save(layout))

	drifted, err := g.CheckDrift(layout)
	require.NoError(t, err)
	assert.Empty(t, drifted)
}

func TestCheckDriftDetectsSingleByteEdit(t *testing.T) {
	layout := seedTree(t)
	g := checksum.NewGuard()
	require.NoError(t, g.Save(layout))

	path := layout.TrackedPath(domain.KeyWorkspaceManifest)
	require.NoError(t, os.WriteFile(path, []byte("content of "+domain.KeyWorkspaceManifest+"!"), 0o644))

	drifted, err := g.CheckDrift(layout)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cargo.toml"}, drifted)
}

func TestSaveIsIdempotent(t *testing.T) {
	layout := seedTree(t)
	g := checksum.NewGuard()

	require.NoError(t, g.Save(layout))
	first, err := os.ReadFile(layout.ChecksumFile())
	require.NoError(t, err)

	require.NoError(t, g.Save(layout))
	second, err := os.ReadFile(layout.ChecksumFile())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCheckDriftIgnoresFilesMissingNow(t *testing.T) {
	layout := seedTree(t)
	g := checksum.NewGuard()
	require.NoError(t, g.Save(layout))

	// A tracked file deleted after the record was saved is not reported;
	// only content changes of present files count as drift.
	require.NoError(t, os.Remove(layout.TrackedPath(domain.KeyHackManifest)))

	drifted, err := g.CheckDrift(layout)
	require.NoError(t, err)
	assert.Empty(t, drifted)
}
