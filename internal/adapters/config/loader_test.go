package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cargosync/internal/adapters/config"
	"go.trai.ch/cargosync/internal/core/domain"
	"go.trai.ch/cargosync/internal/engine/policy"
)

type noopLogger struct{}

func (noopLogger) Info(string) {}
func (noopLogger) Warn(string) {}
func (noopLogger) Error(error) {}

type recordLogger struct{ infos []string }

func (l *recordLogger) Info(msg string) { l.infos = append(l.infos, msg) }
func (l *recordLogger) Warn(string)     {}
func (l *recordLogger) Error(error)     {}

func TestLoadWithoutOverlayFile(t *testing.T) {
	loader := config.NewLoader(noopLogger{})

	pol, err := loader.Load(filepath.Join(t.TempDir(), "policy.yaml"))
	require.NoError(t, err)

	// No overlay file means the built-in policy as-is.
	assert.Equal(t, policy.Base(), pol)
}

func TestLoadMergesOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: "1"
deny:
  openssl: "overlay wording wins"
  ring: "no unvetted assembly"
requireOverride:
  - autocfg
  - syn
`), 0o644))

	log := &recordLogger{}
	pol, err := config.NewLoader(log).Load(path)
	require.NoError(t, err)

	// The applied overlay is announced.
	require.NotEmpty(t, log.infos)
	assert.Contains(t, log.infos[0], path)

	assert.Equal(t, "overlay wording wins", pol.Deny["openssl"])
	assert.Equal(t, "no unvetted assembly", pol.Deny["ring"])
	// Base entries not mentioned by the overlay survive.
	assert.NotEmpty(t, pol.Deny["rustc-serialize"])
	assert.Contains(t, pol.RequireOverride, "autocfg")
	assert.Contains(t, pol.RequireOverride, "syn")
}

func TestLoadMalformedOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("deny: [not, a, map"), 0o644))

	_, err := config.NewLoader(noopLogger{}).Load(path)
	require.ErrorContains(t, err, domain.ErrPolicyConfigParseFailed.Error())
}
