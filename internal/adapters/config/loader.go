// Package config provides the crate policy loader for cargosync.
package config

import (
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/cargosync/internal/core/domain"
	"go.trai.ch/cargosync/internal/core/ports"
	"go.trai.ch/cargosync/internal/engine/policy"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.PolicyLoader using a YAML overlay file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load returns the effective crate policy for the workspace. The built-in
// policy applies as-is when no overlay file exists at path; otherwise the
// overlay's entries are merged on top of it.
func (l *Loader) Load(path string) (domain.Policy, error) {
	base := policy.Base()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return base, nil
		}
		return domain.Policy{}, zerr.With(zerr.Wrap(err, domain.ErrPolicyConfigParseFailed.Error()), "path", path)
	}

	var file PolicyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Policy{}, zerr.With(zerr.Wrap(err, domain.ErrPolicyConfigParseFailed.Error()), "path", path)
	}

	l.Logger.Info("applying crate policy overlay from " + path)
	overlay := domain.Policy{
		Deny:            file.Deny,
		RequireOverride: file.Require,
	}

	return policy.Merge(base, overlay), nil
}
