package manifest

import (
	"errors"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"go.trai.ch/cargosync/internal/core/domain"
	"go.trai.ch/zerr"
)

type rawLockfile struct {
	Package []rawLockPackage `toml:"package"`
}

type rawLockPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Source  string `toml:"source"`
}

// LoadLockfile parses the Cargo.lock at path, reduced to the package entries
// the policy scan inspects.
func (l *Loader) LoadLockfile(path string) (*domain.Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrManifestNotFound, "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockfileParseFailed.Error()), "path", path)
	}

	var raw rawLockfile
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockfileParseFailed.Error()), "path", path)
	}

	lock := &domain.Lockfile{Packages: make([]domain.LockPackage, 0, len(raw.Package))}
	for _, pkg := range raw.Package {
		lock.Packages = append(lock.Packages, domain.LockPackage{
			Name:    pkg.Name,
			Version: pkg.Version,
			Source:  pkg.Source,
		})
	}

	return lock, nil
}
