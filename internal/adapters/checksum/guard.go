// Package checksum tracks content hashes of the generated-from source files
// so the verify command can detect edits made without re-running regeneration.
package checksum

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/cargosync/internal/core/domain"
	"go.trai.ch/zerr"
)

// Guard implements ports.ChecksumGuard. Hashes are a staleness gate, not a
// security artifact, so the content digest uses the same fast hash the rest
// of the tool family uses for file fingerprinting.
type Guard struct{}

// NewGuard creates a new Guard.
func NewGuard() *Guard {
	return &Guard{}
}

// Current hashes every tracked file that exists under the layout's root.
// Missing files are omitted from the result.
func (g *Guard) Current(layout domain.Layout) (map[string]string, error) {
	current := make(map[string]string)

	for _, key := range domain.TrackedKeys {
		path := layout.TrackedPath(key)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, domain.ErrChecksumReadFailed.Error()), "path", path)
		}
		current[key] = fmt.Sprintf("%016x", xxhash.Sum64(data))
	}

	return current, nil
}

// CheckDrift compares current hashes against the persisted record. When the
// record file is absent every tracked file is reported as drifted; the next
// successful regeneration creates it.
func (g *Guard) CheckDrift(layout domain.Layout) ([]string, error) {
	saved, err := g.load(layout)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		drifted := make([]string, 0, len(domain.TrackedKeys))
		for _, key := range domain.TrackedKeys {
			drifted = append(drifted, domain.TrackedFiles[key])
		}
		return drifted, nil
	}

	current, err := g.Current(layout)
	if err != nil {
		return nil, err
	}

	var drifted []string
	for _, key := range domain.TrackedKeys {
		hash, ok := current[key]
		if !ok {
			continue
		}
		if hash != saved[key] {
			drifted = append(drifted, domain.TrackedFiles[key])
		}
	}

	return drifted, nil
}

// Save overwrites the persisted record with the current hash snapshot.
func (g *Guard) Save(layout domain.Layout) error {
	current, err := g.Current(layout)
	if err != nil {
		return err
	}

	data, err := json.Marshal(current)
	if err != nil {
		return zerr.Wrap(err, domain.ErrChecksumWriteFailed.Error())
	}

	path := layout.ChecksumFile()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrChecksumWriteFailed.Error()), "path", path)
	}
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrChecksumWriteFailed.Error()), "path", path)
	}

	return nil
}

// load reads the persisted record. A missing record is not an error; it
// returns nil so callers can fail soft.
func (g *Guard) load(layout domain.Layout) (map[string]string, error) {
	path := layout.ChecksumFile()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrChecksumReadFailed.Error()), "path", path)
	}

	var saved map[string]string
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrChecksumReadFailed.Error()), "path", path)
	}

	return saved, nil
}
