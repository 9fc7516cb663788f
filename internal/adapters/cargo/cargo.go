// Package cargo locates and drives the external cargo binary.
package cargo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	goversion "github.com/hashicorp/go-version"
	"go.trai.ch/cargosync/internal/core/domain"
	"go.trai.ch/cargosync/internal/core/ports"
	"go.trai.ch/zerr"
)

// MinimumVersion is the oldest cargo release the vendor pipeline supports.
// `cargo vendor` output and lockfile conventions are stable from here on.
const MinimumVersion = "1.70.0"

// Cargo implements ports.Toolchain. The binary is located and version-checked
// on first use, so commands that never shell out work without cargo installed.
type Cargo struct {
	logger ports.Logger

	once       sync.Once
	path       string
	resolveErr error
}

// New creates a Cargo toolchain with the given logger.
func New(logger ports.Logger) *Cargo {
	return &Cargo{logger: logger}
}

// Check locates the cargo binary and verifies its version without running a
// subcommand.
func (c *Cargo) Check() error {
	_, err := c.resolve()
	return err
}

// Path returns the resolved location of the cargo binary, or an empty string
// when no usable binary is available.
func (c *Cargo) Path() string {
	path, err := c.resolve()
	if err != nil {
		return ""
	}
	return path
}

// Update runs `cargo update -p <pkg>` in workingDir to regenerate the lock
// entries of a single package. Output passes through to the caller's streams.
func (c *Cargo) Update(ctx context.Context, workingDir, pkg string) error {
	path, err := c.resolve()
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, path, "update", "-p", pkg)
	cmd.Dir = workingDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return invocationError(err, "update")
	}
	return nil
}

// Vendor runs `cargo vendor -s <manifest> <outputDir>` from workingDir and
// returns the source-redirect config lines cargo prints on stdout.
func (c *Cargo) Vendor(ctx context.Context, workingDir, manifestPath, outputDir string) ([]string, error) {
	path, err := c.resolve()
	if err != nil {
		return nil, err
	}

	var stdout bytes.Buffer

	cmd := exec.CommandContext(ctx, path, "vendor", "-s", manifestPath, outputDir)
	cmd.Dir = workingDir
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return nil, invocationError(err, "vendor")
	}

	out := strings.TrimRight(stdout.String(), "\n")
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// resolve locates the binary and verifies its version, exactly once.
func (c *Cargo) resolve() (string, error) {
	c.once.Do(func() {
		path, err := findBinary()
		if err != nil {
			c.resolveErr = err
			return
		}

		ok, version, err := checkVersion(path)
		if err != nil {
			c.resolveErr = err
			return
		}
		if !ok {
			c.resolveErr = zerr.With(zerr.With(domain.ErrToolchainUnavailable,
				"version", version), "minimum", MinimumVersion)
			return
		}

		c.logger.Info(fmt.Sprintf("using cargo %s at %s", version, path))
		c.path = path
	})
	return c.path, c.resolveErr
}

// findBinary finds the cargo binary: the CARGO environment override first,
// then PATH, then the default rustup install location.
func findBinary() (string, error) {
	if env := os.Getenv("CARGO"); env != "" {
		return env, nil
	}

	if path, err := exec.LookPath("cargo"); err == nil {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err == nil {
		candidate := filepath.Join(home, ".cargo", "bin", "cargo")
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, nil
		}
	}

	return "", domain.ErrToolchainUnavailable
}

// checkVersion runs `cargo --version` and compares against MinimumVersion.
func checkVersion(path string) (bool, string, error) {
	out, err := exec.Command(path, "--version").Output()
	if err != nil {
		return false, "", zerr.Wrap(err, domain.ErrToolchainUnavailable.Error())
	}

	// Output shape: "cargo 1.76.0 (c84b36747 2024-01-18)".
	fields := strings.Fields(string(out))
	if len(fields) < 2 {
		return false, "", zerr.With(domain.ErrToolchainUnavailable, "output", strings.TrimSpace(string(out)))
	}

	have, err := goversion.NewVersion(fields[1])
	if err != nil {
		return false, fields[1], zerr.Wrap(err, domain.ErrToolchainUnavailable.Error())
	}
	want := goversion.Must(goversion.NewVersion(MinimumVersion))

	return have.GreaterThanOrEqual(want), fields[1], nil
}

func invocationError(err error, subcommand string) error {
	wrapped := zerr.Wrap(err, domain.ErrToolchainInvocationFailed.Error())
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		wrapped = zerr.With(wrapped, "exit_code", exitErr.ExitCode())
	}
	return zerr.With(wrapped, "subcommand", subcommand)
}
