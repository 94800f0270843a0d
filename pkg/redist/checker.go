// pkg/redist/checker.go - compares the catalog against what the host reports as installed.

package redist

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-version"
)

var (
	// ErrUnsupported is returned where the host has no Windows registry.
	ErrUnsupported = errors.New("redistributable inventory requires Windows")
	// ErrNotFound is returned by a Source when a runtime key is absent.
	ErrNotFound = errors.New("runtime key not found")
)

// UninstallEntry is one application from the Uninstall registry keys.
type UninstallEntry struct {
	Key     string
	Name    string
	Version string
}

// RuntimeInfo is the content of a VisualStudio VC runtime key.
type RuntimeInfo struct {
	Installed bool
	Version   string
}

// Source is the host inventory the Checker reads from.
type Source interface {
	// UninstallEntries lists installed applications. An error means the
	// inventory as a whole is unknown.
	UninstallEntries(ctx context.Context) ([]UninstallEntry, error)
	// Runtime reads a VC runtime key in the registry view of arch.
	Runtime(ctx context.Context, key string, arch Arch) (RuntimeInfo, error)
	// Is64Bit reports whether x64 packages apply to this host.
	Is64Bit() bool
}

// Failure records a package whose state could not be determined.
type Failure struct {
	ID  ID
	Err error
}

// Report is the outcome of one inventory check.
type Report struct {
	// Missing holds packages confirmed absent, in catalog order.
	Missing []ID
	// Failed holds packages whose probe failed; they are not in Missing.
	Failed []Failure
}

// Checker finds catalog packages that are not installed.
type Checker struct {
	catalog []Package
	source  Source
}

// NewChecker returns a Checker over catalog using source.
func NewChecker(catalog []Package, source Source) *Checker {
	return &Checker{catalog: catalog, source: source}
}

// Catalog returns the packages this Checker knows about.
func (c *Checker) Catalog() []Package {
	return c.catalog
}

// Missing returns the catalog packages absent from the host. A non-nil error
// means the whole inventory query failed and nothing is known.
func (c *Checker) Missing(ctx context.Context) (Report, error) {
	entries, err := c.source.UninstallEntries(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("reading installed applications: %w", err)
	}

	var report Report
	is64 := c.source.Is64Bit()
	for _, pkg := range c.catalog {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		if pkg.Arch == ArchX64 && !is64 {
			continue
		}
		present, err := c.isPresent(ctx, pkg, entries)
		if err != nil {
			report.Failed = append(report.Failed, Failure{ID: pkg.ID, Err: err})
			continue
		}
		if !present {
			report.Missing = append(report.Missing, pkg.ID)
		}
	}
	return report, nil
}

// isPresent checks the runtime key first, then the Uninstall display names.
func (c *Checker) isPresent(ctx context.Context, pkg Package, entries []UninstallEntry) (bool, error) {
	if pkg.RuntimeKey != "" {
		info, err := c.source.Runtime(ctx, pkg.RuntimeKey, pkg.Arch)
		switch {
		case errors.Is(err, ErrNotFound):
		case err != nil:
			return false, fmt.Errorf("reading %s: %w", pkg.RuntimeKey, err)
		case info.Installed && SatisfiesMinimum(info.Version, pkg.MinVersion):
			return true, nil
		}
	}

	for _, e := range entries {
		if pkg.Matches(e.Name) && SatisfiesMinimum(e.Version, pkg.MinVersion) {
			return true, nil
		}
	}
	return false, nil
}

// SatisfiesMinimum reports whether installed is at least minimum. An empty
// minimum always passes; an unparsable installed version passes as well,
// since vendors write free-form DisplayVersion strings.
func SatisfiesMinimum(installed, minimum string) bool {
	if minimum == "" {
		return true
	}
	vMin, err := version.NewVersion(minimum)
	if err != nil {
		return true
	}
	vInstalled, err := version.NewVersion(installed)
	if err != nil {
		return true
	}
	return !vInstalled.LessThan(vMin)
}
