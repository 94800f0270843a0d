//go:build !windows

package redist

import "context"

type unsupportedSource struct{}

// NewRegistrySource returns a Source that fails on every query.
func NewRegistrySource() Source {
	return unsupportedSource{}
}

func (unsupportedSource) UninstallEntries(context.Context) ([]UninstallEntry, error) {
	return nil, ErrUnsupported
}

func (unsupportedSource) Runtime(context.Context, string, Arch) (RuntimeInfo, error) {
	return RuntimeInfo{}, ErrUnsupported
}

func (unsupportedSource) Is64Bit() bool { return false }
