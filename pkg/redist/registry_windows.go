//go:build windows

package redist

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

var uninstallPaths = []string{
	`SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`,
	`SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall`,
}

// RegistrySource reads the local machine registry.
type RegistrySource struct{}

// NewRegistrySource returns the host inventory Source.
func NewRegistrySource() Source {
	return RegistrySource{}
}

// UninstallEntries walks both Uninstall views. It fails only if neither
// view can be opened.
func (RegistrySource) UninstallEntries(ctx context.Context) ([]UninstallEntry, error) {
	var (
		entries []UninstallEntry
		opened  int
		lastErr error
	)
	for _, rPath := range uninstallPaths {
		key, err := registry.OpenKey(registry.LOCAL_MACHINE, rPath, registry.READ)
		if err != nil {
			lastErr = fmt.Errorf("opening %s: %w", rPath, err)
			continue
		}
		subKeys, err := key.ReadSubKeyNames(0)
		key.Close()
		if err != nil {
			lastErr = fmt.Errorf("listing %s: %w", rPath, err)
			continue
		}
		opened++

		for _, subKey := range subKeys {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if e, ok := readUninstallEntry(rPath + `\` + subKey); ok {
				entries = append(entries, e)
			}
		}
	}
	if opened == 0 {
		return nil, lastErr
	}
	return entries, nil
}

func readUninstallEntry(fullPath string) (UninstallEntry, bool) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, fullPath, registry.QUERY_VALUE)
	if err != nil {
		return UninstallEntry{}, false
	}
	defer k.Close()

	name, _, err := k.GetStringValue("DisplayName")
	if err != nil || name == "" {
		return UninstallEntry{}, false
	}
	ver, _, _ := k.GetStringValue("DisplayVersion")
	return UninstallEntry{Key: fullPath, Name: name, Version: ver}, true
}

// Runtime reads Installed and Version from a VC runtime key.
func (RegistrySource) Runtime(_ context.Context, keyPath string, arch Arch) (RuntimeInfo, error) {
	access := uint32(registry.QUERY_VALUE)
	if arch == ArchX86 {
		access |= registry.WOW64_32KEY
	} else {
		access |= registry.WOW64_64KEY
	}

	k, err := registry.OpenKey(registry.LOCAL_MACHINE, keyPath, access)
	if errors.Is(err, registry.ErrNotExist) {
		return RuntimeInfo{}, ErrNotFound
	}
	if err != nil {
		return RuntimeInfo{}, err
	}
	defer k.Close()

	var info RuntimeInfo
	if installed, _, err := k.GetIntegerValue("Installed"); err == nil {
		info.Installed = installed == 1
	}
	if ver, _, err := k.GetStringValue("Version"); err == nil {
		info.Version = ver
	}
	return info, nil
}

// Is64Bit reports a 64-bit OS, including a 32-bit build running under WOW64.
func (RegistrySource) Is64Bit() bool {
	if runtime.GOARCH == "amd64" || runtime.GOARCH == "arm64" {
		return true
	}
	var wow64 bool
	if err := windows.IsWow64Process(windows.CurrentProcess(), &wow64); err != nil {
		return false
	}
	return wow64
}
