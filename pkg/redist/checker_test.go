package redist_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/windowsadmins/wampdoctor/pkg/redist"
)

type fakeSource struct {
	entries    []redist.UninstallEntry
	entriesErr error
	runtimes   map[string]redist.RuntimeInfo
	runtimeErr map[string]error
	is64       bool
}

func (f *fakeSource) UninstallEntries(context.Context) ([]redist.UninstallEntry, error) {
	return f.entries, f.entriesErr
}

func (f *fakeSource) Runtime(_ context.Context, key string, _ redist.Arch) (redist.RuntimeInfo, error) {
	if err, ok := f.runtimeErr[key]; ok {
		return redist.RuntimeInfo{}, err
	}
	if info, ok := f.runtimes[key]; ok {
		return info, nil
	}
	return redist.RuntimeInfo{}, redist.ErrNotFound
}

func (f *fakeSource) Is64Bit() bool { return f.is64 }

func TestChecker_Missing(t *testing.T) {
	t.Parallel()

	vc2015x64 := redist.Package{
		ID: "VC++2015_x64", Year: 2015, Arch: redist.ArchX64,
		Match:      []string{"Visual C++ 2015", "Redistributable", "x64"},
		RuntimeKey: `SOFTWARE\Microsoft\VisualStudio\14.0\VC\Runtimes\x64`,
		MinVersion: "14.0.24215",
	}
	vc2013x86 := redist.Package{
		ID: "VC++2013_x86", Year: 2013, Arch: redist.ArchX86,
		Match: []string{"Visual C++ 2013", "Redistributable", "x86"},
	}
	catalog := []redist.Package{vc2013x86, vc2015x64}

	var testCases = []struct {
		scenario string
		source   *fakeSource
		missing  []redist.ID
		failed   []redist.ID
	}{
		{
			scenario: "nothing installed",
			source:   &fakeSource{is64: true},
			missing:  []redist.ID{"VC++2013_x86", "VC++2015_x64"},
		},
		{
			scenario: "runtime key satisfies 2015",
			source: &fakeSource{
				is64: true,
				runtimes: map[string]redist.RuntimeInfo{
					vc2015x64.RuntimeKey: {Installed: true, Version: "v14.38.33130.00"},
				},
			},
			missing: []redist.ID{"VC++2013_x86"},
		},
		{
			scenario: "runtime key too old and no uninstall entry",
			source: &fakeSource{
				is64: true,
				runtimes: map[string]redist.RuntimeInfo{
					vc2015x64.RuntimeKey: {Installed: true, Version: "v14.0.23026.00"},
				},
			},
			missing: []redist.ID{"VC++2013_x86", "VC++2015_x64"},
		},
		{
			scenario: "uninstall display names match",
			source: &fakeSource{
				is64: true,
				entries: []redist.UninstallEntry{
					{Name: "Microsoft Visual C++ 2013 Redistributable (x86) - 12.0.40664", Version: "12.0.40664.0"},
					{Name: "Microsoft Visual C++ 2015-2022 Redistributable (x64) - 14.38.33130", Version: "14.38.33130.0"},
				},
			},
		},
		{
			scenario: "x64 package skipped on 32-bit host",
			source:   &fakeSource{is64: false},
			missing:  []redist.ID{"VC++2013_x86"},
		},
		{
			scenario: "one runtime probe fails",
			source: &fakeSource{
				is64:       true,
				runtimeErr: map[string]error{vc2015x64.RuntimeKey: errors.New("access denied")},
			},
			missing: []redist.ID{"VC++2013_x86"},
			failed:  []redist.ID{"VC++2015_x64"},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.scenario, func(t *testing.T) {
			t.Parallel()
			report, err := redist.NewChecker(catalog, tc.source).Missing(context.Background())
			require.NoError(t, err)
			require.Equal(t, tc.missing, report.Missing)

			var failed []redist.ID
			for _, f := range report.Failed {
				require.Error(t, f.Err)
				failed = append(failed, f.ID)
			}
			require.Equal(t, tc.failed, failed)
		})
	}
}

func TestChecker_InventoryUnknown(t *testing.T) {
	t.Parallel()

	src := &fakeSource{entriesErr: redist.ErrUnsupported}
	_, err := redist.NewChecker(redist.DefaultCatalog(), src).Missing(context.Background())
	require.ErrorIs(t, err, redist.ErrUnsupported)
}

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	catalog := redist.DefaultCatalog()
	require.Len(t, catalog, 10)

	seen := map[redist.ID]bool{}
	for _, p := range catalog {
		require.False(t, seen[p.ID], "duplicate %s", p.ID)
		seen[p.ID] = true
		require.NotEmpty(t, p.Installer)
		require.NotEmpty(t, p.InstallArgs())
	}

	p, ok := redist.Lookup(catalog, "VC++2015_x64")
	require.True(t, ok)
	require.Equal(t, []string{"/install", "/quiet", "/norestart"}, p.InstallArgs())
	require.Equal(t, "vc_redist.x64.exe", p.Installer)

	_, ok = redist.Lookup(catalog, "VC++1999_x86")
	require.False(t, ok)
}

func TestSatisfiesMinimum(t *testing.T) {
	t.Parallel()

	require.True(t, redist.SatisfiesMinimum("1.0", ""))
	require.True(t, redist.SatisfiesMinimum("14.38.33130", "14.0.24215"))
	require.False(t, redist.SatisfiesMinimum("14.0.23026", "14.0.24215"))
	require.True(t, redist.SatisfiesMinimum("not a version", "14.0"))
}
