package installer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/windowsadmins/wampdoctor/pkg/i18n"
	"github.com/windowsadmins/wampdoctor/pkg/installer"
	"github.com/windowsadmins/wampdoctor/pkg/redist"
)

type fakeRunner struct {
	code  int
	err   error
	path  string
	args  []string
	calls int
}

func (f *fakeRunner) Run(_ context.Context, path string, args []string) (int, error) {
	f.calls++
	f.path, f.args = path, args
	return f.code, f.err
}

func translator(t *testing.T) *i18n.Translator {
	t.Helper()
	c, err := i18n.Load()
	require.NoError(t, err)
	tr, err := i18n.NewTranslator(c, "en")
	require.NoError(t, err)
	return tr
}

func setup(t *testing.T, runner installer.Runner, pkgs ...redist.Package) (*installer.Installer, string) {
	t.Helper()
	dir := t.TempDir()
	for _, p := range pkgs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, p.Installer), []byte("hello"), 0644))
	}
	return installer.New(installer.Options{
		Catalog:    redist.DefaultCatalog(),
		Dir:        dir,
		Timeout:    time.Minute,
		Translator: translator(t),
		Runner:     runner,
	}), dir
}

func TestInstall_ExitCodes(t *testing.T) {
	t.Parallel()

	pkg, ok := redist.Lookup(redist.DefaultCatalog(), "VC++2015_x64")
	require.True(t, ok)

	var testCases = []struct {
		scenario string
		code     int
		ok       bool
		outcome  installer.Outcome
		message  string
	}{
		{scenario: "success", code: 0, ok: true, outcome: installer.Succeeded, message: "VC++2015_x64 installed successfully."},
		{scenario: "reboot required", code: 3010, ok: true, outcome: installer.RebootRequired, message: "VC++2015_x64 installed. A restart is required to finish."},
		{scenario: "newer present", code: 1638, ok: true, outcome: installer.NewerPresent, message: "VC++2015_x64: a newer version is already installed."},
		{scenario: "failure", code: 1603, ok: false, outcome: installer.Failed, message: "VC++2015_x64 installation failed (exit code 1603)."},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.scenario, func(t *testing.T) {
			t.Parallel()
			runner := &fakeRunner{code: tc.code}
			in, dir := setup(t, runner, pkg)

			res := in.Install(context.Background(), "VC++2015_x64")
			require.Equal(t, tc.ok, res.OK)
			require.Equal(t, tc.outcome, res.Outcome)
			require.Equal(t, tc.code, res.ExitCode)
			require.Equal(t, tc.message, res.Message)
			require.Equal(t, filepath.Join(dir, "vc_redist.x64.exe"), runner.path)
			require.Equal(t, []string{"/install", "/quiet", "/norestart"}, runner.args)
			if !tc.ok {
				require.Error(t, res.Err)
			}
		})
	}
}

func TestInstall_Failures(t *testing.T) {
	t.Parallel()

	t.Run("installer missing", func(t *testing.T) {
		t.Parallel()
		runner := &fakeRunner{}
		in, _ := setup(t, runner)
		res := in.Install(context.Background(), "VC++2013_x86")
		require.False(t, res.OK)
		require.ErrorIs(t, res.Err, installer.ErrInstallerMissing)
		require.Contains(t, res.Message, "VC++2013_x86: installer not found at")
		require.Zero(t, runner.calls)
	})

	t.Run("unknown package", func(t *testing.T) {
		t.Parallel()
		in, _ := setup(t, &fakeRunner{})
		res := in.Install(context.Background(), "VC++1999_x86")
		require.False(t, res.OK)
		require.ErrorIs(t, res.Err, installer.ErrUnknownPackage)
	})

	t.Run("launch failure", func(t *testing.T) {
		t.Parallel()
		pkg, _ := redist.Lookup(redist.DefaultCatalog(), "VC++2012_x64")
		in, _ := setup(t, &fakeRunner{err: errors.New("not a valid Win32 application")}, pkg)
		res := in.Install(context.Background(), pkg.ID)
		require.False(t, res.OK)
		require.Contains(t, res.Message, "VC++2012_x64 could not be installed")
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		t.Parallel()
		runner := &fakeRunner{}
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "vc.exe"), []byte("hello"), 0644))
		in := installer.New(installer.Options{
			Catalog:    []redist.Package{{ID: "VC++X", Year: 2015, Installer: "vc.exe", SHA256: "deadbeef"}},
			Dir:        dir,
			Translator: translator(t),
			Runner:     runner,
		})
		res := in.Install(context.Background(), "VC++X")
		require.False(t, res.OK)
		require.Zero(t, runner.calls)
		require.Equal(t, "VC++X: installer checksum does not match, not running it.", res.Message)
	})
}
