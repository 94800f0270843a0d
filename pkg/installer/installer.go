// pkg/installer/installer.go - runs Visual C++ redistributable installers.

package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/windowsadmins/wampdoctor/pkg/i18n"
	"github.com/windowsadmins/wampdoctor/pkg/logging"
	"github.com/windowsadmins/wampdoctor/pkg/redist"
	"github.com/windowsadmins/wampdoctor/pkg/utils"
)

// Exit codes returned by the Visual C++ bootstrappers.
const (
	exitSuccess        = 0
	exitRebootInitiate = 1641
	exitNewerInstalled = 1638
	exitRebootRequired = 3010
)

var (
	// ErrInstallerMissing is set when the installer file is not in the installer directory.
	ErrInstallerMissing = errors.New("installer not found")
	// ErrUnknownPackage is set when the id is not in the catalog.
	ErrUnknownPackage = errors.New("unknown redistributable")
)

// Outcome classifies a finished installation.
type Outcome int

const (
	Failed Outcome = iota
	Succeeded
	RebootRequired
	NewerPresent
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case RebootRequired:
		return "reboot_required"
	case NewerPresent:
		return "newer_present"
	default:
		return "failed"
	}
}

// Result is the outcome of one installation. Message is localized.
type Result struct {
	Package  redist.ID
	OK       bool
	Outcome  Outcome
	ExitCode int
	Message  string
	Err      error
}

// Runner launches an installer and waits for it. A non-zero exit status is
// reported through exitCode with a nil error; err is for launch failures.
type Runner interface {
	Run(ctx context.Context, path string, args []string) (exitCode int, err error)
}

// Options configures an Installer.
type Options struct {
	Catalog    []redist.Package
	Dir        string
	Timeout    time.Duration
	Translator *i18n.Translator
	// Runner defaults to launching the executable with its window hidden.
	Runner Runner
}

// Installer installs catalog packages from a local directory.
type Installer struct {
	catalog []redist.Package
	dir     string
	timeout time.Duration
	tr      *i18n.Translator
	runner  Runner
}

// New returns an Installer.
func New(opts Options) *Installer {
	in := &Installer{
		catalog: opts.Catalog,
		dir:     opts.Dir,
		timeout: opts.Timeout,
		tr:      opts.Translator,
		runner:  opts.Runner,
	}
	if in.runner == nil {
		in.runner = execRunner{}
	}
	return in
}

// Path returns where the installer for pkg is expected.
func (in *Installer) Path(pkg redist.Package) string {
	if filepath.IsAbs(pkg.Installer) {
		return pkg.Installer
	}
	return filepath.Join(in.dir, pkg.Installer)
}

// Install runs the installer for id and blocks until it exits or the
// timeout elapses. Failures are carried in the Result.
func (in *Installer) Install(ctx context.Context, id redist.ID) Result {
	res := Result{Package: id, ExitCode: -1}

	pkg, ok := redist.Lookup(in.catalog, id)
	if !ok {
		return in.fail(res, fmt.Errorf("%w: %s", ErrUnknownPackage, id))
	}

	path := in.Path(pkg)
	if _, err := os.Stat(path); err != nil {
		res.Err = fmt.Errorf("%w: %s", ErrInstallerMissing, path)
		res.Message = in.tr.Format(i18n.VCInstallerMissing, "package", id, "path", path)
		logging.Warn("Installer missing", "package", id, "path", path)
		return res
	}

	if pkg.SHA256 != "" {
		if err := utils.VerifySHA256(path, pkg.SHA256); err != nil {
			res.Err = err
			res.Message = in.tr.Format(i18n.VCInstallChecksum, "package", id)
			logging.Error("Installer checksum failed", "package", id, "error", err)
			return res
		}
	}

	runCtx := ctx
	if in.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, in.timeout)
		defer cancel()
	}

	args := pkg.InstallArgs()
	logging.Info("Running installer", "package", id, "path", path, "args", args)
	start := time.Now()
	code, err := in.runner.Run(runCtx, path, args)
	if err != nil {
		if runCtx.Err() != nil {
			err = fmt.Errorf("%w: %v", runCtx.Err(), err)
		}
		return in.fail(res, err)
	}

	res.ExitCode = code
	switch code {
	case exitSuccess:
		res.OK, res.Outcome = true, Succeeded
		res.Message = in.tr.Format(i18n.VCInstallOK, "package", id)
	case exitRebootRequired, exitRebootInitiate:
		res.OK, res.Outcome = true, RebootRequired
		res.Message = in.tr.Format(i18n.VCInstallReboot, "package", id)
	case exitNewerInstalled:
		res.OK, res.Outcome = true, NewerPresent
		res.Message = in.tr.Format(i18n.VCInstallNewer, "package", id)
	default:
		res.Err = fmt.Errorf("installer exited with code %d", code)
		res.Message = in.tr.Format(i18n.VCInstallFailed, "package", id, "code", code)
	}
	logging.Info("Installer finished",
		"package", id,
		"exit_code", code,
		"outcome", res.Outcome.String(),
		"duration", time.Since(start).Round(time.Millisecond).String(),
	)
	return res
}

func (in *Installer) fail(res Result, err error) Result {
	res.Err = err
	res.Message = in.tr.Format(i18n.VCInstallUnknown, "package", res.Package, "error", err)
	logging.Error("Installer failed", "package", res.Package, "error", err)
	return res
}
