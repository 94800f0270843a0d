// pkg/preflight/preflight.go - host preconditions checked before a workflow runs.

package preflight

import (
	"context"
	"errors"
	"runtime"

	"github.com/windowsadmins/wampdoctor/pkg/logging"
)

// ErrUnsupported is returned by Facts outside Windows.
var ErrUnsupported = errors.New("host facts require Windows")

// Facts describes the operating system, for diagnostics only.
type Facts struct {
	Caption        string
	Version        string
	BuildNumber    string
	OSArchitecture string
	Hostname       string
}

// Host answers the precondition questions for the local machine.
type Host struct{}

// IsTargetOS reports whether the tool runs on Windows.
func (Host) IsTargetOS() bool {
	return runtime.GOOS == "windows"
}

// IsElevated reports whether the process holds administrator rights.
func (Host) IsElevated() bool {
	return isElevated()
}

// LogFacts writes the host facts to the diagnostic log. Failures are only logged.
func (Host) LogFacts(ctx context.Context) {
	f, err := collectFacts(ctx)
	if err != nil {
		logging.Debug("Host facts unavailable", "error", err)
		return
	}
	logging.Debug("Host facts",
		"os", f.Caption,
		"version", f.Version,
		"build", f.BuildNumber,
		"arch", f.OSArchitecture,
		"hostname", f.Hostname,
	)
}

// Facts returns the host facts.
func (Host) Facts(ctx context.Context) (Facts, error) {
	return collectFacts(ctx)
}
