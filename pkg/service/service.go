// pkg/service/service.go - status and start of the WAMP Apache service.

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/windowsadmins/wampdoctor/pkg/logging"
	"github.com/windowsadmins/wampdoctor/pkg/wait"
)

// State is a service state as shown to the user. Running and Stopped are the
// two states the workflows act on; anything else is informational.
type State string

const (
	Running      State = "RUNNING"
	Stopped      State = "STOPPED"
	StartPending State = "START_PENDING"
	StopPending  State = "STOP_PENDING"
	Paused       State = "PAUSED"
	NotInstalled State = "NOT_INSTALLED"
	Unknown      State = "UNKNOWN"
)

var (
	// ErrUnsupported is returned where there is no Windows service manager.
	ErrUnsupported = errors.New("service control requires Windows")
	// ErrNotInstalled is returned when the named service does not exist.
	ErrNotInstalled = errors.New("service is not installed")
	// ErrStartTimeout is returned when a started service did not reach RUNNING in time.
	ErrStartTimeout = errors.New("service did not reach RUNNING in time")
)

// Manager is the raw service control surface of the host.
type Manager interface {
	Query(ctx context.Context, name string) (State, error)
	Start(ctx context.Context, name string) error
}

// Controller queries and starts services.
type Controller struct {
	mgr          Manager
	startTimeout time.Duration
	poll         wait.Config
}

// NewController returns a Controller that waits up to startTimeout for a
// started service to report RUNNING.
func NewController(mgr Manager, startTimeout time.Duration) *Controller {
	return &Controller{
		mgr:          mgr,
		startTimeout: startTimeout,
		poll:         wait.DefaultConfig(startTimeout),
	}
}

// WithPoll overrides the polling schedule used while waiting for RUNNING.
func (c *Controller) WithPoll(cfg wait.Config) *Controller {
	c.poll = cfg
	return c
}

// Status returns the current state of name. A missing service is reported
// as NotInstalled with a nil error.
func (c *Controller) Status(ctx context.Context, name string) (State, error) {
	st, err := c.mgr.Query(ctx, name)
	if errors.Is(err, ErrNotInstalled) {
		return NotInstalled, nil
	}
	if err != nil {
		return Unknown, fmt.Errorf("querying service %s: %w", name, err)
	}
	return st, nil
}

// Start issues a start request and waits for RUNNING. A service that is
// already running is left alone.
func (c *Controller) Start(ctx context.Context, name string) error {
	if err := c.mgr.Start(ctx, name); err != nil {
		return fmt.Errorf("starting service %s: %w", name, err)
	}
	logging.Info("Start requested", "service", name, "timeout", c.startTimeout.String())

	err := wait.Until(ctx, c.poll, func(ctx context.Context) (bool, error) {
		st, err := c.mgr.Query(ctx, name)
		if err != nil {
			return false, fmt.Errorf("querying service %s: %w", name, err)
		}
		logging.Debug("Service state", "service", name, "state", string(st))
		return st == Running, nil
	})
	if errors.Is(err, wait.ErrTimeout) {
		return fmt.Errorf("%s: %w", name, ErrStartTimeout)
	}
	return err
}
