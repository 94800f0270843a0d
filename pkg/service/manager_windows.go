//go:build windows

package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/mgr"
)

type scmManager struct{}

// NewManager returns a Manager backed by the Windows service control manager.
func NewManager() Manager {
	return scmManager{}
}

func (scmManager) open(name string) (*mgr.Mgr, *mgr.Service, error) {
	m, err := mgr.Connect()
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to service manager: %w", err)
	}
	s, err := m.OpenService(name)
	if err != nil {
		m.Disconnect()
		if errors.Is(err, windows.ERROR_SERVICE_DOES_NOT_EXIST) {
			return nil, nil, ErrNotInstalled
		}
		return nil, nil, fmt.Errorf("could not access service: %w", err)
	}
	return m, s, nil
}

func (w scmManager) Query(_ context.Context, name string) (State, error) {
	m, s, err := w.open(name)
	if err != nil {
		return Unknown, err
	}
	defer m.Disconnect()
	defer s.Close()

	status, err := s.Query()
	if err != nil {
		return Unknown, fmt.Errorf("could not retrieve service status: %w", err)
	}
	return fromSvcState(status.State), nil
}

func (w scmManager) Start(_ context.Context, name string) error {
	m, s, err := w.open(name)
	if err != nil {
		return err
	}
	defer m.Disconnect()
	defer s.Close()

	err = s.Start()
	if errors.Is(err, windows.ERROR_SERVICE_ALREADY_RUNNING) {
		return nil
	}
	return err
}

func fromSvcState(s svc.State) State {
	switch s {
	case svc.Running:
		return Running
	case svc.Stopped:
		return Stopped
	case svc.StartPending:
		return StartPending
	case svc.StopPending:
		return StopPending
	case svc.Paused:
		return Paused
	case svc.ContinuePending:
		return State("CONTINUE_PENDING")
	case svc.PausePending:
		return State("PAUSE_PENDING")
	default:
		return State(fmt.Sprintf("STATE_%d", s))
	}
}
