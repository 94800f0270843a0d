//go:build !windows

package service

import "context"

type unsupportedManager struct{}

// NewManager returns a Manager that fails on every call.
func NewManager() Manager {
	return unsupportedManager{}
}

func (unsupportedManager) Query(context.Context, string) (State, error) {
	return Unknown, ErrUnsupported
}

func (unsupportedManager) Start(context.Context, string) error {
	return ErrUnsupported
}
