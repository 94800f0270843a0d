//go:build windows

package preflight

import (
	"context"
	"errors"

	"github.com/yusufpapurcu/wmi"
	"golang.org/x/sys/windows"
)

type win32OperatingSystem struct {
	Caption        string `wmi:"Caption"`
	Version        string `wmi:"Version"`
	BuildNumber    string `wmi:"BuildNumber"`
	OSArchitecture string `wmi:"OSArchitecture"`
	CSName         string `wmi:"CSName"`
}

func isElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}

func collectFacts(ctx context.Context) (Facts, error) {
	type result struct {
		rows []win32OperatingSystem
		err  error
	}
	// wmi.Query cannot be cancelled; the goroutine finishes on its own.
	ch := make(chan result, 1)
	go func() {
		var rows []win32OperatingSystem
		err := wmi.Query("SELECT Caption, Version, BuildNumber, OSArchitecture, CSName FROM Win32_OperatingSystem", &rows)
		ch <- result{rows: rows, err: err}
	}()

	select {
	case <-ctx.Done():
		return Facts{}, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return Facts{}, r.err
		}
		if len(r.rows) == 0 {
			return Facts{}, errors.New("no operating system information available")
		}
		os := r.rows[0]
		return Facts{
			Caption:        os.Caption,
			Version:        os.Version,
			BuildNumber:    os.BuildNumber,
			OSArchitecture: os.OSArchitecture,
			Hostname:       os.CSName,
		}, nil
	}
}
