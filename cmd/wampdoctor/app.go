package main

import (
	"fmt"
	"os"
	"time"

	"github.com/windowsadmins/wampdoctor/pkg/i18n"
	"github.com/windowsadmins/wampdoctor/pkg/installer"
	"github.com/windowsadmins/wampdoctor/pkg/logging"
	"github.com/windowsadmins/wampdoctor/pkg/ports"
	"github.com/windowsadmins/wampdoctor/pkg/preflight"
	"github.com/windowsadmins/wampdoctor/pkg/redist"
	"github.com/windowsadmins/wampdoctor/pkg/report"
	"github.com/windowsadmins/wampdoctor/pkg/service"
	"github.com/windowsadmins/wampdoctor/pkg/workflow"
)

// newOrchestrator wires the host implementations from cfg.
func newOrchestrator(confirmer workflow.Confirmer) *workflow.Orchestrator {
	startTimeout := time.Duration(cfg.ServiceStartTimeoutSeconds) * time.Second
	catalog := cfg.Catalog()

	return workflow.New(workflow.Deps{
		Inventory: redist.NewChecker(catalog, redist.NewRegistrySource()),
		Ports:     ports.NewScanner(),
		Service:   service.NewController(service.NewManager(), startTimeout),
		Installer: installer.New(installer.Options{
			Catalog:    catalog,
			Dir:        cfg.InstallerDir,
			Timeout:    time.Duration(cfg.InstallerTimeoutMinutes) * time.Minute,
			Translator: tr,
		}),
		Platform:   preflight.Host{},
		Confirmer:  confirmer,
		Translator: tr,
	}, workflow.Settings{
		Ports:               cfg.Ports,
		ServiceName:         cfg.ServiceName,
		ServiceStartTimeout: startTimeout,
	})
}

// writeReport honours --report and returns the written path, or "".
func writeReport(run *workflow.Run) string {
	if flagReport == "" || run == nil {
		return ""
	}
	if err := report.Write(flagReport, report.FromRun(run)); err != nil {
		logging.Error("Writing report failed", "path", flagReport, "error", err)
		fmt.Fprintf(os.Stderr, "wampdoctor: %v\n", err)
		return ""
	}
	logging.Info("Report written", "path", flagReport)
	return flagReport
}

// printer writes transcript lines to stdout as they are produced.
type printer struct{}

func (printer) Reset()               {}
func (printer) Line(text string)     { fmt.Println(text) }
func (printer) Progress(int, int)    {}
func (printer) State(workflow.State) {}

// finish maps a finished run to the command result.
func finish(run *workflow.Run, err error) error {
	if err != nil {
		return err
	}
	if path := writeReport(run); path != "" {
		fmt.Println(tr.Format(i18n.ReportOut, "path", path))
	}
	if run.State() == workflow.Aborted {
		return errAborted
	}
	return nil
}
