package workflow

import (
	"context"
	"errors"

	"github.com/windowsadmins/wampdoctor/pkg/i18n"
	"github.com/windowsadmins/wampdoctor/pkg/logging"
	"github.com/windowsadmins/wampdoctor/pkg/redist"
	"github.com/windowsadmins/wampdoctor/pkg/service"
)

type hostFacts interface {
	LogFacts(ctx context.Context)
}

// preconditions returns false after aborting the run.
func (o *Orchestrator) preconditions(ctx context.Context, ex *execution, needTargetOS bool) bool {
	if needTargetOS && !o.deps.Platform.IsTargetOS() {
		ex.abort(i18n.OnlyWindows)
		return false
	}
	if !o.deps.Platform.IsElevated() {
		ex.abort(i18n.AdminWarning)
		return false
	}
	if f, ok := o.deps.Platform.(hostFacts); ok {
		f.LogFacts(ctx)
	}
	return true
}

// inventory runs the redistributable check. known is false when the
// inventory as a whole could not be read.
func (o *Orchestrator) inventory(ctx context.Context, ex *execution) (report redist.Report, known bool) {
	report, err := o.deps.Inventory.Missing(ctx)
	if err != nil {
		logging.Error("Redistributable inventory failed", "error", err)
		ex.text(i18n.VCCheckFailed, "error", err)
		return redist.Report{}, false
	}
	for _, f := range report.Failed {
		logging.Warn("Redistributable probe failed", "package", string(f.ID), "error", f.Err)
		ex.text(i18n.VCItemFailed, "package", f.ID, "error", f.Err)
	}
	ex.run.Missing = report.Missing
	return report, true
}

func (o *Orchestrator) portStep(ctx context.Context, ex *execution) {
	ex.section(i18n.PortCheck)
	results := o.deps.Ports.Scan(ctx, o.settings.Ports)
	ex.run.Ports = results
	for _, r := range results {
		switch {
		case r.Err != nil:
			logging.Warn("Port probe failed", "port", r.Port, "error", r.Err)
			ex.text(i18n.PortProbeFailed, "port", r.Port, "error", r.Err)
		case r.Owner != nil:
			ex.text(i18n.PortUsed, "port", r.Port, "name", r.Owner.Name, "pid", r.Owner.PID)
		default:
			ex.text(i18n.PortStatus, "port", r.Port)
		}
	}
}

// serviceStatus queries the service and records its state. ok is false
// when the query itself failed.
func (o *Orchestrator) serviceStatus(ctx context.Context, ex *execution) (service.State, bool) {
	st, err := o.deps.Service.Status(ctx, o.settings.ServiceName)
	if err != nil {
		logging.Error("Service query failed", "service", o.settings.ServiceName, "error", err)
		ex.text(i18n.ApacheQueryFailed, "error", err)
		return service.Unknown, false
	}
	ex.run.Service = st
	return st, true
}

func (o *Orchestrator) startService(ctx context.Context, ex *execution) {
	ex.text(i18n.ApacheStarting)
	err := o.deps.Service.Start(ctx, o.settings.ServiceName)
	switch {
	case err == nil:
		ex.run.Service = service.Running
		ex.text(i18n.ApacheStarted)
	case errors.Is(err, service.ErrStartTimeout):
		logging.Warn("Service start timed out", "service", o.settings.ServiceName)
		ex.text(i18n.ApacheStartTimeout, "seconds", int(o.settings.ServiceStartTimeout.Seconds()))
	default:
		logging.Error("Service start failed", "service", o.settings.ServiceName, "error", err)
		ex.text(i18n.ApacheStartFailed, "error", err)
	}
}
