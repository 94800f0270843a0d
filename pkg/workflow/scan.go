package workflow

import (
	"context"

	"github.com/windowsadmins/wampdoctor/pkg/i18n"
	"github.com/windowsadmins/wampdoctor/pkg/service"
)

// Scan diagnoses the host without changing it. It returns ErrBusy, and no
// Run, when another workflow is active.
func (o *Orchestrator) Scan(ctx context.Context, sink Sink) (*Run, error) {
	ex, err := o.begin(KindScan, sink)
	if err != nil {
		return nil, err
	}
	defer o.finish(ex)

	if !o.preconditions(ctx, ex, true) {
		return ex.run, nil
	}
	ex.text(i18n.ScanStarted)
	ex.setState(RunningStep)

	report, known := o.inventory(ctx, ex)
	if known {
		switch {
		case len(report.Missing) > 0:
			ex.text(i18n.VCMissingFound)
			for _, id := range report.Missing {
				ex.line(" - " + string(id))
			}
		case len(report.Failed) == 0:
			ex.text(i18n.VCAllInstalled)
		}
	}
	ex.setProgress(1)
	if ex.cancelled(ctx) {
		return ex.run, nil
	}

	o.portStep(ctx, ex)
	ex.setProgress(2)
	if ex.cancelled(ctx) {
		return ex.run, nil
	}

	ex.section(i18n.ApacheCheck)
	if st, ok := o.serviceStatus(ctx, ex); ok {
		switch st {
		case service.Running:
			ex.text(i18n.ApacheRunning)
		case service.Stopped:
			ex.text(i18n.ApacheStopped)
		default:
			ex.text(i18n.ApacheStatus, "status", st)
		}
	}
	ex.setProgress(3)

	ex.setProgress(MaxProgress)
	ex.text(i18n.ScanCompleted)
	ex.setState(Completed)
	return ex.run, nil
}
