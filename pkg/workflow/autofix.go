package workflow

import (
	"context"

	"github.com/windowsadmins/wampdoctor/pkg/i18n"
	"github.com/windowsadmins/wampdoctor/pkg/redist"
	"github.com/windowsadmins/wampdoctor/pkg/service"
)

// AutoFix installs missing redistributables after confirmation, starts the
// service when it is not running and reports port owners.
func (o *Orchestrator) AutoFix(ctx context.Context, sink Sink) (*Run, error) {
	ex, err := o.begin(KindAutoFix, sink)
	if err != nil {
		return nil, err
	}
	defer o.finish(ex)

	if !o.preconditions(ctx, ex, false) {
		return ex.run, nil
	}
	ex.text(i18n.FixStarted)
	ex.setState(RunningStep)

	report, known := o.inventory(ctx, ex)
	switch {
	case !known:
	case len(report.Missing) > 0:
		o.installMissing(ctx, ex, report.Missing)
	case len(report.Failed) == 0:
		ex.text(i18n.VCAllInstalled)
	}
	ex.setProgress(1)
	if ex.cancelled(ctx) {
		return ex.run, nil
	}

	ex.section(i18n.ApacheCheck)
	if st, ok := o.serviceStatus(ctx, ex); ok {
		switch st {
		case service.Running:
			ex.text(i18n.ApacheAlready)
		case service.NotInstalled:
			ex.text(i18n.ApacheStatus, "status", st)
		default:
			o.startService(ctx, ex)
		}
	}
	ex.setProgress(3)
	if ex.cancelled(ctx) {
		return ex.run, nil
	}

	o.portStep(ctx, ex)
	ex.setProgress(MaxProgress)
	ex.text(i18n.FixCompleted)
	ex.setState(Completed)
	return ex.run, nil
}

// installMissing asks once for all packages, then installs them in order.
func (o *Orchestrator) installMissing(ctx context.Context, ex *execution, missing []redist.ID) {
	ex.setState(AwaitingConfirmation)
	ok := o.deps.Confirmer.Confirm(ctx,
		ex.tr.Text(i18n.VCConfirmTitle),
		ex.tr.Format(i18n.VCConfirmText, "count", len(missing)),
	)
	ex.setState(RunningStep)
	if !ok {
		ex.text(i18n.VCInstallSkipped)
		return
	}

	for _, id := range missing {
		if ctx.Err() != nil {
			return
		}
		ex.text(i18n.VCInstalling, "package", id)
		res := o.deps.Installer.Install(ctx, id)
		ex.run.Installs = append(ex.run.Installs, res)
		ex.line(res.Message)
	}
}
