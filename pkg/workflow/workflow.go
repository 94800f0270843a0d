// pkg/workflow/workflow.go - the Scan and Auto-Fix workflows.
//
// A workflow is a fixed sequence of steps. Every step writes localized lines
// to a Sink and advances a progress counter from 0 to MaxProgress. Host
// failures become lines; only a failed precondition stops a workflow early.

package workflow

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/windowsadmins/wampdoctor/pkg/i18n"
	"github.com/windowsadmins/wampdoctor/pkg/installer"
	"github.com/windowsadmins/wampdoctor/pkg/logging"
	"github.com/windowsadmins/wampdoctor/pkg/ports"
	"github.com/windowsadmins/wampdoctor/pkg/redist"
	"github.com/windowsadmins/wampdoctor/pkg/service"
)

// MaxProgress is the value progress reaches when a workflow completes.
const MaxProgress = 5

// ErrBusy is returned when a workflow is triggered while another is running.
var ErrBusy = errors.New("a workflow is already running")

// Kind names a workflow.
type Kind string

const (
	KindScan    Kind = "scan"
	KindAutoFix Kind = "auto_fix"
)

// State is the lifecycle state of a run.
type State int

const (
	NotStarted State = iota
	CheckingPreconditions
	RunningStep
	AwaitingConfirmation
	Completed
	Aborted
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case CheckingPreconditions:
		return "checking_preconditions"
	case RunningStep:
		return "running_step"
	case AwaitingConfirmation:
		return "awaiting_confirmation"
	case Completed:
		return "completed"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions follow.
func (s State) Terminal() bool {
	return s == Completed || s == Aborted
}

// Inventory reports missing redistributables.
type Inventory interface {
	Missing(ctx context.Context) (redist.Report, error)
}

// PortScanner reports the owners of TCP ports.
type PortScanner interface {
	Scan(ctx context.Context, ports []int) []ports.Result
}

// ServiceController queries and starts a service.
type ServiceController interface {
	Status(ctx context.Context, name string) (service.State, error)
	Start(ctx context.Context, name string) error
}

// Installer installs one redistributable.
type Installer interface {
	Install(ctx context.Context, id redist.ID) installer.Result
}

// Platform answers the preconditions.
type Platform interface {
	IsTargetOS() bool
	IsElevated() bool
}

// Confirmer asks the user a yes/no question and blocks until answered.
// It must return false when ctx is done.
type Confirmer interface {
	Confirm(ctx context.Context, title, text string) bool
}

// Sink receives the visible output of a run. Calls come from the
// goroutine running the workflow.
type Sink interface {
	Reset()
	Line(text string)
	Progress(value, max int)
	State(s State)
}

// Deps are the collaborators of an Orchestrator.
type Deps struct {
	Inventory  Inventory
	Ports      PortScanner
	Service    ServiceController
	Installer  Installer
	Platform   Platform
	Confirmer  Confirmer
	Translator *i18n.Translator
}

// Settings are the targets the workflows check.
type Settings struct {
	Ports               []int
	ServiceName         string
	ServiceStartTimeout time.Duration
}

// Orchestrator runs at most one workflow at a time.
type Orchestrator struct {
	deps     Deps
	settings Settings
	busy     atomic.Bool
}

// New returns an Orchestrator.
func New(deps Deps, settings Settings) *Orchestrator {
	return &Orchestrator{deps: deps, settings: settings}
}

// Busy reports whether a workflow is running.
func (o *Orchestrator) Busy() bool {
	return o.busy.Load()
}

// Run is the record of one workflow execution.
type Run struct {
	ID       string
	Kind     Kind
	Locale   string
	Started  time.Time
	Finished time.Time

	mu       sync.Mutex
	state    State
	progress int
	lines    []string

	Missing   []redist.ID
	Installs  []installer.Result
	Ports     []ports.Result
	Service   service.State
	Cancelled bool
}

// State returns the current state.
func (r *Run) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Progress returns the current progress value.
func (r *Run) Progress() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.progress
}

// Lines returns a copy of the transcript.
func (r *Run) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// execution ties a Run to its Sink for the duration of a workflow.
type execution struct {
	run  *Run
	sink Sink
	tr   *i18n.Translator
}

func (o *Orchestrator) begin(kind Kind, sink Sink) (*execution, error) {
	if !o.busy.CompareAndSwap(false, true) {
		logging.Warn("Workflow rejected, another one is running", "workflow", string(kind))
		return nil, ErrBusy
	}
	run := &Run{
		ID:      uuid.NewString(),
		Kind:    kind,
		Locale:  o.deps.Translator.Locale(),
		Started: time.Now(),
	}
	if sink == nil {
		sink = Discard{}
	}
	ex := &execution{run: run, sink: sink, tr: o.deps.Translator}

	_ = logging.StartSession(run.ID, string(kind), map[string]interface{}{"locale": run.Locale})
	logging.Info("Workflow started", "workflow", string(kind), "run_id", run.ID)

	sink.Reset()
	ex.setProgress(0)
	ex.setState(CheckingPreconditions)
	return ex, nil
}

func (o *Orchestrator) finish(ex *execution) {
	run := ex.run
	run.Finished = time.Now()

	status := "completed"
	if run.State() == Aborted {
		status = "aborted"
	}
	summary := logging.SessionSummary{
		Progress:     run.Progress(),
		ServiceState: string(run.Service),
	}
	for _, id := range run.Missing {
		summary.Missing = append(summary.Missing, string(id))
	}
	for _, res := range run.Installs {
		if res.OK {
			summary.Installed++
		} else {
			summary.InstallFailures++
		}
	}
	for _, p := range run.Ports {
		if p.Owner != nil {
			summary.BusyPorts = append(summary.BusyPorts, p.Port)
		}
	}
	_ = logging.EndSession(run.ID, status, summary)
	logging.Info("Workflow finished",
		"workflow", string(run.Kind),
		"run_id", run.ID,
		"state", run.State().String(),
		"duration", run.Finished.Sub(run.Started).Round(time.Millisecond).String(),
	)
	o.busy.Store(false)
}

func (ex *execution) line(text string) {
	ex.run.mu.Lock()
	ex.run.lines = append(ex.run.lines, text)
	ex.run.mu.Unlock()
	if text != "" {
		logging.Info(text, "run_id", ex.run.ID)
	}
	ex.sink.Line(text)
}

func (ex *execution) text(key i18n.Key, args ...interface{}) {
	ex.line(ex.tr.Format(key, args...))
}

// section starts a new block of output, separated by an empty line.
func (ex *execution) section(key i18n.Key) {
	ex.line("")
	ex.text(key)
}

// setProgress never moves progress backwards.
func (ex *execution) setProgress(v int) {
	ex.run.mu.Lock()
	if v < ex.run.progress {
		v = ex.run.progress
	}
	ex.run.progress = v
	ex.run.mu.Unlock()
	ex.sink.Progress(v, MaxProgress)
}

func (ex *execution) setState(s State) {
	ex.run.mu.Lock()
	ex.run.state = s
	ex.run.mu.Unlock()
	ex.sink.State(s)
}

func (ex *execution) abort(key i18n.Key) {
	ex.text(key)
	ex.setState(Aborted)
}

// cancelled aborts the run when ctx is done.
func (ex *execution) cancelled(ctx context.Context) bool {
	if ctx.Err() == nil {
		return false
	}
	ex.run.Cancelled = true
	ex.abort(i18n.Cancelled)
	return true
}

// Discard is a Sink that drops everything.
type Discard struct{}

func (Discard) Reset()            {}
func (Discard) Line(string)       {}
func (Discard) Progress(int, int) {}
func (Discard) State(State)       {}
