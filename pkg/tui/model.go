// pkg/tui/model.go - the interactive terminal front end.
//
// The model never blocks. Workflows run in a tea.Cmd goroutine and report
// back through a Bridge, which turns every Sink call and the confirmation
// gate into a program message.

package tui

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/windowsadmins/wampdoctor/pkg/i18n"
	"github.com/windowsadmins/wampdoctor/pkg/logging"
	"github.com/windowsadmins/wampdoctor/pkg/workflow"
)

// Runner starts workflows. *workflow.Orchestrator implements it.
type Runner interface {
	Scan(ctx context.Context, sink workflow.Sink) (*workflow.Run, error)
	AutoFix(ctx context.Context, sink workflow.Sink) (*workflow.Run, error)
	Busy() bool
}

// Options configure the UI.
type Options struct {
	Runner     Runner
	Bridge     *Bridge
	Translator *i18n.Translator
	DarkMode   bool
	// OnRun is called with every finished run and returns the path of a
	// written report, or "".
	OnRun func(run *workflow.Run) string
}

type uiState int

const (
	stateMain uiState = iota
	stateOptions
	stateLanguage
	stateConfirm
)

type button int

const (
	buttonScan button = iota
	buttonAutoFix
	buttonOptions
	buttonLanguage
	buttonCount
)

// options menu entries
const (
	optionDarkMode = iota
	optionExit
	optionCount
)

// Model is the bubbletea model of the main window.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	runs   *sync.WaitGroup

	runner Runner
	bridge *Bridge
	tr     *i18n.Translator
	onRun  func(*workflow.Run) string

	state      uiState
	focus      button
	menuCursor int
	dialogYes  bool
	pending    *confirmMsg

	running     bool
	lines       []string
	progress    int
	maxProgress int
	noticeKey   i18n.Key
	noticeArgs  []interface{}

	dark     bool
	viewport viewport.Model
	bar      progress.Model
	width    int
	height   int
	quitting bool
}

// New returns the initial model. Workflows it starts use ctx, which is
// cancelled when the user quits.
func New(ctx context.Context, opts Options) Model {
	ctx, cancel := context.WithCancel(ctx)
	vp := viewport.New(76, 12)
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 60
	return Model{
		ctx:         ctx,
		cancel:      cancel,
		runs:        &sync.WaitGroup{},
		runner:      opts.Runner,
		bridge:      opts.Bridge,
		tr:          opts.Translator,
		onRun:       opts.OnRun,
		dark:        opts.DarkMode,
		maxProgress: workflow.MaxProgress,
		viewport:    vp,
		bar:         bar,
		width:       80,
		height:      24,
	}
}

// Start runs the UI until the user quits, then waits for a running
// workflow to observe the cancellation.
func Start(ctx context.Context, opts Options) error {
	m := New(ctx, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	opts.Bridge.Attach(p)
	defer opts.Bridge.Attach(nil)

	logging.Info("Terminal UI started", "locale", opts.Translator.Locale())
	_, err := p.Run()
	m.cancel()
	m.runs.Wait()
	if err != nil {
		return fmt.Errorf("error running tui: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle(m.tr.Text(i18n.Title))
}

// trigger starts a workflow unless one is running.
func (m Model) trigger(kind workflow.Kind) (Model, tea.Cmd) {
	if m.running || m.runner.Busy() {
		m.setNotice(i18n.WorkflowBusy)
		return m, nil
	}
	m.running = true
	m.noticeKey = ""

	ctx, runner, sink, runs := m.ctx, m.runner, m.bridge, m.runs
	runs.Add(1)
	return m, func() tea.Msg {
		defer runs.Done()
		var (
			run *workflow.Run
			err error
		)
		if kind == workflow.KindAutoFix {
			run, err = runner.AutoFix(ctx, sink)
		} else {
			run, err = runner.Scan(ctx, sink)
		}
		return runDoneMsg{kind: kind, run: run, err: err}
	}
}

func (m *Model) setNotice(key i18n.Key, args ...interface{}) {
	m.noticeKey = key
	m.noticeArgs = args
}

// quit answers an open dialog with no and cancels a running workflow.
func (m Model) quit() (Model, tea.Cmd) {
	if m.pending != nil {
		m.pending.reply <- false
		m.pending = nil
	}
	m.cancel()
	m.quitting = true
	return m, tea.Quit
}
