package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/windowsadmins/wampdoctor/pkg/workflow"
)

type resetMsg struct{}

type lineMsg string

type progressMsg struct {
	value, max int
}

type stateMsg workflow.State

// confirmMsg opens the dialog; the answer goes back on reply.
type confirmMsg struct {
	title, text string
	reply       chan bool
}

type runDoneMsg struct {
	kind workflow.Kind
	run  *workflow.Run
	err  error
}

// Sender delivers messages to a running program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// Bridge turns workflow callbacks into program messages. It is the Sink and
// the Confirmer of the orchestrator the UI drives. The sender is attached
// once the program exists.
type Bridge struct {
	mu     sync.RWMutex
	sender Sender
}

// NewBridge returns a Bridge with no sender; messages are dropped until
// Attach.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach sets the message destination.
func (b *Bridge) Attach(s Sender) {
	b.mu.Lock()
	b.sender = s
	b.mu.Unlock()
}

func (b *Bridge) send(msg tea.Msg) {
	b.mu.RLock()
	s := b.sender
	b.mu.RUnlock()
	if s != nil {
		s.Send(msg)
	}
}

func (b *Bridge) Reset()                  { b.send(resetMsg{}) }
func (b *Bridge) Line(text string)        { b.send(lineMsg(text)) }
func (b *Bridge) Progress(value, max int) { b.send(progressMsg{value: value, max: max}) }
func (b *Bridge) State(s workflow.State)  { b.send(stateMsg(s)) }

// Confirm blocks the workflow goroutine until the dialog is answered or ctx
// is done.
func (b *Bridge) Confirm(ctx context.Context, title, text string) bool {
	reply := make(chan bool, 1)
	b.send(confirmMsg{title: title, text: text, reply: reply})
	select {
	case ok := <-reply:
		return ok
	case <-ctx.Done():
		return false
	}
}
