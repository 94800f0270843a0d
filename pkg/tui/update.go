package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/windowsadmins/wampdoctor/pkg/i18n"
	"github.com/windowsadmins/wampdoctor/pkg/logging"
	"github.com/windowsadmins/wampdoctor/pkg/workflow"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case resetMsg:
		m.lines = nil
		m.progress = 0
		m.refreshLog()
		return m, nil

	case lineMsg:
		m.lines = append(m.lines, string(msg))
		m.refreshLog()
		return m, nil

	case progressMsg:
		m.progress, m.maxProgress = msg.value, msg.max
		return m, nil

	case stateMsg:
		logging.Debug("Workflow state", "state", workflow.State(msg).String())
		return m, nil

	case confirmMsg:
		if m.quitting {
			msg.reply <- false
			return m, nil
		}
		m.pending = &msg
		m.dialogYes = true
		m.state = stateConfirm
		return m, nil

	case runDoneMsg:
		m.running = false
		if errors.Is(msg.err, workflow.ErrBusy) {
			m.setNotice(i18n.WorkflowBusy)
			return m, nil
		}
		if msg.run != nil && m.onRun != nil {
			if path := m.onRun(msg.run); path != "" {
				m.setNotice(i18n.ReportOut, "path", path)
			}
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		switch m.state {
		case stateConfirm:
			return m.updateConfirm(msg)
		case stateOptions:
			return m.updateOptions(msg)
		case stateLanguage:
			return m.updateLanguage(msg)
		default:
			return m.updateMain(msg)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m.quit()
	case "tab", "right":
		m.focus = (m.focus + 1) % buttonCount
	case "shift+tab", "left":
		m.focus = (m.focus + buttonCount - 1) % buttonCount
	case "enter", " ":
		return m.press(m.focus)
	case "s":
		return m.press(buttonScan)
	case "f":
		return m.press(buttonAutoFix)
	case "o":
		return m.press(buttonOptions)
	case "l":
		return m.press(buttonLanguage)
	case "d":
		m.dark = !m.dark
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) press(b button) (tea.Model, tea.Cmd) {
	m.focus = b
	switch b {
	case buttonScan:
		return m.trigger(workflow.KindScan)
	case buttonAutoFix:
		return m.trigger(workflow.KindAutoFix)
	case buttonOptions:
		m.state = stateOptions
		m.menuCursor = 0
	case buttonLanguage:
		m.state = stateLanguage
		m.menuCursor = 0
		for i, code := range m.tr.Catalog().Codes() {
			if code == m.tr.Locale() {
				m.menuCursor = i
			}
		}
	}
	return m, nil
}

func (m Model) updateOptions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "o", "q":
		m.state = stateMain
	case "up", "k":
		m.menuCursor = (m.menuCursor + optionCount - 1) % optionCount
	case "down", "j", "tab":
		m.menuCursor = (m.menuCursor + 1) % optionCount
	case "d":
		m.dark = !m.dark
	case "enter", " ":
		switch m.menuCursor {
		case optionDarkMode:
			m.dark = !m.dark
		case optionExit:
			return m.quit()
		}
	}
	return m, nil
}

func (m Model) updateLanguage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	codes := m.tr.Catalog().Codes()
	switch msg.String() {
	case "esc", "l", "q":
		m.state = stateMain
	case "up", "k":
		m.menuCursor = (m.menuCursor + len(codes) - 1) % len(codes)
	case "down", "j", "tab":
		m.menuCursor = (m.menuCursor + 1) % len(codes)
	case "enter", " ":
		code := codes[m.menuCursor]
		if err := m.tr.SetLocale(code); err != nil {
			logging.Error("Changing locale failed", "locale", code, "error", err)
		} else {
			logging.Info("Locale changed", "locale", code)
		}
		m.state = stateMain
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "left", "right", "tab", "shift+tab":
		m.dialogYes = !m.dialogYes
		return m, nil
	case "y":
		return m.answer(true), nil
	case "n", "esc":
		return m.answer(false), nil
	case "enter", " ":
		return m.answer(m.dialogYes), nil
	case "q":
		return m.quit()
	}
	return m, nil
}

func (m Model) answer(ok bool) Model {
	if m.pending != nil {
		m.pending.reply <- ok
		m.pending = nil
	}
	m.state = stateMain
	return m
}

func (m *Model) resize() {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	h := m.height - 11
	if h < 3 {
		h = 3
	}
	m.viewport.Width = w
	m.viewport.Height = h
	m.bar.Width = w - 8
	m.refreshLog()
}

func (m *Model) refreshLog() {
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}
