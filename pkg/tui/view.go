package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/windowsadmins/wampdoctor/pkg/i18n"
)

type theme struct {
	title       lipgloss.Style
	button      lipgloss.Style
	buttonFocus lipgloss.Style
	logBox      lipgloss.Style
	menu        lipgloss.Style
	menuItem    lipgloss.Style
	menuActive  lipgloss.Style
	dialog      lipgloss.Style
	status      lipgloss.Style
	notice      lipgloss.Style
	help        lipgloss.Style
}

func newTheme(dark bool) theme {
	fg, bg, dim, accent := lipgloss.Color("#1c1c1c"), lipgloss.Color("#eeeeee"), lipgloss.Color("#767676"), lipgloss.Color("#7D56F4")
	if dark {
		fg, bg, dim = lipgloss.Color("#FAFAFA"), lipgloss.Color("#262626"), lipgloss.Color("#8a8a8a")
	}
	return theme{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(accent).
			Padding(0, 1),
		button: lipgloss.NewStyle().
			Foreground(fg).
			Background(bg).
			Padding(0, 2).
			MarginRight(1),
		buttonFocus: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#22aa22")).
			Bold(true).
			Padding(0, 2).
			MarginRight(1),
		logBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(dim),
		menu: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		menuItem:   lipgloss.NewStyle().Foreground(fg),
		menuActive: lipgloss.NewStyle().Foreground(lipgloss.Color("#ffdf87")).Bold(true),
		dialog: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#ffaf5f")).
			Padding(1, 2),
		status: lipgloss.NewStyle().Foreground(fg),
		notice: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true),
		help:   lipgloss.NewStyle().Foreground(dim),
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	th := newTheme(m.dark)

	var b strings.Builder
	b.WriteString(th.title.Render(m.tr.Text(i18n.Title)))
	b.WriteString("\n\n")
	b.WriteString(m.buttonsView(th))
	b.WriteString("\n")

	switch m.state {
	case stateOptions:
		b.WriteString(m.optionsView(th))
		b.WriteString("\n")
	case stateLanguage:
		b.WriteString(m.languageView(th))
		b.WriteString("\n")
	case stateConfirm:
		b.WriteString(m.confirmView(th))
		b.WriteString("\n")
	}

	b.WriteString(th.logBox.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(m.fraction()))
	fmt.Fprintf(&b, " %d/%d\n", m.progress, m.maxProgress)
	b.WriteString(m.statusView(th))
	return b.String()
}

func (m Model) buttonsView(th theme) string {
	labels := [buttonCount]string{
		buttonScan:     m.tr.Text(i18n.Scan),
		buttonAutoFix:  m.tr.Text(i18n.AutoFix),
		buttonOptions:  m.tr.Text(i18n.Options),
		buttonLanguage: m.tr.Text(i18n.Language),
	}
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		style := th.button
		if button(i) == m.focus && m.state == stateMain {
			style = th.buttonFocus
		}
		parts = append(parts, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// optionsView is rebuilt from the current locale on every render.
func (m Model) optionsView(th theme) string {
	check := "[ ]"
	if m.dark {
		check = "[x]"
	}
	items := [optionCount]string{
		optionDarkMode: check + " " + m.tr.Text(i18n.DarkMode),
		optionExit:     m.tr.Text(i18n.Exit),
	}
	return th.menu.Render(m.menuLines(th, m.tr.Text(i18n.Options), items[:]))
}

func (m Model) languageView(th theme) string {
	c := m.tr.Catalog()
	var items []string
	for _, code := range c.Codes() {
		mark := "  "
		if code == m.tr.Locale() {
			mark = "* "
		}
		items = append(items, mark+c.Name(code))
	}
	return th.menu.Render(m.menuLines(th, m.tr.Text(i18n.Language), items))
}

func (m Model) menuLines(th theme, heading string, items []string) string {
	lines := []string{th.menuItem.Bold(true).Render(heading)}
	for i, item := range items {
		if i == m.menuCursor {
			lines = append(lines, th.menuActive.Render("> "+item))
		} else {
			lines = append(lines, th.menuItem.Render("  "+item))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) confirmView(th theme) string {
	if m.pending == nil {
		return ""
	}
	yes, no := th.button, th.button
	if m.dialogYes {
		yes = th.buttonFocus
	} else {
		no = th.buttonFocus
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		th.menuItem.Bold(true).Render(m.pending.title),
		"",
		th.menuItem.Render(m.pending.text),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, yes.Render(m.tr.Text(i18n.Yes)), no.Render(m.tr.Text(i18n.No))),
	)
	return th.dialog.Render(body)
}

func (m Model) statusView(th theme) string {
	status := th.status.Render(m.tr.Text(i18n.Ready))
	if m.running {
		status = th.status.Render(m.tr.Text(i18n.Busy))
	}
	if m.noticeKey != "" {
		status = th.notice.Render(m.tr.Format(m.noticeKey, m.noticeArgs...))
	}
	return status + "\n" + th.help.Render(m.tr.Text(i18n.HelpLine))
}

func (m Model) fraction() float64 {
	if m.maxProgress <= 0 {
		return 0
	}
	return float64(m.progress) / float64(m.maxProgress)
}
