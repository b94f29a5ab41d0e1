package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/specialistvlad/gridsheet/internal/ctxlog"
)

// visibleNameLength is how much of the file name the dialog shows.
const visibleNameLength = 42

// maxNameLength bounds the file name typed into the dialog.
const maxNameLength = 4096

// saveDialog is the modal file name prompt opened by ^S and ^Q.
type saveDialog struct {
	name string
	// quit is set when the dialog was opened on exit; cancelling it then
	// leaves without saving.
	quit bool
	// failed is set after a save attempt failed.
	failed bool
}

func newSaveDialog(name string, quit bool) *saveDialog {
	return &saveDialog{name: name, quit: quit}
}

func (m Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := *m.dialog

	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyCtrlQ:
		m.dialog = nil
		if d.quit {
			return m, tea.Quit
		}
		return m, nil
	case tea.KeyCtrlS, tea.KeyEnter:
		if d.name == "" {
			return m, nil
		}
		return m.commitSave(d)
	case tea.KeyBackspace:
		if n := len(d.name); n > 0 {
			d.name = d.name[:n-1]
		}
	case tea.KeySpace:
		d.name = appendPrintable(d.name, []rune{' '}, maxNameLength)
	case tea.KeyRunes:
		d.name = appendPrintable(d.name, msg.Runes, maxNameLength)
	}
	m.dialog = &d
	return m, nil
}

func (m Model) commitSave(d saveDialog) (tea.Model, tea.Cmd) {
	logger := ctxlog.FromContext(m.ctx)

	if err := m.save(d.name, m.sheet, m.cursor); err != nil {
		logger.Warn("Save failed.", "path", d.name, "error", err)
		d.failed = true
		m.dialog = &d
		return m, nil
	}
	logger.Info("Sheet saved.", "path", d.name)
	m.path = d.name
	m.dialog = nil
	if d.quit {
		return m, tea.Quit
	}
	return m, nil
}

// visibleName returns the tail of the name that fits the input line and
// whether the head was cut off.
func (d *saveDialog) visibleName() (string, bool) {
	if len(d.name) <= visibleNameLength {
		return d.name, false
	}
	return d.name[len(d.name)-visibleNameLength:], true
}
