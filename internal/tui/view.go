package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/specialistvlad/gridsheet/internal/cellref"
	"github.com/specialistvlad/gridsheet/internal/messages"
	"github.com/specialistvlad/gridsheet/internal/sheet"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.dialog != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.viewDialog())
	}

	lang := m.sheet.Language()
	var b strings.Builder

	b.WriteString(labelStyle.Render(fmt.Sprintf("%7s:", messages.Text(lang, messages.LabelFormula))))
	b.WriteString(" " + m.formula + "\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%7s:", messages.Text(lang, messages.LabelValue))))
	b.WriteString(m.viewValue() + "\n")

	cols, rows := m.visibleCols(), m.visibleRows()

	b.WriteString(strings.Repeat(" ", rowBarWidth))
	for col := m.left; col < m.left+cols; col++ {
		label := fmt.Sprintf("%5s    ", cellref.ColumnName(col))
		if col == m.cursor.Col {
			b.WriteString(cursorStyle.Render(label))
		} else {
			b.WriteString(bandStyle(col).Render(label))
		}
	}
	b.WriteString("\n")

	for row := m.top; row < m.top+rows; row++ {
		label := fmt.Sprintf("   %2d   ", row+1)
		if row == m.cursor.Row {
			b.WriteString(cursorStyle.Render(label))
		} else {
			b.WriteString(bandStyle(row).Render(label))
		}
		for col := m.left; col < m.left+cols; col++ {
			b.WriteString(m.viewCell(cellref.At(col, row)))
		}
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render(" arrows move  enter edit  tab type  ^L language  ^S save  ^Q quit"))
	return b.String()
}

// viewValue renders the visible window of the selected cell's text with
// scroll markers on either side.
func (m Model) viewValue() string {
	c := m.sheet.Cell(m.cursor)
	text := c.Text
	start := min(c.Scroll, len(text))
	end := min(start+sheet.VisibleTextLength, len(text))

	left, right := " ", ""
	if len(text) > sheet.VisibleTextLength {
		if start > 0 {
			left = markerStyle.Render("<")
		}
		if start < len(text)-sheet.VisibleTextLength {
			right = markerStyle.Render(">")
		}
	}

	visible := text[start:end]
	if c.Tag == sheet.TagError {
		visible = errorStyle.Render(visible)
	}
	return left + visible + right
}

func (m Model) viewCell(at cellref.Coord) string {
	c := m.sheet.Cell(at)
	style := lipgloss.NewStyle()
	if at == m.cursor {
		style = cursorStyle
	}
	if c.Tag == sheet.TagAuto {
		return style.Render(fit(c.Text, cellWidth))
	}
	return style.Render(fit(c.Text, cellWidth-1)) + markerStyle.Render(c.Tag.String())
}

func (m Model) viewDialog() string {
	lang := m.sheet.Language()
	d := m.dialog

	prompt := messages.Text(lang, messages.SavePrompt)
	if d.failed {
		prompt = messages.Text(lang, messages.BadFileName) + " " + prompt
	}

	name, cut := d.visibleName()
	marker := " "
	if cut {
		marker = markerStyle.Render("<")
	}

	exit := messages.SaveCancel
	if d.quit {
		exit = messages.SaveQuit
	}
	help := messages.Text(lang, exit) + ", " + messages.Text(lang, messages.SaveConfirm)

	return dialogStyle.Render(prompt + "\n" + marker + name + "_\n" + dimStyle.Render(help))
}

// fit pads or cuts s to exactly width runes.
func fit(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
