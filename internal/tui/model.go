package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/specialistvlad/gridsheet/internal/cellref"
	"github.com/specialistvlad/gridsheet/internal/ctxlog"
	"github.com/specialistvlad/gridsheet/internal/sheet"
	"github.com/specialistvlad/gridsheet/internal/wsfile"
)

const (
	// cellWidth is the width of one grid cell including its type marker.
	cellWidth = 9

	// rowBarWidth is the width of the row number bar.
	rowBarWidth = 8

	// chromeLines is the number of screen lines that are not grid rows.
	chromeLines = 4
)

const (
	printableFirst = 0x20
	printableLast  = 0x7e
)

// SaveFunc writes the sheet to path.
type SaveFunc func(path string, s *sheet.Sheet, cursor cellref.Coord) error

// Options configures a Model.
type Options struct {
	// Path is offered as the default file name in the save dialog.
	Path string
	// Cursor is the initially selected cell.
	Cursor cellref.Coord
	// Save defaults to wsfile.SaveFile.
	Save SaveFunc
}

// Model is the bubbletea model of the sheet editor.
type Model struct {
	ctx   context.Context
	sheet *sheet.Sheet
	save  SaveFunc

	cursor  cellref.Coord
	formula string
	path    string

	width, height int
	top, left     int

	dialog *saveDialog
}

// New creates the editor model for s.
func New(ctx context.Context, s *sheet.Sheet, opts Options) Model {
	m := Model{
		ctx:    ctx,
		sheet:  s,
		save:   opts.Save,
		path:   opts.Path,
		cursor: opts.Cursor,
		width:  rowBarWidth + cellref.Size*cellWidth,
		height: chromeLines + cellref.Size,
	}
	if m.save == nil {
		m.save = wsfile.SaveFile
	}
	if !m.cursor.Valid() {
		m.cursor = cellref.Coord{}
	}
	m.selectCell()
	return m
}

// Run starts an interactive program on the terminal and blocks until the
// user quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}

// Cursor returns the selected cell.
func (m Model) Cursor() cellref.Coord { return m.cursor }

// Formula returns the contents of the formula line.
func (m Model) Formula() string { return m.formula }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.follow()
		return m, nil
	case tea.KeyMsg:
		if m.dialog != nil {
			return m.updateDialog(msg)
		}
		return m.updateGrid(msg)
	}
	return m, nil
}

func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	logger := ctxlog.FromContext(m.ctx)

	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyCtrlQ:
		m.dialog = newSaveDialog(m.path, true)
		return m, nil
	case tea.KeyCtrlS:
		m.dialog = newSaveDialog(m.path, false)
		return m, nil
	case tea.KeyUp:
		m.move(0, -1)
	case tea.KeyDown:
		m.move(0, 1)
	case tea.KeyLeft:
		m.move(-1, 0)
	case tea.KeyRight:
		m.move(1, 0)
	case tea.KeyEnter:
		if err := m.sheet.Edit(m.ctx, m.cursor, m.formula); err != nil {
			logger.Error("Edit failed.", "cell", m.cursor, "error", err)
		}
	case tea.KeyTab:
		if _, err := m.sheet.CycleType(m.ctx, m.cursor); err != nil {
			logger.Error("Type change failed.", "cell", m.cursor, "error", err)
		}
	case tea.KeyCtrlL:
		m.sheet.SetLanguage(m.ctx, m.sheet.Language().Next())
	case tea.KeyHome:
		m.sheet.SetScroll(m.cursor, 0)
	case tea.KeyEnd:
		m.sheet.SetScroll(m.cursor, len(m.sheet.Text(m.cursor))-sheet.VisibleTextLength)
	case tea.KeyPgUp:
		m.scrollValue(-1)
	case tea.KeyPgDown:
		m.scrollValue(1)
	case tea.KeyBackspace:
		if n := len(m.formula); n > 0 {
			m.formula = m.formula[:n-1]
		}
		return m, nil
	case tea.KeySpace:
		m.formula = appendPrintable(m.formula, []rune{' '}, sheet.FormulaLength)
		return m, nil
	case tea.KeyRunes:
		m.formula = appendPrintable(m.formula, msg.Runes, sheet.FormulaLength)
		return m, nil
	default:
		return m, nil
	}
	m.selectCell()
	return m, nil
}

// move shifts the cursor, wrapping around the grid edges.
func (m *Model) move(dx, dy int) {
	m.cursor = cellref.At(wrap(m.cursor.Col+dx, cellref.Size), wrap(m.cursor.Row+dy, cellref.Size))
	m.follow()
}

// scrollValue steps the value line offset, wrapping at both ends.
func (m *Model) scrollValue(step int) {
	span := len(m.sheet.Text(m.cursor)) - sheet.VisibleTextLength + 1
	if span <= 1 {
		m.sheet.SetScroll(m.cursor, 0)
		return
	}
	m.sheet.SetScroll(m.cursor, wrap(m.sheet.Cell(m.cursor).Scroll+step, span))
}

// selectCell loads the formula of the selected cell into the formula line.
func (m *Model) selectCell() {
	m.formula = m.sheet.Formula(m.cursor)
}

// follow keeps the cursor inside the visible part of the grid.
func (m *Model) follow() {
	cols, rows := m.visibleCols(), m.visibleRows()
	m.left = clampWindow(m.left, m.cursor.Col, cols)
	m.top = clampWindow(m.top, m.cursor.Row, rows)
}

func (m Model) visibleCols() int {
	return min(max((m.width-rowBarWidth)/cellWidth, 1), cellref.Size)
}

func (m Model) visibleRows() int {
	return min(max(m.height-chromeLines, 1), cellref.Size)
}

func clampWindow(start, pos, size int) int {
	if pos < start {
		start = pos
	}
	if pos >= start+size {
		start = pos - size + 1
	}
	return min(max(start, 0), cellref.Size-size)
}

func appendPrintable(buf string, runes []rune, limit int) string {
	for _, r := range runes {
		if len(buf) >= limit {
			break
		}
		if r >= printableFirst && r <= printableLast {
			buf += string(r)
		}
	}
	return buf
}

func wrap(n, size int) int {
	return ((n % size) + size) % size
}
