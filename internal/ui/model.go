package ui

import (
	"fmt"
	"strings"

	"github.com/0xlemi/phinote/internal/analysis"
	"github.com/0xlemi/phinote/internal/pitch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Rows of the note list shown around the cursor when the window height is
// not known yet.
const defaultVisibleRows = 12

var (
	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			PaddingLeft(2).
			PaddingRight(2).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	// Note colors
	noteColors = map[string]string{
		"C": "#E8D6B0", // Beige
		"D": "#A020F0", // Purple
		"E": "#FFFF00", // Yellow
		"F": "#FFA500", // Orange
		"G": "#00FF00", // Green
		"A": "#FF0000", // Red
		"B": "#0000FF", // Blue
	}
)

// noteBox is the bordered box every pitch is drawn in
func noteBox(color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color(color)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#333333"))
}

// Returns a style for a natural note
func getNoteStyle(letter string) lipgloss.Style {
	return noteBox(noteColors[letter]).Padding(2, 4).MarginBottom(1)
}

// Naturals in scale order
const naturals = "CDEFGAB"

// Get the next natural in the scale (for sharp note colors)
func getNextNote(note string) string {
	i := strings.Index(naturals, note)
	if i < 0 || len(note) != 1 {
		return "C"
	}
	return naturals[(i+1)%len(naturals) : (i+1)%len(naturals)+1]
}

// Model is a scrollable view over the notes of an analyzed chunk
type Model struct {
	title  string
	notes  []analysis.NoteEvent
	cursor int
	width  int
	height int
}

// NewModel creates a viewer for chunk
func NewModel(title string, chunk *analysis.Chunk) Model {
	return Model{
		title: title,
		notes: chunk.Notes,
	}
}

// Selected returns the note under the cursor, if any
func (m Model) Selected() (analysis.NoteEvent, bool) {
	if len(m.notes) == 0 {
		return analysis.NoteEvent{}, false
	}
	return m.notes[m.cursor], true
}

// Init initializes the UI model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update updates the UI model based on messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.notes)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = max(0, len(m.notes)-1)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	s := titleStyle.Render(m.title)
	s += "\n"

	note, ok := m.Selected()
	if !ok {
		s += infoStyle.Render("No notes detected.")
		s += "\n\n" + infoStyle.Render("Press q to quit")
		return s
	}

	s += renderPitch(note.Pitch)
	s += "\n"
	if note.Pitch.IsSilence() {
		s += infoStyle.Render(fmt.Sprintf("Rest | %.2fs - %.2fs", note.Start, note.End))
	} else {
		s += infoStyle.Render(fmt.Sprintf("Frequency: %.2f Hz | Cents: %+.1f | %.2fs - %.2fs",
			note.Pitch.Measured, note.Pitch.Cents, note.Start, note.End))
	}
	s += "\n\n"

	first, last := m.visibleRange()
	for i := first; i < last; i++ {
		n := m.notes[i]
		line := fmt.Sprintf("%-8s %7.2fs - %7.2fs", n.Pitch.Name, n.Start, n.End)
		if i == m.cursor {
			s += selectedStyle.Render("> "+line) + "\n"
		} else {
			s += infoStyle.Render("  "+line) + "\n"
		}
	}

	s += "\n"
	s += infoStyle.Render(fmt.Sprintf("%d notes | up/down to move, q to quit", len(m.notes)))

	return s
}

// visibleRange returns the slice of notes that fits the window, keeping the
// cursor in view.
func (m Model) visibleRange() (int, int) {
	rows := defaultVisibleRows
	if m.height > 0 {
		// title, big note, info line and footer take roughly 14 lines
		rows = max(3, m.height-14)
	}
	first := max(0, m.cursor-rows/2)
	last := min(len(m.notes), first+rows)
	first = max(0, last-rows)
	return first, last
}

// renderPitch draws the coloured note box; sharps are split between the
// colours of their two neighbouring naturals.
func renderPitch(p pitch.Pitch) string {
	if p.IsSilence() {
		return noteBox("#555555").Padding(2, 4).MarginBottom(1).Render("rest")
	}

	letter := p.Name[:1]
	if !strings.Contains(p.Name, "#") {
		return getNoteStyle(letter).Render(p.Name)
	}

	// Left half carries the natural's colour, right half the next natural's.
	left := noteBox(noteColors[letter]).
		Border(lipgloss.RoundedBorder(), true, false, true, true).
		Padding(2, 1, 2, 2)
	right := noteBox(noteColors[getNextNote(letter)]).
		Border(lipgloss.RoundedBorder(), true, true, true, false).
		Padding(2, 2, 2, 1)

	// "C#4" -> "C" | "#4"
	return lipgloss.JoinHorizontal(lipgloss.Top, left.Render(letter), right.Render(p.Name[1:]))
}

// Run shows the viewer full screen until the user quits
func Run(title string, chunk *analysis.Chunk) error {
	_, err := tea.NewProgram(NewModel(title, chunk), tea.WithAltScreen()).Run()
	return err
}
