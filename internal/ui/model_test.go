package ui

import (
	"testing"

	"github.com/0xlemi/phinote/internal/analysis"
	"github.com/0xlemi/phinote/internal/pitch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChunk(t *testing.T, names ...string) *analysis.Chunk {
	t.Helper()
	chunk := &analysis.Chunk{}
	for i, name := range names {
		p := pitch.Silence
		if name != pitch.SilenceName {
			var ok bool
			p, ok = pitch.StandardCatalog().Get(name)
			require.True(t, ok, name)
			p.Measured = p.Frequency
		}
		chunk.Notes = append(chunk.Notes, analysis.NoteEvent{Pitch: p, Start: float64(i), End: float64(i + 1)})
	}
	return chunk
}

func press(m tea.Model, keys ...tea.KeyMsg) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(k)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func selected(t *testing.T, m tea.Model) string {
	t.Helper()
	n, ok := m.(Model).Selected()
	require.True(t, ok)
	return n.Pitch.Name
}

func TestNavigation(t *testing.T) {
	var m tea.Model = NewModel("take", testChunk(t, "C4", "E4", "silence", "G4"))
	assert.Equal(t, "C4", selected(t, m))

	m = press(m, tea.KeyMsg{Type: tea.KeyDown}, runes("j"))
	assert.Equal(t, "silence", selected(t, m))

	m = press(m, runes("j"), runes("j"), runes("j"))
	assert.Equal(t, "G4", selected(t, m), "cursor stops at the last note")

	m = press(m, runes("k"))
	assert.Equal(t, "silence", selected(t, m))

	m = press(m, runes("g"))
	assert.Equal(t, "C4", selected(t, m))

	m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "C4", selected(t, m), "cursor stops at the first note")

	m = press(m, runes("G"))
	assert.Equal(t, "G4", selected(t, m))
}

func TestQuit(t *testing.T) {
	for _, k := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		_, cmd := NewModel("take", testChunk(t, "A4")).Update(k)
		require.NotNil(t, cmd, k.String())
		assert.Equal(t, tea.QuitMsg{}, cmd())
	}
}

func TestViewShowsNotes(t *testing.T) {
	m := NewModel("take", testChunk(t, "A4", "C#5", "silence"))

	view := m.View()
	assert.Contains(t, view, "take")
	assert.Contains(t, view, "> A4")
	assert.Contains(t, view, "C#5")
	assert.Contains(t, view, "440.00 Hz")
	assert.Contains(t, view, "3 notes")

	view = press(m, runes("j"), runes("j")).View()
	assert.Contains(t, view, "rest")
	assert.Contains(t, view, "> silence")
}

func TestViewEmpty(t *testing.T) {
	m := NewModel("empty", &analysis.Chunk{})
	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Contains(t, m.View(), "No notes detected.")

	m2 := press(m, runes("G"), runes("j"))
	_, ok = m2.(Model).Selected()
	assert.False(t, ok)
}

func TestVisibleRangeFollowsCursor(t *testing.T) {
	names := make([]string, 40)
	for i := range names {
		names[i] = "A4"
	}
	var m tea.Model = NewModel("long", testChunk(t, names...))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	first, last := m.(Model).visibleRange()
	assert.Equal(t, 0, first)
	assert.Equal(t, 10, last)

	m = press(m, runes("G"))
	first, last = m.(Model).visibleRange()
	assert.Equal(t, 30, first)
	assert.Equal(t, 40, last)
}

func TestGetNextNote(t *testing.T) {
	assert.Equal(t, "D", getNextNote("C"))
	assert.Equal(t, "C", getNextNote("B"))
}
