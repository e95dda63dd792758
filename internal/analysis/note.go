// Package analysis turns raw PCM into a sequence of note events.
package analysis

import (
	"encoding/json"

	"github.com/0xlemi/phinote/internal/pitch"
)

// NoteEvent is a pitch held from Start to End, in seconds since the start of
// the analyzed buffer.
type NoteEvent struct {
	Pitch pitch.Pitch
	Start float64
	End   float64
}

// Duration returns End - Start.
func (n NoteEvent) Duration() float64 {
	return n.End - n.Start
}

type noteJSON struct {
	Pitch     string  `json:"pitch"`
	Frequency float64 `json:"frequency"`
	Cents     float64 `json:"cents"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
}

// MarshalJSON encodes the note as {pitch, frequency, cents, start, end}.
// frequency is the measured frequency, 0 for silence.
func (n NoteEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(noteJSON{
		Pitch:     n.Pitch.Name,
		Frequency: n.Pitch.Measured,
		Cents:     n.Pitch.Cents,
		Start:     n.Start,
		End:       n.End,
	})
}

// UnmarshalJSON decodes the form written by MarshalJSON. Reference
// frequency and MIDI number are restored from the standard catalog.
func (n *NoteEvent) UnmarshalJSON(data []byte) error {
	var v noteJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	p := pitch.Silence
	if v.Pitch != pitch.SilenceName {
		if ref, ok := pitch.StandardCatalog().Get(v.Pitch); ok {
			p = ref
		} else {
			p = pitch.Pitch{Name: v.Pitch}
		}
		p.Measured = v.Frequency
		p.Cents = v.Cents
	}

	*n = NoteEvent{Pitch: p, Start: v.Start, End: v.End}
	return nil
}

// Chunk is the ordered, gapless sequence of notes covering an analyzed
// buffer.
type Chunk struct {
	Notes []NoteEvent `json:"notes"`
}

// Duration returns the end time of the last note.
func (c *Chunk) Duration() float64 {
	if len(c.Notes) == 0 {
		return 0
	}
	return c.Notes[len(c.Notes)-1].End
}

// Names returns the pitch names of the notes in order.
func (c *Chunk) Names() []string {
	names := make([]string, len(c.Notes))
	for i, n := range c.Notes {
		names[i] = n.Pitch.Name
	}
	return names
}
