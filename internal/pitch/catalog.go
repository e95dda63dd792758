package pitch

import (
	"fmt"
	"sync"

	"github.com/0xlemi/phinote/internal/tuning"
)

// All note names in chromatic order, starting from C
var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

const (
	octaves = 10
	// Semitone index of A0 counted from C0; the catalog starts here.
	lowestIndex = 9
	// MIDI numbers are offset by one octave from the semitone index.
	midiOffset = 12
)

// Catalog is an ordered, read-only list of pitches with a name index.
// Entries ascend by reference frequency.
type Catalog struct {
	pitches []Pitch
	index   map[string]int
}

// StandardCatalog returns the process-wide catalog built from the standard
// tuning table.
var StandardCatalog = sync.OnceValue(func() *Catalog {
	return NewCatalog(tuning.Standard())
})

// NewCatalog builds a catalog from a name -> frequency table. Pitches below
// A0 and names missing from the table are skipped.
func NewCatalog(table map[string]float64) *Catalog {
	c := &Catalog{
		pitches: make([]Pitch, 0, len(table)),
		index:   make(map[string]int, len(table)),
	}

	for octave := 0; octave < octaves; octave++ {
		for i, name := range noteNames {
			semitone := octave*len(noteNames) + i
			if semitone < lowestIndex {
				continue
			}

			fullName := fmt.Sprintf("%s%d", name, octave)
			frequency, ok := table[fullName]
			if !ok {
				continue
			}

			c.index[fullName] = len(c.pitches)
			c.pitches = append(c.pitches, Pitch{
				Name:      fullName,
				Frequency: frequency,
				MIDI:      semitone + midiOffset,
			})
		}
	}

	return c
}

// Len returns the number of pitches in the catalog.
func (c *Catalog) Len() int {
	return len(c.pitches)
}

// At returns the pitch at position i.
func (c *Catalog) At(i int) Pitch {
	return c.pitches[i]
}

// Get looks up a pitch by exact name.
func (c *Catalog) Get(name string) (Pitch, bool) {
	i, ok := c.index[name]
	if !ok {
		return Pitch{}, false
	}
	return c.pitches[i], true
}

// Forward returns a walk from name (inclusive) toward higher pitches.
// ok is false when name is not in the catalog.
func (c *Catalog) Forward(name string) (walk *Walk, ok bool) {
	return c.walk(name, 1)
}

// Backward returns a walk from name (inclusive) toward lower pitches.
// ok is false when name is not in the catalog.
func (c *Catalog) Backward(name string) (walk *Walk, ok bool) {
	return c.walk(name, -1)
}

func (c *Catalog) walk(name string, step int) (*Walk, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return &Walk{pitches: c.pitches, pos: i, step: step}, true
}

// Walk is a single-use view over a catalog: a start position and a
// direction. It is not safe for concurrent use.
type Walk struct {
	pitches []Pitch
	pos     int
	step    int
}

// Next returns the next pitch of the walk. ok is false once the walk has
// passed the catalog boundary.
func (w *Walk) Next() (p Pitch, ok bool) {
	if w.pos < 0 || w.pos >= len(w.pitches) {
		return Pitch{}, false
	}
	p = w.pitches[w.pos]
	w.pos += w.step
	return p, true
}
