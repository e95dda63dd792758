// Package midifile renders analyzed notes as a Standard MIDI File.
package midifile

import (
	"io"
	"math"

	"github.com/0xlemi/phinote/internal/analysis"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	// Ticks per quarter note.
	resolution = 960
	maxKey     = 127
)

// Options controls how notes are written.
type Options struct {
	Tempo    float64 // Beats per minute
	Channel  uint8
	Velocity uint8
	Name     string // Track name, omitted when empty
}

// DefaultOptions writes at 120 BPM on channel 0 with velocity 100.
var DefaultOptions = Options{
	Tempo:    120,
	Channel:  0,
	Velocity: 100,
}

// Write encodes chunk as a single-track SMF. Silence becomes a rest and
// pitches above MIDI note 127 are dropped as rests too.
func Write(w io.Writer, chunk *analysis.Chunk, opts Options) error {
	if opts.Tempo <= 0 {
		return errors.Errorf("tempo must be positive, got %v", opts.Tempo)
	}

	// seconds -> ticks at a fixed tempo
	ticksPerSecond := resolution * opts.Tempo / 60
	ticks := func(seconds float64) uint32 {
		return uint32(math.Round(seconds * ticksPerSecond))
	}

	var track smf.Track
	if opts.Name != "" {
		track.Add(0, smf.MetaTrackSequenceName(opts.Name))
	}
	track.Add(0, smf.MetaTempo(opts.Tempo))

	var last uint32 // tick of the previous event
	for _, n := range chunk.Notes {
		if n.Pitch.IsSilence() || n.Pitch.MIDI <= 0 || n.Pitch.MIDI > maxKey {
			continue
		}
		key := uint8(n.Pitch.MIDI)
		start, end := ticks(n.Start), ticks(n.End)

		track.Add(start-last, midi.NoteOn(opts.Channel, key, opts.Velocity))
		track.Add(end-start, midi.NoteOff(opts.Channel, key))
		last = end
	}
	track.Close(ticks(chunk.Duration()) - last)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(resolution)
	if err := s.Add(track); err != nil {
		return errors.Wrap(err, "add track")
	}
	if _, err := s.WriteTo(w); err != nil {
		return errors.Wrap(err, "write smf")
	}
	return nil
}
