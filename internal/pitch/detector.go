package pitch

import (
	"fmt"
	"math"

	"github.com/0xlemi/phinote/internal/audio"
	"github.com/pkg/errors"
)

// Errors
var (
	ErrEmptyFrame        = errors.New("empty audio frame")
	ErrUnresolvablePitch = errors.New("no catalog pitch brackets the frequency")
	ErrUnknownWindow     = errors.New("unknown window function")
)

// SilenceName is the name carried by the silence sentinel. It never collides
// with a catalog name.
const SilenceName = "silence"

// Silence is the pseudo-pitch produced for frames with no detectable tone.
var Silence = Pitch{Name: SilenceName}

// Pitch represents a named reference pitch, optionally annotated with the
// frequency that was resolved to it.
type Pitch struct {
	Name      string  // e.g. "A4", "C#5"
	Frequency float64 // Reference frequency in Hz (0 for silence)
	MIDI      int     // MIDI note number (0 for silence)
	Measured  float64 // Measured frequency in Hz, set by Guess
	Cents     float64 // Deviation of Measured from Frequency
}

// IsSilence reports whether p is the silence sentinel.
func (p Pitch) IsSilence() bool {
	return p.Name == SilenceName
}

// Same compares two pitches by name only.
func (p Pitch) Same(other Pitch) bool {
	return p.Name == other.Name
}

// String renders the pitch for logs and the terminal viewer.
func (p Pitch) String() string {
	if p.IsSilence() {
		return SilenceName
	}
	if p.Measured == 0 {
		return fmt.Sprintf("%s (%.3f Hz)", p.Name, p.Frequency)
	}
	return fmt.Sprintf("%s (%.2f Hz, %+.1f cents)", p.Name, p.Measured, p.Cents)
}

// resolved returns a copy of p annotated with a measurement.
func (p Pitch) resolved(measured float64) Pitch {
	p.Measured = measured
	p.Cents = Cents(measured, p.Frequency)
	return p
}

// Cents returns the distance from reference to measured in cents
// (100 per equal-tempered semitone).
func Cents(measured, reference float64) float64 {
	if measured <= 0 || reference <= 0 {
		return 0
	}
	return 1200 * math.Log2(measured/reference)
}

// Estimator defines the interface for per-frame frequency estimation
type Estimator interface {
	// Estimate analyzes a frame and reports its dominant frequency, or
	// silence when the frame is too quiet.
	Estimate(frame audio.Frame) (Estimate, error)
}

// Estimate is the result of analysing a single frame.
type Estimate struct {
	Silent    bool    // Frame fell below the silence threshold
	Level     float64 // RMS level in dB over raw sample values
	Frequency float64 // Dominant frequency in Hz, 0 when silent
	Peaks     []Peak  // Largest spectral bins, descending by magnitude
}
