// Package synth renders test tones as raw PCM.
package synth

import (
	"math"
	"strings"

	"github.com/0xlemi/phinote/internal/audio"
	"github.com/pkg/errors"
)

// Oscillator selects a waveform.
type Oscillator int

const (
	Sine Oscillator = iota
	Square
	Sawtooth
	Triangle
)

var oscillatorNames = map[string]Oscillator{
	"sine":     Sine,
	"square":   Square,
	"sawtooth": Sawtooth,
	"triangle": Triangle,
}

// ParseOscillator returns the oscillator with the given name.
func ParseOscillator(name string) (Oscillator, error) {
	osc, ok := oscillatorNames[strings.ToLower(name)]
	if !ok {
		return 0, errors.Errorf("unknown oscillator %q", name)
	}
	return osc, nil
}

// sample returns the waveform value in [-1, 1] at the given phase, measured
// in cycles.
func (o Oscillator) sample(phase float64) float64 {
	frac := phase - math.Floor(phase)
	switch o {
	case Square:
		if frac < 0.5 {
			return 1
		}
		return -1
	case Sawtooth:
		return 2*frac - 1
	case Triangle:
		if frac < 0.5 {
			return 4*frac - 1
		}
		return 3 - 4*frac
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// Step is one tone of a melody. A zero Frequency renders silence.
type Step struct {
	Frequency float64
	Seconds   float64
}

// Tone renders a single tone at full scale for the given number of seconds.
// Every channel carries the same signal.
func Tone(frequency, seconds float64, format audio.Format, osc Oscillator) []byte {
	count := int(seconds * float64(format.SampleRate))
	width := format.BytesPerSample()
	block := format.BlockAlign()
	scale := format.FullScale()

	out := make([]byte, count*block)
	if frequency <= 0 {
		return out
	}

	for i := 0; i < count; i++ {
		phase := frequency * float64(i) / float64(format.SampleRate)
		v := int32(osc.sample(phase) * scale)
		for ch := 0; ch < format.Channels; ch++ {
			off := i*block + ch*width
			audio.EncodeSample(out[off:off+width], v)
		}
	}
	return out
}

// Melody renders steps back to back. Each step restarts at phase zero.
func Melody(steps []Step, format audio.Format, osc Oscillator) []byte {
	var out []byte
	for _, s := range steps {
		out = append(out, Tone(s.Frequency, s.Seconds, format, osc)...)
	}
	return out
}
