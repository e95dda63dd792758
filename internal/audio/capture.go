package audio

import (
	"context"
	"math"
	"time"
)

// AudioBuffer represents a buffer of captured audio samples in [-1, 1]
type AudioBuffer struct {
	Samples    []float32
	SampleRate int
}

// Duration returns the length of the buffer in seconds.
func (b *AudioBuffer) Duration() float64 {
	if b == nil || b.SampleRate == 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// PCM16 converts the buffer to mono 16-bit little-endian PCM, clipping
// samples outside [-1, 1].
func (b *AudioBuffer) PCM16() []byte {
	out := make([]byte, 2*len(b.Samples))
	for i, s := range b.Samples {
		v := math.Max(-1, math.Min(1, float64(s)))
		EncodeSample(out[2*i:2*i+2], int32(math.Round(v*math.MaxInt16)))
	}
	return out
}

// Recorder captures a bounded stretch of audio from an input device
type Recorder interface {
	// Record blocks until d of audio has been captured or ctx is done,
	// returning whatever was captured so far.
	Record(ctx context.Context, d time.Duration) (*AudioBuffer, error)
}
