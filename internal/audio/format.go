package audio

import (
	"fmt"

	"github.com/pkg/errors"
)

// Errors
var (
	ErrDecode            = errors.New("audio decode error")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// Format describes interleaved, little-endian, signed integer PCM.
type Format struct {
	SampleRate int // Sample frames per second
	Channels   int // Interleaved channels per sample frame
	BitDepth   int // Bits per sample: 8, 16, 24 or 32
}

// DefaultFormat is mono 16-bit audio at 44.1 kHz.
var DefaultFormat = Format{
	SampleRate: 44100,
	Channels:   1,
	BitDepth:   16,
}

// BytesPerSample returns the width of one sample of one channel.
func (f Format) BytesPerSample() int {
	return f.BitDepth / 8
}

// BlockAlign returns the width of one sample frame across all channels.
func (f Format) BlockAlign() int {
	return f.BytesPerSample() * f.Channels
}

// FullScale returns the largest positive sample magnitude for the bit depth.
func (f Format) FullScale() float64 {
	return float64(int64(1)<<(f.BitDepth-1)) - 1
}

// Validate checks that the format can be decoded.
func (f Format) Validate() error {
	switch f.BitDepth {
	case 8, 16, 24, 32:
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "bit depth %d", f.BitDepth)
	}
	if f.SampleRate <= 0 {
		return errors.Wrapf(ErrUnsupportedFormat, "sample rate %d", f.SampleRate)
	}
	if f.Channels <= 0 {
		return errors.Wrapf(ErrUnsupportedFormat, "%d channels", f.Channels)
	}
	return nil
}

func (f Format) String() string {
	return fmt.Sprintf("%d Hz, %d ch, %d-bit", f.SampleRate, f.Channels, f.BitDepth)
}
