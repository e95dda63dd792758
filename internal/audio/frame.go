package audio

import (
	"math"

	"github.com/pkg/errors"
)

// DefaultFrameDuration is the length of one analysis frame in seconds.
const DefaultFrameDuration = 1.0

// Frame is one fixed-duration slice of decoded mono audio. Samples keep the
// integer scale of the source bit depth; they are not normalized.
type Frame struct {
	Index      int       // Position of the frame in the buffer
	Samples    []float64 // Decoded samples, channels averaged
	SampleRate int
	BitDepth   int
}

// Duration returns the frame length in seconds.
func (f Frame) Duration() float64 {
	if f.SampleRate == 0 {
		return 0
	}
	return float64(len(f.Samples)) / float64(f.SampleRate)
}

// Normalized returns the samples scaled to [-1, 1).
func (f Frame) Normalized() []float64 {
	scale := float64(int64(1) << (f.BitDepth - 1))
	out := make([]float64, len(f.Samples))
	for i, s := range f.Samples {
		out[i] = s / scale
	}
	return out
}

// Decoder slices raw PCM into fixed-duration frames.
type Decoder struct {
	format        Format
	frameDuration float64
	frameSamples  int // Sample frames per analysis frame
}

// NewDecoder creates a decoder for the given format and frame duration in
// seconds.
func NewDecoder(format Format, frameDuration float64) (*Decoder, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	if frameDuration <= 0 {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "frame duration %v", frameDuration)
	}

	frameSamples := int(math.Round(float64(format.SampleRate) * frameDuration))
	if frameSamples < 1 {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "frame duration %v is shorter than one sample", frameDuration)
	}

	return &Decoder{
		format:        format,
		frameDuration: frameDuration,
		frameSamples:  frameSamples,
	}, nil
}

// FrameDuration returns the length of one decoded frame in seconds. It can
// differ from the requested duration, which is rounded to whole samples.
func (d *Decoder) FrameDuration() float64 {
	return float64(d.frameSamples) / float64(d.format.SampleRate)
}

// FrameBytes returns the number of raw bytes consumed by one frame.
func (d *Decoder) FrameBytes() int {
	return d.frameSamples * d.format.BlockAlign()
}

// Decode splits raw into frames. A trailing span shorter than one frame is
// dropped. raw must be aligned to whole sample frames and hold at least one
// full frame.
func (d *Decoder) Decode(raw []byte) ([]Frame, error) {
	align := d.format.BlockAlign()
	if len(raw)%align != 0 {
		return nil, errors.Wrapf(ErrDecode, "buffer of %d bytes is not aligned to %d-byte sample frames", len(raw), align)
	}

	frameBytes := d.FrameBytes()
	count := len(raw) / frameBytes
	if count == 0 {
		return nil, errors.Wrapf(ErrDecode, "buffer of %d bytes holds no full %.3gs frame (%d bytes)", len(raw), d.frameDuration, frameBytes)
	}

	frames := make([]Frame, count)
	for i := range frames {
		span := raw[i*frameBytes : (i+1)*frameBytes]
		frames[i] = Frame{
			Index:      i,
			Samples:    d.decodeSpan(span),
			SampleRate: d.format.SampleRate,
			BitDepth:   d.format.BitDepth,
		}
	}

	return frames, nil
}

// decodeSpan decodes one frame's bytes, averaging channels into mono.
func (d *Decoder) decodeSpan(span []byte) []float64 {
	width := d.format.BytesPerSample()
	channels := d.format.Channels
	samples := make([]float64, len(span)/(width*channels))

	for i := range samples {
		base := i * width * channels
		if channels == 1 {
			samples[i] = float64(decodeSample(span[base : base+width]))
			continue
		}

		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			off := base + ch*width
			sum += float64(decodeSample(span[off : off+width]))
		}
		samples[i] = sum / float64(channels)
	}

	return samples
}

// decodeSample reads one little-endian signed integer of len(b) bytes.
func decodeSample(b []byte) int32 {
	var v uint32
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint32(b[i])
	}
	// Sign-extend from the sample width.
	shift := 32 - 8*uint(len(b))
	return int32(v<<shift) >> shift
}

// EncodeSample writes v as a little-endian signed integer into b, using
// len(b) bytes.
func EncodeSample(b []byte, v int32) {
	u := uint32(v)
	for i := range b {
		b[i] = byte(u >> (8 * uint(i)))
	}
}
