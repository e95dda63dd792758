package audio

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pcm16(values ...int32) []byte {
	out := make([]byte, 2*len(values))
	for i, v := range values {
		EncodeSample(out[2*i:2*i+2], v)
	}
	return out
}

func TestDecodeSampleWidths(t *testing.T) {
	cases := []struct {
		name  string
		bytes []byte
		want  int32
	}{
		{"8-bit positive", []byte{0x7f}, 127},
		{"8-bit negative", []byte{0x80}, -128},
		{"16-bit", []byte{0x34, 0x12}, 0x1234},
		{"16-bit negative", []byte{0xff, 0xff}, -1},
		{"16-bit min", []byte{0x00, 0x80}, -32768},
		{"24-bit negative", []byte{0x00, 0x00, 0x80}, -8388608},
		{"24-bit positive", []byte{0x01, 0x02, 0x03}, 0x030201},
		{"32-bit", []byte{0xfe, 0xff, 0xff, 0xff}, -2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, decodeSample(tc.bytes))

			b := make([]byte, len(tc.bytes))
			EncodeSample(b, tc.want)
			assert.Equal(t, tc.bytes, b)
		})
	}
}

func TestDecodeSplitsIntoFrames(t *testing.T) {
	format := Format{SampleRate: 4, Channels: 1, BitDepth: 16}
	dec, err := NewDecoder(format, 1.0)
	require.NoError(t, err)
	require.Equal(t, 8, dec.FrameBytes())

	frames, err := dec.Decode(pcm16(1, 2, 3, 4, -1, -2, -3, -4))
	require.NoError(t, err)

	assert := assert.New(t)
	require.Len(t, frames, 2)
	assert.Equal([]float64{1, 2, 3, 4}, frames[0].Samples)
	assert.Equal([]float64{-1, -2, -3, -4}, frames[1].Samples)
	assert.Equal(1, frames[1].Index)
	assert.Equal(4, frames[1].SampleRate)
	assert.Equal(1.0, frames[1].Duration())
}

func TestDecodeDropsTrailingPartialFrame(t *testing.T) {
	dec, err := NewDecoder(Format{SampleRate: 4, Channels: 1, BitDepth: 16}, 1.0)
	require.NoError(t, err)

	frames, err := dec.Decode(pcm16(1, 2, 3, 4, 5, 6, 7))
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, []float64{1, 2, 3, 4}, frames[0].Samples)
}

func TestDecodeAveragesChannels(t *testing.T) {
	dec, err := NewDecoder(Format{SampleRate: 2, Channels: 2, BitDepth: 16}, 1.0)
	require.NoError(t, err)

	frames, err := dec.Decode(pcm16(100, 300, -50, 50))
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, []float64{200, 0}, frames[0].Samples)
}

func TestDecodeFractionalFrameDuration(t *testing.T) {
	dec, err := NewDecoder(Format{SampleRate: 8, Channels: 1, BitDepth: 8}, 0.25)
	require.NoError(t, err)

	frames, err := dec.Decode([]byte{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.Len(t, frames, 2)
	assert.Equal(t, []float64{3, 4}, frames[1].Samples)
}

func TestDecodeErrors(t *testing.T) {
	dec, err := NewDecoder(Format{SampleRate: 4, Channels: 1, BitDepth: 16}, 1.0)
	require.NoError(t, err)

	_, err = dec.Decode([]byte{1, 2, 3})
	assert.True(t, errors.Is(err, ErrDecode), "misaligned buffer")

	_, err = dec.Decode(pcm16(1, 2, 3))
	assert.True(t, errors.Is(err, ErrDecode), "no full frame")

	_, err = dec.Decode(nil)
	assert.True(t, errors.Is(err, ErrDecode), "empty buffer")

	stereo, err := NewDecoder(Format{SampleRate: 4, Channels: 2, BitDepth: 16}, 1.0)
	require.NoError(t, err)
	_, err = stereo.Decode(make([]byte, 18))
	assert.True(t, errors.Is(err, ErrDecode), "half a sample frame")
}

func TestNewDecoderRejectsFormats(t *testing.T) {
	cases := map[string]Format{
		"bit depth":   {SampleRate: 44100, Channels: 1, BitDepth: 12},
		"sample rate": {SampleRate: 0, Channels: 1, BitDepth: 16},
		"channels":    {SampleRate: 44100, Channels: 0, BitDepth: 16},
	}
	for name, format := range cases {
		_, err := NewDecoder(format, 1.0)
		assert.True(t, errors.Is(err, ErrUnsupportedFormat), name)
	}

	_, err := NewDecoder(DefaultFormat, 0)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	_, err = NewDecoder(Format{SampleRate: 10, Channels: 1, BitDepth: 16}, 0.01)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestFrameNormalized(t *testing.T) {
	f := Frame{Samples: []float64{-32768, 0, 16384}, SampleRate: 1, BitDepth: 16}
	assert.Equal(t, []float64{-1, 0, 0.5}, f.Normalized())
}

func TestFormat(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(2, DefaultFormat.BlockAlign())
	assert.Equal(32767.0, DefaultFormat.FullScale())
	assert.Equal(6, Format{Channels: 2, BitDepth: 24}.BlockAlign())
	assert.Equal(127.0, Format{BitDepth: 8}.FullScale())
}

func TestFrameDurationRoundsToWholeSamples(t *testing.T) {
	dec, err := NewDecoder(Format{SampleRate: 7, Channels: 1, BitDepth: 16}, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 4.0/7, dec.FrameDuration(), 1e-12)

	frames, err := dec.Decode(make([]byte, 16*2))
	require.NoError(t, err)
	require.Len(t, frames, 4)
	assert.InDelta(t, dec.FrameDuration(), frames[0].Duration(), 1e-12)
}
