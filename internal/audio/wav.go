package audio

import (
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

// pcmFormat is the WAVE format tag for integer PCM.
const pcmFormat = 1

// ReadWAV reads a RIFF/WAVE container and returns its format and the sample
// data re-encoded as signed little-endian PCM.
func ReadWAV(r io.ReadSeeker) (Format, []byte, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return Format{}, nil, errors.Wrap(ErrDecode, "not a valid WAV file")
	}

	format := Format{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
	}
	if err := format.Validate(); err != nil {
		return Format{}, nil, err
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Format{}, nil, errors.Wrap(ErrDecode, err.Error())
	}

	width := format.BytesPerSample()
	raw := make([]byte, len(buf.Data)*width)
	for i, v := range buf.Data {
		// 8-bit WAV is unsigned; shift it to the signed range.
		if width == 1 {
			v -= 128
		}
		EncodeSample(raw[i*width:(i+1)*width], int32(v))
	}

	return format, raw, nil
}

// WriteWAV writes raw signed little-endian PCM as a RIFF/WAVE container.
func WriteWAV(w io.WriteSeeker, format Format, raw []byte) error {
	if err := format.Validate(); err != nil {
		return err
	}
	width := format.BytesPerSample()
	if len(raw)%format.BlockAlign() != 0 {
		return errors.Wrapf(ErrDecode, "buffer of %d bytes is not aligned to %d-byte sample frames", len(raw), format.BlockAlign())
	}

	data := make([]int, len(raw)/width)
	for i := range data {
		v := int(decodeSample(raw[i*width : (i+1)*width]))
		if width == 1 {
			v += 128
		}
		data[i] = v
	}

	enc := wav.NewEncoder(w, format.SampleRate, format.BitDepth, format.Channels, pcmFormat)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: format.Channels,
			SampleRate:  format.SampleRate,
		},
		Data:           data,
		SourceBitDepth: format.BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(enc.Close())
}

// IsWAV reports whether b starts with a RIFF/WAVE header.
func IsWAV(b []byte) bool {
	return len(b) >= 12 && string(b[0:4]) == "RIFF" && string(b[8:12]) == "WAVE"
}
