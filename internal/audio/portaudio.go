package audio

import (
	"context"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
	"github.com/pkg/errors"
)

// PortAudioRecorder implements Recorder using the default PortAudio input
type PortAudioRecorder struct {
	bufferSize    int
	sampleRate    int
	channels      int
	amplification float32 // Audio signal amplification factor

	mu       sync.Mutex
	samples  []float32 // Mono samples captured so far
	capacity int       // Samples wanted by the current recording
	full     chan struct{}
}

// NewPortAudioRecorder creates a recorder; bufferSize is the number of
// interleaved samples PortAudio delivers per callback.
func NewPortAudioRecorder(bufferSize, sampleRate, channels int) *PortAudioRecorder {
	return &PortAudioRecorder{
		bufferSize:    bufferSize,
		sampleRate:    sampleRate,
		channels:      channels,
		amplification: 1.0,
	}
}

// SetAmplification sets the audio amplification factor
func (r *PortAudioRecorder) SetAmplification(factor float32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Ensure amplification is positive
	if factor < 0.1 {
		factor = 0.1
	}

	r.amplification = factor
}

// Record captures d of audio from the default input device.
func (r *PortAudioRecorder) Record(ctx context.Context, d time.Duration) (*AudioBuffer, error) {
	if d <= 0 {
		return nil, errors.New("recording duration must be positive")
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, errors.Wrap(err, "initialize portaudio")
	}
	defer portaudio.Terminate()

	r.reset(max(1, int(d.Seconds()*float64(r.sampleRate))))

	stream, err := portaudio.OpenDefaultStream(
		r.channels, // input channels
		0,          // output channels (we don't need output)
		float64(r.sampleRate),
		r.bufferSize/r.channels, // frames per buffer
		r.processAudio,          // callback function
	)
	if err != nil {
		return nil, errors.Wrap(err, "open input stream")
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, errors.Wrap(err, "start input stream")
	}

	select {
	case <-r.full:
	case <-ctx.Done():
	}

	if err := stream.Stop(); err != nil {
		return nil, errors.Wrap(err, "stop input stream")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return &AudioBuffer{
		Samples:    append([]float32(nil), r.samples...),
		SampleRate: r.sampleRate,
	}, nil
}

func (r *PortAudioRecorder) reset(capacity int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = make([]float32, 0, capacity)
	r.capacity = capacity
	r.full = make(chan struct{})
}

// processAudio is the callback function for audio processing
func (r *PortAudioRecorder) processAudio(in, _ []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.samples) >= r.capacity {
		return
	}

	for i := 0; i+r.channels <= len(in) && len(r.samples) < r.capacity; i += r.channels {
		sum := float32(0)
		for ch := 0; ch < r.channels; ch++ {
			sum += in[i+ch]
		}
		// Average the channels and apply amplification
		r.samples = append(r.samples, (sum/float32(r.channels))*r.amplification)
	}

	if len(r.samples) >= r.capacity {
		close(r.full)
	}
}
