package pitch

import (
	"math"
	"math/cmplx"

	"github.com/0xlemi/phinote/internal/audio"
	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultSilenceThreshold is the RMS level in dB, over raw sample values,
	// below which a frame is treated as silence.
	DefaultSilenceThreshold = 60.0

	// peakCount is the number of strongest bins kept per frame.
	peakCount = 5
)

// Peak represents a bin in the frequency spectrum
type Peak struct {
	Bin       int
	Magnitude float64
	Frequency float64
}

// FFTEstimator estimates the fundamental of a frame as its strongest FFT bin
type FFTEstimator struct {
	silenceThreshold float64    // dB level separating silence from tone
	window           WindowFunc // Optional window, nil for none
}

// FFTOption configures an FFTEstimator.
type FFTOption func(*FFTEstimator)

// WithSilenceThreshold overrides the silence threshold in dB.
func WithSilenceThreshold(db float64) FFTOption {
	return func(e *FFTEstimator) {
		e.silenceThreshold = db
	}
}

// WindowFunc returns the coefficients of a window of n samples.
type WindowFunc func(n int) []float64

// WithWindow applies a window function before the FFT. A nil window, and the
// default, is no window.
func WithWindow(fn WindowFunc) FFTOption {
	return func(e *FFTEstimator) {
		e.window = fn
	}
}

// Windows lists the window functions ParseWindow accepts; "none" maps to a
// nil window.
var Windows = map[string]WindowFunc{
	"none":     nil,
	"hann":     window.Hann,
	"hamming":  window.Hamming,
	"blackman": window.Blackman,
	"bartlett": window.Bartlett,
}

// ParseWindow returns the window function registered under name.
func ParseWindow(name string) (WindowFunc, error) {
	fn, ok := Windows[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownWindow, "%q", name)
	}
	return fn, nil
}

// NewFFTEstimator creates a new FFT-based frequency estimator
func NewFFTEstimator(opts ...FFTOption) *FFTEstimator {
	e := &FFTEstimator{
		silenceThreshold: DefaultSilenceThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Estimate analyzes a frame and returns its dominant frequency
func (e *FFTEstimator) Estimate(frame audio.Frame) (Estimate, error) {
	if len(frame.Samples) == 0 {
		return Estimate{}, errors.WithStack(ErrEmptyFrame)
	}

	level := Level(frame.Samples)
	if level < e.silenceThreshold {
		return Estimate{Silent: true, Level: level}, nil
	}

	samples := frame.Samples
	if e.window != nil {
		samples = append([]float64(nil), samples...)
		window.Apply(samples, e.window)
	}

	peaks := strongestBins(fft.FFTReal(samples), frame.SampleRate, peakCount)

	est := Estimate{Level: level, Peaks: peaks}
	if len(peaks) > 0 {
		est.Frequency = peaks[0].Frequency
	}
	return est, nil
}

// Level returns the RMS of samples in dB. Samples are taken as they are,
// so the scale depends on the source bit depth. Silence yields -Inf.
func Level(samples []float64) float64 {
	if len(samples) == 0 {
		return math.Inf(-1)
	}
	rms := floats.Norm(samples, 2) / math.Sqrt(float64(len(samples)))
	return 20 * math.Log10(rms)
}

// strongestBins returns up to n bins of the non-redundant half of spectrum,
// sorted by descending magnitude.
func strongestBins(spectrum []complex128, sampleRate, n int) []Peak {
	// We only need to look at the first half of the spectrum (Nyquist theorem)
	half := spectrum[:len(spectrum)/2]
	if len(half) == 0 {
		return nil
	}

	// Calculate frequency resolution (Hz per bin)
	binSizeHz := float64(sampleRate) / float64(len(spectrum))

	magnitudes := make([]float64, len(half))
	for i, c := range half {
		magnitudes[i] = cmplx.Abs(c)
	}

	// Argsort orders ascending; the strongest bins end up at the tail.
	bins := make([]int, len(magnitudes))
	floats.Argsort(magnitudes, bins)

	n = min(n, len(bins))
	peaks := make([]Peak, 0, n)
	for i := len(bins) - 1; i >= len(bins)-n; i-- {
		peaks = append(peaks, Peak{
			Bin:       bins[i],
			Magnitude: magnitudes[i],
			Frequency: float64(bins[i]) * binSizeHz,
		})
	}
	return peaks
}
