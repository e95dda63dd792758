package analysis

import (
	"context"

	"github.com/0xlemi/phinote/internal/audio"
	"github.com/0xlemi/phinote/internal/config"
	"github.com/0xlemi/phinote/internal/logging"
	"github.com/0xlemi/phinote/internal/pitch"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Analyzer runs the frame -> frequency -> pitch -> note pipeline. It holds
// no per-call state and may be shared between goroutines.
type Analyzer struct {
	format        audio.Format
	frameDuration float64
	workers       int
	catalog       *pitch.Catalog
	estimator     pitch.Estimator
	log           logging.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(a *Analyzer) {
		a.log = l
	}
}

// WithCatalog replaces the standard pitch catalog.
func WithCatalog(c *pitch.Catalog) Option {
	return func(a *Analyzer) {
		a.catalog = c
	}
}

// WithEstimator replaces the FFT estimator built from the config.
func WithEstimator(e pitch.Estimator) Option {
	return func(a *Analyzer) {
		a.estimator = e
	}
}

// New creates an analyzer from cfg.
func New(cfg config.Config, opts ...Option) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	win, err := pitch.ParseWindow(cfg.Window)
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		format:        cfg.Format(),
		frameDuration: cfg.FrameDuration,
		workers:       cfg.Workers,
		catalog:       pitch.StandardCatalog(),
		estimator: pitch.NewFFTEstimator(
			pitch.WithSilenceThreshold(cfg.SilenceThresholdDB),
			pitch.WithWindow(win),
		),
		log: logging.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Format returns the PCM format raw input is expected in.
func (a *Analyzer) Format() audio.Format {
	return a.format
}

// Analyze converts raw PCM in the configured format into a Chunk.
func (a *Analyzer) Analyze(raw []byte) (*Chunk, error) {
	return a.AnalyzeFormat(context.Background(), raw, a.format)
}

// AnalyzeContext is Analyze with a context that can abandon the call.
func (a *Analyzer) AnalyzeContext(ctx context.Context, raw []byte) (*Chunk, error) {
	return a.AnalyzeFormat(ctx, raw, a.format)
}

// AnalyzeFormat converts raw PCM in the given format into a Chunk.
func (a *Analyzer) AnalyzeFormat(ctx context.Context, raw []byte, format audio.Format) (*Chunk, error) {
	dec, err := audio.NewDecoder(format, a.frameDuration)
	if err != nil {
		return nil, err
	}
	frames, err := dec.Decode(raw)
	if err != nil {
		return nil, err
	}

	log := a.log.WithFields(logging.Fields{"frames": len(frames), "format": format.String()})
	log.Debug("decoded audio")

	estimates, err := a.estimate(ctx, frames)
	if err != nil {
		return nil, err
	}

	notes, err := Segment(a.resolve(estimates, log), dec.FrameDuration())
	if err != nil {
		return nil, err
	}

	log.Debug("segmented notes", logging.Fields{"notes": len(notes)})
	return &Chunk{Notes: notes}, nil
}

// estimate runs the estimator over every frame in parallel. Each goroutine
// writes only its own slot of the result.
func (a *Analyzer) estimate(ctx context.Context, frames []audio.Frame) ([]pitch.Estimate, error) {
	estimates := make([]pitch.Estimate, len(frames))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i := range frames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			est, err := a.estimator.Estimate(frames[i])
			if err != nil {
				return errors.Wrapf(err, "frame %d", i)
			}
			estimates[i] = est
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return estimates, nil
}

// resolve maps estimates to pitches in frame order. Each frame is seeded
// with the last tone resolved before it.
func (a *Analyzer) resolve(estimates []pitch.Estimate, log logging.Logger) []pitch.Pitch {
	pitches := make([]pitch.Pitch, len(estimates))

	var seed *pitch.Pitch
	for i, est := range estimates {
		if est.Silent {
			pitches[i] = pitch.Silence
			continue
		}

		p, err := a.catalog.Guess(est.Frequency, seed)
		if err != nil {
			log.Debug("frequency out of catalog range", logging.Fields{
				"frame":     i,
				"frequency": est.Frequency,
				"error":     err.Error(),
			})
			pitches[i] = pitch.Silence
			continue
		}

		pitches[i] = p
		seed = &pitches[i]
	}

	return pitches
}
