// Package config holds runtime settings shared by the CLI commands and the
// HTTP server.
package config

import (
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/0xlemi/phinote/internal/audio"
	"github.com/0xlemi/phinote/internal/pitch"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// envPrefix is prepended to every environment override.
const envPrefix = "PHINOTE_"

// Config holds every tunable of an analysis run and of the server.
type Config struct {
	// Audio settings
	SampleRate int
	Channels   int
	BitDepth   int

	// Analysis settings
	FrameDuration      float64 // Seconds per analysis frame
	SilenceThresholdDB float64 // RMS level below which a frame is silent
	Window             string  // FFT window, "none" for the raw spectrum
	Workers            int     // Frames estimated in parallel

	// Server settings
	Addr           string
	MaxUploadBytes int64
	AllowedOrigins []string

	LogLevel string
}

// Default returns the settings used when nothing is overridden.
func Default() Config {
	return Config{
		SampleRate:         audio.DefaultFormat.SampleRate,
		Channels:           audio.DefaultFormat.Channels,
		BitDepth:           audio.DefaultFormat.BitDepth,
		FrameDuration:      audio.DefaultFrameDuration,
		SilenceThresholdDB: pitch.DefaultSilenceThreshold,
		Window:             "none",
		Workers:            runtime.NumCPU(),
		Addr:               ":8000",
		MaxUploadBytes:     1 << 20,
		AllowedOrigins:     []string{"*"},
		LogLevel:           "info",
	}
}

// Format returns the PCM format raw input is decoded with.
func (c Config) Format() audio.Format {
	return audio.Format{
		SampleRate: c.SampleRate,
		Channels:   c.Channels,
		BitDepth:   c.BitDepth,
	}
}

// RegisterFlags binds every field to a flag on fs, using the current values
// as defaults.
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.IntVar(&c.SampleRate, "sample-rate", c.SampleRate, "sample rate of raw PCM input (Hz)")
	fs.IntVar(&c.Channels, "channels", c.Channels, "interleaved channels in raw PCM input")
	fs.IntVar(&c.BitDepth, "bit-depth", c.BitDepth, "bits per sample of raw PCM input (8, 16, 24, 32)")
	fs.Float64Var(&c.FrameDuration, "frame", c.FrameDuration, "analysis frame duration (seconds)")
	fs.Float64Var(&c.SilenceThresholdDB, "silence-db", c.SilenceThresholdDB, "RMS level in dB below which a frame is silent")
	fs.StringVar(&c.Window, "window", c.Window, "FFT window: none, hann, hamming, blackman, bartlett")
	fs.IntVar(&c.Workers, "workers", c.Workers, "frames analyzed in parallel")
	fs.StringVar(&c.Addr, "addr", c.Addr, "HTTP listen address")
	fs.Int64Var(&c.MaxUploadBytes, "max-upload", c.MaxUploadBytes, "largest accepted upload (bytes)")
	fs.StringSliceVar(&c.AllowedOrigins, "allowed-origins", c.AllowedOrigins, "CORS allowed origins")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
}

// ApplyEnv overrides fields from PHINOTE_* environment variables. Unset
// variables leave the field untouched, and so does a value that does not
// parse; the first such value is reported.
func (c *Config) ApplyEnv() error {
	var err error
	lookup := func(name string) (string, bool) {
		v, ok := os.LookupEnv(envPrefix + name)
		return v, ok && err == nil
	}
	fail := func(name string, cause error) {
		err = errors.Wrapf(cause, "%s%s", envPrefix, name)
	}

	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}
	num := func(name string, dst *int) {
		if v, ok := lookup(name); ok {
			n, perr := strconv.Atoi(v)
			if perr != nil {
				fail(name, perr)
				return
			}
			*dst = n
		}
	}
	float := func(name string, dst *float64) {
		if v, ok := lookup(name); ok {
			f, perr := strconv.ParseFloat(v, 64)
			if perr != nil {
				fail(name, perr)
				return
			}
			*dst = f
		}
	}

	num("SAMPLE_RATE", &c.SampleRate)
	num("CHANNELS", &c.Channels)
	num("BIT_DEPTH", &c.BitDepth)
	float("FRAME", &c.FrameDuration)
	float("SILENCE_DB", &c.SilenceThresholdDB)
	str("WINDOW", &c.Window)
	num("WORKERS", &c.Workers)
	str("ADDR", &c.Addr)
	str("LOG_LEVEL", &c.LogLevel)

	if v, ok := lookup("MAX_UPLOAD"); ok {
		n, perr := strconv.ParseInt(v, 10, 64)
		if perr != nil {
			fail("MAX_UPLOAD", perr)
		} else {
			c.MaxUploadBytes = n
		}
	}
	if v, ok := lookup("ALLOWED_ORIGINS"); ok {
		c.AllowedOrigins = strings.Split(v, ",")
	}

	return err
}

// Validate rejects settings the pipeline cannot run with.
func (c Config) Validate() error {
	if err := c.Format().Validate(); err != nil {
		return err
	}
	if c.FrameDuration <= 0 {
		return errors.Errorf("frame duration must be positive, got %v", c.FrameDuration)
	}
	if _, err := pitch.ParseWindow(c.Window); err != nil {
		return err
	}
	if c.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.MaxUploadBytes < 1 {
		return errors.Errorf("max upload must be positive, got %d", c.MaxUploadBytes)
	}
	return nil
}
