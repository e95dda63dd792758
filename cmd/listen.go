package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/0xlemi/phinote/internal/audio"
	"github.com/0xlemi/phinote/internal/logging"
	"github.com/spf13/cobra"
)

const (
	// Samples per PortAudio callback
	bufferSize = 4096
	// 16-bit capture matches what PCM16 produces
	captureBitDepth = 16
)

func newListenCmd(a *app) *cobra.Command {
	var (
		seconds       float64
		amplification float32
		out           outputOptions
	)

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Records from the default microphone and transcribes it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, err := a.analyzer()
			if err != nil {
				return err
			}

			recorder := audio.NewPortAudioRecorder(bufferSize, a.cfg.SampleRate, a.cfg.Channels)
			recorder.SetAmplification(amplification)

			// Ctrl+C stops the recording early; what was captured is still analyzed.
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			fmt.Fprintf(cmd.ErrOrStderr(), "Listening for %.1f seconds...\n", seconds)
			buf, err := recorder.Record(ctx, time.Duration(seconds*float64(time.Second)))
			if err != nil {
				return err
			}
			a.log.Info("recorded audio", logging.Fields{"seconds": buf.Duration()})

			format := audio.Format{SampleRate: buf.SampleRate, Channels: 1, BitDepth: captureBitDepth}
			chunk, err := analyzer.AnalyzeFormat(cmd.Context(), buf.PCM16(), format)
			if err != nil {
				return err
			}

			return out.emit(cmd.OutOrStdout(), "microphone", chunk)
		},
	}
	cmd.Flags().Float64Var(&seconds, "seconds", 5, "how long to record")
	cmd.Flags().Float32Var(&amplification, "amplification", 5.0, "input gain applied before analysis")
	out.register(cmd)

	return cmd
}
