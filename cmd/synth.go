package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/0xlemi/phinote/internal/audio"
	"github.com/0xlemi/phinote/internal/pitch"
	"github.com/0xlemi/phinote/internal/synth"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newSynthCmd(a *app) *cobra.Command {
	var (
		notes      string
		oscillator string
		output     string
		raw        bool
	)

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Writes a test melody",
		Long:  `Writes a melody given as name:seconds pairs, e.g. "A4:1,C5:2,silence:1", as WAV (or raw PCM with --raw).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := parseSteps(notes)
			if err != nil {
				return err
			}
			osc, err := synth.ParseOscillator(oscillator)
			if err != nil {
				return err
			}

			format := a.cfg.Format()
			pcm := synth.Melody(steps, format, osc)

			f, err := os.Create(output)
			if err != nil {
				return errors.WithStack(err)
			}
			defer f.Close()

			if raw {
				_, err = f.Write(pcm)
			} else {
				err = audio.WriteWAV(f, format, pcm)
			}
			if err != nil {
				return errors.WithStack(err)
			}
			return errors.WithStack(f.Close())
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "A4:4", "comma separated name:seconds pairs")
	cmd.Flags().StringVar(&oscillator, "oscillator", "sine", "sine, square, sawtooth or triangle")
	cmd.Flags().StringVarP(&output, "out", "o", "melody.wav", "output file")
	cmd.Flags().BoolVar(&raw, "raw", false, "write raw PCM without a WAV header")

	return cmd
}

// parseSteps turns "A4:1,silence:0.5" into synth steps.
func parseSteps(notes string) ([]synth.Step, error) {
	catalog := pitch.StandardCatalog()

	var steps []synth.Step
	for _, part := range strings.Split(notes, ",") {
		name, secs, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, errors.Errorf("note %q: want name:seconds", part)
		}
		seconds, err := strconv.ParseFloat(secs, 64)
		if err != nil || seconds <= 0 {
			return nil, errors.Errorf("note %q: bad duration", part)
		}

		step := synth.Step{Seconds: seconds}
		if name != pitch.SilenceName {
			p, ok := catalog.Get(name)
			if !ok {
				return nil, errors.Errorf("note %q: unknown pitch", part)
			}
			step.Frequency = p.Frequency
		}
		steps = append(steps, step)
	}
	return steps, nil
}
