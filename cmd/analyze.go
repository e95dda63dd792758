package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/0xlemi/phinote/internal/analysis"
	"github.com/0xlemi/phinote/internal/audio"
	"github.com/0xlemi/phinote/internal/logging"
	"github.com/0xlemi/phinote/internal/midifile"
	"github.com/0xlemi/phinote/internal/ui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type outputOptions struct {
	json bool
	tui  bool
	midi string
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.json, "json", false, "print the notes as JSON")
	cmd.Flags().BoolVar(&o.tui, "tui", false, "browse the notes in a terminal viewer")
	cmd.Flags().StringVar(&o.midi, "midi", "", "also write the notes to this MIDI file")
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var out outputOptions

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Transcribes a WAV file or raw PCM",
		Long:  `Transcribes a WAV file, or raw PCM in the format given by --sample-rate, --channels and --bit-depth.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, err := a.analyzer()
			if err != nil {
				return err
			}

			format, raw, err := readAudio(args[0], analyzer.Format())
			if err != nil {
				return err
			}

			a.log.Debug("read input", logging.Fields{"file": args[0], "bytes": len(raw), "format": format.String()})
			chunk, err := analyzer.AnalyzeFormat(cmd.Context(), raw, format)
			if err != nil {
				return errors.Wrap(err, args[0])
			}

			return out.emit(cmd.OutOrStdout(), filepath.Base(args[0]), chunk)
		},
	}
	out.register(cmd)

	return cmd
}

// readAudio loads path as WAV when it has a RIFF header, otherwise as raw
// PCM in the fallback format.
func readAudio(path string, fallback audio.Format) (audio.Format, []byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return audio.Format{}, nil, errors.WithStack(err)
	}
	defer f.Close()

	header := make([]byte, 12)
	n, _ := io.ReadFull(f, header)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return audio.Format{}, nil, errors.WithStack(err)
	}

	if audio.IsWAV(header[:n]) {
		return audio.ReadWAV(f)
	}

	raw, err := io.ReadAll(f)
	if err != nil {
		return audio.Format{}, nil, errors.WithStack(err)
	}
	return fallback, raw, nil
}

func (o *outputOptions) emit(w io.Writer, title string, chunk *analysis.Chunk) error {
	if o.midi != "" {
		if err := writeMIDI(o.midi, title, chunk); err != nil {
			return err
		}
	}

	switch {
	case o.json:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(chunk)
	case o.tui:
		return ui.Run("phinote - "+title, chunk)
	default:
		printNotes(w, chunk)
		return nil
	}
}

func writeMIDI(path, title string, chunk *analysis.Chunk) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	opts := midifile.DefaultOptions
	opts.Name = title
	if err := midifile.Write(f, chunk, opts); err != nil {
		return err
	}
	return errors.WithStack(f.Close())
}

func printNotes(w io.Writer, chunk *analysis.Chunk) {
	for _, n := range chunk.Notes {
		if n.Pitch.IsSilence() {
			fmt.Fprintf(w, "%7.2fs %7.2fs  %s\n", n.Start, n.End, n.Pitch.Name)
			continue
		}
		fmt.Fprintf(w, "%7.2fs %7.2fs  %-4s %8.2f Hz %+6.1f cents\n",
			n.Start, n.End, n.Pitch.Name, n.Pitch.Measured, n.Pitch.Cents)
	}
}
