package main

import (
	"os"

	"github.com/0xlemi/phinote/internal/analysis"
	"github.com/0xlemi/phinote/internal/config"
	"github.com/0xlemi/phinote/internal/logging"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg config.Config
	log logging.Logger
}

// analyzer builds an analyzer from the parsed configuration.
func (a *app) analyzer() (*analysis.Analyzer, error) {
	return analysis.New(a.cfg, analysis.WithLogger(a.log))
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default()}

	// Environment first so that explicit flags win. A bad value is
	// reported once a command runs.
	envErr := a.cfg.ApplyEnv()

	root := &cobra.Command{
		Use:           "phinote",
		Short:         "Transcribes monophonic audio into notes",
		Long:          `phinote splits PCM audio into one-second frames, finds the dominant frequency of each frame and merges runs of the same pitch into note events.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return envErr
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			log, err := logging.New(os.Stderr, a.cfg.LogLevel)
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
	}

	a.cfg.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newAnalyzeCmd(a),
		newServeCmd(a),
		newListenCmd(a),
		newSynthCmd(a),
	)
	return root
}

func main() {
	cobra.CheckErr(newRootCmd().Execute())
}
