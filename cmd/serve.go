package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/0xlemi/phinote/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serves the analyzer over HTTP",
		Long:  `Serves POST /wav_data: the body is a WAV file or raw PCM, the reply is the transcribed notes as JSON.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, err := a.analyzer()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(a.cfg, analyzer, a.log).ListenAndServe(ctx)
		},
	}
}
