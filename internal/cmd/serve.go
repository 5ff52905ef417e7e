package cmd

import (
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thebtf/promptdeck/internal/config"
	"github.com/thebtf/promptdeck/internal/worker"
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local HTTP API",
		Long: `Run the promptdeck HTTP API on the configured host and port
(PROMPTDECK_WORKER_HOST, PROMPTDECK_WORKER_PORT).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.debug {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}

			if err := config.EnsureAll(); err != nil {
				log.Warn().Err(err).Msg("Failed to write default settings")
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc, err := worker.New(ctx, cfg, worker.Options{Version: Version})
			if err != nil {
				return err
			}
			return svc.Run(ctx)
		},
	}
}
