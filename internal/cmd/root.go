// Package cmd implements the promptdeck command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thebtf/promptdeck/internal/config"
	"github.com/thebtf/promptdeck/internal/engine"
	"github.com/thebtf/promptdeck/internal/history"
	"github.com/thebtf/promptdeck/internal/slot"
	"github.com/thebtf/promptdeck/internal/suggest"
	"github.com/thebtf/promptdeck/internal/telemetry"
	"github.com/thebtf/promptdeck/pkg/models"
)

// globalOptions holds the persistent flags.
type globalOptions struct {
	debug   bool
	storage string
	dataDir string
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "promptdeck",
		Short: "Generate, categorize and keep creative prompt ideas",
		Long: `promptdeck turns a topic into five creative prompt suggestions,
files it under a category and keeps a local history of what you asked for.

Examples:
  promptdeck generate space exploration
  promptdeck history --window week
  promptdeck serve`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), opts.debug)
			if opts.dataDir != "" {
				if err := os.Setenv("PROMPTDECK_DATA_DIR", opts.dataDir); err != nil {
					return fmt.Errorf("set data dir: %w", err)
				}
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&opts.storage, "storage", "", "Storage backend: memory, file, sqlite, postgres or redis (default from settings)")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Data directory (default: ~/.promptdeck)")

	root.AddCommand(
		newGenerateCmd(opts),
		newHistoryCmd(opts),
		newCatalogCmd(opts),
		newCategoriesCmd(),
		newServeCmd(opts),
		newVersionCmd(),
	)
	return root
}

// setupLogging sends console logs to w. Commands stay quiet below warn
// unless --debug is set.
func setupLogging(w io.Writer, debug bool) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, NoColor: true})
}

// loadConfig reads settings and applies flag overrides.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	if err := config.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load config, using defaults")
		cfg = config.Default()
	}
	if o.storage != "" {
		cfg.Storage = o.storage
	}
	return cfg, nil
}

// session is an open history store plus the engine driving it.
type session struct {
	cfg    *config.Config
	store  *history.Store
	engine *engine.Engine
	list   models.HistoryList
}

func (o *globalOptions) openSession(ctx context.Context) (*session, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	s, err := slot.Open(ctx, slot.OptionsFromConfig(cfg))
	if err != nil {
		return nil, err
	}

	store := history.NewStore(s, cfg.SlotName)
	eng := engine.New(store,
		engine.WithGenerator(suggest.Generator{Enhanced: cfg.EnhancedSuggestions}),
		engine.WithMetrics(telemetry.Global()),
	)

	list, err := eng.Load(ctx)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &session{cfg: cfg, store: store, engine: eng, list: list}, nil
}

func (s *session) Close() error {
	return s.store.Close()
}
