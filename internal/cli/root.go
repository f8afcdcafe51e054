package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/codememory/internal/config"
	"github.com/robalobadob/codememory/internal/store"
)

// Store backends accepted by --store.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// RootOptions holds global flags for all commands, seeded from the environment.
type RootOptions struct {
	Config config.Config
}

// NewRootCommand creates the root command. cfg supplies flag defaults.
func NewRootCommand(cfg config.Config) *cobra.Command {
	opts := &RootOptions{Config: cfg}

	cmd := &cobra.Command{
		Use:   "codememory",
		Short: "Code Memory - a programming-language matching game",
		Long:  "Serves the Code Memory game over HTTP and manages each player's best records.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := validateStore(opts.Config.Store); err != nil {
				return err
			}
			return setupLogging(opts.Config, cmd.ErrOrStderr())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.Config.DBPath, "db", cfg.DBPath, "SQLite database path")
	cmd.PersistentFlags().StringVar(&opts.Config.Store, "store", cfg.Store, "records backend (sqlite|memory)")
	cmd.PersistentFlags().StringVar(&opts.Config.LogLevel, "log-level", cfg.LogLevel, "log level (debug|info|warn|error)")

	// Add subcommands
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewRecordsCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))

	return cmd
}

func validateStore(name string) error {
	switch name {
	case StoreSQLite, StoreMemory:
		return nil
	}
	return fmt.Errorf("invalid store %q: must be one of [%s %s]", name, StoreSQLite, StoreMemory)
}

// setupLogging configures the global zerolog logger.
func setupLogging(cfg config.Config, stderr io.Writer) error {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	zerolog.SetGlobalLevel(lvl)
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: stderr})
	} else {
		log.Logger = zerolog.New(stderr).With().Timestamp().Logger()
	}
	return nil
}

// openStore opens the backend named by --store.
func openStore(cfg config.Config) (store.Store, error) {
	if cfg.Store == StoreMemory {
		return store.NewMemoryStore(), nil
	}
	s, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBPath, err)
	}
	return s, nil
}
