package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/codememory/internal/catalog"
	"github.com/robalobadob/codememory/internal/clock"
	"github.com/robalobadob/codememory/internal/httpserver"
	"github.com/robalobadob/codememory/internal/records"
	"github.com/robalobadob/codememory/internal/session"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP game server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(rootOpts)
		},
	}
	cmd.Flags().StringVar(&rootOpts.Config.Port, "port", rootOpts.Config.Port, "listen port")
	return cmd
}

func runServe(opts *RootOptions) error {
	cfg := opts.Config
	if err := catalog.Init(cfg.CatalogFile); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	langs := catalog.Languages()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	games := session.NewManager(clock.Real{}, records.NewRepo(st), cfg.GameIdle)
	defer games.Close()

	srv := httpserver.New(cfg, games, langs)
	_, deck := catalog.Stats()
	log.Info().
		Str("port", cfg.Port).
		Str("store", cfg.Store).
		Int("deck", deck).
		Dur("game_idle", cfg.GameIdle).
		Msg("starting codememory")
	return srv.Start(":" + cfg.Port)
}
