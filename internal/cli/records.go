package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/robalobadob/codememory/internal/records"
)

var errNoPlayer = errors.New("--player is required")

// NewRecordsCommand creates the records command with its show and reset subcommands.
func NewRecordsCommand(rootOpts *RootOptions) *cobra.Command {
	var player string

	cmd := &cobra.Command{
		Use:   "records",
		Short: "Inspect or reset a player's best records",
	}
	cmd.PersistentFlags().StringVar(&player, "player", "", "player id (the subject of the player token)")

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print high score, best time and max combo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepo(rootOpts, player, func(repo *records.Repo) error {
				rec, err := repo.Load(cmd.Context(), player)
				if err != nil {
					return err
				}
				printRecords(cmd.OutOrStdout(), rec)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the default records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepo(rootOpts, player, func(repo *records.Repo) error {
				if err := repo.Reset(cmd.Context(), player); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Records reset for %s\n", player)
				return nil
			})
		},
	})

	return cmd
}

func withRepo(opts *RootOptions, player string, fn func(*records.Repo) error) error {
	if player == "" {
		return errNoPlayer
	}
	st, err := openStore(opts.Config)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(records.NewRepo(st))
}

func printRecords(w io.Writer, rec records.Records) {
	fmt.Fprintf(w, "High score: %d\n", rec.HighScore)
	fmt.Fprintf(w, "Best time: %s\n", records.FormatBestTime(rec))
	fmt.Fprintf(w, "Max combo: %s\n", records.FormatCombo(rec.MaxCombo))
}
