package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/codememory/internal/catalog"
)

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the languages dealt onto the board",
		Long: `Print the language catalog: the embedded default, or the YAML file
named by CATALOG_FILE.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			langs, err := catalog.Load(rootOpts.Config.CatalogFile)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, l := range langs {
				fmt.Fprintf(out, "%2d  %-12s %-8s %s\n", l.ID, l.Name, l.Color, l.Icon)
			}
			fmt.Fprintf(out, "%d languages, %d cards\n", len(langs), 2*len(langs))
			return nil
		},
	}
}
