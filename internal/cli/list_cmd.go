package cli

import (
	"fmt"

	"github.com/alexanderramin/worklog/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the most recent entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.WorkLog.Recent(newSessionContext(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEntryTable(entries, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", recentLimit, "Maximum number of entries (0 for all)")

	return cmd
}
