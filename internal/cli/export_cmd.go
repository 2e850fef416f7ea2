package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/worklog/internal/cli/formatter"
	"github.com/alexanderramin/worklog/internal/service"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every entry to an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := outDir
			if dir == "" {
				dir = app.ExportDir
			}

			path, rows, err := saveExport(newSessionContext(), app, dir)
			if errors.Is(err, service.ErrNothingToExport) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No entries recorded."))
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatExported(path, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "Directory for the workbook (default: configured export dir)")

	return cmd
}
