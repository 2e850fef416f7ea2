package cli

import (
	"fmt"

	"github.com/alexanderramin/worklog/internal/cli/formatter"
	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	var name, dept, task string
	var minutes int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record an entry without the interactive form",
		Example: `  worklog log --name Kim --dept Sales --task "Quarterly report" --minutes 45`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if minutes < domain.MinManualMinutes {
				return &domain.ValidationError{Kind: domain.KindNonPositiveDuration}
			}
			entry, err := app.WorkLog.Submit(newSessionContext(), domain.FormInput{
				Name:          name,
				RequestedDept: dept,
				Task:          task,
				DurationMin:   float64(minutes),
				TimerState:    domain.TimerIdle,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSaved(entry))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Team member name")
	cmd.Flags().StringVar(&dept, "dept", "", "Department that requested the work")
	cmd.Flags().StringVar(&task, "task", "", "Description of the work")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Time spent in whole minutes")

	return cmd
}
