package cli

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/export"
	"github.com/alexanderramin/worklog/internal/service"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// ErrNotInteractive is returned when the form is requested without a terminal.
var ErrNotInteractive = errors.New("interactive mode requires a terminal; use 'worklog log' or 'worklog export'")

// App holds the services and settings used by CLI commands and the TUI.
type App struct {
	WorkLog   service.WorkLogService
	ExportDir string

	// Clock drives the timer and export filenames. Nil means time.Now.
	Clock domain.Clock

	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool

	// Verbose, when set, rewires WorkLog so use-case and store events are
	// logged to w. Called once by --verbose before a subcommand runs.
	Verbose func(w io.Writer)
}

func (a *App) now() time.Time {
	if a.Clock == nil {
		return time.Now()
	}
	return a.Clock()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// newSessionContext tags a fresh context with a new session id.
func newSessionContext() context.Context {
	return service.ContextWithSessionID(context.Background(), uuid.NewString())
}

// saveExport renders every stored entry and writes the workbook into dir.
// service.ErrNothingToExport is returned unchanged so callers can show a notice.
func saveExport(ctx context.Context, app *App, dir string) (path string, rows int, err error) {
	file, err := app.WorkLog.Export(ctx, app.now())
	if err != nil {
		return "", 0, err
	}
	path, err = export.Save(dir, file.Filename, file.Data)
	if err != nil {
		return "", 0, err
	}
	return path, file.Rows, nil
}

// NewRootCmd creates the top-level "worklog" command and registers all
// subcommands against the provided App. Without a subcommand it opens the
// interactive entry form.
func NewRootCmd(app *App) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "worklog",
		Short:         "Track time spent on requests from other departments",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose && app.Verbose != nil {
				app.Verbose(cmd.ErrOrStderr())
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return ErrNotInteractive
			}
			return runTUI(app)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log service and store calls to stderr")

	root.AddCommand(
		newLogCmd(app),
		newExportCmd(app),
		newListCmd(app),
	)

	return root
}
