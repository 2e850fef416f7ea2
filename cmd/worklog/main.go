package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/worklog/internal/cli"
	"github.com/alexanderramin/worklog/internal/config"
	"github.com/alexanderramin/worklog/internal/db"
	"github.com/alexanderramin/worklog/internal/repository"
	"github.com/alexanderramin/worklog/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Configuration problems stop here, before any form is shown.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// The TUI owns stdout and stderr, so logs only go to a file unless
	// --verbose asks for stderr.
	var logOut io.Writer
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}

	wire := func(w io.Writer) service.WorkLogService {
		var entries repository.EntryRepo = store
		var observers []service.UseCaseObserver
		if w != nil {
			entries = repository.NewObservedEntryRepo(store, string(cfg.Backend()), repository.NewLogStoreObserver(w))
			observers = append(observers, service.NewLogUseCaseObserver(w))
		}
		return service.NewWorkLogService(entries, observers...)
	}

	app := &cli.App{
		WorkLog:   wire(logOut),
		ExportDir: cfg.ExportDir,
	}
	app.Verbose = func(w io.Writer) {
		if logOut != nil {
			w = io.MultiWriter(logOut, w)
		}
		app.WorkLog = wire(w)
	}

	// Detect interactive terminal for the form entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// openStore builds the record store named by the endpoint URL.
func openStore(cfg config.Config) (repository.EntryRepo, func(), error) {
	switch cfg.Backend() {
	case config.BackendSQLite:
		database, err := db.OpenDB(cfg.SQLitePath())
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		return repository.NewSQLiteEntryRepo(database, nil), func() { database.Close() }, nil
	default:
		return repository.NewRESTEntryRepo(cfg.StoreURL, cfg.StoreKey, cfg.StoreTimeout()), func() {}, nil
	}
}
