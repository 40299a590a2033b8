package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dreamchaser/dreamchaser/internal/cli"
	"github.com/dreamchaser/dreamchaser/internal/config"
	"github.com/dreamchaser/dreamchaser/internal/service"
	"github.com/dreamchaser/dreamchaser/internal/store"
	"github.com/dreamchaser/dreamchaser/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("dreamchaser %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	st, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.EnsureTables(); err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing data store: %v\n", err)
		os.Exit(1)
	}

	svc := service.New(st)

	// With arguments, run one scripted command instead of the UI.
	if len(os.Args) > 1 {
		os.Exit(cli.Run(svc, os.Args[1:], os.Stdout, os.Stderr))
	}

	app := ui.NewApp(svc)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) (store.Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}
	switch cfg.Engine {
	case config.EngineSQLite:
		return store.NewSQLite(cfg.DBPath())
	default:
		return store.NewCSV(cfg.DataDir), nil
	}
}
