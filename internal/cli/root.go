// Package cli is the terminal front end for the loan client. It plays the
// role the mobile screens play in the app proper: driving the session,
// search and borrow workflows and acting as the navigation boundary.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lagerstyring-client/config"
	"lagerstyring-client/internal/api"
	"lagerstyring-client/internal/borrow"
	"lagerstyring-client/internal/db"
	"lagerstyring-client/internal/loan"
	"lagerstyring-client/internal/logger"
	"lagerstyring-client/internal/nav"
	"lagerstyring-client/internal/search"
	"lagerstyring-client/internal/session"
	"lagerstyring-client/internal/store"
)

// app bundles the wired-up services a command needs.
type app struct {
	cfg      *config.Config
	session  *session.Manager
	search   *search.Service
	history  *loan.History
	workflow *borrow.Workflow
	nav      *consoleNavigator
}

// consoleNavigator renders navigation requests as console hints; the CLI has
// no screen stack to transition.
type consoleNavigator struct{}

func (consoleNavigator) Navigate(screen string, params map[string]string) {
	switch screen {
	case nav.ScreenLogin:
		fmt.Println("You are not signed in. Run `lagerclient login` first.")
	case nav.ScreenBorrow:
		fmt.Println("A borrow attempt is pending. Run `lagerclient borrow` to resume it.")
	case nav.ScreenSearch:
		fmt.Println("Returning to search.")
	case nav.ScreenHome:
		// Commands exit on their own; nothing to transition.
	}
}

func newApp(configPath string) (*app, error) {
	var cfg *config.Config
	if configPath == "" {
		cfg = config.Default()
	} else {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration from %s: %w", configPath, err)
		}
		cfg = loaded
	}

	log, err := logger.New(cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	gormDB, err := db.Init(&cfg.Store)
	if err != nil {
		return nil, err
	}

	localStore := store.NewGormStore(gormDB)
	client := api.NewClient(&cfg.API, log)
	inv := api.NewInventory(client)
	navigator := &consoleNavigator{}

	sess := session.NewManager(localStore, inv, navigator, log)
	submitter := loan.NewSubmitter(inv, localStore, log)
	scheduler := loan.NewScheduler(cfg.Loan.PeriodDays)

	return &app{
		cfg:      cfg,
		session:  sess,
		search:   search.NewService(inv, &cfg.Cache, log),
		history:  loan.NewHistory(inv),
		workflow: borrow.NewWorkflow(localStore, sess, scheduler, submitter, navigator, log),
		nav:      navigator,
	}, nil
}

// Execute runs the CLI.
func Execute(ctx context.Context) {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "lagerclient",
		Short: "Inventory loan client",
		Long:  `Search the equipment inventory and borrow devices by scanning their QR codes.`,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "Path to the configuration file")

	rootCmd.AddCommand(
		newLoginCmd(&configPath),
		newLogoutCmd(&configPath),
		newSearchCmd(&configPath),
		newBorrowCmd(&configPath),
		newLoansCmd(&configPath),
		newServeStubCmd(&configPath),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
