package cli

import (
	"bufio"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lagerstyring-client/internal/borrow"
	"lagerstyring-client/internal/model"
	"lagerstyring-client/internal/nav"
	"lagerstyring-client/internal/stub"
)

func newLoginCmd(configPath *string) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the inventory service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			redirect, err := a.session.SignIn(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Printf("Signed in as %s.\n", email)
			if redirect == borrow.BorrowPath {
				a.nav.Navigate(nav.ScreenBorrow, nil)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Destroy the local session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			if err := a.session.SignOut(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func newSearchCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search for devices by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			fmt.Println("Searching...")
			results, err := a.search.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Printf("No devices found for %q.\n", args[0])
				return nil
			}
			for _, item := range results {
				printDevice(item)
			}
			return nil
		},
	}
}

func printDevice(item model.EnrichedDevice) {
	fmt.Printf("ID: %d\n", item.Device.ID)
	fmt.Printf("  Description: %s\n", item.Device.Description)
	fmt.Printf("  Status:      %s\n", item.StatusLabel())
	fmt.Printf("  Device Type: %s\n", item.ModelName())
	fmt.Printf("  Location:    %s\n", item.LocationDetails)
	fmt.Printf("  QR:          %s\n", item.Device.QR)
}

func newBorrowCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "borrow [query]",
		Short: "Borrow a device by scanning its QR code",
		Long: `Starts (or resumes) a borrow attempt. With a query argument the first
matching device is selected; without one the pending attempt from a previous
run is resumed. The scanned code is read from stdin in place of a camera.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if len(args) == 1 {
				results, err := a.search.Search(ctx, args[0])
				if err != nil {
					return err
				}
				if len(results) == 0 {
					return fmt.Errorf("no devices found for %q", args[0])
				}
				if err := a.workflow.Start(ctx, results[0]); err != nil {
					return reportActivate(err)
				}
			} else if err := a.workflow.Activate(ctx); err != nil {
				return reportActivate(err)
			}

			item := a.workflow.Gate().Item()
			fmt.Println("Borrowing:")
			printDevice(item)

			scanner := bufio.NewScanner(os.Stdin)
			for a.workflow.Gate().State() == borrow.StateAwaitingScan {
				fmt.Print("Scan the device code: ")
				if !scanner.Scan() {
					return a.workflow.Cancel(ctx)
				}
				payload := strings.TrimSpace(scanner.Text())
				if _, err := a.workflow.Scan(payload); err != nil {
					if errors.Is(err, borrow.ErrScanMismatch) {
						fmt.Println("The scanned value does not match its device. Try again.")
						continue
					}
					return err
				}
			}

			for {
				fmt.Print("Confirm loan? [y/n]: ")
				if !scanner.Scan() {
					return a.workflow.Cancel(ctx)
				}
				switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
				case "y", "yes":
					ack, err := a.workflow.Confirm(ctx)
					if err != nil {
						fmt.Printf("Submission failed: %v\n", err)
						fmt.Println("Your scan is still valid; answer y to retry.")
						continue
					}
					fmt.Printf("Loan confirmed! Due back %s.\n", ack.EndDate.Format("Monday, 2 Jan 2006"))
					return nil
				case "n", "no":
					return a.workflow.Cancel(ctx)
				}
			}
		},
	}
}

// reportActivate maps workflow activation failures to user-facing messages.
func reportActivate(err error) error {
	switch {
	case errors.Is(err, borrow.ErrAuthRequired):
		return errors.New("sign in first: `lagerclient login`")
	case errors.Is(err, borrow.ErrNoDeviceSelected):
		return errors.New("no device selected: run `lagerclient borrow <query>` or `lagerclient search`")
	default:
		return err
	}
}

func newLoansCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "loans",
		Short: "List your loans",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			userID, err := a.session.UserID(ctx)
			if err != nil {
				return err
			}
			loans, err := a.history.List(ctx, userID)
			if err != nil {
				return err
			}
			if len(loans) == 0 {
				fmt.Println("No active loans found.")
				return nil
			}
			for _, activity := range loans {
				fmt.Printf("#%d device %d: %s -> %s",
					activity.ID, activity.DeviceID,
					activity.StartDate.Format("2006-01-02"),
					activity.EndDate.Format("2006-01-02"))
				if activity.Notes != "" {
					fmt.Printf("  (%s)", activity.Notes)
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func newServeStubCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve-stub",
		Short: "Run a fixture inventory API for local development",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			addr := fmt.Sprintf(":%d", a.cfg.Stub.Port)
			fmt.Printf("Fixture API listening on %s\n", addr)
			return http.ListenAndServe(addr, stub.NewRouter(stub.DefaultFixtures()))
		},
	}
}
