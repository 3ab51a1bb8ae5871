package main

import (
	"fmt"

	"github.com/ArthurB95/linklink/pkg/adapters/tui"
	"github.com/ArthurB95/linklink/pkg/core/services"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive link manager",
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	// The dashboard surfaces outcomes on its own status line, so the
	// services get a TUI notifier instead of the console one.
	notifier := tui.NewNotifier()
	logger := a.log
	bio := services.NewBioPageService(a.client, notifier, logger)
	shortener := services.NewShortenerService(a.client, notifier, logger)
	qr := services.NewQRCodeService(a.client, notifier, logger)

	program := tea.NewProgram(tui.New(bio, shortener, qr, notifier), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard crashed: %w", err)
	}
	return nil
}
