package main

import (
	"fmt"
	"os"

	"github.com/ArthurB95/linklink/pkg/adapters/backend"
	"github.com/ArthurB95/linklink/pkg/adapters/credstore/sqlite"
	"github.com/ArthurB95/linklink/pkg/adapters/notify"
	"github.com/ArthurB95/linklink/pkg/config"
	"github.com/ArthurB95/linklink/pkg/core/services"
	"github.com/ArthurB95/linklink/pkg/logging"
	"github.com/ArthurB95/linklink/pkg/ports"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "linklink",
	Short: "Manage your Link.Link bio page, short links and QR codes",
	Long: `linklink is the command line companion for Link.Link.

Log in once with 'linklink auth login', then manage your bio page links,
shorten URLs and create QR codes from the terminal. 'linklink dashboard'
opens the interactive link manager.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the wiring every command needs. Commands build it in RunE so
// config problems surface as command errors, not init panics.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	store    *sqlite.Store
	client   *backend.Client
	notifier ports.Notifier

	session   *services.SessionService
	bio       *services.BioPageService
	shortener *services.ShortenerService
	qr        *services.QRCodeService
	resolver  *services.HandleResolver
}

func newApp() (*app, error) {
	cfg := config.Load()

	logger, err := logging.New(cfg.AppEnv)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	store, err := sqlite.NewStore(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}

	client := backend.New(cfg.APIBaseURL, store)
	notifier := notify.NewConsole(os.Stdout)

	return &app{
		cfg:       cfg,
		log:       logger,
		store:     store,
		client:    client,
		notifier:  notifier,
		session:   services.NewSessionService(client, store, logger),
		bio:       services.NewBioPageService(client, notifier, logger),
		shortener: services.NewShortenerService(client, notifier, logger),
		qr:        services.NewQRCodeService(client, notifier, logger),
		resolver:  services.NewHandleResolver(client, logger),
	}, nil
}

func (a *app) Close() {
	_ = a.store.Close()
	_ = a.log.Sync()
}
