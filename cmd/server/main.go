package main

import (
	"log"
	"net/http"
	"time"

	"github.com/ArthurB95/linklink/pkg/adapters/backend"
	"github.com/ArthurB95/linklink/pkg/adapters/credstore/sqlite"
	"github.com/ArthurB95/linklink/pkg/adapters/handler"
	"github.com/ArthurB95/linklink/pkg/config"
	"github.com/ArthurB95/linklink/pkg/core/services"
	"github.com/ArthurB95/linklink/pkg/logging"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	store, err := sqlite.NewStore(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to open credential store", zap.Error(err))
	}
	defer store.Close()

	client := backend.New(cfg.APIBaseURL, store)
	resolver := services.NewHandleResolver(client, logger)

	mux := handler.NewRouter(cfg, resolver, client, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logger.Info("Gateway starting", zap.String("port", cfg.Port))
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
