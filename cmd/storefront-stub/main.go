package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diyabansal-1605/full-stack-project/internal/config"
	"github.com/diyabansal-1605/full-stack-project/internal/logger"
	"github.com/diyabansal-1605/full-stack-project/internal/stub"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to a yaml config file")
	noSeed := flag.Bool("empty", false, "start without the demo catalog")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.L().WithError(err).Fatal("failed to load config")
	}
	logger.Setup(os.Stderr, cfg.LogLevel)
	log := logger.L()

	store := stub.NewMemoryStore()
	defer store.Close()
	if !*noSeed {
		stub.Seed(store)
	}

	server := stub.NewServer(store, stub.Config{
		JWTSecret:      cfg.Stub.JWTSecret,
		PaymentSecret:  cfg.Stub.PaymentSecret,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Stub.Port,
		Handler:      server.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("storefront stub starting on :%s", cfg.Stub.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exited")
}
