// main.go - Entry point: serves games over HTTP or plays one in the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"connect4/api"
	"connect4/config"
	"connect4/db"
	"connect4/games"
	"connect4/logging"
	"connect4/terminal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Mode {
	case config.ModeTerminal:
		err = runTerminal(ctx, cfg, logger)
	default:
		err = runServer(ctx, cfg, logger)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("exiting", "err", err)
		os.Exit(1)
	}
}

func runTerminal(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	engine, err := games.NewGame(cfg.BoardWidth, cfg.BoardHeight)
	if err != nil {
		return err
	}
	return terminal.Run(ctx, logger, engine, os.Stdin, os.Stdout)
}

func runServer(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	store := db.NewStore()
	hub := db.NewHub(store, logger, cfg.WSReadTimeout, cfg.WSPingInterval)
	handler := api.NewHandler(store, hub, logger, cfg.BoardWidth, cfg.BoardHeight, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.NewRouter(handler),
	}
	server.RegisterOnShutdown(hub.CloseAll)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
