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

	"github.com/Patrick0307/404-ZOO/internal/api"
	"github.com/Patrick0307/404-ZOO/internal/chain"
	"github.com/Patrick0307/404-ZOO/internal/feed"
	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/Patrick0307/404-ZOO/internal/infra/logging"
	"github.com/Patrick0307/404-ZOO/internal/infra/pgutils"
	"github.com/Patrick0307/404-ZOO/internal/services/admin"
	"github.com/Patrick0307/404-ZOO/internal/services/decks"
	"github.com/Patrick0307/404-ZOO/internal/services/economy"
	"github.com/Patrick0307/404-ZOO/internal/services/gacha"
	"github.com/Patrick0307/404-ZOO/internal/services/market"
	"github.com/Patrick0307/404-ZOO/internal/services/match"
	"github.com/Patrick0307/404-ZOO/pkg/envconf"
	"github.com/Patrick0307/404-ZOO/pkg/shutdownqueue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	cfg := new(apiConfig)

	err := envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON(cfg.LogLevel)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	treasury, err := game.ParseIdentity(cfg.TreasuryHex)
	if err != nil {
		return fmt.Errorf("parse treasury key: %w", err)
	}

	// --- Infra ---
	dbConns, err := pgutils.OpenDB(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	backend, err := openChainBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open chain backend: %w", err)
	}

	hub := feed.NewHub()

	// --- Services ---
	svc := api.Services{
		Admin:   admin.New(dbConns),
		Economy: economy.New(dbConns, backend, treasury),
		Gacha:   gacha.New(dbConns, backend, backend, hub),
		Market:  market.New(dbConns, hub),
		Match:   match.New(dbConns, hub),
		Decks:   decks.New(dbConns),
	}

	// --- HTTP server ---
	srv := api.NewServer(cfg.Port, svc, hub)

	// Register HTTP server graceful shutdown
	shutdownqueue.Add(func(c context.Context) error {
		slog.Info("Shut down server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	// Run server
	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", "chain_mode", cfg.Chain.Mode)

	// --- Wait until either context cancels or server errors out ---
	select {
	case <-ctx.Done():
		// graceful path; deferred shutdownqueue.Shutdown will run
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}

func openChainBackend(ctx context.Context, cfg *apiConfig) (chain.Backend, error) {
	switch cfg.Chain.Mode {
	case "", "local":
		return chain.NewLocalBackend(), nil
	case "ethereum":
		return chain.DialEthereum(ctx, cfg.Chain.RPCURL, cfg.Chain.OperatorKeyHex, cfg.Chain.RegistryHex)
	default:
		return nil, fmt.Errorf("unknown chain mode %q", cfg.Chain.Mode)
	}
}
