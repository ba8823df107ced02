package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"ledgerbot/internal/chat/amqpgw"
	"ledgerbot/internal/config"
	"ledgerbot/internal/contacts"
	"ledgerbot/internal/dispatch"
	"ledgerbot/internal/httpserv"
	"ledgerbot/internal/ledger"
	"ledgerbot/internal/pairing"
	ports "ledgerbot/internal/sheets"
	gsheet "ledgerbot/internal/sheets/google"
	mem "ledgerbot/internal/sheets/memory"
	"ledgerbot/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting ledgerbot")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Choose ledger store backend (default: memory).
	var store ports.Store
	switch cfg.StoreBackend {
	case "sheets":
		cli, err := gsheet.NewFromEnv(ctx, cfg.SpreadsheetID)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err, "backend", cfg.StoreBackend)
			os.Exit(1)
		}
		store = cli
		logger.Info("Initialized Google Sheets backend", "spreadsheet_id", cfg.SpreadsheetID)
	default:
		store = mem.New()
		logger.Info("Initialized memory backend", "backend", cfg.StoreBackend)
	}

	journal, err := storage.Open(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open journal", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer journal.Close()

	gw, err := amqpgw.Dial(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPInboundQueue, cfg.AMQPPairingQueue, cfg.LookupTimeout)
	if err != nil {
		logger.Error("Failed to connect to chat bridge", "error", err)
		os.Exit(1)
	}
	defer gw.Close()

	resolver := contacts.NewResolver(contacts.ParseAliases(cfg.SenderAliases))
	writer := ledger.NewWriter(store)
	dispatcher := dispatch.New(gw, writer, resolver, journal, cfg.GroupName, cfg.ReactionEmoji)

	cell := &pairing.Cell{}
	srv := httpserv.New(":"+cfg.Port, cell)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("Consuming chat events", "group", cfg.GroupName)
		if err := gw.Consume(ctx, dispatcher.HandleEvent, cell.Set); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Service error", "error", err)
		os.Exit(1)
	}

	logger.Info("Stopped gracefully")
}
