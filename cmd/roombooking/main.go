// Command roombooking prepares the configured booking store: it applies the
// schema migrations and reports the current room and event counts. It has no
// interactive interface; front ends embed the booking container directly.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/roombooking/internal/booking"
	"github.com/example/roombooking/internal/config"
	"github.com/example/roombooking/internal/persistence/memory"
	"github.com/example/roombooking/internal/persistence/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("store preparation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	container, cleanup, err := buildContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	rooms, err := container.Rooms.ListRooms(ctx)
	if err != nil {
		return fmt.Errorf("list rooms: %w", err)
	}
	events, err := container.Events.List(ctx)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}

	logger.Info("booking store ready",
		"storage", cfg.Storage,
		"rooms", len(rooms),
		"events", len(events),
	)
	return nil
}

// buildContainer wires the service container over the configured storage
// backend. The returned cleanup releases storage resources.
func buildContainer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*booking.Container, func(), error) {
	switch cfg.Storage {
	case config.StorageMemory:
		store := memory.NewStorage()
		return booking.NewContainer(store, store, logger), func() {}, nil
	case config.StorageSQLite:
		storage, err := sqlite.Open(cfg.SQLiteDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open storage: %w", err)
		}
		if err := storage.Migrate(ctx); err != nil {
			storage.Close()
			return nil, nil, fmt.Errorf("apply migrations: %w", err)
		}
		cleanup := func() {
			if cerr := storage.Close(); cerr != nil {
				logger.Error("failed to close storage", "error", cerr)
			}
		}
		return booking.NewContainer(storage.Rooms(), storage.Events(), logger), cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage)
	}
}
