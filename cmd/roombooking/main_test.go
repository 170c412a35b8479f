package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/example/roombooking/internal/config"
)

func TestBuildContainer(t *testing.T) {
	logger := slog.Default()

	t.Run("memory backend", func(t *testing.T) {
		container, cleanup, err := buildContainer(context.Background(), config.Config{Storage: config.StorageMemory}, logger)
		if err != nil {
			t.Fatalf("buildContainer: %v", err)
		}
		defer cleanup()

		if container.Rooms == nil || container.Events == nil {
			t.Fatal("container services not wired")
		}
	})

	t.Run("sqlite backend migrates and wires", func(t *testing.T) {
		cfg := config.Config{
			Storage:   config.StorageSQLite,
			SQLiteDSN: filepath.Join(t.TempDir(), "roombooking.db"),
		}
		container, cleanup, err := buildContainer(context.Background(), cfg, logger)
		if err != nil {
			t.Fatalf("buildContainer: %v", err)
		}
		defer cleanup()

		room, err := container.Rooms.RegisterRoom(context.Background(), "Sala 1", 5)
		if err != nil {
			t.Fatalf("RegisterRoom: %v", err)
		}
		if room.ID != 1 {
			t.Fatalf("room id = %d, want 1", room.ID)
		}
	})

	t.Run("unsupported backend", func(t *testing.T) {
		if _, _, err := buildContainer(context.Background(), config.Config{Storage: "tape"}, logger); err == nil {
			t.Fatal("buildContainer succeeded, want error")
		}
	})
}

func TestRun(t *testing.T) {
	cfg := config.Config{Storage: config.StorageMemory}
	if err := run(context.Background(), cfg, slog.Default()); err != nil {
		t.Fatalf("run: %v", err)
	}
}
