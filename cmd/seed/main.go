package main

// seed loads a JSON array of comics straight into the configured store,
// bypassing the HTTP API. Usage: seed [file] (default ./comics.json).

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"comicvault/database"
	"comicvault/internal/config"
	"comicvault/internal/logger"
	"comicvault/internal/microservices/http-api/models"
	"comicvault/internal/microservices/http-api/service"
	"comicvault/internal/microservices/http-api/validation"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	lg := logger.New(cfg.LogLevel, cfg.LogFormat)

	jsonFile := "comics.json"
	if len(os.Args) > 1 {
		jsonFile = os.Args[1]
	}

	comics, err := readComics(jsonFile)
	if err != nil {
		lg.Error("seed_read_failed", "file", jsonFile, "error", err.Error())
		os.Exit(1)
	}
	lg.Info("seed_loaded", "file", jsonFile, "count", len(comics))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg, comics); err != nil {
		lg.Error("seed_failed", "error", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, lg *slog.Logger, comics []models.Comic) error {
	repo, closeStore, err := database.OpenStore(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer closeStore()

	n, err := service.NewComicService(repo).Import(ctx, comics)
	if err != nil {
		return fmt.Errorf("imported %d of %d: %w", n, len(comics), err)
	}
	lg.Info("seed_complete", "inserted", n, "store", cfg.StoreDriver)
	return nil
}

// readComics decodes and validates the whole file before anything is stored.
func readComics(path string) ([]models.Comic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %s", path, validation.BodyError(err).Message)
	}
	in, err := validation.DecodeBatch(raw)
	if err != nil {
		return nil, err
	}
	if err := validation.Batch(in); err != nil {
		return nil, err
	}
	comics := make([]models.Comic, 0, len(in))
	for _, item := range in {
		comics = append(comics, item.ToModel())
	}
	return comics, nil
}
