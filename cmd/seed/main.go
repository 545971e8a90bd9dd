package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/youtube-seguro/video-catalog-go/internal/config"
	"github.com/youtube-seguro/video-catalog-go/internal/db"
	"github.com/youtube-seguro/video-catalog-go/internal/db/models"
	"github.com/youtube-seguro/video-catalog-go/internal/db/repository"
	"github.com/youtube-seguro/video-catalog-go/internal/service"
	"github.com/youtube-seguro/video-catalog-go/internal/service/youtube"
	"github.com/youtube-seguro/video-catalog-go/internal/validation"
	"github.com/youtube-seguro/video-catalog-go/pkg/logger"
)

// initialVideos is the starter catalog imported when no ids are given.
var initialVideos = map[string][]string{
	"Religion": {
		"v4QcFJEFPZE", // Santo Rosario - EWTN
		"Jx7YBFzYsz4", // Misa de Hoy - EWTN
	},
	"Recetas": {
		"q8qZnLQ4FJg", // Pozole Rojo - Jauja Cocina
		"WjHvPTT1qfA", // Tamales - Jauja Cocina
	},
	"Plantas": {
		"XqW2LTUqLJs", // Cuidado de Suculentas
	},
	"Musica": {
		"c7VJaqqDVzY", // Vicente Fernández
	},
}

// VideoFetcher resolves YouTube ids into catalog input.
type VideoFetcher interface {
	FetchVideos(ctx context.Context, videoIDs []string) (map[string]*models.VideoInput, error)
}

// VideoCreator adds videos to the catalog.
type VideoCreator interface {
	CreateVideo(ctx context.Context, in *models.VideoInput) (int64, error)
}

// seedResult counts the outcome of one import run.
type seedResult struct {
	Added      int
	Duplicates int
	Failed     int
}

func main() {
	var (
		category string
		ids      string
		timeout  time.Duration
	)

	flag.StringVar(&category, "category", "", "Category for the ids given with -ids")
	flag.StringVar(&ids, "ids", "", "Comma-separated YouTube video ids (defaults to the starter catalog)")
	flag.DurationVar(&timeout, "timeout", 2*time.Minute, "Overall timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	batches, err := buildBatches(category, ids)
	if err != nil {
		logger.Log.Fatal("Invalid arguments", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := youtube.NewClient(ctx, cfg.YouTube.APIKey)
	if err != nil {
		logger.Log.Fatal("Failed to create YouTube client", zap.Error(err))
	}

	pool, err := db.NewPool(ctx, db.FromAppConfig(cfg.Database))
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close(pool)

	store := repository.NewCatalogRepository(pool)
	catalog := service.NewCatalogService(
		store,
		validation.New(cfg.Catalog.StrictYouTubeID),
		service.NewModerator(service.NewStoreTermSource(store), cfg.Moderation.Enabled),
		nil,
		models.OrderDefault,
	)

	result := seed(ctx, client, catalog, batches)
	logger.Log.Info("Seeding finished",
		zap.Int("added", result.Added),
		zap.Int("duplicates", result.Duplicates),
		zap.Int("failed", result.Failed),
	)
}

// buildBatches returns category -> ids from the flags, or the starter
// catalog when no ids are given.
func buildBatches(category, ids string) (map[string][]string, error) {
	if strings.TrimSpace(ids) == "" {
		return initialVideos, nil
	}
	if strings.TrimSpace(category) == "" {
		return nil, errors.New("-category is required with -ids")
	}

	var list []string
	for _, id := range strings.Split(ids, ",") {
		if id = strings.TrimSpace(id); id != "" {
			list = append(list, id)
		}
	}
	if len(list) == 0 {
		return nil, errors.New("-ids contains no video ids")
	}

	return map[string][]string{strings.TrimSpace(category): list}, nil
}

// seed fetches every id and adds it under its category. Duplicates and
// unavailable videos are reported and skipped.
func seed(ctx context.Context, fetcher VideoFetcher, creator VideoCreator, batches map[string][]string) seedResult {
	var result seedResult

	categories := make([]string, 0, len(batches))
	for category := range batches {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		for _, chunk := range youtube.BatchVideoIDs(batches[category], youtube.MaxBatchSize) {
			videos, err := fetcher.FetchVideos(ctx, chunk)
			if err != nil {
				logger.Log.Error("Failed to fetch videos", zap.String("category", category), zap.Error(err))
				result.Failed += len(chunk)
				continue
			}

			for _, id := range chunk {
				in, ok := videos[id]
				if !ok {
					logger.Log.Warn("Video not available", zap.String("youtubeId", id))
					result.Failed++
					continue
				}
				in.Category = category

				videoID, err := creator.CreateVideo(ctx, in)
				switch {
				case err == nil:
					logger.Log.Info("Added video", zap.Int64("videoId", videoID), zap.String("title", in.Title))
					result.Added++
				case db.IsDuplicateKey(err):
					logger.Log.Warn("Video already in catalog", zap.String("youtubeId", id), zap.String("title", in.Title))
					result.Duplicates++
				default:
					logger.Log.Error("Failed to add video", zap.String("youtubeId", id), zap.Error(err))
					result.Failed++
				}
			}
		}
	}

	return result
}
