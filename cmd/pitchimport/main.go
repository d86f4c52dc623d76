package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/playmatatu/pitchviz/internal/catalog"
	"github.com/playmatatu/pitchviz/internal/config"
	"github.com/playmatatu/pitchviz/internal/database"
	"github.com/playmatatu/pitchviz/internal/logging"
	"github.com/playmatatu/pitchviz/internal/migrations"
	"github.com/playmatatu/pitchviz/internal/redis"
	"github.com/playmatatu/pitchviz/internal/ws"
)

// pitchimport loads a catalog JSON file into the pitches table and tells
// running servers to reload.
func main() {
	cfg := config.Load()

	file := flag.String("file", cfg.CatalogPath, "catalog JSON file to import")
	migrate := flag.Bool("migrate", cfg.MigrateOnStart, "apply migrations before importing")
	migrationsDir := flag.String("migrations", migrations.DefaultDir, "migrations directory")
	flag.Parse()

	logging.Setup(cfg.LogLevel, cfg.Environment)
	logger := logging.Component("import")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cat, err := catalog.LoadFile(*file)
	if err != nil {
		logger.Fatal().Err(err).Str("file", *file).Msg("failed to read catalog")
	}
	logger.Info().Str("file", *file).Int("pitches", cat.Len()).Int("teams", len(cat.Teams())).Msg("catalog parsed")

	if *migrate {
		if err := migrations.RunMigrations(cfg.DatabaseURL, *migrationsDir); err != nil {
			logger.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	start := time.Now()
	n, err := catalog.Import(ctx, db, cat)
	if err != nil {
		logger.Fatal().Err(err).Msg("import failed")
	}
	logger.Info().Int("rows", n).Dur("took", time.Since(start)).Msg("pitches imported")

	rdb, err := redis.Connect(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable; running servers keep their cached catalog until reloaded")
		return
	}
	if rdb == nil {
		return
	}
	defer rdb.Close()

	cached := catalog.NewCachedSource(catalog.NewPostgresSource(db), rdb, 0)
	if err := cached.Invalidate(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to drop cached catalog")
	}
	if err := ws.PublishCatalogReload(ctx, rdb, "pitchimport", n); err != nil {
		logger.Warn().Err(err).Msg("failed to announce reload")
	}
}
