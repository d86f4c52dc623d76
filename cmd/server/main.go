package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/pitchviz/internal/api"
	"github.com/playmatatu/pitchviz/internal/catalog"
	"github.com/playmatatu/pitchviz/internal/config"
	"github.com/playmatatu/pitchviz/internal/database"
	"github.com/playmatatu/pitchviz/internal/logging"
	"github.com/playmatatu/pitchviz/internal/middleware"
	"github.com/playmatatu/pitchviz/internal/migrations"
	"github.com/playmatatu/pitchviz/internal/redis"
	"github.com/playmatatu/pitchviz/internal/ws"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	// Initialize configuration
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Run migrations on start if requested
	if cfg.MigrateOnStart {
		log.Info().Msg("running DB migrations on startup")
		if err := migrations.RunMigrations(cfg.DatabaseURL, migrations.DefaultDir); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	var db *sqlx.DB
	if cfg.CatalogSource == config.SourcePostgres || cfg.MigrateOnStart {
		var err error
		db, err = database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()
	}

	// Redis is optional: it backs the catalog cache and cross-instance reloads
	rdb, err := redis.Connect(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	source, err := buildSource(cfg, db, rdb)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid catalog source")
	}

	holder := catalog.NewHolder(source)
	cat, err := holder.Refresh(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("source", source.Name()).Msg("failed to load catalog")
	}
	log.Info().Str("source", source.Name()).Int("teams", len(cat.Teams())).Int("pitches", cat.Len()).Msg("catalog loaded")

	hub := ws.NewHub(holder, cfg)
	go hub.Run(ctx)
	ws.StartCatalogSubscriber(ctx, rdb, hub)

	// Set up Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())
	api.SetupRoutes(router, db, rdb, cfg, holder, hub)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting pitchviz server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func buildSource(cfg *config.Config, db *sqlx.DB, rdb *goredis.Client) (catalog.Source, error) {
	var inner catalog.Source
	switch cfg.CatalogSource {
	case config.SourceFile:
		inner = catalog.NewFileSource(cfg.CatalogPath)
	case config.SourcePostgres:
		inner = catalog.NewPostgresSource(db)
	default:
		return nil, errors.New("CATALOG_SOURCE must be \"file\" or \"postgres\", got " + cfg.CatalogSource)
	}

	if rdb == nil {
		return inner, nil
	}
	ttl := time.Duration(cfg.CatalogCacheTTLSeconds) * time.Second
	return catalog.NewCachedSource(inner, rdb, ttl), nil
}
