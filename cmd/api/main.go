package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/inventory-tracker/internal/application/catalog"
	"github.com/jhoicas/inventory-tracker/internal/application/ledger"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/alerts"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/cache"
	httpRouter "github.com/jhoicas/inventory-tracker/internal/interfaces/http"
	"github.com/jhoicas/inventory-tracker/internal/platform"
	"github.com/jhoicas/inventory-tracker/pkg/config"
	"github.com/jhoicas/inventory-tracker/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   "api",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := platform.OpenStore(ctx, cfg.Store, cfg.DB, log.Component("store"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.Close()

	var (
		feedCache ledger.FeedCache
		publisher ledger.AlertPublisher
	)
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisClient.Close()
		feedCache = cache.NewFeedCache(redisClient, cache.DefaultPrefix, cfg.Redis.FeedTTL)

		alertPublisher := alerts.NewPublisher(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer alertPublisher.Close()
		publisher = alertPublisher
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: feeds sin caché y alertas de stock bajo deshabilitadas")
	}

	svc := newCatalog(store, cfg.Catalog, feedCache, publisher, log)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:         cfg.App.Name,
		DocsEnabled:  cfg.Docs.Enabled,
		DocsFilePath: cfg.Docs.FilePath,
		Logger:       log.Component("http"),
	})
	httpRouter.Router(app, httpRouter.RouterDeps{Catalog: svc})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func newCatalog(store *platform.Store, defaults config.CatalogConfig, feedCache ledger.FeedCache, publisher ledger.AlertPublisher, log *logger.Logger) *catalog.Service {
	deps := store.LedgerDeps(log.Component("ledger"))
	deps.Cache = feedCache
	deps.Alerts = publisher
	return store.Catalog(ledger.NewProductLedger(deps), platform.CatalogDefaults(defaults), log.Component("catalog"))
}
