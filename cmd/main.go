package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/aggregator"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/cache"
	cacheredis "github.com/Jahnesta3rd/Mingus-2025-sub005/internal/cache/redis"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/config"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/events"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/profile"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/provider"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/scheduler"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/storage"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/telemetry"
)

func newLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

func newClickHouseConnection(cfg *config.Config, logger *zap.Logger) (clickhouse.Conn, error) {
	return storage.Connect(context.Background(), storage.Options{
		DSN:             cfg.ClickHouseDSN,
		MaxOpenConns:    cfg.ClickHouseMaxOpenConns,
		MaxIdleConns:    cfg.ClickHouseMaxIdleConns,
		ConnMaxLifetime: cfg.ClickHouseConnMaxLife,
		Username:        cfg.ClickHouseUsername,
		Password:        cfg.ClickHousePassword,
		Database:        cfg.ClickHouseDatabase,
	}, logger)
}

func newStore(conn clickhouse.Conn, logger *zap.Logger) storage.Store {
	return storage.NewClickHouseStore(conn, logger)
}

func newCache(cfg *config.Config) cache.Cache {
	return cacheredis.New(cache.Options{
		RedisURL:      cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		DefaultTTL:    cfg.ProfileTTL,
	})
}

func newResolver(cfg *config.Config, c cache.Cache, logger *zap.Logger) *profile.Resolver {
	source := profile.NewHTTPSource(cfg.ProfileSourceURL, cfg.ProviderTimeout, logger)
	return profile.NewResolver(source, c, cfg.ProfileTTL, logger)
}

func newAdapters(cfg *config.Config, logger *zap.Logger) []provider.Adapter {
	return []provider.Adapter{
		provider.NewLeverAdapter(cfg.LeverBaseURL, cfg.ProviderTimeout, logger),
		provider.NewGreenhouseAdapter(cfg.GreenhouseBaseURL, cfg.ProviderTimeout, logger),
		provider.NewRemotiveAdapter(cfg.RemotiveBaseURL, cfg.ProviderTimeout, logger),
	}
}

func newPublisher(cfg *config.Config, logger *zap.Logger) (events.Publisher, error) {
	return events.NewPublisher(cfg.NATSURL, cfg.NATSConnTimeout, logger)
}

func newService(adapters []provider.Adapter, resolver *profile.Resolver, store storage.Store, publisher events.Publisher, cfg *config.Config, logger *zap.Logger) *aggregator.Service {
	opts := aggregator.DefaultOptions()
	opts.ProviderTimeout = cfg.ProviderTimeout
	opts.ProviderRetries = cfg.ProviderRetries
	opts.ProviderBackoff = cfg.ProviderBackoff
	opts.SearchDeadline = cfg.SearchDeadline
	opts.TopK = cfg.TopK
	return aggregator.NewService(adapters, resolver, store, publisher, opts, logger)
}

func newRetentionScheduler(store storage.Store, cfg *config.Config, logger *zap.Logger) *scheduler.RetentionScheduler {
	return scheduler.NewRetentionScheduler(store, cfg.PurgeSchedule, cfg.RetentionHorizon, logger)
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			newLogger,
			newClickHouseConnection,
			newStore,
			newCache,
			newResolver,
			newAdapters,
			newPublisher,
			newService,
			newRetentionScheduler,
		),
		fx.Invoke(
			func(cfg *config.Config, lc fx.Lifecycle) error {
				shutdown, err := telemetry.InitTracer(context.Background(), "mingus-search-engine", cfg.OTLPCollectorURL)
				if err != nil {
					return err
				}
				lc.Append(fx.Hook{
					OnStop: func(context.Context) error {
						shutdown()
						return nil
					},
				})
				return nil
			},
			func(retention *scheduler.RetentionScheduler, lc fx.Lifecycle) {
				lc.Append(fx.Hook{
					OnStart: func(context.Context) error {
						return retention.Start()
					},
					OnStop: func(context.Context) error {
						retention.Stop()
						return nil
					},
				})
			},
			func(service *aggregator.Service, logger *zap.Logger) {
				logger.Info("search engine ready",
					zap.Int("providers", len(service.Health())))
			},
		),
	)

	startCtx := context.Background()
	if err := app.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx := context.Background()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}
