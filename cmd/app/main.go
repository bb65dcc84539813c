package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"commissions/cmd"
	httpin "commissions/internal/adapters/in/http"
	"commissions/internal/adapters/out/notify"
	"commissions/internal/adapters/out/postgres"
	"commissions/internal/adapters/out/postgres/migrations"
	"commissions/internal/adapters/out/promo"
	redisout "commissions/internal/adapters/out/redis"
	"commissions/internal/core/ports"
	"commissions/internal/pkg/logger"
	"commissions/internal/pkg/metrics"

	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const serviceName = "commissions"

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	appLogger := logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       configs.LogLevel,
		Format:      configs.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configs, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("service stopped with error")
	}
}

func run(ctx context.Context, configs cmd.Config, appLogger zerolog.Logger) error {
	gormDB, err := openDatabase(ctx, configs)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	dispatchers := notify.Fanout{notify.NewLogDispatcher(logger.Component(appLogger, "events"))}
	var promos ports.PromoValidator

	if configs.RedisURL != "" {
		client, err := redisout.NewClient(ctx, redisout.Options{URL: configs.RedisURL, PoolSize: configs.RedisPoolSize})
		if err != nil {
			return err
		}
		defer closeRedis(client, appLogger)
		promos = redisout.NewPromoValidator(client)
		dispatchers = append(dispatchers, redisout.NewEventPublisher(client))
	} else {
		codes, err := promo.ParseStaticCodes(configs.PromoCodes)
		if err != nil {
			return err
		}
		promos = promo.NewStaticValidator(codes)
	}

	app := cmd.NewCompositionRoot(configs, cmd.Dependencies{
		DB:         gormDB,
		Promos:     promos,
		Dispatcher: dispatchers,
		Metrics:    m,
		Logger:     appLogger,
	})

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, &app, registry, configs.HTTPPort, appLogger)
}

func openDatabase(ctx context.Context, configs cmd.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}

	switch configs.DBDriver {
	case cmd.DBDriverSQLite:
		gormDB, err := gorm.Open(sqlite.Open(configs.DBDSN), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, err
		}
		// sqlite serialises writers; one connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
		if err := postgres.AutoMigrate(gormDB); err != nil {
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		return gormDB, nil
	default:
		gormDB, err := gorm.Open(pgdriver.Open(configs.PostgresDSN()), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(configs.DBMaxOpenConns)
		sqlDB.SetMaxIdleConns(configs.DBMaxIdleConns)
		sqlDB.SetConnMaxLifetime(configs.DBConnMaxLifetime)
		if err := migrations.Up(ctx, sqlDB); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return gormDB, nil
	}
}

func closeRedis(client *redis.Client, appLogger zerolog.Logger) {
	if err := client.Close(); err != nil {
		appLogger.Warn().Err(err).Msg("closing redis client")
	}
}

func startWebServer(
	ctx context.Context,
	app *cmd.CompositionRoot,
	registry *prometheus.Registry,
	port string,
	appLogger zerolog.Logger,
) error {
	e, err := httpin.NewEcho(ctx, httpin.Options{
		Server:  app.CreateHTTPServer(),
		Metrics: promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		Logger:  appLogger,
	})
	if err != nil {
		return err
	}
	e.Logger.SetLevel(log.WARN)

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().Str("port", port).Msg("http server listening")
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	appLogger.Info().Msg("shutting down http server")
	return e.Shutdown(shutdownCtx)
}
