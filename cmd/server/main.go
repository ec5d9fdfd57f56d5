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

	"ColdStore.wms/internal/config"
	"ColdStore.wms/internal/controller"
	"ColdStore.wms/internal/expiry"
	"ColdStore.wms/internal/logger"
	"ColdStore.wms/internal/middleware"
	"ColdStore.wms/internal/poller"
	"ColdStore.wms/internal/repository"
	"ColdStore.wms/internal/routes"
	"ColdStore.wms/internal/service"

	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const serviceName = "coldstore-wms"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		stop()
		_ = log.Sync()
		os.Exit(1)
	}
	log.Info("Server stopped")
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	calendar := expiry.Calendar{}

	source, readingWriter, closeSource, err := initSources(ctx, cfg, calendar, log)
	if err != nil {
		return err
	}
	defer closeSource()

	store, closeStore, err := initStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	dashboard := service.NewDashboardService(source, cfg.Source.PollInterval, log)
	defer dashboard.Close()
	inventory := service.NewInventoryService(source, store, calendar, cfg.Source.NearExpiryDays, log)
	inbound := service.NewInboundService(source, store, calendar, log)

	if err := inventory.Load(ctx); err != nil {
		log.Warn("Initial inventory load failed, serving stored items", zap.Error(err))
	}

	temperaturePoller, err := poller.New(dashboard.Poll, cfg.Source.PollInterval, poller.WithEnabled(cfg.Source.PollingEnabled))
	if err != nil {
		return fmt.Errorf("failed to create temperature poller: %w", err)
	}

	controllers := routes.Controllers{
		Dashboard: controller.NewDashboardController(dashboard, log),
		Inventory: controller.NewInventoryController(inventory, inbound, log),
		Inbound:   controller.NewInboundController(inbound, log),
	}
	if readingWriter != nil {
		controllers.Readings = controller.NewReadingController(service.NewReadingService(readingWriter, log), log)
	}

	router := routes.SetupRouter(controllers)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           c.Handler(middleware.RequestLogger(log)(router)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Server is running", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Info("Temperature polling started",
			zap.Duration("interval", temperaturePoller.Interval()),
			zap.Bool("enabled", temperaturePoller.Enabled()),
		)
		temperaturePoller.Start(gctx)
		<-gctx.Done()
		temperaturePoller.Stop()
		temperaturePoller.Wait()
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// initSources builds the read side. The returned writer is nil unless readings
// are kept in InfluxDB.
func initSources(ctx context.Context, cfg *config.Config, calendar expiry.Calendar, log *zap.Logger) (repository.DataSource, service.ReadingWriter, func(), error) {
	var source repository.DataSource
	switch cfg.Source.Data {
	case config.SourceHTTP:
		log.Info("Using HTTP data source", zap.String("api_url", cfg.Source.APIURL))
		source = repository.NewHTTPSource(cfg.Source.APIURL, cfg.Source.APITimeout, log)
	default:
		log.Info("Using mock data source", zap.Float64("latency_scale", cfg.Source.MockLatencyScale))
		mock := repository.NewMockSource(cfg.Source.MockLatencyScale)
		mock.Calendar = calendar
		source = mock
	}

	if cfg.Source.Temperature != config.SourceInflux {
		return source, nil, func() {}, nil
	}

	influx := repository.NewInfluxDBRepository(cfg.InfluxDB.URL, cfg.InfluxDB.Token, cfg.InfluxDB.Org,
		cfg.InfluxDB.Bucket, cfg.InfluxDB.Lookback, log)
	if err := influx.Ping(ctx); err != nil {
		influx.Close()
		return nil, nil, nil, err
	}
	if err := influx.EnsureBucket(ctx); err != nil {
		influx.Close()
		return nil, nil, nil, err
	}
	log.Info("Using InfluxDB temperature source",
		zap.String("url", cfg.InfluxDB.URL),
		zap.String("bucket", cfg.InfluxDB.Bucket),
	)
	return repository.WithTemperatureSource(source, influx), influx, influx.Close, nil
}

func initStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.ItemStore, func(), error) {
	if cfg.Store.Kind == config.StoreMemory {
		log.Info("Using in-memory item store")
		return repository.NewMemoryItemStore(), func() {}, nil
	}

	client, err := repository.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Using Redis item store", zap.String("addr", cfg.Redis.Addr), zap.String("key", cfg.Store.Key))
	return repository.NewRedisItemStore(client, cfg.Store.Key, log), func() { _ = client.Close() }, nil
}
