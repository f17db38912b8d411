package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"amphorank/adapters/api"
	"amphorank/adapters/excel"
	"amphorank/adapters/rng"
	"amphorank/app"
	"amphorank/internal"
	"amphorank/internal/config"
	"amphorank/internal/monitoring"
	"amphorank/ports"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Logging.Level))
	defer logger.Sync()

	engineConfig, err := config.LoadEngineConfig(appConfig.Engine.Path)
	if err != nil {
		logger.Fatal("Failed to load engine configuration: %v", err)
	}

	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)
	service, err := app.NewRankingService(app.ServiceConfig{
		Engine:       engineConfig,
		StackFile:    appConfig.Data.StackFile,
		HoldDropFile: appConfig.Data.HoldDropFile,
		DefaultSeed:  appConfig.Ranking.RandomSeed,
	}, app.Dependencies{
		Source:  excel.NewLoader(appConfig.Data.Sheet, logger),
		NewRNG:  func(seed int64) ports.RNGPort { return rng.NewSeeded(seed) },
		Metrics: metrics,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal("Failed to create ranking service: %v", err)
	}

	if appConfig.HasDataFiles() {
		logger.Info("Using data files: stack=%s hold/drop=%s", appConfig.Data.StackFile, appConfig.Data.HoldDropFile)
	} else {
		logger.Warn("No data files configured; only POST /api/v1/rankings is usable")
	}

	gin.SetMode(appConfig.Server.GinMode)
	router := api.NewRouter(api.NewHandlers(service, logger), logger, appConfig.Server.RequestTimeout)

	servers := []*http.Server{{
		Addr:              ":" + appConfig.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if appConfig.Admin.Enabled {
		servers = append(servers, &http.Server{
			Addr:              ":" + appConfig.Admin.Port,
			Handler:           monitoring.NewAdminRouter(prometheus.DefaultGatherer),
			ReadHeaderTimeout: 10 * time.Second,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			logger.Info("Listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
		defer cancel()
		var firstErr error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("Server stopped: %v", err)
	}
}
