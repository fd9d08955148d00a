package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"electrumcrawler/adapters/electrum"
	"electrumcrawler/api"
	"electrumcrawler/domain"
	"electrumcrawler/handlers"
	"electrumcrawler/interfaces"
	"electrumcrawler/service"
	"electrumcrawler/telemetry"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/lightningnetwork/lnd/ticker"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

const serviceName = "electrum-crawler"

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	level.Info(logger).Log("msg", "Starting electrum crawler")

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service_port_http", config.HTTPPort,
		"service_port_grpc", config.GRPCPort,
		"store_backend", config.Backend,
		"crawl_interval", config.CrawlInterval,
		"refresh_interval", config.RefreshInterval,
		"stale_after", config.StaleAfter,
		"seeds", len(config.Seeds),
	)

	shutdownTracing, err := telemetry.SetupTracing(context.Background(), serviceName, config.OTLPEndpoint)
	if err != nil {
		level.Error(logger).Log("msg", "Failed to set up tracing", "err", err)
		os.Exit(1)
	}
	metrics := telemetry.NewMetrics()

	var (
		store      interfaces.Store[domain.ServerRecord]
		closeStore func() error
	)
	{
		store, closeStore, err = openStore(context.Background(), config, logger)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to open store", "backend", config.Backend, "err", err)
			os.Exit(1)
		}
	}

	var registry *service.RegistryManager
	{
		gateway := electrum.NewGateway(config.ClientName, config.ProbeTimeout, logger)
		clk := clock.NewDefaultClock()
		prober := service.NewProber(gateway, clk, metrics, config.ProbeTimeout, logger)
		discoverer := service.NewPeerDiscoverer(gateway, config.ProbeTimeout, logger)
		registry = service.NewRegistryManager(store, prober, discoverer, clk, metrics, service.RegistryConfig{
			StaleAfter:     config.StaleAfter,
			Concurrency:    config.FanOutConcurrency,
			PeerRetryAfter: config.PeerRetryAfter,
		}, logger)
	}

	var scheduler *service.Scheduler
	{
		scheduler = service.NewScheduler(
			registry,
			ticker.New(config.CrawlInterval),
			ticker.New(config.RefreshInterval),
			metrics,
			logger,
		)
	}

	// Create HTTPServer
	var httpServer handlers.ServerInterface
	{
		httpServer = handlers.NewHTTPServer(registry, scheduler, config.Seeds, logger)
	}

	// Create HTTP server (Echo)
	var e *echo.Echo
	{
		doc, err := api.Load(context.Background())
		if err != nil {
			level.Error(logger).Log("msg", "Failed to load OpenAPI document", "err", err)
			os.Exit(1)
		}
		validator, err := handlers.NewRequestValidator(doc)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create request validator", "err", err)
			os.Exit(1)
		}

		e = echo.New()
		e.HideBanner = true
		e.Use(otelecho.Middleware(serviceName))
		e.Use(validator)
		service.RegisterErrorHandler(e, logger)
		handlers.RegisterHandlers(e, httpServer)
		e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}

	var (
		grpcServer   *grpc.Server
		healthServer *health.Server
	)
	if config.GRPCPort != 0 {
		grpcServer, healthServer = newHealthServer()

		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", config.GRPCPort))
		if err != nil {
			level.Error(logger).Log("msg", "Failed to listen", "err", err)
			os.Exit(1)
		}
		go func() {
			level.Info(logger).Log("msg", "Starting gRPC health server", "addr", lis.Addr())
			if err := grpcServer.Serve(lis); err != nil {
				level.Error(logger).Log("msg", "gRPC server error", "err", err)
			}
		}()
	}

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	scheduler.Start()
	if healthServer != nil {
		healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	}

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%d", config.HTTPPort)
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
		}
	}()

	// Wait for interrupt signal
	<-quit
	level.Info(logger).Log("msg", "Shutting down server...")

	if healthServer != nil {
		healthServer.Shutdown()
	}
	scheduler.Stop()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	if err := closeStore(); err != nil {
		level.Error(logger).Log("msg", "Error closing store", "err", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error flushing traces", "err", err)
	}

	level.Info(logger).Log("msg", "Server stopped")
}
