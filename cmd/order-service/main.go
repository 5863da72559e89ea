package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	_ "github.com/MikeMC777/shop-orders/docs"
	"github.com/MikeMC777/shop-orders/internal/config"
	"github.com/MikeMC777/shop-orders/internal/health"
	ord "github.com/MikeMC777/shop-orders/internal/order"
	"github.com/MikeMC777/shop-orders/internal/store"
)

// @title        Shop Order API
// @version      1.0
// @description  CRUD over the orders table.
// @BasePath     /api
func main() {
	cfg := config.Load()

	logger := newLogger(cfg.Env)
	defer func() { _ = logger.Sync() }()

	logger.Info("[config]",
		zap.String("addr", cfg.OrderSvcAddr),
		zap.String("grpc_health_addr", cfg.GRPCHealthAddr),
		zap.String("db_driver", cfg.DB.Driver),
		zap.String("db_host", cfg.DB.Host),
		zap.String("db_name", cfg.DB.Name))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		stop()
		logger.Fatal("order-service stopped", zap.Error(err))
	}
}

// run serves until ctx is done or a server fails. Everything it opens is
// released before it returns.
func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	db, err := store.Open(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()
	logger.Info("connected to store", zap.String("driver", db.Dialect().Name))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if s, ok := db.(interface{ DB() *sql.DB }); ok {
		registry.MustRegister(collectors.NewDBStatsCollector(s.DB(), cfg.DB.Name))
	}

	lis, err := net.Listen("tcp", cfg.GRPCHealthAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.GRPCHealthAddr, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errc := make(chan error, 2)

	// gRPC health
	checker := health.NewChecker(db, cfg.HealthInterval, logger)
	grpcServer := grpc.NewServer()
	checker.Register(grpcServer)
	go checker.Run(ctx)
	go func() {
		logger.Info("gRPC health listening", zap.String("addr", cfg.GRPCHealthAddr))
		if err := grpcServer.Serve(lis); err != nil {
			errc <- fmt.Errorf("gRPC server: %w", err)
		}
	}()

	// HTTP
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := newRouter(routerDeps{
		repo:        ord.NewSQLRepo(db),
		pinger:      db,
		logger:      logger,
		registry:    registry,
		corsOrigins: cfg.CORSOrigins,
	})
	httpServer := &http.Server{
		Addr:              cfg.OrderSvcAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("order-service listening", zap.String("addr", cfg.OrderSvcAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down...")
	case runErr = <-errc:
		logger.Error("server failed, shutting down", zap.Error(runErr))
	}
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", zap.Error(err))
	}
	grpcServer.GracefulStop()
	logger.Info("servers stopped")
	return runErr
}

func newLogger(env string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "dev" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
