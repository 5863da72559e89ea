// Package health reports store reachability over the standard gRPC health
// protocol (grpc.health.v1) for orchestrators and load balancers.
package health

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Service is the name checked by clients that ask for this service rather
// than the whole server.
const Service = "orders.OrderService"

type Pinger interface {
	Ping(ctx context.Context) error
}

type Checker struct {
	pinger   Pinger
	srv      *health.Server
	interval time.Duration
	logger   *zap.Logger
}

func NewChecker(p Pinger, interval time.Duration, logger *zap.Logger) *Checker {
	c := &Checker{
		pinger:   p,
		srv:      health.NewServer(),
		interval: interval,
		logger:   logger,
	}
	c.set(healthpb.HealthCheckResponse_NOT_SERVING)
	return c
}

func (c *Checker) Register(s *grpc.Server) { healthpb.RegisterHealthServer(s, c.srv) }

// Server exposes the underlying health server.
func (c *Checker) Server() *health.Server { return c.srv }

// Check pings the store once and publishes the outcome.
func (c *Checker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := c.pinger.Ping(ctx); err != nil {
		c.set(healthpb.HealthCheckResponse_NOT_SERVING)
		return err
	}
	c.set(healthpb.HealthCheckResponse_SERVING)
	return nil
}

// Run checks on every tick until ctx is done, then marks everything as not
// serving so in-flight probes see the shutdown.
func (c *Checker) Run(ctx context.Context) {
	t := time.NewTicker(c.interval)
	defer t.Stop()
	for {
		if err := c.Check(ctx); err != nil && ctx.Err() == nil {
			c.logger.Warn("store ping failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			c.srv.Shutdown()
			return
		case <-t.C:
		}
	}
}

func (c *Checker) set(status healthpb.HealthCheckResponse_ServingStatus) {
	c.srv.SetServingStatus("", status)
	c.srv.SetServingStatus(Service, status)
}
