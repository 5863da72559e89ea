package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/MikeMC777/shop-orders/internal/health"
	"github.com/MikeMC777/shop-orders/internal/httpx"
	ord "github.com/MikeMC777/shop-orders/internal/order"
)

type routerDeps struct {
	repo        ord.Repository
	pinger      health.Pinger
	logger      *zap.Logger
	registry    *prometheus.Registry
	corsOrigins []string
}

func newRouter(d routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(ginzap.RecoveryWithZap(d.logger, true))
	r.Use(httpx.RequestID(), httpx.Logger(d.logger))
	if d.registry != nil {
		r.Use(httpx.NewMetrics(d.registry).Middleware())
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{})))
	}
	r.Use(cors.New(corsConfig(d.corsOrigins)))

	r.GET("/healthz", healthzHandler(d.pinger))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerOrderRoutes(r.Group("/api"), d.repo, d.logger)
	return r
}

func registerOrderRoutes(g gin.IRouter, repo ord.Repository, log *zap.Logger) {
	g.GET("/orders", listOrdersHandler(repo, log))
	g.GET("/orders/:id", getOrderHandler(repo, log))
	g.POST("/orders", createOrderHandler(repo, log))
	g.PUT("/orders/:id/status", updateOrderStatusHandler(repo, log))
	g.DELETE("/orders/:id", deleteOrderHandler(repo, log))
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

func healthzHandler(p health.Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			c.String(http.StatusServiceUnavailable, "unavailable")
			return
		}
		c.String(http.StatusOK, "ok")
	}
}
