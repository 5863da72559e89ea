package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/MikeMC777/shop-orders/internal/store"
)

type Config struct {
	Env            string
	OrderSvcAddr   string
	GRPCHealthAddr string
	HealthInterval time.Duration
	CORSOrigins    []string
	DB             store.Config
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return n
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(k)); err == nil && d > 0 {
		return d
	}
	return def
}

func getlist(k, def string) []string {
	var out []string
	for _, v := range strings.Split(getenv(k, def), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func Load() Config {
	_ = godotenv.Load() // load .env if it exists
	return Config{
		Env:            getenv("APP_ENV", "prod"),
		OrderSvcAddr:   getenv("ORDER_SERVICE_ADDR", ":3000"),
		GRPCHealthAddr: getenv("GRPC_HEALTH_ADDR", ":50061"),
		HealthInterval: getduration("HEALTH_INTERVAL", 10*time.Second),
		CORSOrigins:    getlist("CORS_ORIGINS", "*"),
		DB: store.Config{
			Driver:      getenv("DB_DRIVER", store.DriverMySQL),
			Host:        getenv("DB_HOST", "localhost"),
			Port:        getint("DB_PORT", 0), // 0 = driver default
			User:        getenv("DB_USER", "root"),
			Password:    getenv("DB_PASSWORD", "123456"),
			Name:        getenv("DB_NAME", "shop_order_db"),
			Charset:     getenv("DB_CHARSET", "utf8mb4"),
			PostgresDSN: os.Getenv("POSTGRES_DSN"),
			SQLitePath:  getenv("SQLITE_PATH", "orders.db"),
		},
	}
}
