package store

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

const defaultMySQLPort = 3306

// MySQLConfig turns the service settings into a driver config. parseTime is
// always on so DATETIME columns scan into time.Time.
func MySQLConfig(cfg Config) *mysql.Config {
	port := cfg.Port
	if port == 0 {
		port = defaultMySQLPort
	}
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port))
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Loc = time.Local
	// report matched rows, so rewriting the current status is not a miss
	mc.ClientFoundRows = true
	if cfg.Charset != "" {
		mc.Params = map[string]string{"charset": cfg.Charset}
	}
	return mc
}

func OpenMySQL(ctx context.Context, cfg Config) (*SQL, error) {
	connector, err := mysql.NewConnector(MySQLConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("mysql config: %w", err)
	}
	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return NewSQL(db, MySQLDialect), nil
}
