package database

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/charityevents/events-api/internal/config"
)

// DSN builds the driver connection string. parseTime stays off so DATETIME
// columns arrive as "YYYY-MM-DD HH:MM:SS" text. loc is the deployment zone:
// the driver uses it for time.Time arguments and each session runs SET
// time_zone to its UTC offset so NOW() agrees with the comparison text.
func DSN(cfg config.DBConfig, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Pass
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.Name
	mc.Loc = loc
	mc.Params = map[string]string{"time_zone": sessionZone(loc, time.Now())}
	mc.ParseTime = false
	mc.Collation = "utf8mb4_unicode_ci"
	return mc.FormatDSN()
}

// sessionZone is loc's offset at t as a quoted MySQL time_zone literal. An
// offset works without the server's named-zone tables; zones with DST take
// the offset in force when the pool is opened.
func sessionZone(loc *time.Location, t time.Time) string {
	return "'" + t.In(loc).Format("-07:00") + "'"
}

// Open connects to MySQL and verifies the connection.
func Open(cfg config.DBConfig, loc *time.Location) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", DSN(cfg, loc))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
