package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"saleema/config"
	"saleema/shared/constant"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const driverName = "postgres"

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	return &Connection{
		Read:  Open("read", DSN(pg.Read, pg.Prefix, nil), pg.Pool, pg.MaxRetry, pg.RetryWaitTime),
		Write: Open("write", DSN(pg.Write, pg.Prefix, nil), pg.Pool, pg.MaxRetry, pg.RetryWaitTime),
	}
}

// DSN builds a lib/pq URL for endpoint. A configured timezone is sent as the
// session TimeZone so date-only columns compare in the application zone.
// extra is appended to the query string.
func DSN(endpoint config.Endpoint, prefix string, extra url.Values) string {
	query := url.Values{}
	query.Set("sslmode", endpoint.SSLMode)

	if endpoint.Timezone != constant.Empty {
		query.Set("timezone", endpoint.Timezone)
	}

	for key, values := range extra {
		query[key] = values
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     "/" + prefix + endpoint.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// Open connects with up to maxRetry attempts waitSeconds apart and returns nil
// when every attempt fails.
func Open(name, dsn string, pool config.Pool, maxRetry, waitSeconds int) *sqlx.DB {
	for attempt := 1; attempt <= maxRetry; attempt++ {
		db, err := sqlx.Connect(driverName, dsn)
		if err == nil {
			configurePool(db, pool)
			log.Info().Str("name", name).Int("max_open", pool.MaxOpen).Msg("connected to database")

			return db
		}

		log.Error().Err(err).Str("name", name).Int("attempt", attempt).Msg("failed connecting to database, retrying")
		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	log.Error().Str("name", name).Int("attempts", maxRetry).Msg("giving up connecting to database")

	return nil
}

func configurePool(db *sqlx.DB, pool config.Pool) {
	db.SetMaxOpenConns(pool.MaxOpen)
	db.SetMaxIdleConns(pool.MaxIdle)
	db.SetConnMaxLifetime(time.Duration(pool.MaxLifetimeSeconds) * time.Second)
	db.SetConnMaxIdleTime(time.Duration(pool.MaxIdleTimeSeconds) * time.Second)
}
