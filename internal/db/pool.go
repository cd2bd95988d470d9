package db

import (
	"context"
	"time"

	"github.com/hellofresh/health-go/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return pool, nil
}

// HealthCheck reports the database as unavailable when a ping fails.
func HealthCheck(pool *pgxpool.Pool) health.Config {
	return health.Config{
		Name:      "postgres",
		Timeout:   2 * time.Second,
		SkipOnErr: false,
		Check: func(ctx context.Context) error {
			return pool.Ping(ctx)
		},
	}
}
