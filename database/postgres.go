package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultPostgresPort = 5432

// PostgresAdapter talks to a PostgreSQL server.
type PostgresAdapter struct {
	gormAdapter
	dsn string
}

// NewPostgresAdapter validates opts and returns an unconnected adapter.
func NewPostgresAdapter(opts ConnectionOptions) (*PostgresAdapter, error) {
	opts.Dialect = Postgres
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	port := opts.Port
	if port == 0 {
		port = defaultPostgresPort
	}

	a := &PostgresAdapter{
		dsn: fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			opts.Hostname, port, opts.Username, opts.Password, opts.Database,
		),
	}
	a.gormAdapter = gormAdapter{
		dialect:  Postgres,
		logLevel: opts.LogLevel,
		dialector: func() gorm.Dialector {
			return postgres.Open(a.dsn)
		},
	}
	return a, nil
}
