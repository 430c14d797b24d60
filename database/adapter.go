package database

import (
	"context"
	"fmt"

	"github.com/galaplate/schema/supports"
)

// Executor runs SQL text against an open session.
type Executor interface {
	// Query runs a statement and returns every row keyed by column name.
	Query(ctx context.Context, query string, values ...any) ([]map[string]any, error)
	// Execute runs a statement that returns no rows.
	Execute(ctx context.Context, query string, values ...any) error
}

// Adapter is a connection to one database backend.
type Adapter interface {
	Executor
	Connect(ctx context.Context) error
	Disconnect() error
	Dialect() Dialect
}

// ConnectionOptions holds the parameters needed to open an Adapter.
type ConnectionOptions struct {
	Dialect  Dialect `validate:"required,oneof=sqlite mysql postgres"`
	Database string  `validate:"required"`
	Hostname string  `validate:"required_unless=Dialect sqlite"`
	Port     int     `validate:"omitempty,min=1,max=65535"`
	Username string  `validate:"required_unless=Dialect sqlite"`
	Password string
	// LogLevel is the gorm log level: silent, error, warn or info.
	LogLevel string `validate:"omitempty,oneof=silent error warn info"`
}

// Validate reports the first missing or malformed parameter as a
// ConfigurationError.
func (o ConnectionOptions) Validate() error {
	errs := supports.Validate(o)
	if len(errs) == 0 {
		return nil
	}
	return newConfigurationError(errs[0].Field, fmt.Sprintf("failed on the '%s' tag", errs[0].Tag))
}

// NewAdapter returns the adapter for opts.Dialect without connecting it.
func NewAdapter(opts ConnectionOptions) (Adapter, error) {
	if err := opts.Dialect.Validate(); err != nil {
		return nil, err
	}

	var (
		adapter Adapter
		err     error
	)

	switch opts.Dialect {
	case Sqlite:
		adapter, err = NewSQLiteAdapter(opts)
	case MySQL:
		adapter, err = NewMySQLAdapter(opts)
	default:
		adapter, err = NewPostgresAdapter(opts)
	}
	if err != nil {
		return nil, err
	}
	return adapter, nil
}

// Connect creates the adapter for opts.Dialect and opens it.
func Connect(ctx context.Context, opts ConnectionOptions) (Adapter, error) {
	adapter, err := NewAdapter(opts)
	if err != nil {
		return nil, err
	}
	if err := adapter.Connect(ctx); err != nil {
		return nil, err
	}
	return adapter, nil
}
