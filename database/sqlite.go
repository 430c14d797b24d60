package database

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLiteAdapter opens a database file through the sqlite driver.
type SQLiteAdapter struct {
	gormAdapter
	file string
}

// NewSQLiteAdapter validates opts and returns an unconnected adapter for the
// file named by opts.Database.
func NewSQLiteAdapter(opts ConnectionOptions) (*SQLiteAdapter, error) {
	opts.Dialect = Sqlite
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	a := &SQLiteAdapter{file: opts.Database}
	a.gormAdapter = gormAdapter{
		dialect:  Sqlite,
		logLevel: opts.LogLevel,
		dialector: func() gorm.Dialector {
			return sqlite.Open(a.file)
		},
	}
	return a, nil
}

// File returns the database file location.
func (a *SQLiteAdapter) File() string {
	return a.file
}
