package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const defaultMySQLPort = 3306

// MySQLAdapter talks to a MySQL or MariaDB server.
type MySQLAdapter struct {
	gormAdapter
	dsn string
}

// NewMySQLAdapter validates opts and returns an unconnected adapter.
func NewMySQLAdapter(opts ConnectionOptions) (*MySQLAdapter, error) {
	opts.Dialect = MySQL
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	port := opts.Port
	if port == 0 {
		port = defaultMySQLPort
	}

	a := &MySQLAdapter{
		dsn: fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			opts.Username, opts.Password, opts.Hostname, port, opts.Database,
		),
	}
	a.gormAdapter = gormAdapter{
		dialect:  MySQL,
		logLevel: opts.LogLevel,
		dialector: func() gorm.Dialector {
			return mysql.Open(a.dsn)
		},
	}
	return a, nil
}
