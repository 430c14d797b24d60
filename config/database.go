package config

import (
	"fmt"

	"github.com/galaplate/schema/database"
)

// DatabaseOptions builds connection options for the named connection, or for
// database.default when name is empty.
//
//	database:
//	  default: sqlite
//	  connections:
//	    sqlite:
//	      driver: sqlite
//	      database: db/database.sqlite
func DatabaseOptions(m *Manager, name string) (database.ConnectionOptions, error) {
	if name == "" {
		name = m.GetString("database.default")
	}
	if name == "" {
		return database.ConnectionOptions{}, &database.ConfigurationError{Field: "database.default", Message: "is not set"}
	}

	prefix := fmt.Sprintf("database.connections.%s.", name)
	if !m.Has(prefix + "driver") && !m.Has(prefix + "database") {
		return database.ConnectionOptions{}, &database.ConfigurationError{Field: "database.connections." + name, Message: "is not defined"}
	}

	driver := m.GetString(prefix + "driver")
	if driver == "" {
		driver = name
	}
	dialect, err := database.ParseDialect(driver)
	if err != nil {
		return database.ConnectionOptions{}, err
	}

	opts := database.ConnectionOptions{
		Dialect:  dialect,
		Database: m.GetString(prefix + "database"),
		Hostname: m.GetString(prefix + "host"),
		Port:     m.GetInt(prefix + "port"),
		Username: m.GetString(prefix + "username"),
		Password: m.GetString(prefix + "password"),
		LogLevel: m.GetString("database.log_level"),
	}
	return opts, opts.Validate()
}
