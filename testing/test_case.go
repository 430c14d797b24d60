package testing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/galaplate/schema/database"
	"github.com/stretchr/testify/suite"
)

type TestConfig struct {
	// Options selects the database under test. When nil a fresh SQLite file
	// in a temporary directory is used.
	Options         *database.ConnectionOptions
	RefreshDatabase bool
	Registry        *database.MigrationRegistry
}

// TestCase is a testify suite with an open Adapter and Schema.
type TestCase struct {
	suite.Suite
	Adapter  database.Adapter
	Schema   *database.Schema
	Migrator *database.Migrator
	Config   *TestConfig

	refreshDatabase bool
	tempDir         string
}

func DefaultTestConfig() *TestConfig {
	return &TestConfig{
		RefreshDatabase: false,
	}
}

func NewTestCase(opts ...func(*TestConfig)) *TestCase {
	cfg := DefaultTestConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	return &TestCase{
		Config:          cfg,
		refreshDatabase: cfg.RefreshDatabase,
	}
}

func (tc *TestCase) SetupSuite() {
	tc.connect()
}

func (tc *TestCase) SetupTest() {
	if tc.Adapter == nil {
		tc.connect()
	}
	if tc.refreshDatabase || (tc.Config != nil && tc.Config.RefreshDatabase) {
		tc.Require().NoError(tc.RefreshDatabase())
	}
}

func (tc *TestCase) TearDownSuite() {
	if tc.Adapter != nil {
		tc.NoError(tc.Adapter.Disconnect())
		tc.Adapter = nil
	}
	if tc.tempDir != "" {
		os.RemoveAll(tc.tempDir)
		tc.tempDir = ""
	}
}

func (tc *TestCase) connect() {
	if tc.Config == nil {
		tc.Config = DefaultTestConfig()
	}

	var opts database.ConnectionOptions
	if tc.Config.Options != nil {
		opts = *tc.Config.Options
	} else {
		dir, err := os.MkdirTemp("", "galaplate-schema-*")
		tc.Require().NoError(err)
		tc.tempDir = dir
		opts = database.ConnectionOptions{
			Dialect:  database.Sqlite,
			Database: filepath.Join(dir, "test.sqlite"),
			LogLevel: "silent",
		}
	}

	adapter, err := database.Connect(context.Background(), opts)
	tc.Require().NoError(err)
	tc.Adapter = adapter

	tc.Schema, err = database.SchemaFor(adapter)
	tc.Require().NoError(err)

	registry := tc.Config.Registry
	if registry == nil {
		registry = &database.MigrationRegistry{}
	}
	tc.Migrator, err = database.NewMigrator(adapter, adapter.Dialect(), registry)
	tc.Require().NoError(err)
}

func (tc *TestCase) EnableRefreshDatabase() {
	tc.refreshDatabase = true
}

// RefreshDatabase drops every table of the database under test.
func (tc *TestCase) RefreshDatabase() error {
	ctx := context.Background()

	tables, err := tc.tableNames(ctx)
	if err != nil {
		return err
	}

	if tc.Adapter.Dialect() == database.MySQL {
		if err := tc.Adapter.Execute(ctx, "SET FOREIGN_KEY_CHECKS=0;"); err != nil {
			return err
		}
		defer tc.Adapter.Execute(ctx, "SET FOREIGN_KEY_CHECKS=1;")
	}

	for _, table := range tables {
		if err := tc.Schema.DropIfExists(ctx, table); err != nil {
			return fmt.Errorf("refresh database: %w", err)
		}
	}
	return nil
}

func (tc *TestCase) tableNames(ctx context.Context) ([]string, error) {
	var query string
	switch tc.Adapter.Dialect() {
	case database.MySQL:
		query = "SELECT TABLE_NAME AS name FROM information_schema.TABLES WHERE TABLE_SCHEMA = DATABASE()"
	case database.Postgres:
		query = "SELECT table_name AS name FROM information_schema.tables WHERE table_schema = current_schema()"
	default:
		query = "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'"
	}

	rows, err := tc.Adapter.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, fmt.Sprintf("%s", row["name"]))
	}
	return names, nil
}
