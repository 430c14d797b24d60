package console

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/galaplate/schema/console/commands"
	"github.com/galaplate/schema/database"
	"github.com/stretchr/testify/suite"
)

type widgetsMigration struct {
	database.BaseMigration
}

func (m *widgetsMigration) Up(ctx context.Context, schema *database.Schema) error {
	return schema.Create(ctx, "widgets", func(table *database.Blueprint) {
		table.ID()
		table.Varchar("label", 50).NotNullable()
		table.Timestamps()
	})
}

func (m *widgetsMigration) Down(ctx context.Context, schema *database.Schema) error {
	return schema.DropIfExists(ctx, "widgets")
}

type KernelTestSuite struct {
	suite.Suite
	dir    string
	out    *bytes.Buffer
	kernel *Kernel
}

func (s *KernelTestSuite) SetupTest() {
	s.dir = s.T().TempDir()

	configDir := filepath.Join(s.dir, "config")
	s.Require().NoError(os.MkdirAll(configDir, 0755))
	databaseYAML := "default: sqlite\nlog_level: silent\nconnections:\n  sqlite:\n    driver: sqlite\n    database: " +
		filepath.Join(s.dir, "app.sqlite") + "\n"
	s.Require().NoError(os.WriteFile(filepath.Join(configDir, "database.yaml"), []byte(databaseYAML), 0644))

	registry := &database.MigrationRegistry{}
	registry.Register(&widgetsMigration{database.BaseMigration{Name: "create_widgets_table", Timestamp: 1700000000}})

	s.out = &bytes.Buffer{}
	s.kernel = NewKernel(configDir)
	s.kernel.SetIO(strings.NewReader(""), s.out)
	s.kernel.SetRegistry(registry)
	s.kernel.RegisterCommands()
}

func (s *KernelTestSuite) writeDefinitions() string {
	path := filepath.Join(s.dir, "tables.yaml")
	content := "tables:\n  - name: tags\n    id: true\n    columns:\n      - {name: label, type: varchar, length: 30}\n"
	s.Require().NoError(os.WriteFile(path, []byte(content), 0644))
	return path
}

func (s *KernelTestSuite) TestCommandsAreSorted() {
	var signatures []string
	for _, cmd := range s.kernel.Commands() {
		signatures = append(signatures, cmd.GetSignature())
	}
	s.Equal([]string{"db:create", "db:down", "db:status", "db:up", "schema:sql"}, signatures)
}

func (s *KernelTestSuite) TestUnknownCommand() {
	s.Error(s.kernel.Run("db:seed", nil))
}

func (s *KernelTestSuite) TestSchemaSQLWithExplicitDialect() {
	s.Require().NoError(s.kernel.Run("schema:sql", []string{s.writeDefinitions(), "pgsql"}))
	s.Equal("CREATE TABLE \"tags\" (\"id\" BIGSERIAL PRIMARY KEY, \"label\" VARCHAR(30));\n", s.out.String())
}

func (s *KernelTestSuite) TestSchemaSQLUsesConfiguredDialect() {
	s.Require().NoError(s.kernel.Run("schema:sql", []string{s.writeDefinitions()}))
	s.Equal("CREATE TABLE `tags` (`id` INTEGER PRIMARY KEY AUTOINCREMENT, `label` VARCHAR(30));\n", s.out.String())
}

func (s *KernelTestSuite) TestSchemaSQLRequiresFile() {
	s.Error(s.kernel.Run("schema:sql", nil))
	s.ErrorIs(s.kernel.Run("schema:sql", []string{s.writeDefinitions(), "oracle"}), database.ErrUnsupportedDialect)
}

func (s *KernelTestSuite) TestDbCreate() {
	migrationsDir := filepath.Join(s.dir, "migrations")
	s.kernel.Register(&commands.DbCreateCommand{Now: func() time.Time { return time.Unix(1700000123, 0) }})

	s.Require().NoError(s.kernel.Run("db:create", []string{"create_orders_table", migrationsDir}))

	content, err := os.ReadFile(filepath.Join(migrationsDir, "1700000123_create_orders_table.go"))
	s.Require().NoError(err)
	s.Contains(string(content), `schema.Create(ctx, "orders"`)
	s.Contains(s.out.String(), "Migration created")

	s.Error(s.kernel.Run("db:create", []string{"create_orders_table", migrationsDir}))
}

func (s *KernelTestSuite) TestDbCreatePromptsForName() {
	prevDir, err := os.Getwd()
	s.Require().NoError(err)
	s.Require().NoError(os.Chdir(s.dir))
	s.T().Cleanup(func() { _ = os.Chdir(prevDir) })
	s.kernel.SetIO(strings.NewReader("\ncreate_items_table\n"), s.out)
	s.kernel.Register(&commands.DbCreateCommand{Now: func() time.Time { return time.Unix(1700000456, 0) }})

	s.Require().NoError(s.kernel.Run("db:create", []string{}))
	s.Contains(s.out.String(), "This field is required")
	s.FileExists(filepath.Join(s.dir, "db", "migrations", "1700000456_create_items_table.go"))

	s.kernel.SetIO(strings.NewReader(""), s.out)
	s.Error(s.kernel.Run("db:create", nil))
}

func (s *KernelTestSuite) TestMigrationLifecycle() {
	s.Require().NoError(s.kernel.Run("db:status", nil))
	s.Contains(s.out.String(), "Pending: 1")

	s.out.Reset()
	s.Require().NoError(s.kernel.Run("db:up", nil))
	s.Contains(s.out.String(), "Migrated: create_widgets_table")

	s.out.Reset()
	s.Require().NoError(s.kernel.Run("db:up", nil))
	s.Contains(s.out.String(), "Nothing to migrate")

	s.out.Reset()
	s.Require().NoError(s.kernel.Run("db:status", nil))
	s.Contains(s.out.String(), "Ran (batch 1)")

	s.out.Reset()
	s.Require().NoError(s.kernel.Run("db:down", nil))
	s.Contains(s.out.String(), "Rolled back: create_widgets_table")

	s.out.Reset()
	s.Require().NoError(s.kernel.Run("db:down", nil))
	s.Contains(s.out.String(), "Nothing to rollback")
}

func TestKernelTestSuite(t *testing.T) {
	suite.Run(t, new(KernelTestSuite))
}
