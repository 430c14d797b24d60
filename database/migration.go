package database

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Migration interface
type Migration interface {
	Up(ctx context.Context, schema *Schema) error
	Down(ctx context.Context, schema *Schema) error
	GetName() string
	GetTimestamp() int64
	GetFileName() string
}

// BaseMigration provides default implementation
type BaseMigration struct {
	Name      string
	Timestamp int64
}

func (m *BaseMigration) GetName() string {
	return m.Name
}

func (m *BaseMigration) GetTimestamp() int64 {
	return m.Timestamp
}

func (m *BaseMigration) GetFileName() string {
	return fmt.Sprintf("%d_%s", m.Timestamp, m.Name)
}

// MigrationRegistry holds all registered migrations
type MigrationRegistry struct {
	mu         sync.Mutex
	migrations []Migration
}

var DefaultRegistry = &MigrationRegistry{}

// Register adds a migration to the registry
func (r *MigrationRegistry) Register(migration Migration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.migrations = append(r.migrations, migration)
}

// GetMigrations returns all registered migrations sorted by timestamp
func (r *MigrationRegistry) GetMigrations() []Migration {
	r.mu.Lock()
	defer r.mu.Unlock()

	sorted := append([]Migration(nil), r.migrations...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].GetTimestamp() < sorted[j].GetTimestamp()
	})
	return sorted
}

// GetMigrationByName finds a migration by name
func (r *MigrationRegistry) GetMigrationByName(name string) Migration {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, migration := range r.migrations {
		if migration.GetName() == name {
			return migration
		}
	}
	return nil
}

// Register is a helper function to register migrations
func Register(migration Migration) {
	DefaultRegistry.Register(migration)
}

// CreateMigrationTemplate generates a Go migration source file
func CreateMigrationTemplate(name string, timestamp int64) string {
	tableName := ExtractTableName(name)

	return fmt.Sprintf(`package migrations

import (
	"context"

	"github.com/galaplate/schema/database"
)

type Migration%[1]d struct {
	database.BaseMigration
}

func init() {
	database.Register(&Migration%[1]d{
		BaseMigration: database.BaseMigration{
			Name:      %[2]q,
			Timestamp: %[1]d,
		},
	})
}

func (m *Migration%[1]d) Up(ctx context.Context, schema *database.Schema) error {
	return schema.Create(ctx, %[3]q, func(table *database.Blueprint) {
		table.ID()
		// table.Varchar("name", 100)
		// table.ForeignID("user_id", "users", database.ForeignOptions{OnDelete: database.Cascade})
		table.Timestamps()
	})
}

func (m *Migration%[1]d) Down(ctx context.Context, schema *database.Schema) error {
	return schema.DropIfExists(ctx, %[3]q)
}
`, timestamp, name, tableName)
}

// ExtractTableName derives the table from a migration name,
// e.g. "create_users_table" -> "users".
func ExtractTableName(name string) string {
	tableName, ok := strings.CutPrefix(name, "create_")
	if !ok || tableName == "" {
		return "example_table"
	}
	if trimmed := strings.TrimSuffix(tableName, "_table"); trimmed != "" {
		return trimmed
	}
	return tableName
}
