package database

import (
	"context"
	"fmt"
	"time"

	"github.com/galaplate/schema/logger"
)

// MigrationsTable records which migrations ran and in which batch.
const MigrationsTable = "migrations"

// MigrationStatus is one line of Migrator.Status.
type MigrationStatus struct {
	Name  string
	Ran   bool
	Batch int
}

// Migrator handles running migrations
type Migrator struct {
	exec     Executor
	schema   *Schema
	rules    *dialectRules
	registry *MigrationRegistry
}

// NewMigrator creates a migrator running registry's migrations through exec.
func NewMigrator(exec Executor, dialect Dialect, registry *MigrationRegistry) (*Migrator, error) {
	schema, err := NewSchema(exec, dialect)
	if err != nil {
		return nil, err
	}
	rules, err := lookupDialect(dialect)
	if err != nil {
		return nil, err
	}
	if registry == nil {
		registry = DefaultRegistry
	}

	return &Migrator{
		exec:     exec,
		schema:   schema,
		rules:    rules,
		registry: registry,
	}, nil
}

func (m *Migrator) table() string {
	return m.rules.quoteIdent(MigrationsTable)
}

func (m *Migrator) column(name string) string {
	return m.rules.quoteIdent(name)
}

// CreateMigrationsTable creates the migrations table if it doesn't exist
func (m *Migrator) CreateMigrationsTable(ctx context.Context) error {
	exists, err := m.schema.HasTable(ctx, MigrationsTable)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return m.schema.Create(ctx, MigrationsTable, func(table *Blueprint) {
		table.ID()
		table.Varchar("migration", 255).NotNullable()
		table.Integer("batch").NotNullable()
		table.DateTime("created_at")
	})
}

// GetRanMigrations returns migration names with the batch they ran in
func (m *Migrator) GetRanMigrations(ctx context.Context) (map[string]int, error) {
	if err := m.CreateMigrationsTable(ctx); err != nil {
		return nil, err
	}

	rows, err := m.exec.Query(ctx, fmt.Sprintf("SELECT %s, %s FROM %s ORDER BY %s ASC, %s ASC",
		m.column("migration"), m.column("batch"), m.table(), m.column("batch"), m.column("migration")))
	if err != nil {
		return nil, err
	}

	ran := make(map[string]int, len(rows))
	for _, row := range rows {
		ran[toString(row["migration"])] = int(toInt64(row["batch"]))
	}
	return ran, nil
}

// GetPendingMigrations returns migrations that haven't been run
func (m *Migrator) GetPendingMigrations(ctx context.Context) ([]Migration, error) {
	ran, err := m.GetRanMigrations(ctx)
	if err != nil {
		return nil, err
	}

	var pending []Migration
	for _, migration := range m.registry.GetMigrations() {
		if _, ok := ran[migration.GetName()]; !ok {
			pending = append(pending, migration)
		}
	}
	return pending, nil
}

// GetLastBatch returns the last batch number
func (m *Migrator) GetLastBatch(ctx context.Context) (int, error) {
	if err := m.CreateMigrationsTable(ctx); err != nil {
		return 0, err
	}

	rows, err := m.exec.Query(ctx, fmt.Sprintf("SELECT COALESCE(MAX(%s), 0) AS last_batch FROM %s",
		m.column("batch"), m.table()))
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return int(toInt64(rows[0]["last_batch"])), nil
}

// GetMigrationsForRollback returns migrations from the last batch, newest first
func (m *Migrator) GetMigrationsForRollback(ctx context.Context) ([]Migration, error) {
	lastBatch, err := m.GetLastBatch(ctx)
	if err != nil {
		return nil, err
	}
	if lastBatch == 0 {
		return []Migration{}, nil
	}

	rows, err := m.exec.Query(ctx, fmt.Sprintf("SELECT %s FROM %s WHERE %s = ? ORDER BY %s DESC",
		m.column("migration"), m.table(), m.column("batch"), m.column("id")), lastBatch)
	if err != nil {
		return nil, err
	}

	var migrations []Migration
	for _, row := range rows {
		name := toString(row["migration"])
		if migration := m.registry.GetMigrationByName(name); migration != nil {
			migrations = append(migrations, migration)
		} else {
			logger.Warn("migrator: recorded migration is not registered", map[string]any{"migration": name})
		}
	}
	return migrations, nil
}

// Up runs all pending migrations in a new batch and returns their names
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	pending, err := m.GetPendingMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending migrations: %w", err)
	}
	if len(pending) == 0 {
		return nil, nil
	}

	lastBatch, err := m.GetLastBatch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get last batch: %w", err)
	}
	batch := lastBatch + 1

	insert := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES (?, ?, ?)",
		m.table(), m.column("migration"), m.column("batch"), m.column("created_at"))

	var applied []string
	for _, migration := range pending {
		logger.Info("migrator: migrating", map[string]any{"migration": migration.GetFileName(), "batch": batch})

		if err := migration.Up(ctx, m.schema); err != nil {
			return applied, fmt.Errorf("migration %s failed: %w", migration.GetName(), err)
		}
		if err := m.exec.Execute(ctx, insert, migration.GetName(), batch, time.Now()); err != nil {
			return applied, fmt.Errorf("failed to record migration %s: %w", migration.GetName(), err)
		}
		applied = append(applied, migration.GetName())
	}
	return applied, nil
}

// Down rolls back the last batch of migrations and returns their names
func (m *Migrator) Down(ctx context.Context) ([]string, error) {
	migrations, err := m.GetMigrationsForRollback(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get rollback migrations: %w", err)
	}

	remove := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", m.table(), m.column("migration"))

	var rolledBack []string
	for _, migration := range migrations {
		logger.Info("migrator: rolling back", map[string]any{"migration": migration.GetFileName()})

		if err := migration.Down(ctx, m.schema); err != nil {
			return rolledBack, fmt.Errorf("rollback of %s failed: %w", migration.GetName(), err)
		}
		if err := m.exec.Execute(ctx, remove, migration.GetName()); err != nil {
			return rolledBack, fmt.Errorf("failed to remove migration record %s: %w", migration.GetName(), err)
		}
		rolledBack = append(rolledBack, migration.GetName())
	}
	return rolledBack, nil
}

// Status reports every registered migration and whether it ran
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	ran, err := m.GetRanMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get ran migrations: %w", err)
	}

	all := m.registry.GetMigrations()
	statuses := make([]MigrationStatus, 0, len(all))
	for _, migration := range all {
		batch, ok := ran[migration.GetName()]
		statuses = append(statuses, MigrationStatus{
			Name:  migration.GetName(),
			Ran:   ok,
			Batch: batch,
		})
	}
	return statuses, nil
}

func toString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	}
	return fmt.Sprintf("%v", value)
}
