package database

import (
	"context"
	"fmt"

	"github.com/galaplate/schema/logger"
)

// Schema renders blueprints for one dialect and executes them. Build one
// with NewSchema or SchemaFor; the zero value has no dialect and every
// method returns ErrUnsupportedDialect.
type Schema struct {
	exec    Executor
	dialect Dialect
}

// NewSchema creates a new Schema instance
func NewSchema(exec Executor, dialect Dialect) (*Schema, error) {
	if err := dialect.Validate(); err != nil {
		return nil, err
	}
	return &Schema{exec: exec, dialect: dialect}, nil
}

// SchemaFor builds a Schema on an adapter using the adapter's own dialect.
func SchemaFor(adapter Adapter) (*Schema, error) {
	return NewSchema(adapter, adapter.Dialect())
}

// Dialect returns the dialect statements are rendered for.
func (s *Schema) Dialect() Dialect {
	return s.dialect
}

// QuoteIdentifier quotes a table or column name for the Schema's dialect.
func (s *Schema) QuoteIdentifier(identifier string) (string, error) {
	return Quote(identifier, s.dialect)
}

// Build runs callback on a fresh Blueprint and returns the rendered statement
// without executing it.
func (s *Schema) Build(tableName string, callback func(table *Blueprint)) (string, error) {
	blueprint, err := NewBlueprint(tableName, s.dialect)
	if err != nil {
		return "", err
	}
	callback(blueprint)

	return blueprint.ToSQL()
}

// Create creates a new table
func (s *Schema) Create(ctx context.Context, tableName string, callback func(table *Blueprint)) error {
	sql, err := s.Build(tableName, callback)
	if err != nil {
		logger.Error("schema: invalid blueprint", map[string]any{"table": tableName, "error": err.Error()})
		return err
	}

	return s.run(ctx, sql)
}

// Drop drops a table
func (s *Schema) Drop(ctx context.Context, tableName string) error {
	quoted, err := s.QuoteIdentifier(tableName)
	if err != nil {
		return err
	}
	return s.run(ctx, fmt.Sprintf("DROP TABLE %s;", quoted))
}

// DropIfExists drops a table if it exists
func (s *Schema) DropIfExists(ctx context.Context, tableName string) error {
	quoted, err := s.QuoteIdentifier(tableName)
	if err != nil {
		return err
	}
	return s.run(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s;", quoted))
}

// HasTable checks if table exists
func (s *Schema) HasTable(ctx context.Context, tableName string) (bool, error) {
	var query string

	switch s.dialect {
	case MySQL:
		query = "SELECT COUNT(*) AS total FROM information_schema.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?"
	case Postgres:
		query = "SELECT COUNT(*) AS total FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = ?"
	case Sqlite:
		query = "SELECT COUNT(*) AS total FROM sqlite_master WHERE type = 'table' AND name = ?"
	default:
		return false, s.dialect.Validate()
	}

	rows, err := s.exec.Query(ctx, query, tableName)
	if err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, nil
	}

	return toInt64(rows[0]["total"]) > 0, nil
}

func (s *Schema) run(ctx context.Context, sql string) error {
	logger.Debug("schema: execute", map[string]any{"dialect": s.dialect.String(), "sql": sql})

	if err := s.exec.Execute(ctx, sql); err != nil {
		logger.Error("schema: statement failed", map[string]any{"sql": sql, "error": err.Error()})
		return err
	}
	return nil
}

// toInt64 normalizes the integer types drivers return for COUNT(*).
func toInt64(value any) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case uint64:
		return int64(v)
	case uint32:
		return int64(v)
	case float64:
		return int64(v)
	case []byte:
		var n int64
		fmt.Sscanf(string(v), "%d", &n)
		return n
	case string:
		var n int64
		fmt.Sscanf(v, "%d", &n)
		return n
	}
	return 0
}
