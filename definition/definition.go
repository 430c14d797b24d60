// Package definition reads table definitions from YAML and renders them
// through database.Blueprint.
//
//	tables:
//	  - name: posts
//	    id: true
//	    columns:
//	      - {name: title, type: varchar, length: 100, not_null: true}
//	      - {name: content, type: text}
//	    timestamps: true
//	    foreign:
//	      - {column: user_id, table: users, on_delete: cascade}
package definition

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/galaplate/schema/database"
	"github.com/galaplate/schema/supports"
	"gopkg.in/yaml.v3"
)

// File is the document root.
type File struct {
	Tables []Table `yaml:"tables" validate:"dive"`
}

// Table describes one CREATE TABLE statement. Parts are applied in the order
// id, columns, timestamps, custom, foreign.
type Table struct {
	Name       string    `yaml:"name" validate:"notblank"`
	ID         bool      `yaml:"id"`
	Columns    []Column  `yaml:"columns" validate:"dive"`
	Timestamps bool      `yaml:"timestamps"`
	Custom     []string  `yaml:"custom" validate:"dive,notblank"`
	Foreign    []Foreign `yaml:"foreign" validate:"dive"`
}

// Column is one entry of a table's columns list. Type accepts the column
// type names in any case, with or without underscores, plus "string" for
// varchar.
type Column struct {
	Name    string `yaml:"name" validate:"notblank"`
	Type    string `yaml:"type" validate:"required"`
	Length  int    `yaml:"length" validate:"min=0"`
	NotNull bool   `yaml:"not_null"`
	Unique  bool   `yaml:"unique"`
	Default any    `yaml:"default"`
}

// Foreign declares a ForeignID column. Actions accept spellings such as
// "cascade", "set null" or "set_null".
type Foreign struct {
	Column     string `yaml:"column" validate:"notblank"`
	Table      string `yaml:"table" validate:"notblank"`
	OnDelete   string `yaml:"on_delete"`
	OnUpdate   string `yaml:"on_update"`
	Constraint string `yaml:"constraint"`
}

// ErrUnknownColumnType is returned when a column type name has no mapping.
var ErrUnknownColumnType = errors.New("unknown column type")

var columnTypes = map[string]database.ColumnType{}

func init() {
	for _, t := range []database.ColumnType{
		database.TypeIncrements, database.TypeBigIncrements, database.TypeSmallIncrements,
		database.TypeVarchar, database.TypeText, database.TypeInteger, database.TypeSmallInteger,
		database.TypeBigInteger, database.TypeBoolean, database.TypeDateTime, database.TypeDate,
	} {
		columnTypes[normalizeType(string(t))] = t
	}
	columnTypes["string"] = database.TypeVarchar
}

func normalizeType(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", ""))
}

// Decode reads and validates a definition document. Unknown keys are
// rejected.
func Decode(r io.Reader) (*File, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var file File
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return &file, nil
		}
		return nil, fmt.Errorf("decode table definitions: %w", err)
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}
	return &file, nil
}

// Validate reports the first blank name or missing type as a
// database.ConfigurationError whose Field is the yaml path, e.g.
// "tables[0].columns[2].name".
func (f *File) Validate() error {
	errs := supports.Validate(f)
	if len(errs) == 0 {
		return nil
	}
	return &database.ConfigurationError{
		Field:   errs[0].Path,
		Message: fmt.Sprintf("failed on the '%s' tag", errs[0].Tag),
	}
}

// ReadFile decodes the definition document at path.
func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// Apply adds every part of t to blueprint.
func (t Table) Apply(blueprint *database.Blueprint) error {
	if t.ID {
		blueprint.ID()
	}

	for _, c := range t.Columns {
		columnType, ok := columnTypes[normalizeType(c.Type)]
		if !ok {
			return fmt.Errorf("%w %q for %s.%s", ErrUnknownColumnType, c.Type, t.Name, c.Name)
		}

		col, err := addColumn(blueprint, columnType, c.Name, c.Length)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", t.Name, c.Name, err)
		}
		if c.NotNull {
			col.NotNullable()
		}
		if c.Unique {
			col.Unique()
		}
		if c.Default != nil {
			col.Default(c.Default)
		}
	}

	if t.Timestamps {
		blueprint.Timestamps()
	}

	for _, raw := range t.Custom {
		blueprint.Custom(raw)
	}

	for _, fk := range t.Foreign {
		onDelete, err := database.ParseForeignAction(fk.OnDelete)
		if err != nil {
			return fmt.Errorf("%s.%s on_delete: %w", t.Name, fk.Column, err)
		}
		onUpdate, err := database.ParseForeignAction(fk.OnUpdate)
		if err != nil {
			return fmt.Errorf("%s.%s on_update: %w", t.Name, fk.Column, err)
		}

		blueprint.ForeignID(fk.Column, fk.Table, database.ForeignOptions{
			OnDelete:   onDelete,
			OnUpdate:   onUpdate,
			Constraint: fk.Constraint,
		})
	}

	return blueprint.Err()
}

// Build renders t for dialect.
func (t Table) Build(dialect database.Dialect) (string, error) {
	blueprint, err := database.NewBlueprint(t.Name, dialect)
	if err != nil {
		return "", err
	}
	if err := t.Apply(blueprint); err != nil {
		return "", err
	}
	return blueprint.ToSQL()
}

// Build renders every table of the document, in document order.
func (f *File) Build(dialect database.Dialect) ([]string, error) {
	statements := make([]string, 0, len(f.Tables))
	for _, table := range f.Tables {
		sql, err := table.Build(dialect)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", table.Name, err)
		}
		statements = append(statements, sql)
	}
	return statements, nil
}

// addColumn dispatches to the Blueprint method for t. A zero length means
// the column type's default.
func addColumn(b *database.Blueprint, t database.ColumnType, name string, length int) (*database.Column, error) {
	switch t {
	case database.TypeIncrements:
		return b.Increments(name), nil
	case database.TypeBigIncrements:
		return b.BigIncrements(name), nil
	case database.TypeSmallIncrements:
		return b.SmallIncrements(name), nil
	case database.TypeVarchar:
		if length == 0 {
			return b.Varchar(name), nil
		}
		return b.Varchar(name, length), nil
	case database.TypeText:
		return b.Text(name), nil
	case database.TypeInteger:
		return b.Integer(name), nil
	case database.TypeSmallInteger:
		return b.SmallInteger(name), nil
	case database.TypeBigInteger:
		return b.BigInteger(name), nil
	case database.TypeBoolean:
		return b.Boolean(name), nil
	case database.TypeDateTime:
		return b.DateTime(name), nil
	case database.TypeDate:
		return b.Date(name), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownColumnType, string(t))
}
