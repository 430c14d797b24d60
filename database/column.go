package database

import "strings"

// ColumnType is a dialect independent column kind.
type ColumnType string

const (
	TypeIncrements      ColumnType = "increments"
	TypeBigIncrements   ColumnType = "bigIncrements"
	TypeSmallIncrements ColumnType = "smallIncrements"
	TypeVarchar         ColumnType = "varchar"
	TypeText            ColumnType = "text"
	TypeInteger         ColumnType = "integer"
	TypeSmallInteger    ColumnType = "smallInteger"
	TypeBigInteger      ColumnType = "bigInteger"
	TypeBoolean         ColumnType = "boolean"
	TypeDateTime        ColumnType = "datetime"
	TypeDate            ColumnType = "date"
	TypeCustom          ColumnType = "custom"
)

// DefaultVarcharLength is used when a varchar column has no explicit length.
const DefaultVarcharLength = 255

// Column describes one column of a Blueprint. Its rendering depends only on
// Type, Length and the dialect passed at render time.
type Column struct {
	Name     string
	Type     ColumnType
	Length   int // zero means unset
	Raw      string
	NotNull  bool
	IsUnique bool
	Value    any // default value, nil when unset
}

// NewColumn builds a column descriptor of the given type.
func NewColumn(name string, columnType ColumnType, length ...int) (*Column, error) {
	if strings.TrimSpace(name) == "" {
		return nil, newConfigurationError("column name", "must not be empty")
	}

	col := &Column{Name: name, Type: columnType}
	if len(length) > 0 {
		if length[0] <= 0 {
			return nil, newConfigurationError("length of column "+name, "must be positive")
		}
		col.Length = length[0]
	}
	return col, nil
}

// NewCustomColumn wraps a raw SQL fragment that is rendered verbatim.
func NewCustomColumn(raw string) (*Column, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, newConfigurationError("custom column", "must not be empty")
	}
	return &Column{Type: TypeCustom, Raw: raw}, nil
}

// IsPrimary reports whether the column renders as an auto-increment key.
func (c *Column) IsPrimary() bool {
	switch c.Type {
	case TypeIncrements, TypeBigIncrements, TypeSmallIncrements:
		return true
	}
	return false
}

// Column modifier methods - chainable

// NotNullable makes the column NOT NULL
func (c *Column) NotNullable() *Column {
	c.NotNull = true
	return c
}

// Nullable drops a previous NotNullable
func (c *Column) Nullable() *Column {
	c.NotNull = false
	return c
}

// Unique makes the column unique
func (c *Column) Unique() *Column {
	c.IsUnique = true
	return c
}

// Default sets a default value
func (c *Column) Default(value any) *Column {
	c.Value = value
	return c
}

func (c *Column) toSQL(rules *dialectRules) (string, error) {
	if c.Type == TypeCustom {
		return c.Raw, nil
	}

	physical, err := rules.physicalType(c.Type, c.Length)
	if err != nil {
		return "", err
	}

	parts := []string{rules.quoteIdent(c.Name), physical}
	if c.IsPrimary() {
		return strings.Join(parts, " "), nil
	}

	if c.NotNull {
		parts = append(parts, "NOT NULL")
	}
	if c.Value != nil {
		clause, err := rules.defaultClause(c.Value, c.Type)
		if err != nil {
			return "", newConfigurationError("default of column "+c.Name, err.Error())
		}
		parts = append(parts, clause)
	}
	if c.IsUnique {
		parts = append(parts, "UNIQUE")
	}

	return strings.Join(parts, " "), nil
}
