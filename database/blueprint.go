package database

import (
	"strings"
)

// Blueprint accumulates the columns and constraints of one table and renders
// them as a CREATE TABLE statement for its dialect.
//
// A Blueprint is not safe for concurrent mutation. ToSQL does not modify the
// Blueprint and may be called concurrently with other ToSQL calls.
type Blueprint struct {
	tableName string
	dialect   Dialect
	rules     *dialectRules
	columns   []*Column
	extras    []string
	err       error
}

// NewBlueprint creates a new Blueprint
func NewBlueprint(tableName string, dialect Dialect) (*Blueprint, error) {
	if strings.TrimSpace(tableName) == "" {
		return nil, newConfigurationError("table name", "must not be empty")
	}

	rules, err := lookupDialect(dialect)
	if err != nil {
		return nil, err
	}

	return &Blueprint{
		tableName: tableName,
		dialect:   dialect,
		rules:     rules,
		columns:   []*Column{},
		extras:    []string{},
	}, nil
}

// Name returns the table name.
func (b *Blueprint) Name() string {
	return b.tableName
}

// Dialect returns the dialect the Blueprint renders for.
func (b *Blueprint) Dialect() Dialect {
	return b.dialect
}

// Columns returns the columns in insertion order.
func (b *Blueprint) Columns() []*Column {
	return append([]*Column(nil), b.columns...)
}

// Extras returns the raw trailing clauses in insertion order.
func (b *Blueprint) Extras() []string {
	return append([]string(nil), b.extras...)
}

// Err returns the first configuration error raised by a column method.
func (b *Blueprint) Err() error {
	return b.err
}

func (b *Blueprint) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// addColumn appends a column. On an invalid name the error is recorded and a
// detached column is returned so chained modifiers stay harmless.
func (b *Blueprint) addColumn(name string, columnType ColumnType, length ...int) *Column {
	col, err := NewColumn(name, columnType, length...)
	if err != nil {
		b.fail(err)
		return &Column{Name: name, Type: columnType}
	}
	b.columns = append(b.columns, col)
	return col
}

// Column type methods

// ID creates an auto-incrementing big integer primary key named id
func (b *Blueprint) ID() *Column {
	return b.BigIncrements("id")
}

// Increments creates an auto-incrementing integer primary key
func (b *Blueprint) Increments(name string) *Column {
	return b.addColumn(name, TypeIncrements)
}

// BigIncrements creates an auto-incrementing big integer primary key
func (b *Blueprint) BigIncrements(name string) *Column {
	return b.addColumn(name, TypeBigIncrements)
}

// SmallIncrements creates an auto-incrementing small integer primary key
func (b *Blueprint) SmallIncrements(name string) *Column {
	return b.addColumn(name, TypeSmallIncrements)
}

// Varchar creates a VARCHAR column, 255 long unless a length is given
func (b *Blueprint) Varchar(name string, length ...int) *Column {
	return b.addColumn(name, TypeVarchar, length...)
}

// Text creates a TEXT column
func (b *Blueprint) Text(name string) *Column {
	return b.addColumn(name, TypeText)
}

// Integer creates an INTEGER column
func (b *Blueprint) Integer(name string) *Column {
	return b.addColumn(name, TypeInteger)
}

// SmallInteger creates a SMALLINT column
func (b *Blueprint) SmallInteger(name string) *Column {
	return b.addColumn(name, TypeSmallInteger)
}

// BigInteger creates a BIGINT column
func (b *Blueprint) BigInteger(name string) *Column {
	return b.addColumn(name, TypeBigInteger)
}

// Boolean creates a boolean column
func (b *Blueprint) Boolean(name string) *Column {
	return b.addColumn(name, TypeBoolean)
}

// DateTime creates a date and time column
func (b *Blueprint) DateTime(name string) *Column {
	return b.addColumn(name, TypeDateTime)
}

// Date creates a DATE column
func (b *Blueprint) Date(name string) *Column {
	return b.addColumn(name, TypeDate)
}

// Timestamps creates created_at and updated_at columns
func (b *Blueprint) Timestamps() []*Column {
	return []*Column{
		b.DateTime("created_at"),
		b.DateTime("updated_at"),
	}
}

// Custom appends a raw column definition, rendered exactly as given.
func (b *Blueprint) Custom(raw string) *Column {
	col, err := NewCustomColumn(raw)
	if err != nil {
		b.fail(err)
		return &Column{Type: TypeCustom, Raw: raw}
	}
	b.columns = append(b.columns, col)
	return col
}

// ForeignID creates a column sized like the dialect's ID() key and a foreign
// key constraint referencing table(id).
func (b *Blueprint) ForeignID(name, table string, opts ...ForeignOptions) *Column {
	var options ForeignOptions
	if len(opts) > 0 {
		options = opts[0]
	}

	clause, err := buildForeignKey(b.rules, name, table, options)
	if err != nil {
		b.fail(err)
		return &Column{Name: name, Type: b.rules.foreignKey}
	}

	col := b.addColumn(name, b.rules.foreignKey)
	b.extras = append(b.extras, clause)
	return col
}

// Foreign appends a raw constraint clause after the columns.
func (b *Blueprint) Foreign(clause string) *Blueprint {
	if strings.TrimSpace(clause) == "" {
		b.fail(newConfigurationError("constraint clause", "must not be empty"))
		return b
	}
	b.extras = append(b.extras, clause)
	return b
}

// Quote quotes an identifier for the Blueprint's dialect, for callers
// composing raw Custom or Foreign clauses.
func (b *Blueprint) Quote(identifier string) string {
	return b.rules.quoteIdent(identifier)
}

// ToSQL renders the CREATE TABLE statement.
func (b *Blueprint) ToSQL() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	if len(b.columns) == 0 {
		return "", newConfigurationError("columns", "must not be empty")
	}

	definitions := make([]string, 0, len(b.columns)+len(b.extras))
	for _, col := range b.columns {
		def, err := col.toSQL(b.rules)
		if err != nil {
			return "", err
		}
		definitions = append(definitions, def)
	}
	definitions = append(definitions, b.extras...)

	var sql strings.Builder
	sql.WriteString("CREATE TABLE ")
	sql.WriteString(b.rules.quoteIdent(b.tableName))
	sql.WriteString(" (")
	sql.WriteString(strings.Join(definitions, ", "))
	sql.WriteString(");")

	return sql.String(), nil
}
