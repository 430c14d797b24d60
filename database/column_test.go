package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewColumn(t *testing.T) {
	col, err := NewColumn("title", TypeVarchar, 100)
	require.NoError(t, err)
	assert.Equal(t, &Column{Name: "title", Type: TypeVarchar, Length: 100}, col)

	col, err = NewColumn("title", TypeVarchar)
	require.NoError(t, err)
	assert.Zero(t, col.Length)

	_, err = NewColumn(" ", TypeInteger)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "column name", cfgErr.Field)
}

func TestNewCustomColumn(t *testing.T) {
	col, err := NewCustomColumn("token VARCHAR(100)")
	require.NoError(t, err)
	assert.Equal(t, TypeCustom, col.Type)

	sql, err := col.toSQL(registry[Postgres])
	require.NoError(t, err)
	assert.Equal(t, "token VARCHAR(100)", sql)

	_, err = NewCustomColumn("")
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestColumnModifiersIgnoredOnPrimaryKey(t *testing.T) {
	col, err := NewColumn("id", TypeIncrements)
	require.NoError(t, err)
	col.NotNullable().Unique().Default(1)

	sql, err := col.toSQL(registry[Postgres])
	require.NoError(t, err)
	assert.Equal(t, `"id" SERIAL PRIMARY KEY`, sql)
}

func TestColumnDefaultLiterals(t *testing.T) {
	tests := []struct {
		dialect Dialect
		value   any
		want    string
	}{
		{MySQL, false, "`flag` TINYINT DEFAULT 0"},
		{Sqlite, false, "`flag` BOOLEAN DEFAULT FALSE"},
		{Postgres, true, `"flag" BOOLEAN DEFAULT TRUE`},
	}

	for _, tt := range tests {
		col, err := NewColumn("flag", TypeBoolean)
		require.NoError(t, err)

		sql, err := col.Default(tt.value).toSQL(registry[tt.dialect])
		require.NoError(t, err)
		assert.Equal(t, tt.want, sql)
	}
}

func TestColumnDefaultValues(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name       string
		dialect    Dialect
		columnType ColumnType
		value      any
		want       string
	}{
		{"date", Postgres, TypeDate, at, `"v" DATE DEFAULT '2024-01-02'`},
		{"datetime", MySQL, TypeDateTime, at, "`v` DATETIME DEFAULT '2024-01-02 03:04:05'"},
		{"timestamp", Postgres, TypeDateTime, at, `"v" TIMESTAMP DEFAULT '2024-01-02 03:04:05'`},
		{"int", Sqlite, TypeInteger, 42, "`v` INTEGER DEFAULT 42"},
		{"int64", Postgres, TypeBigInteger, int64(-7), `"v" BIGINT DEFAULT -7`},
		{"uint8", MySQL, TypeSmallInteger, uint8(3), "`v` SMALLINT DEFAULT 3"},
		{"float", Sqlite, TypeInteger, 1000000.5, "`v` INTEGER DEFAULT 1000000.5"},
		{"mysql text expression", MySQL, TypeText, "draft", "`v` LONGTEXT DEFAULT ('draft')"},
		{"postgres text literal", Postgres, TypeText, "draft", `"v" TEXT DEFAULT 'draft'`},
		{"current timestamp", Sqlite, TypeDateTime, "current_timestamp", "`v` DATETIME DEFAULT CURRENT_TIMESTAMP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, err := NewColumn("v", tt.columnType)
			require.NoError(t, err)

			sql, err := col.Default(tt.value).toSQL(registry[tt.dialect])
			require.NoError(t, err)
			assert.Equal(t, tt.want, sql)
		})
	}
}

func TestColumnDefaultUnsupportedValue(t *testing.T) {
	builder, err := NewBlueprint("events", Sqlite)
	require.NoError(t, err)

	builder.Text("tags").Default([]string{"a", "b"})

	_, err = builder.ToSQL()
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "default of column tags", cfgErr.Field)
	assert.Contains(t, cfgErr.Message, "[]string")
}
