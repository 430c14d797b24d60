package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		dialect    Dialect
		want       string
	}{
		{"sqlite", "users", Sqlite, "`users`"},
		{"mysql", "users", MySQL, "`users`"},
		{"postgres", "users", Postgres, `"users"`},
		{"mysql embedded quote", "we`ird", MySQL, "`we``ird`"},
		{"postgres embedded quote", `we"ird`, Postgres, `"we""ird"`},
		{"postgres backtick untouched", "we`ird", Postgres, "\"we`ird\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Quote(tt.identifier, tt.dialect)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuoteUnsupportedDialect(t *testing.T) {
	_, err := Quote("users", Dialect("mssql"))
	assert.ErrorIs(t, err, ErrUnsupportedDialect)
}

func TestParseDialect(t *testing.T) {
	tests := map[string]Dialect{
		"sqlite":     Sqlite,
		"sqlite3":    Sqlite,
		"MySQL":      MySQL,
		"mariadb":    MySQL,
		"postgres":   Postgres,
		"postgresql": Postgres,
		" pgsql ":    Postgres,
	}

	for input, want := range tests {
		got, err := ParseDialect(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseDialect("oracle")
	assert.ErrorIs(t, err, ErrUnsupportedDialect)
}

func TestPhysicalType(t *testing.T) {
	tests := []struct {
		columnType ColumnType
		length     int
		want       map[Dialect]string
	}{
		{TypeIncrements, 0, map[Dialect]string{
			Sqlite: "INTEGER PRIMARY KEY AUTOINCREMENT", MySQL: "INTEGER PRIMARY KEY AUTO_INCREMENT", Postgres: "SERIAL PRIMARY KEY",
		}},
		{TypeBigIncrements, 0, map[Dialect]string{
			Sqlite: "INTEGER PRIMARY KEY AUTOINCREMENT", MySQL: "BIGINT PRIMARY KEY AUTO_INCREMENT", Postgres: "BIGSERIAL PRIMARY KEY",
		}},
		{TypeSmallIncrements, 0, map[Dialect]string{
			Sqlite: "INTEGER PRIMARY KEY AUTOINCREMENT", MySQL: "SMALLINT PRIMARY KEY AUTO_INCREMENT", Postgres: "SMALLSERIAL PRIMARY KEY",
		}},
		{TypeVarchar, 0, map[Dialect]string{
			Sqlite: "VARCHAR(255)", MySQL: "VARCHAR(255)", Postgres: "VARCHAR(255)",
		}},
		{TypeVarchar, 64, map[Dialect]string{
			Sqlite: "VARCHAR(64)", MySQL: "VARCHAR(64)", Postgres: "VARCHAR(64)",
		}},
		{TypeText, 0, map[Dialect]string{
			Sqlite: "TEXT", MySQL: "LONGTEXT", Postgres: "TEXT",
		}},
		{TypeInteger, 0, map[Dialect]string{
			Sqlite: "INTEGER", MySQL: "INTEGER", Postgres: "INTEGER",
		}},
		{TypeSmallInteger, 0, map[Dialect]string{
			Sqlite: "SMALLINT", MySQL: "SMALLINT", Postgres: "SMALLINT",
		}},
		{TypeBigInteger, 0, map[Dialect]string{
			Sqlite: "BIGINT", MySQL: "BIGINT", Postgres: "BIGINT",
		}},
		{TypeBoolean, 0, map[Dialect]string{
			Sqlite: "BOOLEAN", MySQL: "TINYINT", Postgres: "BOOLEAN",
		}},
		{TypeDateTime, 0, map[Dialect]string{
			Sqlite: "DATETIME", MySQL: "DATETIME", Postgres: "TIMESTAMP",
		}},
		{TypeDate, 0, map[Dialect]string{
			Sqlite: "DATE", MySQL: "DATE", Postgres: "DATE",
		}},
	}

	for _, tt := range tests {
		for dialect, want := range tt.want {
			got, err := PhysicalType(tt.columnType, tt.length, dialect)
			require.NoError(t, err)
			assert.Equal(t, want, got, "%s on %s", tt.columnType, dialect)
		}
	}
}

func TestPhysicalTypeCustomHasNoType(t *testing.T) {
	_, err := PhysicalType(TypeCustom, 0, Sqlite)
	assert.Error(t, err)
}

func TestForeignIDType(t *testing.T) {
	for dialect, want := range map[Dialect]ColumnType{
		Sqlite:   TypeInteger,
		MySQL:    TypeBigInteger,
		Postgres: TypeBigInteger,
	} {
		got, err := ForeignIDType(dialect)
		require.NoError(t, err)
		assert.Equal(t, want, got, dialect)
	}
}
