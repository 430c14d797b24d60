package definition

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/galaplate/schema/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blogYAML = `tables:
  - name: users
    id: true
    columns:
      - {name: email, type: string, not_null: true, unique: true}
      - {name: active, type: boolean, default: true}
    timestamps: true
  - name: posts
    id: true
    columns:
      - {name: title, type: varchar, length: 100}
      - {name: content, type: text}
      - {name: published_at, type: date_time}
    custom:
      - token VARCHAR(100)
    foreign:
      - {column: user_id, table: users, on_delete: cascade, on_update: set null, constraint: fk_posts_user}
`

func TestDecodeAndBuild(t *testing.T) {
	file, err := Decode(strings.NewReader(blogYAML))
	require.NoError(t, err)
	require.Len(t, file.Tables, 2)

	statements, err := file.Build(database.Postgres)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`CREATE TABLE "users" ("id" BIGSERIAL PRIMARY KEY, "email" VARCHAR(255) NOT NULL UNIQUE, "active" BOOLEAN DEFAULT TRUE, "created_at" TIMESTAMP, "updated_at" TIMESTAMP);`,
		`CREATE TABLE "posts" ("id" BIGSERIAL PRIMARY KEY, "title" VARCHAR(100), "content" TEXT, "published_at" TIMESTAMP, token VARCHAR(100), "user_id" BIGINT, CONSTRAINT "fk_posts_user" FOREIGN KEY ("user_id") REFERENCES "users"("id") ON DELETE CASCADE ON UPDATE SET NULL);`,
	}, statements)

	statements, err = file.Build(database.MySQL)
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE `users` (`id` BIGINT PRIMARY KEY AUTO_INCREMENT, `email` VARCHAR(255) NOT NULL UNIQUE, `active` TINYINT DEFAULT 1, `created_at` DATETIME, `updated_at` DATETIME);", statements[0])
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("tables:\n  - name: users\n    primary: true\n"))
	assert.Error(t, err)
}

func TestDecodeEmptyDocument(t *testing.T) {
	file, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, file.Tables)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		table  Table
		target error
	}{
		{"unknown type", Table{Name: "t", Columns: []Column{{Name: "c", Type: "uuid"}}}, ErrUnknownColumnType},
		{"unknown action", Table{Name: "t", ID: true, Foreign: []Foreign{{Column: "user_id", Table: "users", OnDelete: "explode"}}}, database.ErrUnsupportedAction},
		{"empty column name", Table{Name: "t", Columns: []Column{{Type: "integer"}}}, database.ErrConfiguration},
		{"no columns", Table{Name: "t"}, database.ErrConfiguration},
		{"no name", Table{ID: true}, database.ErrConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.table.Build(database.Sqlite)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte(blogYAML), 0644))

	file, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "posts", file.Tables[1].Name)
	assert.Equal(t, []Foreign{{Column: "user_id", Table: "users", OnDelete: "cascade", OnUpdate: "set null", Constraint: "fk_posts_user"}}, file.Tables[1].Foreign)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDecodeValidatesNames(t *testing.T) {
	_, err := Decode(strings.NewReader("tables:\n  - name: users\n    columns:\n      - {name: email, type: varchar}\n      - {name: ' ', type: text}\n"))

	var cfgErr *database.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "tables[0].columns[1].name", cfgErr.Field)

	_, err = Decode(strings.NewReader("tables:\n  - name: posts\n    foreign:\n      - {column: user_id}\n"))
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "tables[0].foreign[0].table", cfgErr.Field)
}

func TestBuildTimeAndNumericDefaults(t *testing.T) {
	file, err := Decode(strings.NewReader(`tables:
  - name: events
    columns:
      - {name: starts_on, type: date, default: 2024-01-02}
      - {name: seen_at, type: datetime, default: 2024-01-02T03:04:05Z}
      - {name: attempts, type: integer, default: 3}
      - {name: ratio, type: integer, default: 0.5}
`))
	require.NoError(t, err)

	statements, err := file.Build(database.MySQL)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"CREATE TABLE `events` (`starts_on` DATE DEFAULT '2024-01-02', `seen_at` DATETIME DEFAULT '2024-01-02 03:04:05', `attempts` INTEGER DEFAULT 3, `ratio` INTEGER DEFAULT 0.5);",
	}, statements)
}

func TestBuildRejectsUnsupportedDefault(t *testing.T) {
	file, err := Decode(strings.NewReader("tables:\n  - name: events\n    columns:\n      - {name: tags, type: text, default: [a, b]}\n"))
	require.NoError(t, err)

	_, err = file.Build(database.Postgres)
	assert.ErrorIs(t, err, database.ErrConfiguration)
}

func TestBuildRejectsNegativeLength(t *testing.T) {
	table := Table{Name: "users", Columns: []Column{{Name: "email", Type: "varchar", Length: -5}}}

	_, err := table.Build(database.Sqlite)
	assert.ErrorIs(t, err, database.ErrConfiguration)

	_, err = Decode(strings.NewReader("tables:\n  - name: users\n    columns:\n      - {name: email, type: varchar, length: -5}\n"))
	var cfgErr *database.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "tables[0].columns[0].length", cfgErr.Field)
}

func TestAddColumnRejectsUnmappedType(t *testing.T) {
	blueprint, err := database.NewBlueprint("users", database.Sqlite)
	require.NoError(t, err)

	col, err := addColumn(blueprint, database.ColumnType("uuid"), "token", 0)
	assert.Nil(t, col)
	assert.ErrorIs(t, err, ErrUnknownColumnType)
	assert.Empty(t, blueprint.Columns())
}
