package database

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Dialect names the SQL engine a Blueprint renders for.
type Dialect string

const (
	Sqlite   Dialect = "sqlite"
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
)

// Dialects lists every supported dialect in a stable order.
var Dialects = []Dialect{Sqlite, MySQL, Postgres}

// dialectRules is the static metadata the registry keeps per dialect.
type dialectRules struct {
	name       Dialect
	quote      string
	types      map[ColumnType]string
	foreignKey ColumnType
	boolTrue   string
	boolFalse  string
	// MySQL rejects literal defaults on TEXT/BLOB columns.
	exprDefaults map[ColumnType]bool
}

var registry = map[Dialect]*dialectRules{
	Sqlite: {
		name:  Sqlite,
		quote: "`",
		types: map[ColumnType]string{
			TypeIncrements:      "INTEGER PRIMARY KEY AUTOINCREMENT",
			TypeBigIncrements:   "INTEGER PRIMARY KEY AUTOINCREMENT",
			TypeSmallIncrements: "INTEGER PRIMARY KEY AUTOINCREMENT",
			TypeText:            "TEXT",
			TypeInteger:         "INTEGER",
			TypeSmallInteger:    "SMALLINT",
			TypeBigInteger:      "BIGINT",
			TypeBoolean:         "BOOLEAN",
			TypeDateTime:        "DATETIME",
			TypeDate:            "DATE",
		},
		foreignKey: TypeInteger,
		boolTrue:   "TRUE",
		boolFalse:  "FALSE",
	},
	MySQL: {
		name:  MySQL,
		quote: "`",
		types: map[ColumnType]string{
			TypeIncrements:      "INTEGER PRIMARY KEY AUTO_INCREMENT",
			TypeBigIncrements:   "BIGINT PRIMARY KEY AUTO_INCREMENT",
			TypeSmallIncrements: "SMALLINT PRIMARY KEY AUTO_INCREMENT",
			TypeText:            "LONGTEXT",
			TypeInteger:         "INTEGER",
			TypeSmallInteger:    "SMALLINT",
			TypeBigInteger:      "BIGINT",
			TypeBoolean:         "TINYINT",
			TypeDateTime:        "DATETIME",
			TypeDate:            "DATE",
		},
		foreignKey:   TypeBigInteger,
		boolTrue:     "1",
		boolFalse:    "0",
		exprDefaults: map[ColumnType]bool{TypeText: true},
	},
	Postgres: {
		name:  Postgres,
		quote: `"`,
		types: map[ColumnType]string{
			TypeIncrements:      "SERIAL PRIMARY KEY",
			TypeBigIncrements:   "BIGSERIAL PRIMARY KEY",
			TypeSmallIncrements: "SMALLSERIAL PRIMARY KEY",
			TypeText:            "TEXT",
			TypeInteger:         "INTEGER",
			TypeSmallInteger:    "SMALLINT",
			TypeBigInteger:      "BIGINT",
			TypeBoolean:         "BOOLEAN",
			TypeDateTime:        "TIMESTAMP",
			TypeDate:            "DATE",
		},
		foreignKey: TypeBigInteger,
		boolTrue:   "TRUE",
		boolFalse:  "FALSE",
	},
}

// ParseDialect maps a connection name such as "pgsql" or "sqlite3" onto a
// Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sqlite", "sqlite3":
		return Sqlite, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "postgres", "postgresql", "pgsql":
		return Postgres, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedDialect, name)
}

// Validate reports whether d is one of the supported dialects.
func (d Dialect) Validate() error {
	_, err := lookupDialect(d)
	return err
}

func (d Dialect) String() string {
	return string(d)
}

func lookupDialect(d Dialect) (*dialectRules, error) {
	rules, ok := registry[d]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, string(d))
	}
	return rules, nil
}

// Quote wraps identifier in the quote character of d.
func Quote(identifier string, d Dialect) (string, error) {
	rules, err := lookupDialect(d)
	if err != nil {
		return "", err
	}
	return rules.quoteIdent(identifier), nil
}

// PhysicalType returns the type token d uses for the logical type t.
// Custom columns have no physical type.
func PhysicalType(t ColumnType, length int, d Dialect) (string, error) {
	rules, err := lookupDialect(d)
	if err != nil {
		return "", err
	}
	return rules.physicalType(t, length)
}

// ForeignIDType returns the logical type ForeignID columns take in d, sized
// to match the primary key ID() produces there.
func ForeignIDType(d Dialect) (ColumnType, error) {
	rules, err := lookupDialect(d)
	if err != nil {
		return "", err
	}
	return rules.foreignKey, nil
}

func (s *dialectRules) quoteIdent(identifier string) string {
	escaped := strings.ReplaceAll(identifier, s.quote, s.quote+s.quote)
	return s.quote + escaped + s.quote
}

func (s *dialectRules) physicalType(t ColumnType, length int) (string, error) {
	if t == TypeVarchar {
		if length <= 0 {
			length = DefaultVarcharLength
		}
		return fmt.Sprintf("VARCHAR(%d)", length), nil
	}

	if physical, ok := s.types[t]; ok {
		return physical, nil
	}
	return "", fmt.Errorf("no %s type for column type %q", s.name, string(t))
}

// literal renders a default value of a column of type t.
func (s *dialectRules) literal(value any, t ColumnType) (string, error) {
	switch v := value.(type) {
	case bool:
		if v {
			return s.boolTrue, nil
		}
		return s.boolFalse, nil
	case string:
		if strings.ToUpper(v) == "CURRENT_TIMESTAMP" {
			return "CURRENT_TIMESTAMP", nil
		}
		return quoteString(v), nil
	case time.Time:
		if t == TypeDate {
			return quoteString(v.Format(time.DateOnly)), nil
		}
		return quoteString(v.Format(time.DateTime)), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("unsupported default value of type %T", value)
}

// defaultClause renders DEFAULT for a column of type t. Types listed in
// exprDefaults only take a parenthesized expression default.
func (s *dialectRules) defaultClause(value any, t ColumnType) (string, error) {
	literal, err := s.literal(value, t)
	if err != nil {
		return "", err
	}
	if s.exprDefaults[t] {
		return "DEFAULT (" + literal + ")", nil
	}
	return "DEFAULT " + literal, nil
}

func quoteString(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}
