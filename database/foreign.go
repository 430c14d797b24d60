package database

import (
	"fmt"
	"strings"
)

// ForeignAction is the referential action run on delete or update of a
// referenced row.
type ForeignAction int

const (
	// NoForeignAction leaves the clause out entirely.
	NoForeignAction ForeignAction = iota
	Cascade
	SetNull
	Restrict
	NoAction
	SetDefault
)

var foreignActionKeywords = map[ForeignAction]string{
	Cascade:    "CASCADE",
	SetNull:    "SET NULL",
	Restrict:   "RESTRICT",
	NoAction:   "NO ACTION",
	SetDefault: "SET DEFAULT",
}

// ReferencedKey is the primary key column every foreign key points at.
const ReferencedKey = "id"

// Keyword returns the SQL keyword for the action.
func (a ForeignAction) Keyword() (string, error) {
	keyword, ok := foreignActionKeywords[a]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnsupportedAction, int(a))
	}
	return keyword, nil
}

// ParseForeignAction accepts "cascade", "set null", "set_null", "SetNull" and
// similar spellings.
func ParseForeignAction(name string) (ForeignAction, error) {
	normalized := strings.ToLower(strings.NewReplacer("_", "", " ", "", "-", "").Replace(name))
	switch normalized {
	case "":
		return NoForeignAction, nil
	case "cascade":
		return Cascade, nil
	case "setnull":
		return SetNull, nil
	case "restrict":
		return Restrict, nil
	case "noaction":
		return NoAction, nil
	case "setdefault":
		return SetDefault, nil
	}
	return NoForeignAction, fmt.Errorf("%w: %q", ErrUnsupportedAction, name)
}

// ForeignOptions configures the clause produced by BuildForeignKey.
type ForeignOptions struct {
	OnDelete   ForeignAction
	OnUpdate   ForeignAction
	Constraint string
}

// BuildForeignKey renders a FOREIGN KEY clause for column referencing the id
// column of table.
func BuildForeignKey(d Dialect, column, table string, opts ForeignOptions) (string, error) {
	rules, err := lookupDialect(d)
	if err != nil {
		return "", err
	}
	return buildForeignKey(rules, column, table, opts)
}

func buildForeignKey(rules *dialectRules, column, table string, opts ForeignOptions) (string, error) {
	if strings.TrimSpace(column) == "" {
		return "", newConfigurationError("foreign key column", "must not be empty")
	}
	if strings.TrimSpace(table) == "" {
		return "", newConfigurationError("referenced table", "must not be empty")
	}

	var sql strings.Builder

	if opts.Constraint != "" {
		sql.WriteString("CONSTRAINT " + rules.quoteIdent(opts.Constraint) + " ")
	}

	sql.WriteString(fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s(%s)",
		rules.quoteIdent(column), rules.quoteIdent(table), rules.quoteIdent(ReferencedKey)))

	if opts.OnDelete != NoForeignAction {
		keyword, err := opts.OnDelete.Keyword()
		if err != nil {
			return "", err
		}
		sql.WriteString(" ON DELETE " + keyword)
	}
	if opts.OnUpdate != NoForeignAction {
		keyword, err := opts.OnUpdate.Keyword()
		if err != nil {
			return "", err
		}
		sql.WriteString(" ON UPDATE " + keyword)
	}

	return sql.String(), nil
}
