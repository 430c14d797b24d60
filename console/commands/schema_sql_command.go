package commands

import (
	"fmt"

	"github.com/galaplate/schema/database"
	"github.com/galaplate/schema/definition"
)

type SchemaSQLCommand struct {
	BaseCommand
}

func (c *SchemaSQLCommand) GetSignature() string {
	return "schema:sql"
}

func (c *SchemaSQLCommand) GetDescription() string {
	return "Print CREATE TABLE statements for a YAML table definition file"
}

// Execute expects <definitions.yaml> [dialect]; without a dialect the
// configured default connection decides.
func (c *SchemaSQLCommand) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: schema:sql <definitions.yaml> [sqlite|mysql|postgres]")
	}

	var (
		dialect database.Dialect
		err     error
	)
	if len(args) > 1 {
		dialect, err = database.ParseDialect(args[1])
	} else {
		dialect, err = c.DefaultDialect()
	}
	if err != nil {
		return err
	}

	file, err := definition.ReadFile(args[0])
	if err != nil {
		return err
	}

	statements, err := file.Build(dialect)
	if err != nil {
		return err
	}
	for _, sql := range statements {
		c.Println(sql)
	}
	return nil
}
