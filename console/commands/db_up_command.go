package commands

import (
	"context"
	"fmt"
)

type DbUpCommand struct {
	BaseCommand
}

func (c *DbUpCommand) GetSignature() string {
	return "db:up"
}

func (c *DbUpCommand) GetDescription() string {
	return "Run pending database migrations"
}

func (c *DbUpCommand) Execute(args []string) error {
	ctx := context.Background()

	migrator, adapter, err := c.Migrator(ctx)
	if err != nil {
		return err
	}
	defer adapter.Disconnect()

	applied, err := migrator.Up(ctx)
	for _, name := range applied {
		c.PrintSuccess(fmt.Sprintf("Migrated: %s", name))
	}
	if err != nil {
		return err
	}

	if len(applied) == 0 {
		c.PrintInfo("Nothing to migrate")
	}
	return nil
}
