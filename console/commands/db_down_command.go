package commands

import (
	"context"
	"fmt"
)

type DbDownCommand struct {
	BaseCommand
}

func (c *DbDownCommand) GetSignature() string {
	return "db:down"
}

func (c *DbDownCommand) GetDescription() string {
	return "Rollback the last database migration batch"
}

func (c *DbDownCommand) Execute(args []string) error {
	ctx := context.Background()

	migrator, adapter, err := c.Migrator(ctx)
	if err != nil {
		return err
	}
	defer adapter.Disconnect()

	rolledBack, err := migrator.Down(ctx)
	for _, name := range rolledBack {
		c.PrintSuccess(fmt.Sprintf("Rolled back: %s", name))
	}
	if err != nil {
		return err
	}

	if len(rolledBack) == 0 {
		c.PrintInfo("Nothing to rollback")
	}
	return nil
}
