package commands

import (
	"context"
	"fmt"
	"strings"
)

type DbStatusCommand struct {
	BaseCommand
}

func (c *DbStatusCommand) GetSignature() string {
	return "db:status"
}

func (c *DbStatusCommand) GetDescription() string {
	return "Show database migration status"
}

func (c *DbStatusCommand) Execute(args []string) error {
	ctx := context.Background()

	migrator, adapter, err := c.Migrator(ctx)
	if err != nil {
		return err
	}
	defer adapter.Disconnect()

	statuses, err := migrator.Status(ctx)
	if err != nil {
		return err
	}

	ran := 0
	c.Println(fmt.Sprintf("%-50s %s", "Migration", "Status"))
	c.Println(fmt.Sprintf("%-50s %s", strings.Repeat("-", 50), strings.Repeat("-", 10)))
	for _, status := range statuses {
		label := "Pending"
		if status.Ran {
			label = fmt.Sprintf("Ran (batch %d)", status.Batch)
			ran++
		}
		c.Println(fmt.Sprintf("%-50s %s", status.Name, label))
	}

	c.Println("")
	c.Println(fmt.Sprintf("Total migrations: %d", len(statuses)))
	c.Println(fmt.Sprintf("Ran: %d", ran))
	c.Println(fmt.Sprintf("Pending: %d", len(statuses)-ran))
	return nil
}
