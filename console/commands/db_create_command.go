package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/galaplate/schema/database"
)

type DbCreateCommand struct {
	BaseCommand
	// Now is overridable for deterministic file names.
	Now func() time.Time
}

func (c *DbCreateCommand) GetSignature() string {
	return "db:create"
}

func (c *DbCreateCommand) GetDescription() string {
	return "Create a new Go-based migration file"
}

// Execute expects [name] [directory]; the directory defaults to db/migrations.
func (c *DbCreateCommand) Execute(args []string) error {
	var (
		migrationName string
		err           error
	)

	if len(args) == 0 {
		migrationName, err = c.AskRequired("Enter migration name (e.g., create_users_table)")
		if err != nil {
			return err
		}
	} else {
		migrationName = args[0]
	}

	if migrationName == "" {
		return fmt.Errorf("migration name cannot be empty")
	}

	migrationsDir := "db/migrations"
	if len(args) > 1 {
		migrationsDir = args[1]
	}

	return c.createMigration(migrationName, migrationsDir)
}

func (c *DbCreateCommand) createMigration(name, migrationsDir string) error {
	if err := os.MkdirAll(migrationsDir, 0755); err != nil {
		return fmt.Errorf("failed to create migrations directory: %w", err)
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	timestamp := now().Unix()

	filePath := filepath.Join(migrationsDir, fmt.Sprintf("%d_%s.go", timestamp, name))
	if _, err := os.Stat(filePath); err == nil {
		return fmt.Errorf("migration file %s already exists", filePath)
	}

	content := database.CreateMigrationTemplate(name, timestamp)
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write migration file: %w", err)
	}

	c.PrintSuccess(fmt.Sprintf("Migration created: %s", filePath))
	c.PrintInfo("Remember to import the migrations package in your main.go")
	return nil
}
