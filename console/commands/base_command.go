package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/galaplate/schema/config"
	"github.com/galaplate/schema/database"
)

// Environment is what the kernel hands every command.
type Environment struct {
	In         io.Reader
	Out        io.Writer
	ConfigPath string
	Connection string
	Registry   *database.MigrationRegistry
}

// BaseCommand provides common functionality for all commands
type BaseCommand struct {
	env Environment
}

// Configure is called by the kernel before each run.
func (b *BaseCommand) Configure(env Environment) {
	b.env = env
}

func (b *BaseCommand) out() io.Writer {
	if b.env.Out == nil {
		return io.Discard
	}
	return b.env.Out
}

// AskRequired prompts for required input (won't accept empty)
func (b *BaseCommand) AskRequired(prompt string) (string, error) {
	if b.env.In == nil {
		return "", fmt.Errorf("%s: no input available", prompt)
	}

	scanner := bufio.NewScanner(b.env.In)
	for {
		fmt.Fprintf(b.out(), "%s: ", prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("%s: input closed", prompt)
		}
		if input := strings.TrimSpace(scanner.Text()); input != "" {
			return input, nil
		}
		fmt.Fprintln(b.out(), "❌ This field is required. Please try again.")
	}
}

// PrintSuccess prints a success message with checkmark
func (b *BaseCommand) PrintSuccess(message string) {
	fmt.Fprintf(b.out(), "✅ %s\n", message)
}

// PrintWarning prints a warning message with warning symbol
func (b *BaseCommand) PrintWarning(message string) {
	fmt.Fprintf(b.out(), "⚠️  %s\n", message)
}

// PrintInfo prints an info message with info symbol
func (b *BaseCommand) PrintInfo(message string) {
	fmt.Fprintf(b.out(), "ℹ️  %s\n", message)
}

// Println writes a raw line, used for SQL output.
func (b *BaseCommand) Println(line string) {
	fmt.Fprintln(b.out(), line)
}

// LoadConfig reads the YAML configuration directory.
func (b *BaseCommand) LoadConfig() (*config.Manager, error) {
	data, err := config.NewLoader(b.env.ConfigPath).Load()
	if err != nil {
		return nil, err
	}
	return config.NewManager(data), nil
}

// DefaultDialect returns the dialect of the configured connection.
func (b *BaseCommand) DefaultDialect() (database.Dialect, error) {
	manager, err := b.LoadConfig()
	if err != nil {
		return "", err
	}
	opts, err := config.DatabaseOptions(manager, b.env.Connection)
	if opts.Dialect != "" {
		return opts.Dialect, nil
	}
	return "", err
}

// Migrator opens the configured connection and returns a migrator over the
// registry. The caller must Disconnect the returned adapter.
func (b *BaseCommand) Migrator(ctx context.Context) (*database.Migrator, database.Adapter, error) {
	manager, err := b.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	opts, err := config.DatabaseOptions(manager, b.env.Connection)
	if err != nil {
		return nil, nil, err
	}

	adapter, err := database.Connect(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	migrator, err := database.NewMigrator(adapter, adapter.Dialect(), b.env.Registry)
	if err != nil {
		adapter.Disconnect()
		return nil, nil, err
	}
	return migrator, adapter, nil
}
