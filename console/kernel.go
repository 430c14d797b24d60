package console

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/galaplate/schema/console/commands"
	"github.com/galaplate/schema/database"
)

// Command is a console command addressed by its signature, e.g. "db:up".
type Command interface {
	GetSignature() string
	GetDescription() string
	Execute(args []string) error
}

// Kernel holds registered commands and the IO they share.
type Kernel struct {
	commands map[string]Command
	env      commands.Environment
}

// NewKernel creates a kernel writing to os.Stdout and reading os.Stdin.
func NewKernel(configPath string) *Kernel {
	return &Kernel{
		commands: make(map[string]Command),
		env: commands.Environment{
			In:         os.Stdin,
			Out:        os.Stdout,
			ConfigPath: configPath,
		},
	}
}

// SetIO redirects command input and output.
func (k *Kernel) SetIO(in io.Reader, out io.Writer) {
	k.env.In = in
	k.env.Out = out
}

// SetConnection selects a named connection instead of database.default.
func (k *Kernel) SetConnection(name string) {
	k.env.Connection = name
}

// SetRegistry selects the migrations db:* commands run; nil means
// database.DefaultRegistry.
func (k *Kernel) SetRegistry(registry *database.MigrationRegistry) {
	k.env.Registry = registry
}

// Register adds a command, replacing one with the same signature.
func (k *Kernel) Register(cmd Command) {
	k.commands[cmd.GetSignature()] = cmd
}

// RegisterCommands registers all available console commands
func (k *Kernel) RegisterCommands() {
	k.Register(&commands.SchemaSQLCommand{})

	k.Register(&commands.DbCreateCommand{})
	k.Register(&commands.DbUpCommand{})
	k.Register(&commands.DbDownCommand{})
	k.Register(&commands.DbStatusCommand{})
}

// Commands returns registered commands sorted by signature.
func (k *Kernel) Commands() []Command {
	list := make([]Command, 0, len(k.commands))
	for _, cmd := range k.commands {
		list = append(list, cmd)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].GetSignature() < list[j].GetSignature()
	})
	return list
}

// Run executes the command registered under signature.
func (k *Kernel) Run(signature string, args []string) error {
	cmd, ok := k.commands[signature]
	if !ok {
		return fmt.Errorf("command %q is not defined", signature)
	}
	if configurable, ok := cmd.(interface{ Configure(commands.Environment) }); ok {
		configurable.Configure(k.env)
	}
	return cmd.Execute(args)
}
