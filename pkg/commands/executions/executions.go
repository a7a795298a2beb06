// Package executions implements the execution commands.
package executions

import (
	"github.com/urfave/cli/v3"
)

// New creates a new ExecutionsCommand.
func New() *ExecutionsCommand {
	return &ExecutionsCommand{}
}

// ExecutionsCommand groups the execution subcommands.
type ExecutionsCommand struct{}

// ToCLI tranforms to a *cli.Command.
func (c *ExecutionsCommand) ToCLI() *cli.Command {
	return &cli.Command{
		Name:    "executions",
		Aliases: []string{"exec"},
		Usage:   "Manage executions",
		Commands: []*cli.Command{
			NewRunCommand().ToCLI(),
			NewGetCommand().ToCLI(),
			NewKillRunningCommand().ToCLI(),
		},
	}
}
