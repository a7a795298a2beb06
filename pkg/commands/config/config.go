// Package config implements the commands managing the stored contexts.
package config

import (
	"github.com/urfave/cli/v3"
)

// New creates a new ConfigCommand.
func New() *ConfigCommand {
	return &ConfigCommand{}
}

// ConfigCommand groups the context management subcommands.
type ConfigCommand struct{}

// ToCLI tranforms to a *cli.Command.
func (c *ConfigCommand) ToCLI() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration and authentication contexts",
		Commands: []*cli.Command{
			NewShowCommand().ToCLI(),
			NewAddCommand().ToCLI(),
			NewRemoveCommand().ToCLI(),
			NewUseCommand().ToCLI(),
		},
	}
}
