// Package flows implements the flow commands.
package flows

import (
	"slices"

	"github.com/samber/lo"
	"github.com/urfave/cli/v3"

	"github.com/wuxler/kestractl/pkg/cmdhelper"
)

// New creates a new FlowsCommand.
func New() *FlowsCommand {
	return &FlowsCommand{}
}

// FlowsCommand groups the flow subcommands.
type FlowsCommand struct{}

// ToCLI tranforms to a *cli.Command.
func (c *FlowsCommand) ToCLI() *cli.Command {
	return &cli.Command{
		Name:    "flows",
		Aliases: []string{"flow"},
		Usage:   "Manage flows",
		Commands: []*cli.Command{
			NewListCommand().ToCLI(),
			NewGetCommand().ToCLI(),
			NewDeployCommand().ToCLI(),
		},
	}
}

// propertiesTable renders the top level keys of obj as sorted rows.
func propertiesTable(title string, obj map[string]any) *cmdhelper.Table {
	t := cmdhelper.NewTable(title, "Property", "Value")
	keys := lo.Keys(obj)
	slices.Sort(keys)
	for _, key := range keys {
		t.AddRow(key, obj[key])
	}
	return t
}
