// Package namespaces implements the namespace commands.
package namespaces

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/kestractl/pkg/cmdhelper"
	"github.com/wuxler/kestractl/pkg/commands/internal/options"
	"github.com/wuxler/kestractl/pkg/kestra/namespaces"
	"github.com/wuxler/kestractl/pkg/util/xio"
)

// New creates a new NamespacesCommand.
func New() *NamespacesCommand {
	return &NamespacesCommand{}
}

// NamespacesCommand groups the namespace subcommands.
type NamespacesCommand struct{}

// ToCLI tranforms to a *cli.Command.
func (c *NamespacesCommand) ToCLI() *cli.Command {
	return &cli.Command{
		Name:    "namespaces",
		Aliases: []string{"ns"},
		Usage:   "Manage namespaces",
		Commands: []*cli.Command{
			NewListCommand().ToCLI(),
		},
	}
}

// NewListCommand returns a ListCommand with default values.
func NewListCommand() *ListCommand {
	return &ListCommand{
		API: options.NewAPI(cmdhelper.OutputTable),
	}
}

// ListCommand lists the namespaces.
type ListCommand struct {
	API *options.API

	Query string `json:"query,omitempty" yaml:"query,omitempty"`
}

// ToCLI tranforms to a *cli.Command.
func (c *ListCommand) ToCLI() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List the namespaces",
		Flags:   c.Flags(),
		Before:  cli.BeforeFunc(cmdhelper.NoArgs()),
		Action:  c.Run,
	}
}

// Flags defines the flags related to the current command.
func (c *ListCommand) Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "query",
			Aliases:     []string{"q"},
			Usage:       "filter namespaces by search query",
			Destination: &c.Query,
			Value:       c.Query,
		},
	}
	return append(flags, c.API.Flags()...)
}

// Run is the main function for the current command
func (c *ListCommand) Run(ctx context.Context, cmd *cli.Command) error {
	ctx, apiClient, err := c.API.Setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer xio.CloseAndSkipError(apiClient)

	results, err := namespaces.NewService(apiClient).List(ctx, c.API.Target(), namespaces.ListOptions{Query: c.Query})
	if err != nil {
		return err
	}
	if c.API.Output.OutputFormat() != cmdhelper.OutputTable {
		return c.API.Write(cmd, results, nil)
	}

	t := cmdhelper.NewTable("Namespaces", "ID", "Deleted")
	for _, entry := range results {
		ns := namespaces.Normalize(entry)
		t.AddRow(ns.ID, ns.Deleted)
	}
	if err := t.Render(cmdhelper.Writer(cmd)); err != nil {
		return err
	}
	cmdhelper.Fprintf(cmdhelper.Writer(cmd), "\nTotal namespaces: %d", len(results))
	return nil
}
