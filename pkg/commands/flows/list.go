package flows

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/kestractl/pkg/cmdhelper"
	"github.com/wuxler/kestractl/pkg/commands/internal/options"
	"github.com/wuxler/kestractl/pkg/kestra/flows"
	"github.com/wuxler/kestractl/pkg/util/xio"
)

// NewListCommand returns a ListCommand with default values.
func NewListCommand() *ListCommand {
	return &ListCommand{
		API: options.NewAPI(cmdhelper.OutputTable),
	}
}

// ListCommand lists the flows of a namespace.
type ListCommand struct {
	API *options.API
}

// ToCLI tranforms to a *cli.Command.
func (c *ListCommand) ToCLI() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List the flows of a namespace",
		ArgsUsage: "NAMESPACE",
		Flags:     c.API.Flags(),
		Before:    cli.BeforeFunc(cmdhelper.ExactArgs(1)),
		Action:    c.Run,
	}
}

// Run is the main function for the current command
func (c *ListCommand) Run(ctx context.Context, cmd *cli.Command) error {
	ctx, apiClient, err := c.API.Setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer xio.CloseAndSkipError(apiClient)

	namespace := cmd.Args().First()
	list, err := flows.NewService(apiClient).List(ctx, c.API.Target(), namespace)
	if err != nil {
		return err
	}
	return c.API.Write(cmd, list, func() *cmdhelper.Table {
		t := cmdhelper.NewTable(fmt.Sprintf("Flows in %s", namespace), "ID", "Namespace", "Description", "Revision")
		for _, flow := range list {
			t.AddRow(flow["id"], flow["namespace"], flow["description"], flow["revision"])
		}
		return t
	})
}
