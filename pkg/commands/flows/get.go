package flows

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/kestractl/pkg/cmdhelper"
	"github.com/wuxler/kestractl/pkg/commands/internal/options"
	"github.com/wuxler/kestractl/pkg/kestra/flows"
	"github.com/wuxler/kestractl/pkg/util/xio"
)

// NewGetCommand returns a GetCommand with default values.
func NewGetCommand() *GetCommand {
	return &GetCommand{
		API: options.NewAPI(cmdhelper.OutputJSON),
	}
}

// GetCommand prints one flow.
type GetCommand struct {
	API *options.API
}

// ToCLI tranforms to a *cli.Command.
func (c *GetCommand) ToCLI() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Get a flow",
		ArgsUsage: "NAMESPACE FLOW_ID",
		Flags:     c.API.Flags(),
		Before:    cli.BeforeFunc(cmdhelper.ExactArgs(2)),
		Action:    c.Run,
	}
}

// Run is the main function for the current command
func (c *GetCommand) Run(ctx context.Context, cmd *cli.Command) error {
	ctx, apiClient, err := c.API.Setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer xio.CloseAndSkipError(apiClient)

	namespace, id := cmd.Args().Get(0), cmd.Args().Get(1)
	flow, err := flows.NewService(apiClient).Get(ctx, c.API.Target(), namespace, id)
	if err != nil {
		return err
	}
	return c.API.Write(cmd, flow, func() *cmdhelper.Table {
		return propertiesTable("Flow: "+namespace+"."+id, flow)
	})
}
