package executions

import (
	"context"

	"github.com/spf13/cast"
	"github.com/urfave/cli/v3"

	"github.com/wuxler/kestractl/pkg/cmdhelper"
	"github.com/wuxler/kestractl/pkg/commands/internal/options"
	"github.com/wuxler/kestractl/pkg/kestra/executions"
	"github.com/wuxler/kestractl/pkg/util/xio"
)

// NewGetCommand returns a GetCommand with default values.
func NewGetCommand() *GetCommand {
	return &GetCommand{
		API: options.NewAPI(cmdhelper.OutputTable),
	}
}

// GetCommand prints one execution.
type GetCommand struct {
	API *options.API
}

// ToCLI tranforms to a *cli.Command.
func (c *GetCommand) ToCLI() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Get an execution",
		ArgsUsage: "EXECUTION_ID",
		Flags:     c.API.Flags(),
		Before:    cli.BeforeFunc(cmdhelper.ExactArgs(1)),
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

	execution, err := executions.NewService(apiClient).Get(ctx, c.API.Target(), cmd.Args().First())
	if err != nil {
		return err
	}
	return c.API.Write(cmd, execution, func() *cmdhelper.Table {
		return summaryTable("Execution", execution)
	})
}

// summaryTable renders the main fields of an execution.
func summaryTable(title string, execution executions.Execution) *cmdhelper.Table {
	state := cast.ToStringMap(execution["state"])
	t := cmdhelper.NewTable(title, "Property", "Value")
	t.AddRow("ID", execution["id"])
	t.AddRow("Namespace", execution["namespace"])
	t.AddRow("Flow", execution["flowId"])
	t.AddRow("State", state["current"])
	if start, ok := state["startDate"]; ok {
		t.AddRow("Start", start)
	}
	if duration, ok := state["duration"]; ok {
		t.AddRow("Duration", duration)
	}
	return t
}
