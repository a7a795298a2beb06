package executions

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/kestractl/pkg/cmdhelper"
	"github.com/wuxler/kestractl/pkg/commands/internal/options"
	"github.com/wuxler/kestractl/pkg/kestra/executions"
	"github.com/wuxler/kestractl/pkg/util/xio"
)

// NewRunCommand returns a RunCommand with default values.
func NewRunCommand() *RunCommand {
	return &RunCommand{
		API: options.NewAPI(cmdhelper.OutputTable),
	}
}

// RunCommand triggers a new execution of a flow.
type RunCommand struct {
	API *options.API

	Inputs []string `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Wait   bool     `json:"wait,omitempty" yaml:"wait,omitempty"`
}

// ToCLI tranforms to a *cli.Command.
func (c *RunCommand) ToCLI() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Trigger a flow execution",
		UsageText: `kestra executions run [OPTIONS] NAMESPACE FLOW_ID

# Trigger with inputs and wait for the end of the execution:
$ kestra executions run company.team hello --input name=world --wait
`,
		ArgsUsage: "NAMESPACE FLOW_ID",
		Flags:     c.Flags(),
		Before:    cli.BeforeFunc(cmdhelper.ActionFuncChain(cmdhelper.ExactArgs(2), c.Validate)),
		Action:    c.Run,
	}
}

// Flags defines the flags related to the current command.
func (c *RunCommand) Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "flow input as KEY=VALUE, repeatable",
			Destination: &c.Inputs,
			Value:       c.Inputs,
		},
		&cli.BoolFlag{
			Name:        "wait",
			Aliases:     []string{"w"},
			Usage:       "wait for the execution to finish",
			Destination: &c.Wait,
			Value:       c.Wait,
		},
	}
	return append(flags, c.API.Flags()...)
}

// Validate validates commands flags.
func (c *RunCommand) Validate(_ context.Context, _ *cli.Command) error {
	_, err := parseInputs(c.Inputs)
	return err
}

// Run is the main function for the current command
func (c *RunCommand) Run(ctx context.Context, cmd *cli.Command) error {
	inputs, err := parseInputs(c.Inputs)
	if err != nil {
		return err
	}
	ctx, apiClient, err := c.API.Setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer xio.CloseAndSkipError(apiClient)

	namespace, flowID := cmd.Args().Get(0), cmd.Args().Get(1)
	execution, err := executions.NewService(apiClient).Trigger(ctx, c.API.Target(), namespace, flowID, executions.TriggerOptions{
		Inputs: inputs,
		Wait:   c.Wait,
	})
	if err != nil {
		return err
	}
	return c.API.Write(cmd, execution, func() *cmdhelper.Table {
		return summaryTable("✓ Execution triggered", execution)
	})
}

func parseInputs(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	inputs := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid input %q, expected KEY=VALUE", pair)
		}
		inputs[key] = value
	}
	return inputs, nil
}
