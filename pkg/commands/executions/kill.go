package executions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/kestractl/pkg/cmdhelper"
	"github.com/wuxler/kestractl/pkg/commands/internal/options"
	"github.com/wuxler/kestractl/pkg/kestra/executions"
	"github.com/wuxler/kestractl/pkg/util/xio"
)

// NewKillRunningCommand returns a KillRunningCommand with default values.
func NewKillRunningCommand() *KillRunningCommand {
	return &KillRunningCommand{
		API: options.NewAPI(cmdhelper.OutputTable),
	}
}

// KillRunningCommand kills the running executions matching the filters.
type KillRunningCommand struct {
	API *options.API

	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	FlowID    string `json:"flow_id,omitempty" yaml:"flow_id,omitempty"`
}

// ToCLI tranforms to a *cli.Command.
func (c *KillRunningCommand) ToCLI() *cli.Command {
	return &cli.Command{
		Name:  "kill-running",
		Usage: "Kill all executions in RUNNING state",
		UsageText: `kestra executions kill-running [OPTIONS]

# Kill every running execution:
$ kestra executions kill-running

# Kill the running executions of one flow, flow ids are only unique within a namespace:
$ kestra executions kill-running --namespace company.team --flow-id hello
`,
		Flags:  c.Flags(),
		Before: cli.BeforeFunc(cmdhelper.ActionFuncChain(cmdhelper.NoArgs(), c.Validate)),
		Action: c.Run,
	}
}

// Flags defines the flags related to the current command.
func (c *KillRunningCommand) Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "namespace",
			Aliases:     []string{"n"},
			Usage:       "only kill executions of the namespace",
			Destination: &c.Namespace,
			Value:       c.Namespace,
		},
		&cli.StringFlag{
			Name:        "flow-id",
			Aliases:     []string{"f"},
			Usage:       "only kill executions of the flow, requires --namespace",
			Destination: &c.FlowID,
			Value:       c.FlowID,
		},
	}
	return append(flags, c.API.Flags()...)
}

// Validate validates commands flags.
func (c *KillRunningCommand) Validate(_ context.Context, _ *cli.Command) error {
	if c.FlowID != "" && c.Namespace == "" {
		return errors.New("--namespace is required when using --flow-id, flow ids are only unique within a namespace")
	}
	return nil
}

// Run is the main function for the current command
func (c *KillRunningCommand) Run(ctx context.Context, cmd *cli.Command) error {
	ctx, apiClient, err := c.API.Setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer xio.CloseAndSkipError(apiClient)

	result, err := executions.NewService(apiClient).KillByQuery(ctx, c.API.Target(), executions.KillQuery{
		States:    []string{executions.StateRunning},
		Namespace: c.Namespace,
		FlowID:    c.FlowID,
	})
	if err != nil {
		return err
	}
	if c.API.Output.OutputFormat() != cmdhelper.OutputTable {
		return c.API.Write(cmd, result, nil)
	}

	w := cmdhelper.Writer(cmd)
	cmdhelper.Fprintf(w, "✓ Kill request sent successfully!")
	cmdhelper.Fprintf(w, "Filters: %s", c.describeFilters())
	cmdhelper.Fprintf(w, "State: %s", executions.StateRunning)
	if count, ok := result["count"]; ok {
		cmdhelper.Fprintf(w, "Executions killed: %s", cmdhelper.FormatCell(count))
	} else if message, ok := result["message"]; ok {
		cmdhelper.Fprintf(w, "Message: %s", cmdhelper.FormatCell(message))
	}
	return nil
}

func (c *KillRunningCommand) describeFilters() string {
	var filters []string
	if c.Namespace != "" {
		filters = append(filters, fmt.Sprintf("namespace: %s", c.Namespace))
	}
	if c.FlowID != "" {
		filters = append(filters, fmt.Sprintf("flow ID: %s", c.FlowID))
	}
	if len(filters) == 0 {
		return "None (all running executions)"
	}
	return strings.Join(filters, ", ")
}
