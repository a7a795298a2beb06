package flows

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/kestractl/pkg/cmdhelper"
	"github.com/wuxler/kestractl/pkg/commands/internal/options"
	"github.com/wuxler/kestractl/pkg/kestra/flows"
	"github.com/wuxler/kestractl/pkg/util/xio"
)

// NewDeployCommand returns a DeployCommand with default values.
func NewDeployCommand() *DeployCommand {
	return &DeployCommand{
		API: options.NewAPI(cmdhelper.OutputTable),
	}
}

// DeployCommand creates or updates a flow from its YAML definition.
type DeployCommand struct {
	API *options.API

	Override bool `json:"override,omitempty" yaml:"override,omitempty"`
}

// ToCLI tranforms to a *cli.Command.
func (c *DeployCommand) ToCLI() *cli.Command {
	return &cli.Command{
		Name:  "deploy",
		Usage: "Create a flow from a YAML file, or update it with --override",
		UsageText: `kestra flows deploy [OPTIONS] FILE

# Create a new flow:
$ kestra flows deploy hello.yml

# Replace an existing flow:
$ kestra flows deploy --override hello.yml

# Read the definition from stdin:
$ cat hello.yml | kestra flows deploy -
`,
		ArgsUsage: "FILE",
		Flags:     c.Flags(),
		Before:    cli.BeforeFunc(cmdhelper.ExactArgs(1)),
		Action:    c.Run,
	}
}

// Flags defines the flags related to the current command.
func (c *DeployCommand) Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "override",
			Usage:       "replace the flow if it already exists",
			Destination: &c.Override,
			Value:       c.Override,
		},
	}
	return append(flags, c.API.Flags()...)
}

// Run is the main function for the current command
func (c *DeployCommand) Run(ctx context.Context, cmd *cli.Command) error {
	source, err := readSource(cmd, cmd.Args().First())
	if err != nil {
		return err
	}
	ctx, apiClient, err := c.API.Setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer xio.CloseAndSkipError(apiClient)

	result, err := flows.NewService(apiClient).Upsert(ctx, c.API.Target(), source, c.Override)
	if err != nil {
		return err
	}
	return c.API.Write(cmd, result.Flow, func() *cmdhelper.Table {
		action := "updated"
		if result.Created {
			action = "created"
		}
		t := cmdhelper.NewTable(fmt.Sprintf("✓ Flow '%s' %s", result.Ref, action), "Property", "Value")
		t.AddRow("ID", result.Flow["id"])
		t.AddRow("Namespace", result.Flow["namespace"])
		t.AddRow("Revision", result.Flow["revision"])
		return t
	})
}

func readSource(cmd *cli.Command, path string) ([]byte, error) {
	if path != "-" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read flow file: %w", err)
		}
		return content, nil
	}
	content, err := io.ReadAll(cmdhelper.Reader(cmd))
	if err != nil {
		return nil, fmt.Errorf("unable to read flow from stdin: %w", err)
	}
	return content, nil
}
