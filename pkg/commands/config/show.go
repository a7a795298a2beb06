package config

import (
	"context"

	"github.com/samber/lo"
	"github.com/urfave/cli/v3"

	"github.com/wuxler/kestractl/pkg/cmdhelper"
	"github.com/wuxler/kestractl/pkg/commands/internal/options"
	"github.com/wuxler/kestractl/pkg/kestra/authctx"
)

// NewShowCommand returns a ShowCommand with default values.
func NewShowCommand() *ShowCommand {
	return &ShowCommand{
		Common: options.NewCommon(),
		Store:  options.NewStore(),
		Output: options.NewOutput(cmdhelper.OutputTable),
	}
}

// ShowCommand prints the stored contexts, secrets excluded.
type ShowCommand struct {
	Common *options.Common
	Store  *options.Store
	Output *options.Output
}

// ToCLI tranforms to a *cli.Command.
func (c *ShowCommand) ToCLI() *cli.Command {
	return &cli.Command{
		Name:   "show",
		Usage:  "Show the stored contexts",
		Flags:  c.Flags(),
		Before: cli.BeforeFunc(cmdhelper.NoArgs()),
		Action: c.Run,
	}
}

// Flags defines the flags related to the current command.
func (c *ShowCommand) Flags() []cli.Flag {
	flags := c.Output.Flags()
	flags = append(flags, c.Store.Flags()...)
	flags = append(flags, c.Common.Flags()...)
	return flags
}

type contextView struct {
	Name       string `json:"name" yaml:"name"`
	Host       string `json:"host" yaml:"host"`
	Tenant     string `json:"tenant" yaml:"tenant"`
	AuthMethod string `json:"auth_method" yaml:"auth_method"`
	Default    bool   `json:"default" yaml:"default"`
}

// Run is the main function for the current command
func (c *ShowCommand) Run(ctx context.Context, cmd *cli.Command) error {
	ctx = c.Common.SetupLogger(ctx, cmd)
	store, err := c.Store.Open()
	if err != nil {
		return err
	}
	contexts := store.ListContexts(ctx)
	defaultName := store.DefaultName(ctx)

	if format := c.Output.OutputFormat(); format != cmdhelper.OutputTable {
		views := lo.Map(contexts, func(ac authctx.AuthContext, _ int) contextView {
			return contextView{
				Name:       ac.Name,
				Host:       ac.Host,
				Tenant:     ac.Tenant,
				AuthMethod: string(ac.Credential.Kind),
				Default:    ac.Name == defaultName,
			}
		})
		return cmdhelper.Write(cmdhelper.Writer(cmd), format, views, nil)
	}

	if len(contexts) == 0 {
		cmdhelper.Fprintf(cmdhelper.Writer(cmd), "No authentication contexts configured.")
		cmdhelper.Fprintf(cmdhelper.Writer(cmd), "Use 'kestra config add' to add a new context.")
		return nil
	}
	cmdhelper.Fprintf(cmdhelper.Writer(cmd), "Current Configuration:")
	cmdhelper.Fprintf(cmdhelper.Writer(cmd), "Default context: %s", lo.Ternary(defaultName == "", "None", defaultName))
	cmdhelper.Fprintf(cmdhelper.Writer(cmd), "")
	for _, ac := range contexts {
		status := lo.Ternary(ac.Name == defaultName, "✓", " ")
		cmdhelper.Fprintf(cmdhelper.Writer(cmd), "%s %s: %s (tenant: %s)", status, ac.Name, ac.Host, ac.Tenant)
	}
	return nil
}
