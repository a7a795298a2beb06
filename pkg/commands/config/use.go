package config

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/kestractl/pkg/cmdhelper"
	"github.com/wuxler/kestractl/pkg/commands/internal/options"
)

// NewUseCommand returns a UseCommand with default values.
func NewUseCommand() *UseCommand {
	return &UseCommand{
		Common: options.NewCommon(),
		Store:  options.NewStore(),
	}
}

// UseCommand marks a stored context as the default.
type UseCommand struct {
	Common *options.Common
	Store  *options.Store
}

// ToCLI tranforms to a *cli.Command.
func (c *UseCommand) ToCLI() *cli.Command {
	return &cli.Command{
		Name:      "use",
		Usage:     "Set the default context",
		ArgsUsage: "NAME",
		Flags:     append(c.Store.Flags(), c.Common.Flags()...),
		Before:    cli.BeforeFunc(cmdhelper.ExactArgs(1)),
		Action:    c.Run,
	}
}

// Run is the main function for the current command
func (c *UseCommand) Run(ctx context.Context, cmd *cli.Command) error {
	ctx = c.Common.SetupLogger(ctx, cmd)
	name := cmd.Args().First()
	store, err := c.Store.Open()
	if err != nil {
		return err
	}
	if err := store.SetDefault(ctx, name); err != nil {
		return err
	}
	cmdhelper.Fprintf(cmdhelper.Writer(cmd), "Default context set to '%s'.", name)
	return nil
}
