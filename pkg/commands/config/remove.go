package config

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/kestractl/pkg/cmdhelper"
	"github.com/wuxler/kestractl/pkg/commands/internal/options"
	"github.com/wuxler/kestractl/pkg/kestra/authctx"
)

// NewRemoveCommand returns a RemoveCommand with default values.
func NewRemoveCommand() *RemoveCommand {
	return &RemoveCommand{
		Common: options.NewCommon(),
		Store:  options.NewStore(),
	}
}

// RemoveCommand deletes a stored context.
type RemoveCommand struct {
	Common *options.Common
	Store  *options.Store
}

// ToCLI tranforms to a *cli.Command.
func (c *RemoveCommand) ToCLI() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"rm"},
		Usage:     "Remove a context",
		ArgsUsage: "NAME",
		Flags:     append(c.Store.Flags(), c.Common.Flags()...),
		Before:    cli.BeforeFunc(cmdhelper.ExactArgs(1)),
		Action:    c.Run,
	}
}

// Run is the main function for the current command
func (c *RemoveCommand) Run(ctx context.Context, cmd *cli.Command) error {
	ctx = c.Common.SetupLogger(ctx, cmd)
	name := cmd.Args().First()
	store, err := c.Store.Open()
	if err != nil {
		return err
	}
	if _, ok := store.GetContext(ctx, name); !ok {
		return fmt.Errorf("%q: %w", name, authctx.ErrUnknownContext)
	}
	if err := store.DeleteContext(ctx, name); err != nil {
		return err
	}
	cmdhelper.Fprintf(cmdhelper.Writer(cmd), "Context '%s' removed.", name)
	return nil
}
