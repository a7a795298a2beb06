package config

import (
	"context"
	"errors"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/urfave/cli/v3"

	"github.com/wuxler/kestractl/pkg/cmdhelper"
	"github.com/wuxler/kestractl/pkg/commands/internal/options"
	"github.com/wuxler/kestractl/pkg/kestra/authctx"
	"github.com/wuxler/kestractl/pkg/kestra/client"
)

// NewAddCommand returns an AddCommand with default values.
func NewAddCommand() *AddCommand {
	return &AddCommand{
		Common: options.NewCommon(),
		Store:  options.NewStore(),
	}
}

// AddCommand stores a context, replacing any context with the same name.
type AddCommand struct {
	Common *options.Common
	Store  *options.Store

	Token      string `json:"-" yaml:"-"`
	Username   string `json:"username,omitempty" yaml:"username,omitempty"`
	Password   string `json:"-" yaml:"-"`
	SetDefault bool   `json:"default,omitempty" yaml:"default,omitempty"`
}

// ToCLI tranforms to a *cli.Command.
func (c *AddCommand) ToCLI() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add or replace a context",
		UsageText: `kestra config add [OPTIONS] NAME HOST [TENANT]

# Add a token context and make it the default:
$ kestra config add prod https://kestra.example.com main --token XXX --default

# Add a basic auth context:
$ kestra config add local http://localhost:8080 --username admin@kestra.io --password kestra

# Prompt for the token:
$ kestra config add prod https://kestra.example.com main
`,
		ArgsUsage: "NAME HOST [TENANT]",
		Flags:     c.Flags(),
		Before:    cli.BeforeFunc(cmdhelper.ActionFuncChain(cmdhelper.RangeArgs(2, 3), c.Validate)),
		Action:    c.Run,
	}
}

// Flags defines the flags related to the current command.
func (c *AddCommand) Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "token",
			Usage:       "API token, prompted when no credential flag is given",
			Destination: &c.Token,
			Value:       c.Token,
		},
		&cli.StringFlag{
			Name:        "username",
			Aliases:     []string{"u"},
			Usage:       "basic auth username",
			Destination: &c.Username,
			Value:       c.Username,
		},
		&cli.StringFlag{
			Name:        "password",
			Aliases:     []string{"p"},
			Usage:       "basic auth password",
			Destination: &c.Password,
			Value:       c.Password,
		},
		&cli.BoolFlag{
			Name:        "default",
			Usage:       "set as the default context",
			Destination: &c.SetDefault,
			Value:       c.SetDefault,
		},
	}
	flags = append(flags, c.Store.Flags()...)
	flags = append(flags, c.Common.Flags()...)
	return flags
}

// Validate validates commands flags.
func (c *AddCommand) Validate(_ context.Context, _ *cli.Command) error {
	if c.Token != "" && (c.Username != "" || c.Password != "") {
		return errors.New("--token and --username/--password are mutually exclusive")
	}
	if (c.Username == "") != (c.Password == "") {
		return errors.New("--username and --password must be given together")
	}
	return nil
}

// Run is the main function for the current command
func (c *AddCommand) Run(ctx context.Context, cmd *cli.Command) error {
	ctx = c.Common.SetupLogger(ctx, cmd)
	args := cmd.Args()
	ac := authctx.AuthContext{
		Name:   args.Get(0),
		Host:   args.Get(1),
		Tenant: args.Get(2),
	}
	if ac.Tenant == "" {
		ac.Tenant = client.DefaultTenant
	}

	if c.Username != "" {
		ac.Credential = authctx.BasicCredential(c.Username, c.Password)
	} else {
		if c.Token == "" {
			token, err := c.promptToken(cmd)
			if err != nil {
				return err
			}
			c.Token = token
		}
		ac.Credential = authctx.TokenCredential(c.Token)
	}

	store, err := c.Store.Open()
	if err != nil {
		return err
	}
	if err := store.AddContext(ctx, ac); err != nil {
		return err
	}
	if c.SetDefault {
		if err := store.SetDefault(ctx, ac.Name); err != nil {
			return err
		}
		cmdhelper.Fprintf(cmdhelper.Writer(cmd), "Context '%s' added and set as default.", ac.Name)
	} else {
		cmdhelper.Fprintf(cmdhelper.Writer(cmd), "Context '%s' added.", ac.Name)
	}
	cmdhelper.Fprintf(cmdhelper.Writer(cmd), "Host: %s", ac.Host)
	cmdhelper.Fprintf(cmdhelper.Writer(cmd), "Tenant: %s", ac.Tenant)
	if ac.Credential.Kind == authctx.KindUsernamePassword {
		cmdhelper.Fprintf(cmdhelper.Writer(cmd), "Username: %s", ac.Credential.Username)
		cmdhelper.Fprintf(cmdhelper.Writer(cmd), "Password: [REDACTED]")
	} else {
		cmdhelper.Fprintf(cmdhelper.Writer(cmd), "Token: [REDACTED]")
	}
	cmdhelper.Fprintf(cmdhelper.ErrWriter(cmd), "Warning: credentials are stored unencrypted in %s", store.Filename())
	return nil
}

func (c *AddCommand) promptToken(cmd *cli.Command) (string, error) {
	prompt := promptui.Prompt{
		Label: "Token",
		Mask:  '*',
		Stdin: io.NopCloser(cmdhelper.Reader(cmd)),
	}
	token, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) {
			return "", errors.New("aborted, no token given")
		}
		return "", err
	}
	return token, nil
}
