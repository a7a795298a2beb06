package options

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/kestractl/pkg/cmdhelper"
	"github.com/wuxler/kestractl/pkg/kestra/client"
)

// NewAPI returns an *API whose output defaults to format.
func NewAPI(format cmdhelper.OutputFormat) *API {
	return &API{
		Common:     NewCommon(),
		Connection: NewConnection(),
		Output:     NewOutput(format),
	}
}

// API bundles the options of every command calling the Kestra API.
type API struct {
	Common     *Common
	Connection *Connection
	Output     *Output
}

// Flags returns the []cli.Flag related to current options.
func (o *API) Flags() []cli.Flag {
	flags := o.Output.Flags()
	flags = append(flags, o.Connection.Flags()...)
	flags = append(flags, o.Common.Flags()...)
	return flags
}

// Setup installs the logger and builds the API client. Callers must close
// the client.
func (o *API) Setup(ctx context.Context, cmd *cli.Command) (context.Context, *client.Client, error) {
	ctx = o.Common.SetupLogger(ctx, cmd)
	c, err := o.Connection.NewClient(o.Common, cmd)
	if err != nil {
		return ctx, nil, err
	}
	return ctx, c, nil
}

// Target returns the target of the operations.
func (o *API) Target() client.Target {
	return o.Connection.Target()
}

// Write prints v in the selected output format.
func (o *API) Write(cmd *cli.Command, v any, tableFn func() *cmdhelper.Table) error {
	return cmdhelper.Write(cmdhelper.Writer(cmd), o.Output.OutputFormat(), v, tableFn)
}
