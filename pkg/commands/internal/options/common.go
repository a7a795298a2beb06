// Package options defines the flag groups shared by the commands.
package options

import (
	"context"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/kestractl/pkg/cmdhelper"
	"github.com/wuxler/kestractl/pkg/xlog"
)

// CommonFlagCategory is the category of the common flags.
const CommonFlagCategory = "[Common]"

// NewCommon returns a *Common with default values.
func NewCommon() *Common {
	return &Common{}
}

// Common are options that are common to all commands.
type Common struct {
	Debug   bool   `json:"debug,omitempty" yaml:"debug,omitempty"`
	LogFile string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
}

// Flags returns the []cli.Flag related to current options.
func (o *Common) Flags() []cli.Flag {
	return cmdhelper.SetFlagsCategory(CommonFlagCategory,
		&cli.BoolFlag{
			Name:        "debug",
			Aliases:     []string{"d"},
			Sources:     cli.EnvVars("KESTRA_DEBUG"),
			Usage:       "enable debug logs and dump every HTTP request",
			Destination: &o.Debug,
			Value:       o.Debug,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Sources:     cli.EnvVars("KESTRA_LOG_FILE"),
			Usage:       "also write JSON logs to the file, rotated by size",
			Destination: &o.LogFile,
			Value:       o.LogFile,
		},
	)
}

// SetupLogger installs the logger configured by the options as the default
// one and returns a context carrying it.
func (o *Common) SetupLogger(ctx context.Context, cmd *cli.Command) context.Context {
	logger := o.NewLogger(cmdhelper.ErrWriter(cmd))
	xlog.SetDefault(logger)
	return xlog.WithLogger(ctx, logger.With("command", cmd.FullName()))
}

// NewLogger returns a logger writing text records to w.
func (o *Common) NewLogger(w io.Writer) *xlog.Logger {
	cfg := xlog.NewConfig()
	cfg.Writer = w
	cfg.File.Path = o.LogFile
	if o.Debug {
		cfg.Level = xlog.LevelDebug
	}
	return xlog.New(cfg)
}
