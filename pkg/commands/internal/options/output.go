package options

import (
	"github.com/urfave/cli/v3"

	"github.com/wuxler/kestractl/pkg/cmdhelper"
)

// NewOutput returns an *Output defaulting to format.
func NewOutput(format cmdhelper.OutputFormat) *Output {
	return &Output{Format: string(format)}
}

// Output selects how a command prints its result.
type Output struct {
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// Flags returns the []cli.Flag related to current options.
func (o *Output) Flags() []cli.Flag {
	return cmdhelper.SetFlagsCategory(CommonFlagCategory,
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Sources:     cli.EnvVars("KESTRA_OUTPUT"),
			Usage:       `output format, oneof ["table", "json", "yaml"]`,
			Destination: &o.Format,
			Value:       o.Format,
			Validator: func(s string) error {
				_, err := cmdhelper.ParseOutputFormat(s)
				return err
			},
		},
	)
}

// OutputFormat returns the parsed format, table when invalid.
func (o *Output) OutputFormat() cmdhelper.OutputFormat {
	format, err := cmdhelper.ParseOutputFormat(o.Format)
	if err != nil {
		return cmdhelper.OutputTable
	}
	return format
}
