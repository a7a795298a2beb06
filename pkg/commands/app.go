// Package commands assembles the kestra command line application.
package commands

import (
	"github.com/urfave/cli/v3"

	"github.com/wuxler/kestractl/pkg/commands/config"
	"github.com/wuxler/kestractl/pkg/commands/executions"
	"github.com/wuxler/kestractl/pkg/commands/flows"
	"github.com/wuxler/kestractl/pkg/commands/namespaces"
)

// NewApp returns the root command.
func NewApp() *cli.Command {
	return &cli.Command{
		Name:                  "kestra",
		Usage:                 "kestra is a command line client of the Kestra orchestration API",
		Suggest:               true,
		EnableShellCompletion: true,
		HideVersion:           true,
		HideHelpCommand:       true,
		Commands: []*cli.Command{
			NewVersionCommand().ToCLI(),
			flows.New().ToCLI(),
			executions.New().ToCLI(),
			namespaces.New().ToCLI(),
			config.New().ToCLI(),
		},
	}
}
