package options

import (
	"github.com/urfave/cli/v3"

	"github.com/wuxler/kestractl/pkg/cmdhelper"
	"github.com/wuxler/kestractl/pkg/kestra/authctx"
)

// NewStore returns a *Store with default values.
func NewStore() *Store {
	return &Store{}
}

// Store locates the credential store file.
type Store struct {
	ConfigDir string `json:"config_dir,omitempty" yaml:"config_dir,omitempty"`
}

// Flags returns the []cli.Flag related to current options.
func (o *Store) Flags() []cli.Flag {
	return cmdhelper.SetFlagsCategory(CommonFlagCategory,
		&cli.StringFlag{
			Name:        "config-dir",
			Sources:     cli.EnvVars("KESTRA_CONFIG_DIR"),
			Usage:       `directory of the context store, default to "~/.kestra"`,
			Destination: &o.ConfigDir,
			Value:       o.ConfigDir,
		},
	)
}

// Open returns the credential store.
func (o *Store) Open() (*authctx.Store, error) {
	return authctx.NewFileStore(o.ConfigDir)
}
