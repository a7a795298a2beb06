package options

import (
	"crypto/tls"
	"errors"
	"net/http"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/kestractl/pkg/cmdhelper"
	"github.com/wuxler/kestractl/pkg/kestra/authctx"
	"github.com/wuxler/kestractl/pkg/kestra/client"
)

const (
	// ConnectionFlagCategory is the category of the connection flags.
	ConnectionFlagCategory = "[Connection]"
	// DefaultHost is used by an ephemeral context given no --host.
	DefaultHost = "http://localhost:8080"
)

// NewConnection returns a *Connection with default values.
func NewConnection() *Connection {
	return &Connection{Store: NewStore()}
}

// Connection selects the Kestra instance a command talks to: a stored
// context, or an ephemeral one built from --host/--token/--username.
type Connection struct {
	Store *Store

	Context  string   `json:"context,omitempty" yaml:"context,omitempty"`
	Host     string   `json:"host,omitempty" yaml:"host,omitempty"`
	Token    string   `json:"-" yaml:"-"`
	Username string   `json:"username,omitempty" yaml:"username,omitempty"`
	Password string   `json:"-" yaml:"-"`
	Tenant   string   `json:"tenant,omitempty" yaml:"tenant,omitempty"`
	Insecure bool     `json:"insecure,omitempty" yaml:"insecure,omitempty"`
	CAFiles  []string `json:"ca_files,omitempty" yaml:"ca_files,omitempty"`
}

// Flags returns the []cli.Flag related to current options.
func (o *Connection) Flags() []cli.Flag {
	flags := cmdhelper.SetFlagsCategory(ConnectionFlagCategory,
		&cli.StringFlag{
			Name:        "context",
			Aliases:     []string{"c"},
			Sources:     cli.EnvVars("KESTRA_CONTEXT"),
			Usage:       "stored context to use instead of the default one",
			Destination: &o.Context,
			Value:       o.Context,
		},
		&cli.StringFlag{
			Name:        "host",
			Sources:     cli.EnvVars("KESTRA_HOST"),
			Usage:       "Kestra host URL, bypasses the stored contexts",
			Destination: &o.Host,
			Value:       o.Host,
		},
		&cli.StringFlag{
			Name:        "token",
			Sources:     cli.EnvVars("KESTRA_TOKEN"),
			Usage:       "API token, bypasses the stored contexts",
			Destination: &o.Token,
			Value:       o.Token,
		},
		&cli.StringFlag{
			Name:        "username",
			Sources:     cli.EnvVars("KESTRA_USERNAME"),
			Usage:       "basic auth username, bypasses the stored contexts",
			Destination: &o.Username,
			Value:       o.Username,
		},
		&cli.StringFlag{
			Name:        "password",
			Sources:     cli.EnvVars("KESTRA_PASSWORD"),
			Usage:       "basic auth password",
			Destination: &o.Password,
			Value:       o.Password,
		},
		&cli.StringFlag{
			Name:        "tenant",
			Aliases:     []string{"t"},
			Sources:     cli.EnvVars("KESTRA_TENANT"),
			Usage:       "tenant name, default to the context tenant or \"main\"",
			Destination: &o.Tenant,
			Value:       o.Tenant,
		},
		&cli.BoolFlag{
			Name:        "insecure",
			Sources:     cli.EnvVars("KESTRA_INSECURE"),
			Usage:       "skip verifying the server SSL certificate",
			Destination: &o.Insecure,
			Value:       o.Insecure,
		},
		&cli.StringSliceFlag{
			Name:        "ca-files",
			Usage:       "CA files to verify the server SSL certificate",
			Destination: &o.CAFiles,
			Value:       o.CAFiles,
			Validator: func(paths []string) error {
				var errs []error
				for _, path := range paths {
					if _, err := os.Stat(path); err != nil {
						errs = append(errs, err)
					}
				}
				return errors.Join(errs...)
			},
		},
	)
	return append(flags, o.Store.Flags()...)
}

// Validate checks the flags are consistent.
func (o *Connection) Validate() error {
	if o.Username != "" && o.Password == "" {
		return errors.New("--password is required with --username")
	}
	if o.Token != "" && o.Username != "" {
		return errors.New("--token and --username are mutually exclusive")
	}
	return nil
}

// Ephemeral returns the context described by the flags, or nil when none of
// host, token or username is set.
func (o *Connection) Ephemeral() *authctx.AuthContext {
	if o.Host == "" && o.Token == "" && o.Username == "" {
		return nil
	}
	ac := &authctx.AuthContext{
		Name:       "ephemeral",
		Host:       o.Host,
		Tenant:     o.Tenant,
		Credential: authctx.TokenCredential(o.Token),
	}
	if ac.Host == "" {
		ac.Host = DefaultHost
	}
	if ac.Tenant == "" {
		ac.Tenant = client.DefaultTenant
	}
	if o.Username != "" {
		ac.Credential = authctx.BasicCredential(o.Username, o.Password)
	}
	return ac
}

// Target returns the target of the operations.
func (o *Connection) Target() client.Target {
	return client.Target{Context: o.Ephemeral(), Tenant: o.Tenant}
}

// NewClient returns an API client configured by the flags.
func (o *Connection) NewClient(common *Common, cmd *cli.Command) (*client.Client, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	store, err := o.Store.Open()
	if err != nil {
		return nil, err
	}
	transport, err := o.transport()
	if err != nil {
		return nil, err
	}
	opts := []client.Option{
		client.WithContextName(o.Context),
		client.WithTransport(transport),
	}
	if common != nil && common.Debug {
		opts = append(opts, client.WithDump(cmdhelper.ErrWriter(cmd)))
	}
	return client.New(store, opts...), nil
}

func (o *Connection) transport() (http.RoundTripper, error) {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if !o.Insecure && len(o.CAFiles) == 0 {
		return tr, nil
	}
	tlsConfig := &tls.Config{
		InsecureSkipVerify: o.Insecure, //nolint:gosec // explicit skip verify
	}
	if len(o.CAFiles) > 0 {
		pool, err := cmdhelper.LoadTLSCertFiles(o.CAFiles...)
		if err != nil {
			return nil, err
		}
		tlsConfig.RootCAs = pool
	}
	tr.TLSClientConfig = tlsConfig
	return tr, nil
}
