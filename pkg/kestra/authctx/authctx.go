// Package authctx stores named authentication contexts used to reach a
// Kestra instance, one of which may be marked as the default.
package authctx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/smallnest/deepcopy"

	"github.com/wuxler/kestractl/pkg/errdefs"
)

// ErrUnknownContext is returned when a context name is not in the store.
var ErrUnknownContext = fmt.Errorf("unknown context: %w", errdefs.ErrNotFound)

// CredentialKind identifies how a context authenticates.
type CredentialKind string

const (
	// KindToken authenticates with a bearer token.
	KindToken CredentialKind = "token"
	// KindUsernamePassword authenticates with HTTP basic auth.
	KindUsernamePassword CredentialKind = "username_password"
)

// Valid reports whether k is a known credential kind.
func (k CredentialKind) Valid() bool {
	return k == KindToken || k == KindUsernamePassword
}

// Credential is the secret part of an AuthContext. Only the fields matching
// Kind are meaningful.
type Credential struct {
	Kind     CredentialKind
	Token    string
	Username string
	Password string
}

// TokenCredential returns a token credential.
func TokenCredential(token string) Credential {
	return Credential{Kind: KindToken, Token: token}
}

// BasicCredential returns a username/password credential.
func BasicCredential(username, password string) Credential {
	return Credential{Kind: KindUsernamePassword, Username: username, Password: password}
}

// AuthContext is one named way to reach a Kestra instance.
type AuthContext struct {
	Name       string
	Host       string
	Tenant     string
	Credential Credential
}

// Validate checks the fields required to persist the context.
func (c AuthContext) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, errors.New("non-empty context name is required"))
	}
	if strings.TrimSpace(c.Host) == "" {
		errs = append(errs, errors.New("non-empty host is required"))
	}
	if !c.Credential.Kind.Valid() {
		errs = append(errs, fmt.Errorf("unsupported auth method %q", c.Credential.Kind))
	}
	if len(errs) > 0 {
		return errdefs.NewE(errdefs.ErrInvalidParameter, errors.Join(errs...))
	}
	return nil
}

// Config is the in-memory form of the store file.
type Config struct {
	// Contexts is keyed by context name, each value has Name populated.
	Contexts map[string]AuthContext
	// DefaultContext is the name of the default context, empty when unset.
	DefaultContext string
}

// NewConfig returns an empty Config.
func NewConfig() *Config {
	return &Config{Contexts: map[string]AuthContext{}}
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	clone := deepcopy.Copy(c)
	if clone.Contexts == nil {
		clone.Contexts = map[string]AuthContext{}
	}
	return clone
}

// Default returns the default context if one is set and still present.
func (c *Config) Default() (AuthContext, bool) {
	if c.DefaultContext == "" {
		return AuthContext{}, false
	}
	ac, ok := c.Contexts[c.DefaultContext]
	return ac, ok
}
