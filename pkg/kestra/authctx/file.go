package authctx

import (
	"encoding/json"
	"io"

	"github.com/samber/lo"
)

// fileContext is the on-disk value of one context, the name being its key.
type fileContext struct {
	Host       string `json:"host"`
	Tenant     string `json:"tenant"`
	AuthMethod string `json:"auth_method"`
	Token      string `json:"token,omitempty"`
	Username   string `json:"username,omitempty"`
	Password   string `json:"password,omitempty"`
}

// fileConfig is the JSON document persisted by the store.
type fileConfig struct {
	Contexts       map[string]fileContext `json:"contexts"`
	DefaultContext *string                `json:"default_context"`
}

func decodeConfig(r io.Reader) (*Config, error) {
	var raw fileConfig
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}
	cfg := NewConfig()
	for name, fc := range raw.Contexts {
		cfg.Contexts[name] = AuthContext{
			Name:   name,
			Host:   fc.Host,
			Tenant: fc.Tenant,
			Credential: Credential{
				Kind:     CredentialKind(fc.AuthMethod),
				Token:    fc.Token,
				Username: fc.Username,
				Password: fc.Password,
			},
		}
	}
	if raw.DefaultContext != nil {
		cfg.DefaultContext = *raw.DefaultContext
	}
	return cfg, nil
}

func encodeConfig(w io.Writer, cfg *Config) error {
	raw := fileConfig{
		Contexts: lo.MapValues(cfg.Contexts, func(ac AuthContext, _ string) fileContext {
			fc := fileContext{
				Host:       ac.Host,
				Tenant:     ac.Tenant,
				AuthMethod: string(ac.Credential.Kind),
			}
			switch ac.Credential.Kind {
			case KindToken:
				fc.Token = ac.Credential.Token
			case KindUsernamePassword:
				fc.Username = ac.Credential.Username
				fc.Password = ac.Credential.Password
			}
			return fc
		}),
	}
	if cfg.DefaultContext != "" {
		raw.DefaultContext = &cfg.DefaultContext
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(raw)
}
