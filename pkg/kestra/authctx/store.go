package authctx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/afero"

	"github.com/wuxler/kestractl/pkg/util/homedir"
	"github.com/wuxler/kestractl/pkg/util/xio"
	"github.com/wuxler/kestractl/pkg/xlog"
)

// DefaultFileName is the name of the store file under the config directory.
const DefaultFileName = "config"

// NewStore returns a Store persisting to filename on fs.
func NewStore(fs afero.Fs, filename string) *Store {
	return &Store{fs: fs, filename: filename}
}

// NewFileStore returns a Store backed by the OS filesystem under dir. An
// empty dir means the default "~/.kestra".
func NewFileStore(dir string) (*Store, error) {
	if dir == "" {
		dir = homedir.ConfigDir()
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return nil, err
	}
	return NewStore(afero.NewOsFs(), filepath.Join(expanded, DefaultFileName)), nil
}

// Store is a JSON file of named contexts. Every mutation reads the whole
// file, changes it in memory and rewrites it atomically. There is no
// cross-process locking, the last writer wins.
type Store struct {
	fs       afero.Fs
	filename string
}

// Filename returns the path of the store file.
func (s *Store) Filename() string {
	return s.filename
}

// Load reads the store file. A missing, unreadable or corrupt file yields an
// empty config.
func (s *Store) Load(ctx context.Context) *Config {
	f, err := s.fs.Open(s.filename)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			xlog.C(ctx).Debug("unable to open config file", "file", s.filename, "error", err)
		}
		return NewConfig()
	}
	defer xio.CloseAndSkipError(f)

	cfg, err := decodeConfig(f)
	if err != nil {
		xlog.C(ctx).Debug("unable to parse config file, treat as empty", "file", s.filename, "error", err)
		return NewConfig()
	}
	return cfg
}

// Save writes cfg to the store file, replacing it atomically.
func (s *Store) Save(ctx context.Context, cfg *Config) (retErr error) {
	if s.filename == "" {
		return errors.New("no file name provided on save")
	}
	if cfg == nil {
		cfg = NewConfig()
	}
	cfg = cfg.Clone()
	if _, ok := cfg.Contexts[cfg.DefaultContext]; !ok {
		cfg.DefaultContext = ""
	}
	dir := filepath.Dir(s.filename)
	if err := s.fs.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	temp, err := afero.TempFile(s.fs, dir, filepath.Base(s.filename))
	if err != nil {
		return err
	}
	defer func() {
		xio.CloseAndSkipError(temp)
		if retErr != nil {
			if err := s.fs.Remove(temp.Name()); err != nil {
				xlog.C(ctx).Debug("unable to cleanup temp file", "file", temp.Name())
			}
		}
	}()
	if err := encodeConfig(temp, cfg); err != nil {
		return err
	}
	if err := temp.Close(); err != nil {
		return fmt.Errorf("unable to close temp file: %w", err)
	}
	if err := s.fs.Chmod(temp.Name(), 0o600); err != nil {
		return err
	}
	return s.fs.Rename(temp.Name(), s.filename)
}

// AddContext inserts ac or replaces the context with the same name. The
// default context is left untouched.
func (s *Store) AddContext(ctx context.Context, ac AuthContext) error {
	if err := ac.Validate(); err != nil {
		return err
	}
	cfg := s.Load(ctx)
	cfg.Contexts[ac.Name] = ac
	return s.Save(ctx, cfg)
}

// GetContext returns the named context. An empty name resolves to the
// default context.
func (s *Store) GetContext(ctx context.Context, name string) (AuthContext, bool) {
	cfg := s.Load(ctx)
	if name == "" {
		return cfg.Default()
	}
	ac, ok := cfg.Contexts[name]
	return ac, ok
}

// SetDefault marks name as the default context.
func (s *Store) SetDefault(ctx context.Context, name string) error {
	cfg := s.Load(ctx)
	if _, ok := cfg.Contexts[name]; !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownContext)
	}
	cfg.DefaultContext = name
	return s.Save(ctx, cfg)
}

// ListContexts returns all contexts sorted by name.
func (s *Store) ListContexts(ctx context.Context) []AuthContext {
	cfg := s.Load(ctx)
	contexts := lo.Values(cfg.Contexts)
	sort.Slice(contexts, func(i, j int) bool {
		return contexts[i].Name < contexts[j].Name
	})
	return contexts
}

// DeleteContext removes the named context, clearing the default if it
// pointed there. Deleting an absent name is a no-op.
func (s *Store) DeleteContext(ctx context.Context, name string) error {
	cfg := s.Load(ctx)
	if _, ok := cfg.Contexts[name]; !ok {
		return nil
	}
	delete(cfg.Contexts, name)
	if cfg.DefaultContext == name {
		cfg.DefaultContext = ""
	}
	return s.Save(ctx, cfg)
}

// DefaultName returns the default context name, empty when unset.
func (s *Store) DefaultName(ctx context.Context) string {
	return s.Load(ctx).DefaultContext
}
