package authctx_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/kestractl/pkg/errdefs"
	"github.com/wuxler/kestractl/pkg/kestra/authctx"
)

const testFile = "/home/tester/.kestra/config"

func newTestStore(t *testing.T) (*authctx.Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return authctx.NewStore(fs, testFile), fs
}

func readRaw(t *testing.T, fs afero.Fs) map[string]any {
	t.Helper()
	content, err := afero.ReadFile(fs, testFile)
	require.NoError(t, err)
	raw := map[string]any{}
	require.NoError(t, json.Unmarshal(content, &raw))
	return raw
}

func TestStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		store, _ := newTestStore(t)
		cfg := store.Load(ctx)
		assert.Empty(t, cfg.Contexts)
		assert.Empty(t, cfg.DefaultContext)
	})

	t.Run("corrupt file", func(t *testing.T) {
		store, fs := newTestStore(t)
		require.NoError(t, afero.WriteFile(fs, testFile, []byte("{not json"), 0o600))
		cfg := store.Load(ctx)
		assert.Empty(t, cfg.Contexts)
	})

	t.Run("valid file", func(t *testing.T) {
		store, fs := newTestStore(t)
		content := `{
  "contexts": {
    "prod": {"host": "https://kestra.example.com", "tenant": "t1", "auth_method": "token", "token": "abc"},
    "dev": {"host": "http://localhost:8080", "tenant": "main", "auth_method": "username_password", "username": "u", "password": "p"}
  },
  "default_context": "prod"
}`
		require.NoError(t, afero.WriteFile(fs, testFile, []byte(content), 0o600))
		cfg := store.Load(ctx)
		require.Len(t, cfg.Contexts, 2)
		assert.Equal(t, "prod", cfg.DefaultContext)
		assert.Equal(t, authctx.AuthContext{
			Name:       "prod",
			Host:       "https://kestra.example.com",
			Tenant:     "t1",
			Credential: authctx.TokenCredential("abc"),
		}, cfg.Contexts["prod"])
		assert.Equal(t, authctx.BasicCredential("u", "p"), cfg.Contexts["dev"].Credential)
	})
}

func TestStore_AddContext(t *testing.T) {
	ctx := context.Background()
	store, fs := newTestStore(t)

	ac := authctx.AuthContext{
		Name:       "prod",
		Host:       "https://kestra.example.com",
		Tenant:     "main",
		Credential: authctx.TokenCredential("abc"),
	}
	require.NoError(t, store.AddContext(ctx, ac))

	got, ok := store.GetContext(ctx, "prod")
	require.True(t, ok)
	assert.Equal(t, ac, got)
	assert.Empty(t, store.DefaultName(ctx), "adding must not set the default")

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	raw := readRaw(t, fs)
	assert.Nil(t, raw["default_context"])
	assert.Equal(t, map[string]any{
		"prod": map[string]any{
			"host":        "https://kestra.example.com",
			"tenant":      "main",
			"auth_method": "token",
			"token":       "abc",
		},
	}, raw["contexts"])

	// overwrite in place, no merge
	replaced := authctx.AuthContext{
		Name:       "prod",
		Host:       "https://other.example.com",
		Tenant:     "t2",
		Credential: authctx.BasicCredential("u", "p"),
	}
	require.NoError(t, store.AddContext(ctx, replaced))
	got, ok = store.GetContext(ctx, "prod")
	require.True(t, ok)
	assert.Equal(t, replaced, got)
	assert.Len(t, store.ListContexts(ctx), 1)

	entries, err := afero.ReadDir(fs, filepath.Dir(testFile))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files should be left behind")
}

func TestStore_AddContext_Invalid(t *testing.T) {
	ctx := context.Background()
	store, fs := newTestStore(t)

	testcases := []authctx.AuthContext{
		{Name: "", Host: "http://h", Credential: authctx.TokenCredential("")},
		{Name: "a", Host: "", Credential: authctx.TokenCredential("")},
		{Name: "a", Host: "http://h", Credential: authctx.Credential{Kind: "oauth"}},
	}
	for _, ac := range testcases {
		err := store.AddContext(ctx, ac)
		assert.ErrorIs(t, err, errdefs.ErrInvalidParameter)
	}
	exists, err := afero.Exists(fs, testFile)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStore_SetDefault(t *testing.T) {
	ctx := context.Background()
	store, fs := newTestStore(t)
	require.NoError(t, store.AddContext(ctx, authctx.AuthContext{
		Name: "prod", Host: "http://h", Tenant: "main", Credential: authctx.TokenCredential("x"),
	}))

	before, err := afero.ReadFile(fs, testFile)
	require.NoError(t, err)

	err = store.SetDefault(ctx, "missing")
	assert.ErrorIs(t, err, authctx.ErrUnknownContext)
	assert.ErrorIs(t, err, errdefs.ErrNotFound)
	after, err := afero.ReadFile(fs, testFile)
	require.NoError(t, err)
	assert.Equal(t, before, after, "file must be unchanged on failure")

	require.NoError(t, store.SetDefault(ctx, "prod"))
	assert.Equal(t, "prod", store.DefaultName(ctx))

	got, ok := store.GetContext(ctx, "")
	require.True(t, ok)
	assert.Equal(t, "prod", got.Name)
}

func TestStore_DeleteContext(t *testing.T) {
	ctx := context.Background()
	store, fs := newTestStore(t)
	for _, name := range []string{"b", "a", "c"} {
		require.NoError(t, store.AddContext(ctx, authctx.AuthContext{
			Name: name, Host: "http://" + name, Tenant: "main", Credential: authctx.TokenCredential(""),
		}))
	}
	require.NoError(t, store.SetDefault(ctx, "a"))

	names := func() []string {
		var out []string
		for _, ac := range store.ListContexts(ctx) {
			out = append(out, ac.Name)
		}
		return out
	}
	assert.Equal(t, []string{"a", "b", "c"}, names())

	require.NoError(t, store.DeleteContext(ctx, "missing"))
	assert.Equal(t, []string{"a", "b", "c"}, names())

	require.NoError(t, store.DeleteContext(ctx, "b"))
	assert.Equal(t, "a", store.DefaultName(ctx))

	require.NoError(t, store.DeleteContext(ctx, "a"))
	assert.Empty(t, store.DefaultName(ctx))
	assert.Nil(t, readRaw(t, fs)["default_context"])
	_, ok := store.GetContext(ctx, "")
	assert.False(t, ok)
	assert.Equal(t, []string{"c"}, names())
}

func TestStore_SaveDropsDanglingDefault(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	cfg := authctx.NewConfig()
	cfg.DefaultContext = "ghost"
	require.NoError(t, store.Save(ctx, cfg))

	assert.Equal(t, "ghost", cfg.DefaultContext, "caller config must not be mutated")
	assert.Empty(t, store.DefaultName(ctx))
}

func TestNewFileStore(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	store, err := authctx.NewFileStore("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", ".kestra", "config"), store.Filename())

	store, err = authctx.NewFileStore("~/custom")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", "custom", "config"), store.Filename())
}
