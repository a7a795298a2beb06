package commands_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/kestractl/pkg/commands"
	"github.com/wuxler/kestractl/pkg/errdefs"
	"github.com/wuxler/kestractl/pkg/kestra/authctx"
	"github.com/wuxler/kestractl/pkg/kestra/flows"
	"github.com/wuxler/kestractl/pkg/kestra/kestratest"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := commands.NewApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	app.Reader = strings.NewReader(stdin)
	err := app.Run(context.Background(), append([]string{"kestra"}, args...))
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestConfigLifecycle(t *testing.T) {
	dir := t.TempDir()
	server := kestratest.NewServer(t)
	server.Handle(http.MethodGet, "/api/v1/:tenant/namespaces/search", kestratest.JSON(http.StatusOK, gin.H{
		"results": []any{gin.H{"id": "company"}},
	}))

	res := run(t, "", "config", "add", "prod", server.URL, "--token", "s3cr3t", "--default", "--config-dir", dir)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Context 'prod' added and set as default.")
	assert.Contains(t, res.stdout, "Tenant: main")
	assert.Contains(t, res.stdout, "Token: [REDACTED]")
	assert.NotContains(t, res.stdout, "s3cr3t")
	assert.Contains(t, res.stderr, "Warning: credentials are stored unencrypted")

	res = run(t, "", "config", "add", "local", "http://localhost:8080", "dev",
		"--username", "admin", "--password", "kestra", "--config-dir", dir)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Context 'local' added.")
	assert.Contains(t, res.stdout, "Username: admin")
	assert.Contains(t, res.stdout, "Password: [REDACTED]")

	res = run(t, "", "config", "show", "--config-dir", dir)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Default context: prod")
	assert.Contains(t, res.stdout, "✓ prod: "+server.URL+" (tenant: main)")
	assert.Contains(t, res.stdout, "  local: http://localhost:8080 (tenant: dev)")

	// the default context is used when no connection flag is given
	res = run(t, "", "namespaces", "list", "--config-dir", dir)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Total namespaces: 1")
	requests := server.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "/api/v1/main/namespaces/search", requests[0].Path)
	assert.Equal(t, "Bearer s3cr3t", requests[0].Header.Get("Authorization"))

	res = run(t, "", "config", "use", "local", "--config-dir", dir)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Default context set to 'local'.")

	res = run(t, "", "config", "use", "missing", "--config-dir", dir)
	assert.ErrorIs(t, res.err, authctx.ErrUnknownContext)

	res = run(t, "", "config", "remove", "local", "--config-dir", dir)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Context 'local' removed.")

	res = run(t, "", "config", "remove", "local", "--config-dir", dir)
	assert.ErrorIs(t, res.err, authctx.ErrUnknownContext)

	res = run(t, "", "config", "show", "--config-dir", dir)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Default context: None")
	assert.Contains(t, res.stdout, "  prod: ")
}

func TestConfigShow_Empty(t *testing.T) {
	res := run(t, "", "config", "show", "--config-dir", t.TempDir())
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No authentication contexts configured.")
}

func TestConfigAdd_Conflicts(t *testing.T) {
	dir := t.TempDir()
	res := run(t, "", "config", "add", "prod", "http://localhost:8080", "--token", "x", "--username", "u", "--password", "p", "--config-dir", dir)
	require.Error(t, res.err)

	res = run(t, "", "config", "add", "prod", "http://localhost:8080", "--username", "u", "--config-dir", dir)
	require.Error(t, res.err)

	res = run(t, "", "config", "add", "prod", "--config-dir", dir)
	require.Error(t, res.err)
}

func TestKillRunning(t *testing.T) {
	t.Run("flow id requires namespace", func(t *testing.T) {
		server := kestratest.NewServer(t)
		res := run(t, "", "executions", "kill-running", "--flow-id", "hello",
			"--host", server.URL, "--token", "t", "--config-dir", t.TempDir())
		require.Error(t, res.err)
		assert.Contains(t, res.err.Error(), "--namespace is required")
		assert.Empty(t, server.Requests())
	})

	t.Run("filters", func(t *testing.T) {
		server := kestratest.NewServer(t)
		server.Handle(http.MethodDelete, "/api/v1/:tenant/executions/kill/by-query",
			kestratest.JSON(http.StatusOK, gin.H{"count": 3}))

		res := run(t, "", "executions", "kill-running", "-n", "company.team", "-f", "hello",
			"--host", server.URL, "--token", "t", "--config-dir", t.TempDir())
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "✓ Kill request sent successfully!")
		assert.Contains(t, res.stdout, "Filters: namespace: company.team, flow ID: hello")
		assert.Contains(t, res.stdout, "State: RUNNING")
		assert.Contains(t, res.stdout, "Executions killed: 3")

		requests := server.Requests()
		require.Len(t, requests, 1)
		assert.Equal(t, "company.team", requests[0].Query.Get("namespace"))
		assert.Equal(t, "hello", requests[0].Query.Get("flowId"))
		assert.Equal(t, []string{"RUNNING"}, requests[0].Query["state"])
	})

	t.Run("no filters", func(t *testing.T) {
		server := kestratest.NewServer(t)
		server.Handle(http.MethodDelete, "/api/v1/:tenant/executions/kill/by-query",
			kestratest.JSON(http.StatusOK, gin.H{"message": "queued"}))

		res := run(t, "", "executions", "kill-running", "--host", server.URL, "--config-dir", t.TempDir())
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "Filters: None (all running executions)")
		assert.Contains(t, res.stdout, "Message: queued")
	})
}

func TestNamespacesList(t *testing.T) {
	server := kestratest.NewServer(t)
	server.Handle(http.MethodGet, "/api/v1/:tenant/namespaces/search", kestratest.JSON(http.StatusOK, gin.H{
		"results": []any{
			gin.H{"id": "company", "deleted": false},
			gin.H{"id": "company.team", "deleted": true},
		},
		"total": 2,
	}))

	res := run(t, "", "namespaces", "list", "-q", "company", "--tenant", "acme",
		"--host", server.URL, "--token", "t", "--config-dir", t.TempDir())
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "company.team")
	assert.Contains(t, res.stdout, "Total namespaces: 2")

	requests := server.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "/api/v1/acme/namespaces/search", requests[0].Path)
	assert.Equal(t, "company", requests[0].Query.Get("q"))

	res = run(t, "", "namespaces", "list", "-o", "json",
		"--host", server.URL, "--token", "t", "--config-dir", t.TempDir())
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"id": "company.team"`)
}

func TestFlowsDeploy(t *testing.T) {
	const source = "id: hello\nnamespace: company.team\ntasks: []\n"

	t.Run("create from stdin", func(t *testing.T) {
		server := kestratest.NewServer(t)
		server.Handle(http.MethodGet, "/api/v1/:tenant/flows/:namespace/:id", kestratest.Status(http.StatusNotFound, "not found"))
		server.Handle(http.MethodPost, "/api/v1/:tenant/flows", kestratest.JSON(http.StatusOK, gin.H{
			"id": "hello", "namespace": "company.team", "revision": 1,
		}))

		res := run(t, source, "flows", "deploy", "-", "--host", server.URL, "--token", "t", "--config-dir", t.TempDir())
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "Flow 'company.team.hello' created")

		requests := server.Requests()
		require.Len(t, requests, 2)
		assert.Equal(t, http.MethodPost, requests[1].Method)
		assert.Equal(t, source, requests[1].Body)
		assert.Equal(t, flows.ContentTypeYAML, requests[1].Header.Get("Content-Type"))
	})

	t.Run("existing without override", func(t *testing.T) {
		server := kestratest.NewServer(t)
		server.Handle(http.MethodGet, "/api/v1/:tenant/flows/:namespace/:id", kestratest.JSON(http.StatusOK, gin.H{"id": "hello"}))

		res := run(t, source, "flows", "deploy", "-", "--host", server.URL, "--token", "t", "--config-dir", t.TempDir())
		require.ErrorIs(t, res.err, flows.ErrFlowAlreadyExists)
		assert.Len(t, server.Requests(), 1)
	})

	t.Run("existing with override", func(t *testing.T) {
		server := kestratest.NewServer(t)
		server.Handle(http.MethodGet, "/api/v1/:tenant/flows/:namespace/:id", kestratest.JSON(http.StatusOK, gin.H{"id": "hello"}))
		server.Handle(http.MethodPut, "/api/v1/:tenant/flows/:namespace/:id", kestratest.JSON(http.StatusOK, gin.H{
			"id": "hello", "namespace": "company.team", "revision": 2,
		}))

		res := run(t, source, "flows", "deploy", "-", "--override", "-o", "json",
			"--host", server.URL, "--token", "t", "--config-dir", t.TempDir())
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, `"revision": 2`)
	})

	t.Run("invalid definition", func(t *testing.T) {
		server := kestratest.NewServer(t)
		res := run(t, "tasks: []\n", "flows", "deploy", "-", "--host", server.URL, "--config-dir", t.TempDir())
		require.ErrorIs(t, res.err, flows.ErrInvalidFlowDefinition)
		assert.Empty(t, server.Requests())
	})
}

func TestAPIError(t *testing.T) {
	server := kestratest.NewServer(t)
	server.Handle(http.MethodGet, "/api/v1/:tenant/executions/:id", kestratest.Status(http.StatusUnauthorized, "bad token"))

	res := run(t, "", "executions", "get", "abc", "--host", server.URL, "--token", "t", "--config-dir", t.TempDir())
	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, errdefs.ErrUnauthorized))
	assert.Contains(t, res.err.Error(), "401")
	assert.Contains(t, res.err.Error(), "bad token")
}

func TestNoContext(t *testing.T) {
	res := run(t, "", "flows", "list", "company", "--config-dir", t.TempDir())
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, errdefs.ErrUnauthorized)
}

func TestExecutionsRun(t *testing.T) {
	server := kestratest.NewServer(t)
	server.Handle(http.MethodPost, "/api/v1/:tenant/executions/:namespace/:flow", kestratest.JSON(http.StatusOK, gin.H{
		"id": "exec-1", "namespace": "company.team", "flowId": "hello",
	}))

	res := run(t, "", "executions", "run", "company.team", "hello", "-i", "name=world", "--wait", "-o", "json",
		"--host", server.URL, "--token", "t", "--config-dir", t.TempDir())
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"id": "exec-1"`)

	requests := server.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "/api/v1/main/executions/company.team/hello", requests[0].Path)
	assert.Equal(t, "true", requests[0].Query.Get("wait"))
	assert.JSONEq(t, `{"name":"world"}`, requests[0].Body)

	res = run(t, "", "executions", "run", "company.team", "hello", "-i", "broken",
		"--host", server.URL, "--config-dir", t.TempDir())
	require.Error(t, res.err)
	assert.Len(t, server.Requests(), 1)
}
