package flows_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/kestractl/pkg/errdefs"
	"github.com/wuxler/kestractl/pkg/kestra/client"
	"github.com/wuxler/kestractl/pkg/kestra/flows"
	"github.com/wuxler/kestractl/pkg/kestra/kestratest"
	"github.com/wuxler/kestractl/pkg/util/xhttp"
)

const flowSource = "id: a\nnamespace: b\ntasks:\n  - id: hello\n    type: io.kestra.plugin.core.log.Log\n    message: hi\n"

func echoFlow(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"id": "a", "namespace": "b", "revision": 1})
}

func newService(t *testing.T, server *kestratest.Server) (*flows.Service, client.Target) {
	t.Helper()
	c := client.New(nil)
	t.Cleanup(func() { _ = c.Close() })
	ac := server.Context("test", "tok")
	return flows.NewService(c), client.Target{Context: &ac}
}

func TestParseRef(t *testing.T) {
	ref, err := flows.ParseRef([]byte(flowSource))
	require.NoError(t, err)
	assert.Equal(t, flows.Ref{Namespace: "b", ID: "a"}, ref)
	assert.Equal(t, "b.a", ref.String())

	invalid := []string{
		"",
		"- a\n- b\n",
		"id: a\n",
		"namespace: b\n",
		"id: ''\nnamespace: b\n",
		"id: [x]\nnamespace: b\n",
		"id: a\nnamespace: [b\n",
	}
	for _, source := range invalid {
		_, err := flows.ParseRef([]byte(source))
		assert.ErrorIs(t, err, flows.ErrInvalidFlowDefinition, "source %q", source)
		assert.ErrorIs(t, err, errdefs.ErrInvalidParameter, "source %q", source)
	}
}

func TestService_Upsert_Create(t *testing.T) {
	server := kestratest.NewServer(t)
	server.Handle(http.MethodPost, "/api/v1/:tenant/flows", echoFlow)
	svc, target := newService(t, server)

	result, err := svc.Upsert(context.Background(), target, []byte(flowSource), false)
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, flows.Ref{Namespace: "b", ID: "a"}, result.Ref)
	assert.Equal(t, "a", result.Flow["id"])

	requests := server.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, http.MethodGet, requests[0].Method)
	assert.Equal(t, "/api/v1/main/flows/b/a", requests[0].Path)
	assert.Equal(t, http.MethodPost, requests[1].Method)
	assert.Equal(t, "/api/v1/main/flows", requests[1].Path)
	assert.Equal(t, flowSource, requests[1].Body)
	assert.Equal(t, "application/x-yaml", requests[1].Header.Get("Content-Type"))
}

func TestService_Upsert_Conflict(t *testing.T) {
	server := kestratest.NewServer(t)
	server.Handle(http.MethodGet, "/api/v1/:tenant/flows/:namespace/:id", echoFlow)
	svc, target := newService(t, server)

	_, err := svc.Upsert(context.Background(), target, []byte(flowSource), false)
	assert.ErrorIs(t, err, flows.ErrFlowAlreadyExists)
	assert.ErrorIs(t, err, errdefs.ErrAlreadyExists)

	requests := server.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodGet, requests[0].Method)
}

func TestService_Upsert_Override(t *testing.T) {
	server := kestratest.NewServer(t)
	server.Handle(http.MethodGet, "/api/v1/:tenant/flows/:namespace/:id", echoFlow)
	server.Handle(http.MethodPut, "/api/v1/:tenant/flows/:namespace/:id", echoFlow)
	svc, target := newService(t, server)

	result, err := svc.Upsert(context.Background(), target, []byte(flowSource), true)
	require.NoError(t, err)
	assert.False(t, result.Created)

	requests := server.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, http.MethodPut, requests[1].Method)
	assert.Equal(t, "/api/v1/main/flows/b/a", requests[1].Path)
	assert.Equal(t, flowSource, requests[1].Body)
}

func TestService_Upsert_InvalidDefinition(t *testing.T) {
	server := kestratest.NewServer(t)
	svc, target := newService(t, server)

	_, err := svc.Upsert(context.Background(), target, []byte("id: a\n"), false)
	assert.ErrorIs(t, err, flows.ErrInvalidFlowDefinition)
	assert.Empty(t, server.Requests())
}

func TestService_Upsert_ProbeFailure(t *testing.T) {
	server := kestratest.NewServer(t)
	server.Handle(http.MethodGet, "/api/v1/:tenant/flows/:namespace/:id", kestratest.Status(http.StatusInternalServerError, "boom"))
	svc, target := newService(t, server)

	_, err := svc.Upsert(context.Background(), target, []byte(flowSource), true)
	require.Error(t, err)
	var reqErr *xhttp.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
	assert.Equal(t, "boom", reqErr.Body)

	requests := server.Requests()
	require.Len(t, requests, 1, "no create or update after a failed probe")
}

func TestService_Upsert_CreateRejected(t *testing.T) {
	server := kestratest.NewServer(t)
	server.Handle(http.MethodPost, "/api/v1/:tenant/flows", kestratest.Status(http.StatusUnprocessableEntity, "Invalid entity: tasks required"))
	svc, target := newService(t, server)

	_, err := svc.Upsert(context.Background(), target, []byte("id: a\nnamespace: b\n"), false)
	assert.ErrorIs(t, err, errdefs.ErrInvalidParameter)
	assert.Contains(t, err.Error(), "Invalid entity: tasks required")
}

func TestService_ListAndGet(t *testing.T) {
	server := kestratest.NewServer(t)
	server.Handle(http.MethodGet, "/api/v1/:tenant/flows/:namespace", kestratest.JSON(http.StatusOK, []gin.H{
		{"id": "a", "namespace": "b", "revision": 2},
		{"id": "c", "namespace": "b", "revision": 1, "description": "second"},
	}))
	server.Handle(http.MethodGet, "/api/v1/:tenant/flows/:namespace/:id", echoFlow)
	svc, target := newService(t, server)
	target.Tenant = "acme"
	ctx := context.Background()

	list, err := svc.List(ctx, target, "b")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[1]["description"])

	flow, err := svc.Get(ctx, target, "b", "a")
	require.NoError(t, err)
	assert.EqualValues(t, 1, flow["revision"])

	exists, err := svc.Exists(ctx, target, "b", "a")
	require.NoError(t, err)
	assert.True(t, exists)

	requests := server.Requests()
	assert.Equal(t, "/api/v1/acme/flows/b", requests[0].Path)
	assert.Equal(t, "/api/v1/acme/flows/b/a", requests[1].Path)
}

func TestService_Exists_NotFound(t *testing.T) {
	server := kestratest.NewServer(t)
	svc, target := newService(t, server)

	exists, err := svc.Exists(context.Background(), target, "b", "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}
