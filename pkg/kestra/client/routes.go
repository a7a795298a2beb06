package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/spf13/cast"

	"github.com/wuxler/kestractl/pkg/errdefs"
)

// RouteDescriptor is a descriptor for a route endpoint api.
type RouteDescriptor struct {
	// ID is the unique identifier for the route endpoint api.
	ID string
	// Method is the HTTP method for the route endpoint api.
	Method string
	// PathPattern is the path relative to "/api/v1/{tenant}".
	PathPattern string
}

// flows related endpoints.
var (
	RouteFlowsList = RouteDescriptor{
		ID:          "flows-list",
		Method:      http.MethodGet,
		PathPattern: "/flows/{namespace}",
	}
	RouteFlowsGet = RouteDescriptor{
		ID:          "flows-get",
		Method:      http.MethodGet,
		PathPattern: "/flows/{namespace}/{flow_id}",
	}
	RouteFlowsCreate = RouteDescriptor{
		ID:          "flows-create",
		Method:      http.MethodPost,
		PathPattern: "/flows",
	}
	RouteFlowsUpdate = RouteDescriptor{
		ID:          "flows-update",
		Method:      http.MethodPut,
		PathPattern: "/flows/{namespace}/{flow_id}",
	}
)

// executions related endpoints.
var (
	RouteExecutionsKillByQuery = RouteDescriptor{
		ID:          "executions-kill-by-query",
		Method:      http.MethodDelete,
		PathPattern: "/executions/kill/by-query",
	}
	RouteExecutionsTrigger = RouteDescriptor{
		ID:          "executions-trigger",
		Method:      http.MethodPost,
		PathPattern: "/executions/{namespace}/{flow_id}",
	}
	RouteExecutionsGet = RouteDescriptor{
		ID:          "executions-get",
		Method:      http.MethodGet,
		PathPattern: "/executions/{execution_id}",
	}
)

// namespaces related endpoints.
var (
	RouteNamespacesSearch = RouteDescriptor{
		ID:          "namespaces-search",
		Method:      http.MethodGet,
		PathPattern: "/namespaces/search",
	}
)

// NewRequest returns a request for route.
func NewRequest(route RouteDescriptor) *Request {
	return &Request{
		Route:  route,
		Params: map[string]string{},
		Query:  url.Values{},
	}
}

// Request is one call to a route, before the context and tenant are known.
type Request struct {
	Route RouteDescriptor
	// Params fills the "{key}" placeholders of the path pattern.
	Params map[string]string
	Query  url.Values
	// Body is sent as is, with ContentType.
	Body        []byte
	ContentType string

	err error
}

// WithParam sets the path parameter key.
func (r *Request) WithParam(key, value string) *Request {
	r.Params[key] = value
	return r
}

// WithQuery appends values to the query parameter key, skipping empty ones.
func (r *Request) WithQuery(key string, values ...any) *Request {
	for _, v := range values {
		if s := cast.ToString(v); s != "" {
			r.Query.Add(key, s)
		}
	}
	return r
}

// WithBody sets a raw body.
func (r *Request) WithBody(contentType string, body []byte) *Request {
	r.ContentType = contentType
	r.Body = body
	return r
}

// WithJSONBody encodes v as the JSON body.
func (r *Request) WithJSONBody(v any) *Request {
	body, err := json.Marshal(v)
	if err != nil {
		r.err = fmt.Errorf("unable to encode request body: %w", err)
		return r
	}
	return r.WithBody("application/json", body)
}

var placeholderRegex = regexp.MustCompile(`\{[a-z_]+\}`)

// Path returns the route path with every parameter escaped and substituted.
func (r *Request) Path() (string, error) {
	if r.err != nil {
		return "", r.err
	}
	path := r.Route.PathPattern
	for key, value := range r.Params {
		if value == "" {
			continue
		}
		path = strings.ReplaceAll(path, "{"+key+"}", escapeSegment(value))
	}
	if missing := placeholderRegex.FindAllString(path, -1); len(missing) > 0 {
		return "", errdefs.Newf(errdefs.ErrInvalidParameter, "invalid route path %q: missing parameters %v", path, missing)
	}
	return path, nil
}

func escapeSegment(s string) string {
	return url.PathEscape(s)
}
