// Package client implements the HTTP client of the Kestra API: context and
// tenant resolution, authentication and error normalization.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/oauth2"

	"github.com/wuxler/kestractl/pkg/appinfo"
	"github.com/wuxler/kestractl/pkg/errdefs"
	"github.com/wuxler/kestractl/pkg/kestra/authctx"
	"github.com/wuxler/kestractl/pkg/util/xhttp"
	"github.com/wuxler/kestractl/pkg/util/xio"
	"github.com/wuxler/kestractl/pkg/xlog"
)

const (
	// DefaultTenant is used when neither the caller nor the context names one.
	DefaultTenant = "main"
	// DefaultTimeout bounds every request.
	DefaultTimeout = 30 * time.Second
	// APIPrefix is the path prefix of every tenant scoped endpoint.
	APIPrefix = "/api/v1"
)

// ErrNoAuthContext is returned when no context is given, selected or marked
// as the default.
var ErrNoAuthContext = fmt.Errorf("no authentication context configured, run \"kestra config add\" or pass --host: %w", errdefs.ErrUnauthorized)

var _ xhttp.Client = (*http.Client)(nil)

//go:generate mockgen -destination=./client_mock_test.go -package=client_test github.com/wuxler/kestractl/pkg/kestra/client ContextProvider

// ContextProvider looks up stored contexts. An empty name resolves to the
// default context. [authctx.Store] implements it.
type ContextProvider interface {
	GetContext(ctx context.Context, name string) (authctx.AuthContext, bool)
}

// Target selects where one operation is sent. Both fields are optional.
type Target struct {
	// Context overrides the stored contexts when set.
	Context *authctx.AuthContext
	// Tenant overrides the context tenant when set.
	Tenant string
}

// New returns a Client resolving contexts through provider.
func New(provider ContextProvider, opts ...Option) *Client {
	c := &Client{
		provider:  provider,
		timeout:   DefaultTimeout,
		userAgent: "kestractl/" + appinfo.ShortVersion(),
		clients:   xsync.NewMapOf[string, *http.Client](),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Client sends requests to the Kestra API. One *http.Client is built lazily
// per context and reused until Close.
type Client struct {
	provider    ContextProvider
	contextName string
	transport   http.RoundTripper
	dumpOut     io.Writer
	timeout     time.Duration
	userAgent   string

	clients *xsync.MapOf[string, *http.Client]
}

// Resolve picks the context of one operation: explicit first, then the
// selected context name, then the default.
func (c *Client) Resolve(ctx context.Context, explicit *authctx.AuthContext) (authctx.AuthContext, error) {
	if explicit != nil {
		return *explicit, nil
	}
	if c.provider != nil {
		if ac, ok := c.provider.GetContext(ctx, c.contextName); ok {
			return ac, nil
		}
		if c.contextName != "" {
			return authctx.AuthContext{}, fmt.Errorf("%q: %w", c.contextName, authctx.ErrUnknownContext)
		}
	}
	return authctx.AuthContext{}, ErrNoAuthContext
}

// Tenant returns explicit if set, the context tenant otherwise, falling back
// to [DefaultTenant].
func (c *Client) Tenant(ac authctx.AuthContext, explicit string) string {
	switch {
	case explicit != "":
		return explicit
	case ac.Tenant != "":
		return ac.Tenant
	default:
		return DefaultTenant
	}
}

// Do sends r to the tenant scoped API of the resolved context. The returned
// response always has a 2xx or 3xx status and the caller must close its body.
// Failures are returned as *xhttp.RequestError.
func (c *Client) Do(ctx context.Context, target Target, r *Request) (*http.Response, error) {
	ac, err := c.Resolve(ctx, target.Context)
	if err != nil {
		return nil, err
	}
	req, err := c.newHTTPRequest(ctx, ac, c.Tenant(ac, target.Tenant), r)
	if err != nil {
		return nil, err
	}

	xlog.C(ctx).Debug("sending request", "route", r.Route.ID, "method", req.Method, "url", req.URL.Redacted(), "context", ac.Name)
	resp, err := c.httpClient(ac).Do(req)
	if err != nil {
		return nil, xhttp.MakeRequestError(req, err)
	}
	if err := xhttp.Success(resp); err != nil {
		xio.CloseAndSkipError(resp.Body)
		return nil, err
	}
	return resp, nil
}

// DoJSON sends r and decodes the JSON response into out. An empty response
// body leaves out untouched.
func (c *Client) DoJSON(ctx context.Context, target Target, r *Request, out any) error {
	resp, err := c.Do(ctx, target, r)
	if err != nil {
		return err
	}
	defer xio.CloseAndLogError(resp.Body, "response body")

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return xhttp.MakeRequestError(resp.Request, fmt.Errorf("unable to read response body: %w", err))
	}
	if len(bytes.TrimSpace(content)) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(content, out); err != nil {
		return xhttp.MakeRequestError(resp.Request, fmt.Errorf("unable to decode response body: %w", err))
	}
	return nil
}

// Close releases the idle connections of every HTTP client built so far.
func (c *Client) Close() error {
	c.clients.Range(func(key string, hc *http.Client) bool {
		hc.CloseIdleConnections()
		c.clients.Delete(key)
		return true
	})
	return nil
}

func (c *Client) newHTTPRequest(ctx context.Context, ac authctx.AuthContext, tenant string, r *Request) (*http.Request, error) {
	if strings.TrimSpace(ac.Host) == "" {
		return nil, errdefs.Newf(errdefs.ErrInvalidParameter, "context %q has no host", ac.Name)
	}
	path, err := r.Path()
	if err != nil {
		return nil, err
	}
	base := xhttp.JoinURL(ac.Host, APIPrefix+"/"+escapeSegment(tenant))
	url := xhttp.JoinURL(base, path)
	if len(r.Query) > 0 {
		url += "?" + r.Query.Encode()
	}

	var body io.Reader = http.NoBody
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}
	req, err := http.NewRequestWithContext(ctx, r.Route.Method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if r.ContentType != "" {
		req.Header.Set("Content-Type", r.ContentType)
	}
	return req, nil
}

func (c *Client) httpClient(ac authctx.AuthContext) *http.Client {
	hc, _ := c.clients.LoadOrCompute(clientKey(ac), func() *http.Client {
		return c.newHTTPClient(ac)
	})
	return hc
}

func (c *Client) newHTTPClient(ac authctx.AuthContext) *http.Client {
	transport := c.transport
	if transport == nil {
		transport = http.DefaultTransport.(*http.Transport).Clone()
	}
	if c.dumpOut != nil {
		dump := xhttp.NewDumpTransport(transport)
		dump.Out = c.dumpOut
		transport = dump
	}

	cred := ac.Credential
	switch {
	case cred.Kind == authctx.KindToken && cred.Token != "":
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cred.Token}),
			Base:   transport,
		}
	case cred.Kind == authctx.KindUsernamePassword && cred.Username != "" && cred.Password != "":
		transport = &basicAuthTransport{
			username: cred.Username,
			password: cred.Password,
			base:     transport,
		}
	}
	return &http.Client{Transport: transport, Timeout: c.timeout}
}

// clientKey identifies a context by everything that shapes its HTTP client.
func clientKey(ac authctx.AuthContext) string {
	return strings.Join([]string{
		ac.Name,
		ac.Host,
		string(ac.Credential.Kind),
		ac.Credential.Token,
		ac.Credential.Username,
		ac.Credential.Password,
	}, "\x00")
}

type basicAuthTransport struct {
	username string
	password string
	base     http.RoundTripper
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.SetBasicAuth(t.username, t.password)
	return t.base.RoundTrip(clone)
}
