// Package kestratest provides a fake Kestra API server for tests.
package kestratest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wuxler/kestractl/pkg/kestra/authctx"
)

// Request is a request received by the fake server.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   string
}

// NewServer starts a fake server closed with the test. Routes not handled
// answer 404.
func NewServer(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{Engine: gin.New()}
	s.Engine.Use(s.record)
	s.Server = httptest.NewServer(s.Engine)
	t.Cleanup(s.Close)
	return s
}

// Server records every request it receives before routing it.
type Server struct {
	*httptest.Server
	Engine *gin.Engine

	mu       sync.Mutex
	requests []Request
}

// Handle registers a handler, path is a gin route pattern.
func (s *Server) Handle(method, path string, handlers ...gin.HandlerFunc) {
	s.Engine.Handle(method, path, handlers...)
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Context returns a token context pointing at the server.
func (s *Server) Context(name, token string) authctx.AuthContext {
	return authctx.AuthContext{
		Name:       name,
		Host:       s.URL,
		Tenant:     "main",
		Credential: authctx.TokenCredential(token),
	}
}

func (s *Server) record(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: c.Request.Method,
		Path:   c.Request.URL.EscapedPath(),
		Query:  c.Request.URL.Query(),
		Header: c.Request.Header.Clone(),
		Body:   string(body),
	})
	s.mu.Unlock()
	c.Next()
}

// JSON returns a handler answering code with v encoded as JSON.
func JSON(code int, v any) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(code, v)
	}
}

// Status returns a handler answering code with a plain text body.
func Status(code int, body string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(code, body)
	}
}
