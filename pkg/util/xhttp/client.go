// Package xhttp provides HTTP helpers shared by the API client: error
// normalization, URL joining and request/response dumping.
package xhttp

import (
	"net/http"
	"strings"
)

// Client is the interface of a http client.
type Client interface {
	Do(*http.Request) (*http.Response, error)
}

// JoinURL concatenates a base URL and an endpoint path with exactly one
// slash between them, whatever slashes either side carries.
func JoinURL(base, endpoint string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(endpoint, "/")
}
