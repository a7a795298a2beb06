// Package namespaces implements the namespace endpoints.
package namespaces

import (
	"context"

	"github.com/spf13/cast"

	"github.com/wuxler/kestractl/pkg/kestra/client"
)

const (
	DefaultPage = 1
	DefaultSize = 100
)

// NewService returns a Service sending requests through c.
func NewService(c *client.Client) *Service {
	return &Service{client: c}
}

// Service groups the namespace operations.
type Service struct {
	client *client.Client
}

// ListOptions filters and pages [Service.List]. Zero values use the defaults.
type ListOptions struct {
	Query string
	Page  int
	Size  int
}

// Namespace is one entry of a namespace search.
type Namespace struct {
	ID      string
	Deleted bool
	// Raw is the entry as returned by the API.
	Raw any
}

// List returns one page of namespaces. Only the "results" of the paginated
// answer are returned.
func (s *Service) List(ctx context.Context, target client.Target, opts ListOptions) ([]any, error) {
	page, size := opts.Page, opts.Size
	if page <= 0 {
		page = DefaultPage
	}
	if size <= 0 {
		size = DefaultSize
	}
	r := client.NewRequest(client.RouteNamespacesSearch).
		WithQuery("page", page).
		WithQuery("size", size).
		WithQuery("q", opts.Query)

	var out struct {
		Results []any `json:"results"`
		Total   int   `json:"total"`
	}
	if err := s.client.DoJSON(ctx, target, r, &out); err != nil {
		return nil, err
	}
	if out.Results == nil {
		return []any{}, nil
	}
	return out.Results, nil
}

// Normalize reads a search entry, which servers return either as a plain id
// string or as an object with "id" and "deleted".
func Normalize(entry any) Namespace {
	switch v := entry.(type) {
	case string:
		return Namespace{ID: v, Raw: entry}
	case map[string]any:
		return Namespace{
			ID:      cast.ToString(v["id"]),
			Deleted: cast.ToBool(v["deleted"]),
			Raw:     entry,
		}
	default:
		return Namespace{ID: cast.ToString(entry), Raw: entry}
	}
}
