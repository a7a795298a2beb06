// Package flows implements the flow endpoints and the deploy workflow that
// creates or updates a flow from its YAML definition.
package flows

import (
	"context"
	"errors"
	"fmt"

	"github.com/wuxler/kestractl/pkg/errdefs"
	"github.com/wuxler/kestractl/pkg/kestra/client"
	"github.com/wuxler/kestractl/pkg/xlog"
)

var (
	// ErrInvalidFlowDefinition is returned when a flow YAML document cannot be
	// parsed or lacks its id or namespace.
	ErrInvalidFlowDefinition = fmt.Errorf("invalid flow definition: %w", errdefs.ErrInvalidParameter)
	// ErrFlowAlreadyExists is returned when deploying an existing flow without
	// override.
	ErrFlowAlreadyExists = fmt.Errorf("flow already exists: %w", errdefs.ErrAlreadyExists)
)

// ContentTypeYAML is the content type of flow definitions.
const ContentTypeYAML = "application/x-yaml"

// Flow is a flow as returned by the API, kept generic so it can be printed
// back untouched.
type Flow = map[string]any

// NewService returns a Service sending requests through c.
func NewService(c *client.Client) *Service {
	return &Service{client: c}
}

// Service groups the flow operations.
type Service struct {
	client *client.Client
}

// List returns the flows of namespace.
func (s *Service) List(ctx context.Context, target client.Target, namespace string) ([]Flow, error) {
	var flows []Flow
	r := client.NewRequest(client.RouteFlowsList).WithParam("namespace", namespace)
	if err := s.client.DoJSON(ctx, target, r, &flows); err != nil {
		return nil, err
	}
	return flows, nil
}

// Get returns the flow identified by namespace and id.
func (s *Service) Get(ctx context.Context, target client.Target, namespace, id string) (Flow, error) {
	var flow Flow
	r := client.NewRequest(client.RouteFlowsGet).
		WithParam("namespace", namespace).
		WithParam("flow_id", id)
	if err := s.client.DoJSON(ctx, target, r, &flow); err != nil {
		return nil, err
	}
	return flow, nil
}

// Exists reports whether the flow exists. Only a 404 answer means absent,
// any other failure is returned.
func (s *Service) Exists(ctx context.Context, target client.Target, namespace, id string) (bool, error) {
	_, err := s.Get(ctx, target, namespace, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errdefs.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("unable to check whether flow %s.%s exists: %w", namespace, id, err)
	}
}

// Create posts a new flow, source is sent verbatim.
func (s *Service) Create(ctx context.Context, target client.Target, source []byte) (Flow, error) {
	var flow Flow
	r := client.NewRequest(client.RouteFlowsCreate).WithBody(ContentTypeYAML, source)
	if err := s.client.DoJSON(ctx, target, r, &flow); err != nil {
		return nil, err
	}
	return flow, nil
}

// Update replaces the flow identified by namespace and id, source is sent
// verbatim.
func (s *Service) Update(ctx context.Context, target client.Target, namespace, id string, source []byte) (Flow, error) {
	var flow Flow
	r := client.NewRequest(client.RouteFlowsUpdate).
		WithParam("namespace", namespace).
		WithParam("flow_id", id).
		WithBody(ContentTypeYAML, source)
	if err := s.client.DoJSON(ctx, target, r, &flow); err != nil {
		return nil, err
	}
	return flow, nil
}

// UpsertResult is the outcome of [Service.Upsert].
type UpsertResult struct {
	Ref     Ref
	Created bool
	Flow    Flow
}

// Upsert creates the flow defined by source, or replaces it when it exists
// and override is set. An existing flow without override yields
// [ErrFlowAlreadyExists] and nothing is sent after the existence check.
func (s *Service) Upsert(ctx context.Context, target client.Target, source []byte, override bool) (*UpsertResult, error) {
	ref, err := ParseRef(source)
	if err != nil {
		return nil, err
	}
	logger := xlog.C(ctx).With("namespace", ref.Namespace, "flow", ref.ID)

	exists, err := s.Exists(ctx, target, ref.Namespace, ref.ID)
	if err != nil {
		return nil, err
	}
	if exists && !override {
		return nil, fmt.Errorf("%s: %w, use override to replace it", ref, ErrFlowAlreadyExists)
	}

	result := &UpsertResult{Ref: ref, Created: !exists}
	if exists {
		logger.Debug("updating existing flow")
		result.Flow, err = s.Update(ctx, target, ref.Namespace, ref.ID, source)
	} else {
		logger.Debug("creating new flow")
		result.Flow, err = s.Create(ctx, target, source)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
