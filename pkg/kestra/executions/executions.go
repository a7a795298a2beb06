// Package executions implements the execution endpoints.
package executions

import (
	"context"

	"github.com/samber/lo"

	"github.com/wuxler/kestractl/pkg/kestra/client"
)

// StateRunning is the state of executions still in progress.
const StateRunning = "RUNNING"

// Execution is an execution as returned by the API.
type Execution = map[string]any

// NewService returns a Service sending requests through c.
func NewService(c *client.Client) *Service {
	return &Service{client: c}
}

// Service groups the execution operations.
type Service struct {
	client *client.Client
}

// KillQuery filters the executions to kill. Empty fields are not sent.
type KillQuery struct {
	States    []string
	Namespace string
	FlowID    string
}

// KillByQuery kills every execution matching q and returns the server
// report, usually holding a "count".
func (s *Service) KillByQuery(ctx context.Context, target client.Target, q KillQuery) (map[string]any, error) {
	r := client.NewRequest(client.RouteExecutionsKillByQuery).
		WithQuery("namespace", q.Namespace).
		WithQuery("flowId", q.FlowID)
	for _, state := range lo.Uniq(q.States) {
		r.WithQuery("state", state)
	}
	var out map[string]any
	if err := s.client.DoJSON(ctx, target, r, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TriggerOptions holds the optional parameters of [Service.Trigger].
type TriggerOptions struct {
	// Inputs are sent as the JSON body when not empty.
	Inputs map[string]any
	// Wait asks the server to answer once the execution has finished.
	Wait bool
}

// Trigger starts a new execution of the flow.
func (s *Service) Trigger(ctx context.Context, target client.Target, namespace, flowID string, opts TriggerOptions) (Execution, error) {
	r := client.NewRequest(client.RouteExecutionsTrigger).
		WithParam("namespace", namespace).
		WithParam("flow_id", flowID)
	if opts.Wait {
		r.WithQuery("wait", true)
	}
	if len(opts.Inputs) > 0 {
		r.WithJSONBody(opts.Inputs)
	}
	var out Execution
	if err := s.client.DoJSON(ctx, target, r, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns the execution with the given id.
func (s *Service) Get(ctx context.Context, target client.Target, id string) (Execution, error) {
	r := client.NewRequest(client.RouteExecutionsGet).WithParam("execution_id", id)
	var out Execution
	if err := s.client.DoJSON(ctx, target, r, &out); err != nil {
		return nil, err
	}
	return out, nil
}
