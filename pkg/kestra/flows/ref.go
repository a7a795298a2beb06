package flows

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Ref identifies a flow.
type Ref struct {
	Namespace string
	ID        string
}

// String returns "namespace.id".
func (r Ref) String() string {
	return r.Namespace + "." + r.ID
}

// ParseRef reads the top level namespace and id of a flow YAML document.
func ParseRef(source []byte) (Ref, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(source, &doc); err != nil {
		return Ref{}, fmt.Errorf("%w: %w", ErrInvalidFlowDefinition, err)
	}
	if doc == nil {
		return Ref{}, fmt.Errorf("%w: document is empty or not a mapping", ErrInvalidFlowDefinition)
	}
	namespace, err := requiredString(doc, "namespace")
	if err != nil {
		return Ref{}, err
	}
	id, err := requiredString(doc, "id")
	if err != nil {
		return Ref{}, err
	}
	return Ref{Namespace: namespace, ID: id}, nil
}

func requiredString(doc map[string]any, key string) (string, error) {
	value, ok := doc[key]
	if !ok || value == nil {
		return "", fmt.Errorf("%w: missing %q", ErrInvalidFlowDefinition, key)
	}
	s, ok := value.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%w: %q must be a non-empty string", ErrInvalidFlowDefinition, key)
	}
	return s, nil
}
