// Package node defines the registration contract between the adapter
// nodes and a node-graph host: a typed parameter schema per node instead
// of reflective class attributes, and a registry the host enumerates.
package node

import (
	"context"
	"sort"
	"sync"

	apperrors "github.com/noteflow/pitch2midi/internal/errors"
)

// Type tags a parameter or return value in the graph
type Type string

const (
	TypeString Type = "STRING"
	TypeFloat  Type = "FLOAT"
	TypeInt    Type = "INT"
	TypeMIDI   Type = "MIDI_DATA"
)

// Param describes one node input for the host UI
type Param struct {
	Name        string  `json:"name"`
	Type        Type    `json:"type"`
	Required    bool    `json:"required"`
	Default     any     `json:"default,omitempty"`
	Min         float64 `json:"min,omitempty"`
	Max         float64 `json:"max,omitempty"`
	Step        float64 `json:"step,omitempty"`
	Placeholder string  `json:"placeholder,omitempty"`
}

// Schema is a node's full registration descriptor
type Schema struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Category    string  `json:"category"`
	Params      []Param `json:"params"`
	Returns     Type    `json:"returns,omitempty"`
	OutputNode  bool    `json:"output_node,omitempty"`
}

// Validate checks that every required parameter is present
func (s Schema) Validate(params map[string]any) error {
	for _, p := range s.Params {
		if !p.Required {
			continue
		}
		if _, ok := params[p.Name]; !ok {
			return apperrors.NewValidation("missing required parameter: %s", p.Name)
		}
	}
	return nil
}

// Node is a single unit of computation in the host's graph
type Node interface {
	Describe() Schema
	Run(ctx context.Context, params map[string]any) (any, error)
}

// Registry holds the nodes available to the host
type Registry struct {
	mu    sync.RWMutex
	nodes map[string]Node
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[string]Node)}
}

// Register adds a node under its schema name
func (r *Registry) Register(n Node) error {
	name := n.Describe().Name
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.nodes[name]; exists {
		return apperrors.NewValidation("node already registered: %s", name)
	}
	r.nodes[name] = n
	return nil
}

// Get looks up a node by name
func (r *Registry) Get(name string) (Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.nodes[name]
	return n, ok
}

// All returns the registered nodes sorted by name
func (r *Registry) All() []Node {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Node, 0, len(r.nodes))
	for _, n := range r.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Describe().Name < out[j].Describe().Name
	})
	return out
}
