package node

import (
	"context"
	"testing"

	apperrors "github.com/noteflow/pitch2midi/internal/errors"
)

// fakeNode is a minimal Node for registry tests
type fakeNode struct {
	name string
}

func (f *fakeNode) Describe() Schema {
	return Schema{
		Name:     f.name,
		Category: "test",
		Params: []Param{
			{Name: "path", Type: TypeString, Required: true},
			{Name: "level", Type: TypeFloat, Default: 0.5},
		},
	}
}

func (f *fakeNode) Run(ctx context.Context, params map[string]any) (any, error) {
	return nil, nil
}

func TestRegistry(t *testing.T) {
	t.Run("RegisterAndGet", func(t *testing.T) {
		reg := NewRegistry()
		if err := reg.Register(&fakeNode{name: "B"}); err != nil {
			t.Fatalf("Register: %v", err)
		}
		if _, ok := reg.Get("B"); !ok {
			t.Error("registered node not found")
		}
		if _, ok := reg.Get("missing"); ok {
			t.Error("unknown node should not be found")
		}
	})

	t.Run("DuplicateRejected", func(t *testing.T) {
		reg := NewRegistry()
		reg.Register(&fakeNode{name: "A"})
		if err := reg.Register(&fakeNode{name: "A"}); err == nil {
			t.Error("duplicate registration should fail")
		}
	})

	t.Run("AllSortedByName", func(t *testing.T) {
		reg := NewRegistry()
		reg.Register(&fakeNode{name: "B"})
		reg.Register(&fakeNode{name: "A"})

		all := reg.All()
		if len(all) != 2 {
			t.Fatalf("expected 2 nodes, got %d", len(all))
		}
		if all[0].Describe().Name != "A" || all[1].Describe().Name != "B" {
			t.Error("nodes should be sorted by name")
		}
	})
}

func TestSchemaValidate(t *testing.T) {
	schema := (&fakeNode{name: "N"}).Describe()

	t.Run("MissingRequired", func(t *testing.T) {
		err := schema.Validate(map[string]any{"level": 0.3})
		if !apperrors.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("OptionalMayBeAbsent", func(t *testing.T) {
		if err := schema.Validate(map[string]any{"path": "x"}); err != nil {
			t.Errorf("Validate: %v", err)
		}
	})
}

func TestParams(t *testing.T) {
	p := Params{
		"name":  "song.wav",
		"ratio": 0.7,
		"count": float64(42), // JSON-decoded int
	}

	if got := p.String("name", ""); got != "song.wav" {
		t.Errorf("String = %q", got)
	}
	if got := p.String("missing", "fallback"); got != "fallback" {
		t.Errorf("String default = %q", got)
	}
	if got := p.Float("ratio", 0); got != 0.7 {
		t.Errorf("Float = %g", got)
	}
	if got := p.Int("count", 0); got != 42 {
		t.Errorf("Int = %d", got)
	}
	if got := p.Int("missing", 120); got != 120 {
		t.Errorf("Int default = %d", got)
	}
	if got := p.Float("name", 0.5); got != 0.5 {
		t.Errorf("Float on non-numeric = %g, want default", got)
	}
}
