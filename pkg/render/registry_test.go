package render

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dbform/pkg/model"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, *model.FormModel) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry(t *testing.T) {
	registry, err := NewRegistry(stubRenderer{name: "vanilla"}, stubRenderer{name: "table"})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	if diff := cmp.Diff([]string{"table", "vanilla"}, registry.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	def, err := registry.Get("")
	if err != nil || def.Name() != "vanilla" {
		t.Fatalf("expected first renderer as default, got %v (%v)", def, err)
	}
	if err := registry.SetDefault("table"); err != nil {
		t.Fatalf("set default: %v", err)
	}
	if def, _ := registry.Get(""); def.Name() != "table" {
		t.Fatalf("default not switched")
	}

	if _, err := registry.Get("preact"); !errors.Is(err, ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
	if err := registry.Register(stubRenderer{name: "table"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected empty name error")
	}
}
