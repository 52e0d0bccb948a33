package components

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-dbform/pkg/model"
	rendertemplate "github.com/goliatone/go-dbform/pkg/render/template"
)

// Renderer writes the control markup for one descriptor into buf.
type Renderer func(buf *bytes.Buffer, descriptor *model.Descriptor, data ComponentData) error

// ComponentData carries helpers and render state for component renderers.
type ComponentData struct {
	Template  rendertemplate.TemplateRenderer
	Populated bool
}

// Component bundles a renderer with the name it was registered under.
type Component struct {
	Name     string
	Renderer Renderer
}

// Registry tracks components keyed by name. Lookups are case-insensitive.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Component
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		components: make(map[string]Component),
	}
}

// Clone returns a copy of the registry so callers can override entries
// without touching the original.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return &Registry{components: maps.Clone(r.components)}
}

// Register associates a renderer with name. Existing entries are replaced.
func (r *Registry) Register(name string, component Component) error {
	key := normalize(name)
	if key == "" {
		return fmt.Errorf("components: component name is required")
	}
	if component.Renderer == nil {
		return fmt.Errorf("components: renderer for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	component.Name = strings.TrimSpace(name)
	r.components[key] = component
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(name string, component Component) {
	if err := r.Register(name, component); err != nil {
		panic(err)
	}
}

// Component fetches a component by name.
func (r *Registry) Component(name string) (Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	component, ok := r.components[normalize(name)]
	return component, ok
}

// Names returns the registered component names sorted alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for _, component := range r.components {
		names = append(names, component.Name)
	}
	slices.Sort(names)
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
