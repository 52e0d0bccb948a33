package render

import (
	"context"

	"github.com/goliatone/go-dbform/pkg/model"
)

// Renderer converts a FormModel into output. HTML renderers write each
// descriptor's fragment back onto Descriptor.Markup and return no output at
// all when any descriptor fails to render.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form *model.FormModel) ([]byte, error)
}

// Fragmenter renders a single descriptor. Renderers that assemble their own
// layout (tables, custom pages) delegate the control markup to one.
type Fragmenter interface {
	RenderOne(descriptor *model.Descriptor, populated bool) (string, error)
}
