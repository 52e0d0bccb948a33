package vanilla

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-dbform/pkg/model"
	"github.com/goliatone/go-dbform/pkg/render"
	rendertemplate "github.com/goliatone/go-dbform/pkg/render/template"
	gotemplate "github.com/goliatone/go-dbform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-dbform/pkg/renderers/vanilla/components"
)

// ErrComponentNotFound is returned when neither the resolved component nor
// the text fallback is registered.
var ErrComponentNotFound = errors.New("vanilla: component not found")

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	overrides        map[string]string
	policy           *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default per-kind component registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithComponentOverrides maps column names to component names, taking
// precedence over the column's input kind.
func WithComponentOverrides(overrides map[string]string) Option {
	return func(cfg *config) {
		if len(overrides) == 0 {
			return
		}
		if cfg.overrides == nil {
			cfg.overrides = make(map[string]string, len(overrides))
		}
		for column, component := range overrides {
			cfg.overrides[strings.TrimSpace(column)] = strings.TrimSpace(component)
		}
	}
}

// WithSanitizerPolicy overrides the policy applied to column comments and
// error messages. The default strips all markup.
func WithSanitizerPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// Renderer turns a FormModel into HTML form controls, one formElem block per
// visible column and bare hidden inputs.
type Renderer struct {
	components *componentRenderer
}

var (
	_ render.Renderer   = (*Renderer)(nil)
	_ render.Fragmenter = (*Renderer)(nil)
)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	return &Renderer{
		components: newComponentRenderer(templates, cfg.registry, cfg.overrides, cfg.policy),
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render renders every column still in the model. Each control fragment is
// stored on Descriptor.Markup once the whole model rendered successfully; a
// failing column leaves every descriptor untouched.
func (r *Renderer) Render(ctx context.Context, form *model.FormModel) ([]byte, error) {
	if form == nil {
		return nil, fmt.Errorf("vanilla renderer: form model is nil")
	}

	descriptors := form.Descriptors()
	fragments := make([]string, len(descriptors))

	var out strings.Builder
	for idx, descriptor := range descriptors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		control, err := r.RenderOne(descriptor, form.Populated)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		fragments[idx] = control

		if descriptor.Kind == model.KindHidden {
			out.WriteString(control)
			continue
		}
		out.WriteString(r.components.wrap(descriptor, control))
	}

	for idx, descriptor := range descriptors {
		descriptor.Markup = fragments[idx]
	}
	return []byte(out.String()), nil
}

// RenderOne renders a single control without the surrounding label block.
func (r *Renderer) RenderOne(descriptor *model.Descriptor, populated bool) (string, error) {
	if r == nil || r.components == nil {
		return "", fmt.Errorf("vanilla renderer: not initialised")
	}
	if descriptor == nil {
		return "", fmt.Errorf("vanilla renderer: descriptor is nil")
	}
	return r.components.render(descriptor, populated)
}
