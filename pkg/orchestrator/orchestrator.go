package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/goliatone/go-dbform/pkg/config"
	"github.com/goliatone/go-dbform/pkg/model"
	"github.com/goliatone/go-dbform/pkg/render"
	"github.com/goliatone/go-dbform/pkg/renderers/table"
	"github.com/goliatone/go-dbform/pkg/renderers/vanilla"
	"github.com/goliatone/go-dbform/pkg/schema"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithBuilderOptions sets the options every per-request builder starts from.
// Options from Request.Config are appended after them.
func WithBuilderOptions(options ...model.BuilderOption) Option {
	return func(o *Orchestrator) {
		o.builderOptions = append(o.builderOptions, options...)
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithDecorators registers decorators that run against every generated form
// model before rendering.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// Orchestrator coordinates the pipeline from column metadata to rendered
// output. It applies sensible defaults (vanilla and table renderers) while
// remaining open to dependency injection for advanced callers.
type Orchestrator struct {
	builderOptions  []model.BuilderOption
	registry        *render.Registry
	defaultRenderer string
	decorators      []model.Decorator
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one form generation.
type Request struct {
	// Source identifies where column metadata lives. Optional when Columns is
	// supplied.
	Source schema.Source

	// Columns bypasses the source when the caller already holds metadata.
	Columns []model.ColumnMetadata

	// Values is the value source merged after synthesis. Nil renders a blank
	// form that shows schema defaults.
	Values model.Values

	// Config carries type overrides, ignored columns, per-column overrides
	// and initial values. Request.Values win over configured values.
	Config *config.Config

	// Errors maps field paths to messages from a previous submission.
	Errors map[string][]string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string
}

// Result is the outcome of Prepare.
type Result struct {
	Form *model.FormModel
	// FormErrors holds error messages whose keys named no column.
	FormErrors []string
}

// Generate executes the source → builder → decorators → renderer sequence and
// returns the rendered bytes (HTML for the default vanilla renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	result, err := o.Prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, result.Form)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Prepare runs every stage except rendering and returns the decorated model.
func (o *Orchestrator) Prepare(ctx context.Context, req Request) (*Result, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	columns, err := o.resolveColumns(ctx, req)
	if err != nil {
		return nil, err
	}

	builderOptions := append([]model.BuilderOption(nil), o.builderOptions...)
	values := req.Values
	decorators := o.decorators
	if req.Config != nil {
		if err := req.Config.Validate(); err != nil {
			return nil, fmt.Errorf("orchestrator: config: %w", err)
		}
		configured, err := req.Config.BuilderOptions()
		if err != nil {
			return nil, err
		}
		builderOptions = append(builderOptions, configured...)

		initial, err := req.Config.InitialValues()
		if err != nil {
			return nil, err
		}
		values = mergeValues(initial, req.Values)
		decorators = append([]model.Decorator{req.Config}, decorators...)
	}

	form, err := model.NewBuilder(builderOptions...).Build(columns, values)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build form model: %w", err)
	}

	for _, decorator := range decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return nil, fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}

	return &Result{
		Form:       form,
		FormErrors: render.ApplyErrors(form, req.Errors),
	}, nil
}

func (o *Orchestrator) resolveColumns(ctx context.Context, req Request) ([]model.ColumnMetadata, error) {
	if req.Columns != nil {
		return req.Columns, nil
	}
	if req.Source == nil {
		return nil, errors.New("orchestrator: source or columns are required")
	}
	columns, err := req.Source.Columns(ctx)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load columns from %s %s: %w", req.Source.Kind(), req.Source.Location(), err)
	}
	return columns, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	renderer, err := o.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

// mergeValues returns the union of base and override, override winning. A
// nil result keeps the model unpopulated.
func mergeValues(base, override model.Values) model.Values {
	if base == nil && override == nil {
		return nil
	}
	out := make(model.Values, len(base)+len(override))
	maps.Copy(out, base)
	maps.Copy(out, override)
	return out
}

func (o *Orchestrator) applyDefaults() {
	if o.registry == nil {
		vanillaRenderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		tableRenderer, err := table.New(table.WithFragmenter(vanillaRenderer))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: table renderer: %w", err)
			return
		}
		o.registry, o.initialiseErr = render.NewRegistry(vanillaRenderer, tableRenderer)
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
