package vanilla

import (
	"bytes"
	"fmt"
	"html"
	"maps"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-dbform/pkg/model"
	"github.com/goliatone/go-dbform/pkg/render/template"
	"github.com/goliatone/go-dbform/pkg/renderers/vanilla/components"
)

type componentRenderer struct {
	templates template.TemplateRenderer
	registry  *components.Registry
	overrides map[string]string
	policy    *bluemonday.Policy
}

func newComponentRenderer(templates template.TemplateRenderer, registry *components.Registry, overrides map[string]string, policy *bluemonday.Policy) *componentRenderer {
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	if policy == nil {
		policy = bluemonday.StrictPolicy()
	}
	return &componentRenderer{
		templates: templates,
		registry:  registry,
		overrides: maps.Clone(overrides),
		policy:    policy,
	}
}

func (r *componentRenderer) render(descriptor *model.Descriptor, populated bool) (string, error) {
	name := componentName(descriptor, r.overrides)
	component, ok := r.registry.Component(name)
	if !ok {
		component, ok = r.registry.Component(components.FallbackName)
	}
	if !ok {
		return "", fmt.Errorf("%w: %q for column %q", ErrComponentNotFound, name, descriptor.Name)
	}

	data := components.ComponentData{
		Template:  r.templates,
		Populated: populated,
	}

	var control bytes.Buffer
	if err := component.Renderer(&control, descriptor, data); err != nil {
		return "", fmt.Errorf("render component %q for column %q: %w", component.Name, descriptor.Name, err)
	}
	return control.String(), nil
}

// wrap places a control inside the formElem block: label, optional comment,
// optional error message, then the control itself.
func (r *componentRenderer) wrap(descriptor *model.Descriptor, control string) string {
	var builder strings.Builder
	builder.Grow(len(control) + 128)

	builder.WriteString("<div class='formElem'>\n")
	builder.WriteString(html.EscapeString(labelFor(descriptor)))
	builder.WriteString("<br />\n")

	if comment := strings.TrimSpace(descriptor.Comment); comment != "" {
		builder.WriteString(r.policy.Sanitize(comment))
		builder.WriteString("<br />")
	}
	builder.WriteString("\n")

	if message := strings.TrimSpace(descriptor.Error); message != "" {
		builder.WriteString("<span class='formError'>")
		builder.WriteString(r.policy.Sanitize(message))
		builder.WriteString("</span><br />\n")
	}

	builder.WriteString(control)
	builder.WriteString("</div>\n")
	return builder.String()
}
