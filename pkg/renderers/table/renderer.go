// Package table lays a FormModel out as a three column table: label, control
// and comment. Controls come from a render.Fragmenter, the vanilla renderer
// by default, so both layouts share the same per-kind markup.
package table

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-dbform/pkg/model"
	"github.com/goliatone/go-dbform/pkg/render"
	"github.com/goliatone/go-dbform/pkg/renderers/vanilla"
)

type Option func(*Renderer)

// WithFragmenter replaces the control renderer.
func WithFragmenter(fragmenter render.Fragmenter) Option {
	return func(r *Renderer) {
		if fragmenter != nil {
			r.fragmenter = fragmenter
		}
	}
}

// WithSanitizerPolicy overrides the policy applied to comments and errors.
func WithSanitizerPolicy(policy *bluemonday.Policy) Option {
	return func(r *Renderer) {
		if policy != nil {
			r.policy = policy
		}
	}
}

// WithClass sets the class attribute of the table element.
func WithClass(class string) Option {
	return func(r *Renderer) {
		r.class = strings.TrimSpace(class)
	}
}

type Renderer struct {
	fragmenter render.Fragmenter
	policy     *bluemonday.Policy
	class      string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the table renderer.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{class: "formTable"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.fragmenter == nil {
		fragmenter, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("table renderer: %w", err)
		}
		r.fragmenter = fragmenter
	}
	if r.policy == nil {
		r.policy = bluemonday.StrictPolicy()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "table"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes hidden controls ahead of the table and one row per visible
// column. Descriptor.Markup is only updated once every column rendered.
func (r *Renderer) Render(ctx context.Context, form *model.FormModel) ([]byte, error) {
	if form == nil {
		return nil, fmt.Errorf("table renderer: form model is nil")
	}

	descriptors := form.Descriptors()
	fragments := make([]string, len(descriptors))

	var hidden, rows strings.Builder
	for idx, descriptor := range descriptors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		control, err := r.fragmenter.RenderOne(descriptor, form.Populated)
		if err != nil {
			return nil, fmt.Errorf("table renderer: %w", err)
		}
		fragments[idx] = control

		if descriptor.Kind == model.KindHidden {
			hidden.WriteString(control)
			continue
		}
		r.writeRow(&rows, descriptor, control)
	}

	var out strings.Builder
	out.WriteString(hidden.String())
	if r.class != "" {
		fmt.Fprintf(&out, "<table class='%s'>\n", html.EscapeString(r.class))
	} else {
		out.WriteString("<table>\n")
	}
	out.WriteString(rows.String())
	out.WriteString("</table>\n")

	for idx, descriptor := range descriptors {
		descriptor.Markup = fragments[idx]
	}
	return []byte(out.String()), nil
}

func (r *Renderer) writeRow(out *strings.Builder, descriptor *model.Descriptor, control string) {
	label := strings.TrimSpace(descriptor.Label)
	if label == "" {
		label = model.DefaultLabeler(descriptor.Name)
	}

	out.WriteString("<tr><td>")
	out.WriteString(html.EscapeString(label))
	out.WriteString("</td><td>")
	out.WriteString(control)
	out.WriteString("</td><td>")
	out.WriteString(r.policy.Sanitize(strings.TrimSpace(descriptor.Comment)))
	if message := strings.TrimSpace(descriptor.Error); message != "" {
		if descriptor.Comment != "" {
			out.WriteString("<br />")
		}
		out.WriteString("<span class='formError'>")
		out.WriteString(r.policy.Sanitize(message))
		out.WriteString("</span>")
	}
	out.WriteString("</td></tr>\n")
}
