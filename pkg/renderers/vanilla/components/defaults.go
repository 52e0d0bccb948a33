package components

import (
	"bytes"
	"fmt"
	"html"
	"slices"
	"strings"

	"github.com/goliatone/go-dbform/pkg/model"
	"github.com/goliatone/go-dbform/pkg/render"
)

const (
	templatePrefix = "templates/components/"
)

// NewDefaultRegistry constructs a registry with one component per input kind.
// Scalar kinds render through templates; choice kinds are written directly
// because their markup is a loop over the resolved options.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameText, Component{
		Renderer: templateComponentRenderer(templatePrefix + "text.tmpl"),
	})
	registry.MustRegister(NamePassword, Component{
		Renderer: templateComponentRenderer(templatePrefix + "password.tmpl"),
	})
	registry.MustRegister(NameHidden, Component{
		Renderer: templateComponentRenderer(templatePrefix + "hidden.tmpl"),
	})
	registry.MustRegister(NameTextarea, Component{
		Renderer: templateComponentRenderer(templatePrefix + "textarea.tmpl"),
	})
	registry.MustRegister(NameCheckboxSingle, Component{
		Renderer: templateComponentRenderer(templatePrefix + "checkbox_single.tmpl"),
	})
	registry.MustRegister(NameSelect, Component{
		Renderer: selectRenderer,
	})
	registry.MustRegister(NameCheckbox, Component{
		Renderer: choiceGroupRenderer("checkbox", true),
	})
	registry.MustRegister(NameRadio, Component{
		Renderer: choiceGroupRenderer("radio", false),
	})

	return registry
}

func templateComponentRenderer(templateName string) Renderer {
	return func(buf *bytes.Buffer, descriptor *model.Descriptor, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		payload := map[string]any{
			"name":    descriptor.Name,
			"value":   controlValue(descriptor),
			"attrs":   AttributeSuffix(descriptor.Attributes),
			"checked": render.Checked(descriptor, data.Populated),
		}
		rendered, err := data.Template.RenderTemplate(templateName, payload)
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", templateName, err)
		}
		buf.WriteString(strings.TrimRight(rendered, "\r\n"))
		return nil
	}
}

func selectRenderer(buf *bytes.Buffer, descriptor *model.Descriptor, data ComponentData) error {
	buf.WriteString("<select name='")
	buf.WriteString(html.EscapeString(descriptor.Name))
	buf.WriteString("'")
	buf.WriteString(AttributeSuffix(descriptor.Attributes))
	buf.WriteString(">\n")
	for _, option := range render.ResolveOptions(descriptor, data.Populated) {
		value := html.EscapeString(option.Value)
		buf.WriteString("<option value='")
		buf.WriteString(value)
		buf.WriteString("'")
		if option.Selected {
			buf.WriteString(" selected='selected'")
		}
		buf.WriteString(">")
		buf.WriteString(value)
		buf.WriteString("</option>\n")
	}
	buf.WriteString("</select>\n")
	return nil
}

// choiceGroupRenderer writes one input per choice followed by its label.
// Multi-valued groups submit under "name[]".
func choiceGroupRenderer(inputType string, multi bool) Renderer {
	return func(buf *bytes.Buffer, descriptor *model.Descriptor, data ComponentData) error {
		name := html.EscapeString(descriptor.Name)
		if multi {
			name += "[]"
		}
		attrs := AttributeSuffix(descriptor.Attributes)
		for _, option := range render.ResolveOptions(descriptor, data.Populated) {
			value := html.EscapeString(option.Value)
			fmt.Fprintf(buf, "<input type='%s' name='%s' value='%s'", inputType, name, value)
			if option.Selected {
				buf.WriteString(" checked='checked'")
			}
			buf.WriteString(attrs)
			buf.WriteString(" />")
			buf.WriteString(value)
			buf.WriteString("<br />\n")
		}
		return nil
	}
}

// controlValue is the value written into scalar controls. Temporal columns
// that were never given a value carry the current-timestamp sentinel.
func controlValue(descriptor *model.Descriptor) string {
	if descriptor.Value != "" {
		return descriptor.Value
	}
	if descriptor.Kind == model.KindHidden && slices.Contains(descriptor.Choices, model.CurrentTimestamp) {
		return model.CurrentTimestamp
	}
	return ""
}

// AttributeSuffix prefixes non-empty caller attributes with a single space so
// they can be appended straight after the last generated attribute.
func AttributeSuffix(attributes string) string {
	trimmed := strings.TrimSpace(attributes)
	if trimmed == "" {
		return ""
	}
	return " " + trimmed
}
