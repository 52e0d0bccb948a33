package template

import (
	"io"
)

// TemplateRenderer is the seam component renderers use to execute named
// templates. Output is returned and, when writers are supplied, copied to
// each of them.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
}
