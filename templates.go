package dbform

import (
	"io/fs"

	"github.com/goliatone/go-dbform/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in vanilla component templates so
// callers can copy or extend them without importing the renderer package.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
