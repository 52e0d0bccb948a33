package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/components/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded component templates so callers can copy
// and customise them before passing them back through WithTemplatesFS.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
