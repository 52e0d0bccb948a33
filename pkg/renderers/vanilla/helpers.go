package vanilla

import (
	"strings"

	"github.com/goliatone/go-dbform/pkg/model"
	"github.com/goliatone/go-dbform/pkg/renderers/vanilla/components"
)

// componentName picks the registry entry for a descriptor: an explicit
// per-column override first, then the input kind.
func componentName(descriptor *model.Descriptor, overrides map[string]string) string {
	if name := strings.TrimSpace(overrides[descriptor.Name]); name != "" {
		return name
	}
	if kind := strings.TrimSpace(string(descriptor.Kind)); kind != "" {
		return kind
	}
	return components.FallbackName
}

func labelFor(descriptor *model.Descriptor) string {
	if label := strings.TrimSpace(descriptor.Label); label != "" {
		return label
	}
	return model.DefaultLabeler(descriptor.Name)
}
