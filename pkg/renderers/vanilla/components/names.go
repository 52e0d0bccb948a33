package components

import "github.com/goliatone/go-dbform/pkg/model"

// Canonical component names. They match the input kinds so the default
// registry dispatches straight from Descriptor.Kind.
const (
	NameText           = string(model.KindText)
	NameTextarea       = string(model.KindTextarea)
	NameHidden         = string(model.KindHidden)
	NameSelect         = string(model.KindSelect)
	NameCheckbox       = string(model.KindCheckbox)
	NameRadio          = string(model.KindRadio)
	NamePassword       = string(model.KindPassword)
	NameCheckboxSingle = string(model.KindCheckboxSingle)
)

// FallbackName is used for kinds with no registered component.
const FallbackName = NameText
