package render

import "github.com/goliatone/go-dbform/pkg/model"

// Option is one rendered choice of a select, checkbox group or radio group.
type Option struct {
	Value    string
	Selected bool
}

// ResolveOptions decides which choices render as selected/checked.
//
// Populated models (and descriptors that received an explicit value) use the
// merged selections. Otherwise the choice equal to the column default is
// marked; a default that matches no choice marks nothing. Options always
// follow the choice list order.
func ResolveOptions(descriptor *model.Descriptor, populated bool) []Option {
	if descriptor == nil || len(descriptor.Choices) == 0 {
		return nil
	}

	options := make([]Option, len(descriptor.Choices))
	if populated || descriptor.Assigned {
		marked := selectionMarks(descriptor)
		for idx, choice := range descriptor.Choices {
			options[idx] = Option{Value: choice, Selected: marked[idx]}
		}
		return options
	}

	def, hasDefault := descriptor.DefaultValue()
	for idx, choice := range descriptor.Choices {
		options[idx] = Option{Value: choice, Selected: hasDefault && choice == def}
	}
	return options
}

// selectionMarks aligns the merged selections with the current choice list.
// Selections that no longer line up (the caller replaced Choices after the
// merge) are matched by value instead of position.
func selectionMarks(descriptor *model.Descriptor) []bool {
	marks := make([]bool, len(descriptor.Choices))
	if len(descriptor.Selections) == len(descriptor.Choices) {
		aligned := true
		for idx, sel := range descriptor.Selections {
			if sel.Value != descriptor.Choices[idx] {
				aligned = false
				break
			}
			marks[idx] = sel.Selected
		}
		if aligned {
			return marks
		}
	}

	selected := make(map[string]struct{})
	for _, value := range descriptor.SelectedValues() {
		selected[value] = struct{}{}
	}
	for idx, choice := range descriptor.Choices {
		_, marks[idx] = selected[choice]
	}
	return marks
}

// Checked reports whether a single on/off checkbox renders checked: only a
// populated (or explicitly assigned) value of "1" counts.
func Checked(descriptor *model.Descriptor, populated bool) bool {
	if descriptor == nil {
		return false
	}
	return (populated || descriptor.Assigned) && descriptor.Value == "1"
}
