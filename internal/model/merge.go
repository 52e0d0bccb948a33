package model

import (
	"html"
	"sort"
	"strings"
)

var lineBreakMarkers = strings.NewReplacer("<br />", "", "<br/>", "", "<br>", "")

// MergeAll merges every entry of values. All names are checked before any
// descriptor is touched, so a stale value source leaves the model unchanged.
func (f *FormModel) MergeAll(values Values) error {
	names := make([]string, 0, len(values))
	for name := range values {
		if _, err := f.lookup(name); err != nil {
			return err
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := f.Merge(name, values[name]); err != nil {
			return err
		}
	}
	return nil
}

// Merge applies value to the named descriptor. Choice inputs with a choice
// list get their selections recomputed from value; every other descriptor
// stores the sanitised scalar.
func (f *FormModel) Merge(name string, value Value) error {
	descriptor, err := f.lookup(name)
	if err != nil {
		return err
	}
	unmatched := mergeDescriptor(descriptor, value)
	if len(unmatched) > 0 {
		f.logger.Printf("dbform: column %q ignored values outside its choice list: %s", name, strings.Join(unmatched, ","))
	}
	return nil
}

// mergeDescriptor updates the descriptor state and returns the candidates
// that did not match the choice list.
func mergeDescriptor(descriptor *Descriptor, value Value) []string {
	descriptor.Assigned = true
	if !descriptor.Kind.IsChoice() || len(descriptor.Choices) == 0 {
		descriptor.Value = Sanitize(value.String())
		descriptor.Selections = nil
		return nil
	}

	marked := make(map[int]struct{})
	var unmatched []string
	for _, candidate := range value.Items() {
		matched := false
		for idx, choice := range descriptor.Choices {
			if choice == candidate {
				marked[idx] = struct{}{}
				matched = true
			}
		}
		if !matched {
			unmatched = append(unmatched, candidate)
		}
	}

	selections := make([]Selection, len(descriptor.Choices))
	for idx, choice := range descriptor.Choices {
		_, selected := marked[idx]
		selections[idx] = Selection{Value: choice, Selected: selected}
	}
	descriptor.Selections = selections
	descriptor.Value = ""
	return unmatched
}

// Sanitize prepares a raw value for inclusion in markup: line-break markers
// are removed, backslash escaping from storage is reversed, and the result is
// escaped for attribute and text context (quotes included).
func Sanitize(raw string) string {
	cleaned := lineBreakMarkers.Replace(raw)
	cleaned = stripSlashes(cleaned)
	return html.EscapeString(cleaned)
}

// Unsanitize reverses the escaping step of Sanitize.
func Unsanitize(sanitized string) string {
	return html.UnescapeString(sanitized)
}

// stripSlashes removes one level of backslash escaping: "\x" becomes "x" and
// "\\" becomes "\". A trailing lone backslash is dropped.
func stripSlashes(value string) string {
	if !strings.ContainsRune(value, '\\') {
		return value
	}
	var out strings.Builder
	out.Grow(len(value))
	escaped := false
	for _, r := range value {
		if escaped {
			out.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}
