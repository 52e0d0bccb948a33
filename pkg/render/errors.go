package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-dbform/pkg/model"
)

// ErrorMapping splits a validation payload from a previous submission into
// column-level and form-level messages.
type ErrorMapping struct {
	Columns map[string][]string
	Form    []string
}

// MapErrorPayload matches payload keys against the model's column names.
// Keys may be plain names ("status"), JSON pointers ("/body/status"), dotted
// paths ("data.tags.1") or bracket paths ("tags[]"). Keys that name no column
// are kept as form-level messages so nothing is lost.
func MapErrorPayload(form *model.FormModel, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Columns: make(map[string][]string)}
	if len(payload) == 0 {
		mapping.Columns = nil
		return mapping
	}

	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		column, ok := matchColumn(form, rawPath)
		if !ok {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Columns[column] = append(mapping.Columns[column], normalized...)
	}

	if len(mapping.Columns) == 0 {
		mapping.Columns = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// ApplyErrors maps payload onto Descriptor.Error (messages joined with "; ")
// and returns the form-level messages.
func ApplyErrors(form *model.FormModel, payload map[string][]string) []string {
	mapping := MapErrorPayload(form, payload)
	for column, messages := range mapping.Columns {
		descriptor, ok := form.Descriptor(column)
		if !ok {
			continue
		}
		descriptor.Error = strings.Join(messages, "; ")
	}
	return mapping.Form
}

func matchColumn(form *model.FormModel, raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if form == nil || isFormLevelKey(trimmed) {
		return "", false
	}
	if _, ok := form.Descriptor(trimmed); ok {
		return trimmed, true
	}
	segments := stripNumericSegments(dropWrapperSegments(parsePathSegments(trimmed)))
	for _, segment := range segments {
		if _, ok := form.Descriptor(segment); ok {
			return segment, true
		}
	}
	return "", false
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func parsePathSegments(path string) []string {
	clean := strings.TrimLeft(strings.TrimSpace(path), "#$/.")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)
	clean = strings.Trim(clean, "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	for len(out) > 0 {
		switch strings.ToLower(out[0]) {
		case "body", "request", "payload", "data", "attributes":
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func stripNumericSegments(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
