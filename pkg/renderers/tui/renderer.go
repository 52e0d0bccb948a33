package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/goliatone/go-dbform/pkg/model"
	"github.com/goliatone/go-dbform/pkg/render"
)

// Renderer collects column values in the terminal, one prompt per visible
// column, and returns them as a value source.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render collects values, merges them into form and serializes them in the
// configured output format.
func (r *Renderer) Render(ctx context.Context, form *model.FormModel) ([]byte, error) {
	values, err := r.Collect(ctx, form)
	if err != nil {
		return nil, err
	}
	if err := form.MergeAll(values); err != nil {
		return nil, fmt.Errorf("tui: merge collected values: %w", err)
	}
	return r.serialize(values)
}

// Collect prompts for every non-hidden column in model order. Prompt
// defaults come from the column's current value, or its schema default when
// the model holds none. The form itself is left untouched.
func (r *Renderer) Collect(ctx context.Context, form *model.FormModel) (model.Values, error) {
	if form == nil {
		return nil, errors.New("tui: form model is nil")
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	values := make(model.Values)
	for _, descriptor := range form.Descriptors() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if descriptor.Kind == model.KindHidden {
			continue
		}
		value, err := r.promptDescriptor(ctx, descriptor, form.Populated)
		if err != nil {
			return nil, fmt.Errorf("tui: column %q: %w", descriptor.Name, err)
		}
		values[descriptor.Name] = value
	}

	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return values, nil
}

func (r *Renderer) promptDescriptor(ctx context.Context, descriptor *model.Descriptor, populated bool) (model.Value, error) {
	switch descriptor.Kind {
	case model.KindPassword:
		return r.promptPassword(ctx, descriptor)
	case model.KindCheckboxSingle:
		return r.promptBoolean(ctx, descriptor, populated)
	case model.KindSelect, model.KindRadio:
		if len(descriptor.Choices) > 0 {
			return r.promptChoice(ctx, descriptor, populated)
		}
	case model.KindCheckbox:
		if len(descriptor.Choices) > 0 {
			return r.promptMultiChoice(ctx, descriptor, populated)
		}
	}
	return r.promptString(ctx, descriptor, populated)
}

func (r *Renderer) promptString(ctx context.Context, descriptor *model.Descriptor, populated bool) (model.Value, error) {
	defaultVal := currentValue(descriptor, populated)
	label := displayLabel(descriptor)
	help := displayHelp(descriptor)

	var (
		response string
		err      error
	)
	if descriptor.Kind == model.KindTextarea {
		response, err = r.driver.TextArea(ctx, TextAreaConfig{
			Message: label,
			Default: defaultVal,
			Help:    help,
		})
	} else {
		response, err = r.driver.Input(ctx, InputConfig{
			Message:   label,
			Default:   defaultVal,
			Help:      help,
			Validator: requiredValidator(descriptor),
		})
	}
	if err != nil {
		return model.Value{}, err
	}
	return model.Scalar(response), nil
}

// promptPassword asks twice and repeats until both answers match.
func (r *Renderer) promptPassword(ctx context.Context, descriptor *model.Descriptor) (model.Value, error) {
	label := displayLabel(descriptor)
	for {
		first, err := r.driver.Password(ctx, InputConfig{
			Message:   label,
			Help:      displayHelp(descriptor),
			Validator: requiredValidator(descriptor),
		})
		if err != nil {
			return model.Value{}, err
		}
		second, err := r.driver.Password(ctx, InputConfig{
			Message: "Confirm " + label,
		})
		if err != nil {
			return model.Value{}, err
		}
		if first == second {
			return model.Scalar(first), nil
		}
		_ = r.driver.Info(ctx, fmt.Sprintf("%s: values do not match, try again", label))
	}
}

func (r *Renderer) promptBoolean(ctx context.Context, descriptor *model.Descriptor, populated bool) (model.Value, error) {
	defaultVal := render.Checked(descriptor, populated)
	if !populated && !descriptor.Assigned {
		def, _ := descriptor.DefaultValue()
		defaultVal = def == "1"
	}

	resp, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: displayLabel(descriptor),
		Default: defaultVal,
		Help:    displayHelp(descriptor),
	})
	if err != nil {
		return model.Value{}, err
	}
	if resp {
		return model.Scalar("1"), nil
	}
	return model.Scalar("0"), nil
}

func (r *Renderer) promptChoice(ctx context.Context, descriptor *model.Descriptor, populated bool) (model.Value, error) {
	options := descriptor.Choices
	defaultIdx := -1
	for idx, option := range render.ResolveOptions(descriptor, populated) {
		if option.Selected {
			defaultIdx = idx
			break
		}
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      displayLabel(descriptor),
			Options:      options,
			DefaultIndex: defaultIdx,
			Help:         displayHelp(descriptor),
		})
		if err != nil {
			return model.Value{}, err
		}
		if idx >= 0 && idx < len(options) {
			return model.Scalar(options[idx]), nil
		}
		_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s selection", descriptor.Name))
	}
}

func (r *Renderer) promptMultiChoice(ctx context.Context, descriptor *model.Descriptor, populated bool) (model.Value, error) {
	options := descriptor.Choices
	var defaults []int
	for idx, option := range render.ResolveOptions(descriptor, populated) {
		if option.Selected {
			defaults = append(defaults, idx)
		}
	}

	indices, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  displayLabel(descriptor),
		Options:  options,
		Defaults: defaults,
		Help:     displayHelp(descriptor),
	})
	if err != nil {
		return model.Value{}, err
	}
	return model.List(valuesFromIndices(options, indices)...), nil
}

// currentValue is the prompt default for scalar columns. Stored values are
// unescaped so the user edits the original text.
func currentValue(descriptor *model.Descriptor, populated bool) string {
	if (populated || descriptor.Assigned) && descriptor.Value != "" {
		return model.Unsanitize(descriptor.Value)
	}
	if def, ok := descriptor.DefaultValue(); ok && def != model.CurrentTimestamp {
		return def
	}
	return ""
}

// requiredValidator rejects blank answers for NOT NULL columns without a
// schema default.
func requiredValidator(descriptor *model.Descriptor) func(string) error {
	if !descriptor.Required {
		return nil
	}
	if _, ok := descriptor.DefaultValue(); ok {
		return nil
	}
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return errors.New("value is required")
		}
		return nil
	}
}

func displayLabel(descriptor *model.Descriptor) string {
	if descriptor.Label != "" {
		return descriptor.Label
	}
	return descriptor.Name
}

func displayHelp(descriptor *model.Descriptor) string {
	return descriptor.Comment
}

func valuesFromIndices(options []string, indices []int) []string {
	out := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(options) {
			out = append(out, options[idx])
		}
	}
	return out
}

func (r *Renderer) serialize(values model.Values) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return jsonBytes(values)
	}
}

// flattenForm encodes list values under "name[]" the way checkbox groups
// submit them, so model.ValuesFromURL reads the payload back unchanged.
func flattenForm(values model.Values) string {
	flattened := url.Values{}
	for name, value := range values {
		if value.IsList() {
			for _, item := range value.Items() {
				flattened.Add(name+"[]", item)
			}
			continue
		}
		flattened.Set(name, value.String())
	}
	return flattened.Encode()
}

func prettyPrint(values model.Values) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	for _, name := range names {
		value := values[name]
		if value.IsList() {
			for idx, item := range value.Items() {
				fmt.Fprintf(&b, "%s[%d]=%s\n", name, idx, item)
			}
			continue
		}
		fmt.Fprintf(&b, "%s=%s\n", name, value.String())
	}
	return b.String()
}

func jsonBytes(values model.Values) ([]byte, error) {
	out := make(map[string]any, len(values))
	for name, value := range values {
		if value.IsList() {
			items := value.Items()
			if items == nil {
				items = []string{}
			}
			out[name] = items
			continue
		}
		out[name] = value.String()
	}
	return json.Marshal(out)
}
