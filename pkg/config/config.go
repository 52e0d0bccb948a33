// Package config loads the YAML file that tailors form synthesis for one
// table: type overrides, ignored columns, per-column kinds and attributes,
// and initial values.
package config

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-dbform/pkg/model"
)

// CurrentVersion is the current version of the config file format.
const CurrentVersion = 1

// Config represents a dbform.yaml file.
type Config struct {
	Version     int                     `yaml:"version"`
	Renderer    string                  `yaml:"renderer,omitempty"`
	DefaultKind string                  `yaml:"defaultKind,omitempty"`
	Types       map[string]string       `yaml:"types,omitempty"`
	Ignore      []string                `yaml:"ignore,omitempty"`
	Columns     map[string]ColumnConfig `yaml:"columns,omitempty"`
	Values      map[string]any          `yaml:"values,omitempty"`
}

// ColumnConfig overrides the synthesized descriptor of one column.
type ColumnConfig struct {
	Kind       string `yaml:"kind,omitempty"`
	Label      string `yaml:"label,omitempty"`
	Attributes string `yaml:"attributes,omitempty"`
}

// Load reads a Config from a file path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses a Config without validating it.
func Decode(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the version and that every kind named in the file exists.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	if c.Version != CurrentVersion {
		errs = append(errs, fmt.Errorf("unsupported config version %d", c.Version))
	}
	if c.DefaultKind != "" {
		if _, ok := model.ParseInputKind(c.DefaultKind); !ok {
			errs = append(errs, fmt.Errorf("defaultKind: %w %q", model.ErrUnknownInputKind, c.DefaultKind))
		}
	}
	for _, baseType := range sortedKeys(c.Types) {
		if _, ok := model.ParseInputKind(c.Types[baseType]); !ok {
			errs = append(errs, fmt.Errorf("types.%s: %w %q", baseType, model.ErrUnknownInputKind, c.Types[baseType]))
		}
	}
	for _, name := range sortedKeys(c.Columns) {
		kind := c.Columns[name].Kind
		if kind == "" {
			continue
		}
		if _, ok := model.ParseInputKind(kind); !ok {
			errs = append(errs, fmt.Errorf("columns.%s.kind: %w %q", name, model.ErrUnknownInputKind, kind))
		}
	}
	if _, err := model.ValuesFromMap(c.Values); err != nil {
		errs = append(errs, fmt.Errorf("values: %w", err))
	}
	return errors.Join(errs...)
}

// TypeMap returns the default type table with the configured overrides
// applied on top.
func (c *Config) TypeMap() (model.TypeMap, error) {
	overrides := make(map[string]model.InputKind, len(c.Types))
	for baseType, raw := range c.Types {
		kind, ok := model.ParseInputKind(raw)
		if !ok {
			return model.TypeMap{}, fmt.Errorf("config: types.%s: %w %q", baseType, model.ErrUnknownInputKind, raw)
		}
		overrides[baseType] = kind
	}
	return model.DefaultTypeMap().With(overrides), nil
}

// BuilderOptions translates the type overrides and default kind into
// builder options.
func (c *Config) BuilderOptions() ([]model.BuilderOption, error) {
	var options []model.BuilderOption

	if len(c.Types) > 0 {
		types, err := c.TypeMap()
		if err != nil {
			return nil, err
		}
		options = append(options, model.WithTypeMap(types))
	}

	if c.DefaultKind != "" {
		kind, ok := model.ParseInputKind(c.DefaultKind)
		if !ok {
			return nil, fmt.Errorf("config: defaultKind: %w %q", model.ErrUnknownInputKind, c.DefaultKind)
		}
		options = append(options, model.WithDefaultKind(kind))
	}
	return options, nil
}

// InitialValues returns the configured value source, or nil when the file
// carries none.
func (c *Config) InitialValues() (model.Values, error) {
	if len(c.Values) == 0 {
		return nil, nil
	}
	values, err := model.ValuesFromMap(c.Values)
	if err != nil {
		return nil, fmt.Errorf("config: values: %w", err)
	}
	return values, nil
}

// Apply excludes ignored columns and applies per-column overrides. Columns
// are processed in name order and the first unknown column aborts.
func (c *Config) Apply(form *model.FormModel) error {
	if form == nil {
		return errors.New("config: form model is nil")
	}
	form.Exclude(c.Ignore...)

	for _, name := range sortedKeys(c.Columns) {
		if form.IsExcluded(name) {
			continue
		}
		column := c.Columns[name]
		if column.Kind != "" {
			kind, ok := model.ParseInputKind(column.Kind)
			if !ok {
				return fmt.Errorf("config: columns.%s.kind: %w %q", name, model.ErrUnknownInputKind, column.Kind)
			}
			if err := form.SetKind(name, kind); err != nil {
				return fmt.Errorf("config: %w", err)
			}
		}
		if label := strings.TrimSpace(column.Label); label != "" {
			if err := form.SetLabel(name, label); err != nil {
				return fmt.Errorf("config: %w", err)
			}
		}
		if column.Attributes != "" {
			if err := form.SetAttributes(name, column.Attributes); err != nil {
				return fmt.Errorf("config: %w", err)
			}
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

// Decorate lets a Config run as a model.Decorator.
func (c *Config) Decorate(form *model.FormModel) error {
	return c.Apply(form)
}
