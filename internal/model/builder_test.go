package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func statusColumns() []ColumnMetadata {
	return []ColumnMetadata{
		{Name: "id", DeclaredType: "int(11)", Extra: "auto_increment"},
		{Name: "status", DeclaredType: "enum('active','inactive')", Default: StringPtr("active")},
		{Name: "tags", DeclaredType: "set('a','b','c')", Nullable: true},
		{Name: "created_at", DeclaredType: "timestamp"},
		{Name: "bio", DeclaredType: "text", Nullable: true, Comment: "Shown on the profile"},
	}
}

func TestBuild_KindsFollowTypeMap(t *testing.T) {
	form, err := New(Options{}).Build(statusColumns(), nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	got := map[string]InputKind{}
	for _, d := range form.Descriptors() {
		got[d.Name] = d.Kind
	}
	want := map[string]InputKind{
		"id":         KindHidden,
		"status":     KindSelect,
		"tags":       KindCheckbox,
		"created_at": KindHidden,
		"bio":        KindTextarea,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if form.Populated {
		t.Fatalf("expected unpopulated model")
	}
	if diff := cmp.Diff([]string{"id", "status", "tags", "created_at", "bio"}, form.Names()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_AutoIncrementAlwaysHidden(t *testing.T) {
	types := []string{"int(11)", "varchar(20)", "enum('a','b')", "text", "set('x')"}
	for _, declared := range types {
		form, err := New(Options{}).Build([]ColumnMetadata{
			{Name: "id", DeclaredType: declared, Extra: "AUTO_INCREMENT"},
		}, nil)
		if err != nil {
			t.Fatalf("%s: build: %v", declared, err)
		}
		d, _ := form.Descriptor("id")
		if d.Kind != KindHidden {
			t.Fatalf("%s: expected hidden, got %s", declared, d.Kind)
		}
	}
}

func TestBuild_DescriptorFields(t *testing.T) {
	form, err := New(Options{}).Build(statusColumns(), nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	status, ok := form.Descriptor("status")
	if !ok {
		t.Fatalf("status descriptor missing")
	}
	want := &Descriptor{
		Name:         "status",
		Label:        "Status",
		BaseType:     "enum",
		DeclaredType: "enum('active','inactive')",
		Required:     true,
		Default:      StringPtr("active"),
		Kind:         KindSelect,
		Choices:      []string{"active", "inactive"},
	}
	if diff := cmp.Diff(want, status); diff != "" {
		t.Fatalf("descriptor mismatch (-want +got):\n%s", diff)
	}

	created, _ := form.Descriptor("created_at")
	if diff := cmp.Diff([]string{CurrentTimestamp}, created.Choices); diff != "" {
		t.Fatalf("timestamp sentinel mismatch (-want +got):\n%s", diff)
	}

	bio, _ := form.Descriptor("bio")
	if bio.Required || !bio.Nullable {
		t.Fatalf("expected nullable optional bio, got %+v", bio)
	}
	if len(bio.Choices) != 0 {
		t.Fatalf("expected no choices for text column, got %v", bio.Choices)
	}
}

func TestBuild_ChoiceListParsing(t *testing.T) {
	cases := []struct {
		declared string
		want     []string
	}{
		{declared: "enum('a','b','c')", want: []string{"a", "b", "c"}},
		{declared: `set("x","y")`, want: []string{"x", "y"}},
		{declared: "enum('dup','dup','other')", want: []string{"dup", "dup", "other"}},
		{declared: "enum('single')", want: []string{"single"}},
		{declared: "ENUM('Upper','lower')", want: []string{"Upper", "lower"}},
	}

	for _, tc := range cases {
		t.Run(tc.declared, func(t *testing.T) {
			d, err := New(Options{}).Describe(ColumnMetadata{Name: "c", DeclaredType: tc.declared})
			if err != nil {
				t.Fatalf("describe: %v", err)
			}
			if diff := cmp.Diff(tc.want, d.Choices); diff != "" {
				t.Fatalf("choices mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuild_UnknownColumnType(t *testing.T) {
	columns := []ColumnMetadata{{Name: "shape", DeclaredType: "geometry"}}

	_, err := New(Options{}).Build(columns, nil)
	if !errors.Is(err, ErrUnknownColumnType) {
		t.Fatalf("expected ErrUnknownColumnType, got %v", err)
	}

	form, err := New(Options{DefaultKind: KindTextarea}).Build(columns, nil)
	if err != nil {
		t.Fatalf("build with default kind: %v", err)
	}
	if d, _ := form.Descriptor("shape"); d.Kind != KindTextarea {
		t.Fatalf("expected default kind textarea, got %s", d.Kind)
	}

	types := DefaultTypeMap().With(map[string]InputKind{"geometry": KindHidden})
	form, err = New(Options{TypeMap: &types}).Build(columns, nil)
	if err != nil {
		t.Fatalf("build with override: %v", err)
	}
	if d, _ := form.Descriptor("shape"); d.Kind != KindHidden {
		t.Fatalf("expected override kind hidden, got %s", d.Kind)
	}
	if _, ok := LookupInputKind("geometry"); ok {
		t.Fatalf("overrides must not leak into the shared table")
	}
}

func TestBuild_MalformedMetadata(t *testing.T) {
	cases := map[string][]ColumnMetadata{
		"missing name":  {{DeclaredType: "int"}},
		"missing type":  {{Name: "id"}},
		"duplicate row": {{Name: "id", DeclaredType: "int"}, {Name: "id", DeclaredType: "int"}},
	}
	for name, columns := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New(Options{}).Build(columns, nil)
			if !errors.Is(err, ErrMalformedMetadata) {
				t.Fatalf("expected ErrMalformedMetadata, got %v", err)
			}
		})
	}
}

func TestBuild_WithValuesPopulates(t *testing.T) {
	form, err := New(Options{}).Build(statusColumns(), Values{"status": Scalar("inactive")})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !form.Populated {
		t.Fatalf("expected populated model")
	}
	status, _ := form.Descriptor("status")
	if diff := cmp.Diff([]string{"inactive"}, status.SelectedValues()); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}

	bio, _ := form.Descriptor("bio")
	if bio.Assigned {
		t.Fatalf("columns absent from the value source must stay untouched")
	}
}

func TestBuild_EmptyValueSourceStillPopulates(t *testing.T) {
	form, err := New(Options{}).Build(statusColumns(), Values{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !form.Populated {
		t.Fatalf("expected populated model for an empty but present value source")
	}
}

func TestBuild_StaleValueSource(t *testing.T) {
	_, err := New(Options{}).Build(statusColumns(), Values{"missing": Scalar("x")})
	if !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}
}

func TestSplitDeclaredType(t *testing.T) {
	cases := []struct {
		in, base, suffix string
	}{
		{in: "varchar(255)", base: "varchar", suffix: "(255)"},
		{in: "int(10) unsigned", base: "int", suffix: "(10) unsigned"},
		{in: "bigint unsigned", base: "bigint", suffix: ""},
		{in: "DATETIME", base: "datetime", suffix: ""},
	}
	for _, tc := range cases {
		base, suffix := splitDeclaredType(tc.in)
		if base != tc.base || suffix != tc.suffix {
			t.Fatalf("%q: got (%q, %q) want (%q, %q)", tc.in, base, suffix, tc.base, tc.suffix)
		}
	}
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, _ ...any) {
	l.lines = append(l.lines, format)
}

func TestBuild_LogsDefaultKindFallback(t *testing.T) {
	logger := &recordingLogger{}
	_, err := New(Options{DefaultKind: KindText, Logger: logger}).Build([]ColumnMetadata{
		{Name: "point", DeclaredType: "point"},
	}, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(logger.lines) != 1 {
		t.Fatalf("expected one log line, got %v", logger.lines)
	}
}
