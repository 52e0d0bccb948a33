package tui

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dbform/pkg/model"
	"github.com/goliatone/go-dbform/pkg/testsupport"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	passwords    []string
	infoMessages []string
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	textPos      int
	passPos      int

	inputConfigs   []InputConfig
	selectConfigs  []SelectConfig
	confirmConfigs []ConfirmConfig
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputConfigs = append(s.inputConfigs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.confirmConfigs = append(s.confirmConfigs, cfg)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectConfigs = append(s.selectConfigs, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.selectConfigs = append(s.selectConfigs, cfg)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func usersForm(t *testing.T) *model.FormModel {
	t.Helper()
	form := testsupport.BuildForm(t, testsupport.UsersColumns(), nil)
	if err := form.SetKind("password", model.KindPassword); err != nil {
		t.Fatalf("set kind: %v", err)
	}
	return form
}

func TestCollect_UsersForm(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"ada"},
		passwords: []string{"s3cret", "nope", "s3cret", "s3cret"},
		textAreas: []string{"Mathematician"},
		selectIdx: []int{1},
		multiIdx:  [][]int{{0, 2}},
		confirm:   []bool{true},
	}
	renderer, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	values, err := renderer.Collect(testsupport.Context(), usersForm(t))
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	got := map[string]string{}
	for name, value := range values {
		got[name] = value.String()
	}
	want := map[string]string{
		"user_name":  "ada",
		"password":   "s3cret",
		"bio":        "Mathematician",
		"status":     "inactive",
		"tags":       "a,c",
		"newsletter": "1",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if !values["tags"].IsList() {
		t.Fatalf("expected tags to be collected as a list")
	}
	if len(driver.infoMessages) != 1 {
		t.Fatalf("expected one mismatch notice, got %v", driver.infoMessages)
	}
}

func TestCollect_DefaultsFromSchemaAndValues(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"x"},
		passwords: []string{"p", "p"},
		textAreas: []string{""},
		selectIdx: []int{0},
		multiIdx:  [][]int{nil},
		confirm:   []bool{false},
	}
	renderer, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	form := usersForm(t)
	if err := form.MergeAll(model.Values{
		"user_name": model.Scalar("O'Brien"),
		"tags":      model.List("b"),
	}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	form.Populated = true

	if _, err := renderer.Collect(testsupport.Context(), form); err != nil {
		t.Fatalf("collect: %v", err)
	}

	if got := driver.inputConfigs[0].Default; got != "O'Brien" {
		t.Fatalf("expected unescaped default, got %q", got)
	}
	if driver.inputConfigs[0].Validator == nil {
		t.Fatalf("NOT NULL column without default should be validated")
	}
	if err := driver.inputConfigs[0].Validator("  "); err == nil {
		t.Fatalf("blank answer should be rejected")
	}
	status := driver.selectConfigs[0]
	if status.DefaultIndex != -1 {
		t.Fatalf("populated model without a status value should preselect nothing, got %d", status.DefaultIndex)
	}
	if diff := cmp.Diff([]int{1}, driver.selectConfigs[1].Defaults); diff != "" {
		t.Fatalf("tags defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_BlankModelUsesSchemaDefaults(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"x"},
		passwords: []string{"p", "p"},
		textAreas: []string{""},
		selectIdx: []int{0},
		multiIdx:  [][]int{nil},
		confirm:   []bool{false},
	}
	renderer, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := renderer.Collect(testsupport.Context(), usersForm(t)); err != nil {
		t.Fatalf("collect: %v", err)
	}

	if got := driver.selectConfigs[0].DefaultIndex; got != 0 {
		t.Fatalf("expected schema default 'active' preselected, got %d", got)
	}
	if driver.confirmConfigs[0].Default {
		t.Fatalf("newsletter defaults to 0 and should start unchecked")
	}
}

func TestCollect_Aborted(t *testing.T) {
	renderer, err := New(WithPromptDriver(&abortingDriver{stubDriver: &stubDriver{}}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	_, err = renderer.Collect(testsupport.Context(), usersForm(t))
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

type abortingDriver struct {
	*stubDriver
}

func (a *abortingDriver) Input(context.Context, InputConfig) (string, error) {
	return "", ErrAborted
}

func TestRender_SerializesAndMerges(t *testing.T) {
	newDriver := func() *stubDriver {
		return &stubDriver{
			selectIdx: []int{1},
			multiIdx:  [][]int{{0, 2}},
		}
	}
	columns := []model.ColumnMetadata{
		{Name: "id", DeclaredType: "int(11)", Extra: "auto_increment"},
		{Name: "status", DeclaredType: "enum('active','inactive')"},
		{Name: "tags", DeclaredType: "set('a','b','c')"},
	}

	renderer, err := New(WithPromptDriver(newDriver()))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	form := testsupport.BuildForm(t, columns, nil)
	out, err := renderer.Render(testsupport.Context(), form)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{"status": "inactive", "tags": []any{"a", "c"}}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	tags, _ := form.Descriptor("tags")
	if diff := cmp.Diff([]string{"a", "c"}, tags.SelectedValues()); diff != "" {
		t.Fatalf("collected values not merged (-want +got):\n%s", diff)
	}

	formRenderer, err := New(WithPromptDriver(newDriver()), WithOutputFormat(OutputFormatFormURLEncoded))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	out, err = formRenderer.Render(testsupport.Context(), testsupport.BuildForm(t, columns, nil))
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	parsed, err := url.ParseQuery(string(out))
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	roundTrip := model.ValuesFromURL(parsed)
	if diff := cmp.Diff([]string{"a", "c"}, roundTrip["tags"].Items()); diff != "" {
		t.Fatalf("form payload mismatch (-want +got):\n%s", diff)
	}
	if formRenderer.ContentType() != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected content type %q", formRenderer.ContentType())
	}
}

func TestPrettyPrint(t *testing.T) {
	got := prettyPrint(model.Values{
		"tags":   model.List("a", "c"),
		"status": model.Scalar("active"),
	})
	want := "status=active\ntags[0]=a\ntags[1]=c\n"
	if got != want {
		t.Fatalf("pretty = %q, want %q", got, want)
	}
}

func TestSubmitTransformer(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{0}}
	renderer, err := New(WithPromptDriver(driver), WithSubmitTransformer(func(values model.Values) (model.Values, error) {
		values["status"] = model.Scalar("inactive")
		return values, nil
	}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	form := testsupport.BuildForm(t, []model.ColumnMetadata{
		{Name: "status", DeclaredType: "enum('active','inactive')"},
	}, nil)
	values, err := renderer.Collect(testsupport.Context(), form)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if values["status"].String() != "inactive" {
		t.Fatalf("transformer not applied: %v", values["status"])
	}
}
