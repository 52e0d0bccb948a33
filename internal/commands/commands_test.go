package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dbform/pkg/renderers/tui"
	"github.com/goliatone/go-dbform/pkg/testsupport"
)

var usersFile = filepath.Join("..", "..", "pkg", "schema", "testdata", "users.yaml")

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(testsupport.Context())
	return out.String(), err
}

func TestRender_File(t *testing.T) {
	out, err := execute(t, "render", "-f", usersFile)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, fragment := range []string{
		"<input type='hidden' name='id' value='' />",
		"<option value='active' selected='selected'>active</option>",
		"<input type='checkbox' name='tags[]' value='a' />a<br />",
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in:\n%s", fragment, out)
		}
	}
}

func TestRender_ConfigValuesAndErrors(t *testing.T) {
	out, err := execute(t, "render",
		"-f", usersFile,
		"-c", filepath.Join("testdata", "dbform.yaml"),
		"--values", filepath.Join("..", "..", "pkg", "schema", "testdata", "values.yaml"),
		"--errors", filepath.Join("testdata", "errors.yaml"),
	)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, fragment := range []string{
		"<table class='formTable'>",
		"value='ada'",
		"<span class='formError'>is taken</span>",
		"<span class='formError'>pick at most two</span>",
		"<option value='inactive' selected='selected'>inactive</option>",
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in:\n%s", fragment, out)
		}
	}
	if strings.Contains(out, "newsletter") {
		t.Fatalf("ignored column rendered:\n%s", out)
	}
}

func TestRender_OutputFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "form.html")
	if _, err := execute(t, "render", "-f", usersFile, "-r", "table", "-o", target); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "<table class='formTable'>") {
		t.Fatalf("unexpected output file:\n%s", data)
	}
}

func TestRender_SourceFlags(t *testing.T) {
	cases := map[string][]string{
		"no source":      {"render"},
		"two sources":    {"render", "-f", usersFile, "--postgres", "postgres://localhost/app"},
		"database table": {"render", "--mysql", "app@tcp(localhost:3306)/app"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := execute(t, args...); err == nil {
				t.Fatalf("expected flag validation error")
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	out, err := execute(t, "describe", "-f", usersFile)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	var decoded struct {
		Populated bool `json:"populated"`
		Fields    []struct {
			Name string `json:"name"`
			Kind string `json:"kind"`
		} `json:"fields"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if decoded.Populated || len(decoded.Fields) != 5 {
		t.Fatalf("unexpected model: %+v", decoded)
	}
	if decoded.Fields[2].Name != "status" || decoded.Fields[2].Kind != "select" {
		t.Fatalf("unexpected status field: %+v", decoded.Fields[2])
	}
}

func TestKinds(t *testing.T) {
	out, err := execute(t, "kinds", "-c", filepath.Join("testdata", "dbform.yaml"))
	if err != nil {
		t.Fatalf("kinds: %v", err)
	}
	if !strings.Contains(out, "checkboxSingle") || !strings.Contains(out, "Kinds: text, textarea") {
		t.Fatalf("unexpected kinds output:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[0] == "tinyint" && fields[1] != "checkboxSingle" {
			t.Fatalf("config override missing: %q", line)
		}
	}
}

type scriptedDriver struct {
	tui.PromptDriver
	inputs  []string
	selects []int
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	value := d.inputs[0]
	d.inputs = d.inputs[1:]
	return value, nil
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	value := d.selects[0]
	d.selects = d.selects[1:]
	return value, nil
}

func (d *scriptedDriver) MultiSelect(context.Context, tui.SelectConfig) ([]int, error) {
	return []int{1}, nil
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	return true, nil
}

func TestPrompt_ScriptedDriver(t *testing.T) {
	opts := &promptOptions{
		source: sourceOptions{file: usersFile},
		format: "pretty",
		driver: &scriptedDriver{inputs: []string{"ada", "1"}, selects: []int{1}},
	}
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetContext(testsupport.Context())

	if err := runPrompt(cmd, opts); err != nil {
		t.Fatalf("prompt: %v", err)
	}
	want := "newsletter=1\nstatus=inactive\ntags[0]=b\nuser_name=ada\n\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestParseOutputFormat(t *testing.T) {
	if _, err := parseOutputFormat("xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if format, err := parseOutputFormat("form"); err != nil || format != tui.OutputFormatFormURLEncoded {
		t.Fatalf("unexpected result %q %v", format, err)
	}
}
