package table

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dbform/pkg/model"
	"github.com/goliatone/go-dbform/pkg/testsupport"
)

type stubFragmenter struct {
	fail string
}

func (s stubFragmenter) RenderOne(descriptor *model.Descriptor, populated bool) (string, error) {
	if descriptor.Name == s.fail {
		return "", errors.New("cannot render " + descriptor.Name)
	}
	return "[" + descriptor.Name + "]", nil
}

func TestRenderer_Layout(t *testing.T) {
	form := testsupport.BuildForm(t, []model.ColumnMetadata{
		{Name: "id", DeclaredType: "int(11)", Extra: "auto_increment"},
		{Name: "user_name", DeclaredType: "varchar(32)", Comment: "Public <b>name</b>"},
		{Name: "bio", DeclaredType: "text", Error: "required"},
	}, nil)

	renderer, err := New(WithFragmenter(stubFragmenter{}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	out, err := renderer.Render(testsupport.Context(), form)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := "[id]<table class='formTable'>\n" +
		"<tr><td>User Name</td><td>[user_name]</td><td>Public name</td></tr>\n" +
		"<tr><td>Bio</td><td>[bio]</td><td><span class='formError'>required</span></td></tr>\n" +
		"</table>\n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s", diff)
	}

	bio, _ := form.Descriptor("bio")
	if bio.Markup != "[bio]" {
		t.Fatalf("expected cached fragment, got %q", bio.Markup)
	}
}

func TestRenderer_DefaultFragmenter(t *testing.T) {
	form := testsupport.BuildForm(t, []model.ColumnMetadata{
		{Name: "status", DeclaredType: "enum('active','inactive')", Default: model.StringPtr("inactive")},
	}, nil)

	renderer, err := New(WithClass(""))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	out, err := renderer.Render(testsupport.Context(), form)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)
	if !strings.HasPrefix(got, "<table>\n<tr><td>Status</td><td><select name='status'>") {
		t.Fatalf("unexpected layout:\n%s", got)
	}
	if !strings.Contains(got, "<option value='inactive' selected='selected'>inactive</option>") {
		t.Fatalf("default not selected:\n%s", got)
	}
}

func TestRenderer_FailureIsAtomic(t *testing.T) {
	form := testsupport.BuildForm(t, testsupport.UsersColumns(), nil)

	renderer, err := New(WithFragmenter(stubFragmenter{fail: "tags"}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := renderer.Render(testsupport.Context(), form); err == nil {
		t.Fatalf("expected error")
	}
	for _, d := range form.Descriptors() {
		if d.Markup != "" {
			t.Fatalf("descriptor %q kept markup %q", d.Name, d.Markup)
		}
	}
}
