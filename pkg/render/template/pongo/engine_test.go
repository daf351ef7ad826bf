package pongo_test

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/render/template/pongo"
)

func newEngine(t *testing.T, opts ...pongo.Option) *pongo.Engine {
	t.Helper()
	files := fstest.MapFS{
		"hello.tmpl":  {Data: []byte(`Hello {{ name }}{% if site %} from {{ site }}{% endif %}`)},
		"list.html":   {Data: []byte(`{{ items|join:"," }}`)},
		"nested.tmpl": {Data: []byte(`{{ field.label }}={{ field.value }}`)},
	}
	e, err := pongo.New(append([]pongo.Option{pongo.WithFS(files)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func TestRenderTemplate_EscapesAndDefaultsExtension(t *testing.T) {
	e := newEngine(t)
	got, err := e.RenderTemplate("hello", map[string]any{"name": `<b>"x"</b>`})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff("Hello &lt;b&gt;&quot;x&quot;&lt;/b&gt;", got); diff != "" {
		t.Fatalf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestRenderTemplate_UsesJSONFieldNames(t *testing.T) {
	type state struct {
		Label string `json:"label"`
		Value string `json:"value"`
	}
	e := newEngine(t)
	got, err := e.RenderTemplate("nested.tmpl", map[string]any{"field": state{Label: "Name", Value: "Ada"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Name=Ada" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRenderTemplate_ExplicitExtensionAndWriters(t *testing.T) {
	e := newEngine(t)
	var a, b bytes.Buffer
	got, err := e.RenderTemplate("list.html", map[string]any{"items": []string{"x", "y"}}, &a, &b)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "x,y" || a.String() != got || b.String() != got {
		t.Fatalf("unexpected output %q %q %q", got, a.String(), b.String())
	}
}

func TestGlobalContext_VisibleToEveryTemplate(t *testing.T) {
	e := newEngine(t, pongo.WithGlobalData(map[string]any{"site": "formkit"}))
	got, err := e.RenderTemplate("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Ada from formkit" {
		t.Fatalf("unexpected output %q", got)
	}

	if err := e.GlobalContext(map[string]any{"site": "docs"}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	got, err = e.RenderTemplate("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Ada from docs" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRenderTemplate_Errors(t *testing.T) {
	e := newEngine(t)
	if _, err := e.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected an error for a missing template")
	}
	if _, err := e.RenderTemplate("hello", []string{"not", "an", "object"}); err == nil {
		t.Fatalf("expected an error for non-object data")
	}
	if err := e.GlobalContext("scalar"); err == nil {
		t.Fatalf("expected an error for scalar globals")
	}
}

func TestNew_RequiresASource(t *testing.T) {
	if _, err := pongo.New(); err == nil {
		t.Fatalf("expected an error without a base dir or fs")
	}
}
