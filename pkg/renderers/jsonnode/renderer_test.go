package jsonnode_test

import (
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-domtemplate/pkg/render"
	"github.com/goliatone/go-domtemplate/pkg/renderers/jsonnode"
	"github.com/goliatone/go-domtemplate/pkg/shorthand"
	"github.com/goliatone/go-domtemplate/pkg/testsupport"
)

func sample() shorthand.Node {
	return shorthand.Element{
		Tag:        "p",
		Attributes: map[string]string{"class": "note"},
		Content:    []shorthand.Node{shorthand.Text("hi")},
	}
}

func TestRenderCompact(t *testing.T) {
	out, err := jsonnode.New(jsonnode.WithIndent(0)).Render(testsupport.Context(), sample(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `{"tag":"p","attributes":{"class":"note"},"content":["hi"]}`
	if got := string(out); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestRenderIndentedGolden(t *testing.T) {
	out, err := jsonnode.New().Render(testsupport.Context(), sample(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertGolden(t, "testdata/paragraph.golden.json", out)
}

func TestRenderWithTheme(t *testing.T) {
	cfg := &theme.RendererConfig{Theme: "acme", Variant: "dark", Tokens: map[string]string{"brand": "#000"}}
	out, err := jsonnode.New(jsonnode.WithIndent(0)).Render(testsupport.Context(), shorthand.Text("x"), render.RenderOptions{Theme: cfg})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `{"node":"x","theme":{"name":"acme","variant":"dark","tokens":{"brand":"#000"}}}`
	if got := string(out); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
