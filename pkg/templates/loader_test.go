package templates_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-domtemplate/pkg/templates"
	"github.com/goliatone/go-domtemplate/pkg/value"
)

func loadStore(t *testing.T, dir string) *templates.Store {
	t.Helper()
	store, err := templates.LoadFS(os.DirFS(filepath.Join("testdata", dir)))
	if err != nil {
		t.Fatalf("load templates: %v", err)
	}
	return store
}

func TestLoadFS(t *testing.T) {
	store := loadStore(t, "basic")

	if diff := cmp.Diff([]string{"banner", "card", "list"}, store.Names()); diff != "" {
		t.Fatalf("template names mismatch (-want +got):\n%s", diff)
	}

	card, ok := store.Template("card")
	if !ok {
		t.Fatalf("card template missing")
	}
	obj, ok := card.(*value.Object)
	if !ok {
		t.Fatalf("expected ordered object, got %T", card)
	}
	if diff := cmp.Diff([]string{"tag", "attributes", "content"}, obj.Keys()); diff != "" {
		t.Fatalf("key order not preserved (-want +got):\n%s", diff)
	}

	if source, _ := store.Source("list"); source != "nested/list.json" {
		t.Fatalf("unexpected source for list: %q", source)
	}
	if _, ok := store.Template("missing"); ok {
		t.Fatalf("unexpected template")
	}
}

func TestLoadFSDuplicate(t *testing.T) {
	_, err := templates.LoadFS(os.DirFS(filepath.Join("testdata", "duplicate")))
	if err == nil || !strings.Contains(err.Error(), `duplicate template "card"`) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestLoadFSRejectsInvalidFiles(t *testing.T) {
	cases := map[string]string{
		"empty.yaml": "  \n",
		"list.yaml":  "- a\n- b\n",
		"bad.json":   `{"a": `,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			fsys := fstest.MapFS{name: &fstest.MapFile{Data: []byte(body)}}
			if _, err := templates.LoadFS(fsys); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestLoadFSNil(t *testing.T) {
	store, err := templates.LoadFS(nil)
	if err != nil {
		t.Fatalf("load nil fs: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	store, err := templates.LoadFS(templates.EmbeddedFS())
	if err != nil {
		t.Fatalf("load embedded templates: %v", err)
	}
	for _, name := range []string{"card", "fragment", "json", "value"} {
		if _, ok := store.Template(name); !ok {
			t.Fatalf("embedded template %q missing", name)
		}
	}
}
