package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-domtemplate/internal/prompt"
	"github.com/goliatone/go-domtemplate/pkg/orchestrator"
	"github.com/goliatone/go-domtemplate/pkg/render"
	"github.com/goliatone/go-domtemplate/pkg/renderers/dom"
	"github.com/goliatone/go-domtemplate/pkg/renderers/jsonnode"
	"github.com/goliatone/go-domtemplate/pkg/resolve"
	"github.com/goliatone/go-domtemplate/pkg/resolve/pongo"
	"github.com/goliatone/go-domtemplate/pkg/templates"
	"github.com/goliatone/go-domtemplate/pkg/value"
	"github.com/goliatone/go-domtemplate/pkg/valuetext"
)

type options struct {
	templatesDir string
	template     string
	dataPath     string
	renderer     string
	output       string
	themePath    string
	themeVariant string
	sanitize     bool
	interactive  bool
	text         bool
	viaJSON      bool
	indent       int
}

func main() {
	var opts options
	flag.StringVar(&opts.templatesDir, "templates", "", "directory of JSON/YAML templates (built-in templates if empty)")
	flag.StringVar(&opts.template, "template", "", "template name to render")
	flag.StringVar(&opts.dataPath, "data", "", "JSON or YAML data file, - for stdin")
	flag.StringVar(&opts.renderer, "renderer", "", "renderer to use (html, json)")
	flag.StringVar(&opts.output, "output", "", "output file (stdout if empty)")
	flag.StringVar(&opts.themePath, "theme", "", "theme manifest (YAML or JSON)")
	flag.StringVar(&opts.themeVariant, "theme-variant", "", "theme variant")
	flag.BoolVar(&opts.sanitize, "sanitize", false, "sanitize HTML output")
	flag.BoolVar(&opts.interactive, "interactive", false, "prompt for missing choices")
	flag.BoolVar(&opts.text, "text", false, "print the data as value text instead of rendering")
	flag.BoolVar(&opts.viaJSON, "json", false, "with -text, produce JSON text")
	flag.IntVar(&opts.indent, "indent", 0, "with -text, spaces per nesting level")
	flag.Parse()

	var driver prompt.Driver
	if opts.interactive {
		driver = prompt.NewSurveyDriver()
	}

	out, err := run(context.Background(), opts, driver, os.Stdin)
	if errors.Is(err, prompt.ErrAborted) {
		os.Exit(130)
	}
	if err != nil {
		log.Fatalf("domtemplate: %v", err)
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Output written to %s\n", opts.output)
		return
	}
	fmt.Println(string(out))
}

func run(ctx context.Context, opts options, driver prompt.Driver, stdin io.Reader) ([]byte, error) {
	data, err := loadData(ctx, opts.dataPath, driver, stdin)
	if err != nil {
		return nil, err
	}
	if opts.text {
		textOpts := []valuetext.Option{valuetext.WithSpaces(opts.indent)}
		if opts.indent == 0 {
			textOpts = nil
		}
		if opts.viaJSON {
			textOpts = append(textOpts, valuetext.WithJSON())
		}
		return []byte(valuetext.Serialize(data, textOpts...)), nil
	}

	store, err := loadStore(opts.templatesDir)
	if err != nil {
		return nil, err
	}
	name := opts.template
	if name == "" && driver != nil {
		name, err = prompt.Choose(ctx, driver, "Template", store.Names(), "")
		if err != nil {
			return nil, err
		}
	}
	template, ok := store.Template(name)
	if !ok {
		return nil, fmt.Errorf("template %q not found (available: %s)", name, strings.Join(store.Names(), ", "))
	}

	registry := render.NewRegistry(dom.New(), jsonnode.New())
	rendererName := opts.renderer
	if rendererName == "" && driver != nil {
		rendererName, err = prompt.Choose(ctx, driver, "Renderer", registry.List(), "html")
		if err != nil {
			return nil, err
		}
	}

	resolverOpts := []pongo.Option{}
	if opts.templatesDir != "" {
		resolverOpts = append(resolverOpts, pongo.WithBaseDir(opts.templatesDir))
	}
	resolver, err := pongo.New(resolverOpts...)
	if err != nil {
		return nil, err
	}

	orchOpts := []orchestrator.Option{
		orchestrator.WithResolver(resolver),
		orchestrator.WithRegistry(registry),
		orchestrator.WithSanitize(opts.sanitize),
	}
	if opts.themePath != "" {
		selector, err := loadTheme(opts.themePath, opts.themeVariant)
		if err != nil {
			return nil, err
		}
		orchOpts = append(orchOpts, orchestrator.WithThemeSelector(selector, "", opts.themeVariant))
	}

	renderer := orchestrator.NewDataRenderer(template, resolve.Context{"template": name}, orchestrator.New(orchOpts...))
	renderer.Request.Renderer = rendererName
	out, err := renderer.RenderData(ctx, data)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("template %q resolved to no node", name)
	}
	return out, nil
}

func loadStore(dir string) (*templates.Store, error) {
	var fsys fs.FS = templates.EmbeddedFS()
	if dir != "" {
		fsys = os.DirFS(dir)
	}
	store, err := templates.LoadFS(fsys)
	if err != nil {
		return nil, err
	}
	if store.Empty() {
		return nil, errors.New("no templates found")
	}
	return store, nil
}

func loadData(ctx context.Context, path string, driver prompt.Driver, stdin io.Reader) (any, error) {
	var (
		raw []byte
		err error
	)
	switch {
	case path == "-":
		raw, err = io.ReadAll(stdin)
	case path != "":
		raw, err = os.ReadFile(path)
	case driver != nil:
		var text string
		text, err = driver.TextArea(ctx, prompt.TextAreaConfig{
			Message: "Data (JSON or YAML)",
			Help:    "Leave empty to render without data.",
		})
		raw = []byte(text)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return nil, nil
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return value.DecodeJSON(raw)
	}
	return value.DecodeYAML(raw)
}

func loadTheme(path, variant string) (*render.StaticSelector, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}
	manifest, err := render.ParseManifest(raw)
	if err != nil {
		return nil, err
	}
	return render.NewStaticSelector(manifest.Name, variant, manifest)
}
