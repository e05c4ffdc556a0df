// Package pongo resolves templates whose string leaves carry pongo2 markup.
package pongo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-domtemplate/pkg/resolve"
	"github.com/goliatone/go-domtemplate/pkg/value"
)

// MaxDepth bounds how deep a template tree may nest before resolution fails.
const MaxDepth = 128

// ErrTooDeep reports a template nested beyond MaxDepth, usually a cycle.
var ErrTooDeep = errors.New("pongo: template nesting too deep")

// Option configures the resolver before construction.
type Option func(*config)

type config struct {
	baseDir    string
	templates  fs.FS
	templateFn map[string]any
	globalData map[string]any
	rawLookup  bool
}

// WithBaseDir lets templates include partials from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS lets templates include partials from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithTemplateFunc registers filters (pongo2.FilterFunction values) or
// callable globals.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(cfg *config) {
		if len(funcs) == 0 {
			return
		}
		if cfg.templateFn == nil {
			cfg.templateFn = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			cfg.templateFn[strings.TrimSpace(name)] = fn
		}
	}
}

// WithGlobalData seeds values visible to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, item := range data {
			cfg.globalData[strings.TrimSpace(key)] = item
		}
	}
}

// WithRawLookup toggles returning the looked-up value itself, rather than its
// text, when a leaf is exactly one `{{ path }}` expression. Enabled by default.
func WithRawLookup(enabled bool) Option {
	return func(cfg *config) {
		cfg.rawLookup = enabled
	}
}

// Resolver walks a template and renders every string leaf containing pongo2
// markup against the scope. Objects and arrays are copied, never mutated.
type Resolver struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	compiled    map[string]*pongo2.Template
	rawLookup   bool
}

var _ resolve.Resolver = (*Resolver)(nil)

// New constructs a Resolver.
func New(options ...Option) (*Resolver, error) {
	cfg := &config{rawLookup: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("pongo: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}
	if len(loaders) == 0 {
		loaders = append(loaders, pongo2.NewFSLoader(emptyFS{}))
	}

	r := &Resolver{
		templateSet: pongo2.NewSet("domtemplate", loaders...),
		compiled:    make(map[string]*pongo2.Template),
		rawLookup:   cfg.rawLookup,
	}
	registerDefaultFilters()

	if err := r.GlobalContext(cfg.globalData); err != nil {
		return nil, fmt.Errorf("pongo: apply global data: %w", err)
	}
	for name, fn := range cfg.templateFn {
		if err := r.registerTemplateFunc(name, fn); err != nil {
			return nil, fmt.Errorf("pongo: register template func %q: %w", name, err)
		}
	}
	return r, nil
}

// ResolveValue resolves template against scope.
func (r *Resolver) ResolveValue(ctx context.Context, template any, scope resolve.Context) (any, error) {
	if r == nil || r.templateSet == nil {
		return nil, errors.New("pongo: resolver is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	conv := newConverter()
	defer conv.release()
	return r.resolve(ctx, template, conv.context(scope), 0)
}

// LocalScope returns a shallow copy of parent.
func (r *Resolver) LocalScope(parent resolve.Context) resolve.Context {
	return resolve.Clone(parent)
}

// RenderString renders a single pongo2 template string against scope.
func (r *Resolver) RenderString(source string, scope resolve.Context) (string, error) {
	conv := newConverter()
	defer conv.release()
	return r.render(source, conv.context(scope))
}

// GlobalContext merges data into the globals visible to every template.
func (r *Resolver) GlobalContext(data map[string]any) error {
	if r == nil || r.templateSet == nil {
		return errors.New("pongo: resolver is nil")
	}
	if len(data) == 0 {
		return nil
	}
	// Globals stay registered for the resolver's lifetime.
	globals := newConverter().context(data)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.templateSet.Globals == nil {
		r.templateSet.Globals = make(pongo2.Context)
	}
	r.templateSet.Globals.Update(globals)
	return nil
}

func (r *Resolver) resolve(ctx context.Context, template any, view pongo2.Context, depth int) (any, error) {
	if depth > MaxDepth {
		return nil, ErrTooDeep
	}
	switch typed := template.(type) {
	case string:
		return r.resolveString(typed, view)
	case *value.Object:
		if typed == nil {
			return typed, nil
		}
		out := value.NewObject()
		for _, entry := range typed.Entries() {
			resolved, err := r.resolve(ctx, entry.Value, view, depth+1)
			if err != nil {
				return nil, err
			}
			out.Set(entry.Key, resolved)
		}
		return out, nil
	case map[string]any:
		if typed == nil {
			return typed, nil
		}
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			resolved, err := r.resolve(ctx, item, view, depth+1)
			if err != nil {
				return nil, err
			}
			out[key] = resolved
		}
		return out, nil
	case []any:
		if typed == nil {
			return typed, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out := make([]any, len(typed))
		for i, item := range typed {
			resolved, err := r.resolve(ctx, item, view, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return template, nil
	}
}

var rawExpression = regexp.MustCompile(`^\{\{\s*([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z0-9_]+)*)\s*\}\}$`)

func (r *Resolver) resolveString(source string, view pongo2.Context) (any, error) {
	if !isTemplateContent(source) {
		return source, nil
	}
	if r.rawLookup {
		if match := rawExpression.FindStringSubmatch(strings.TrimSpace(source)); match != nil {
			if found, ok := lookupPath(view, match[1]); ok && !isScalar(found) {
				return originalOf(found), nil
			}
		}
	}
	return r.render(source, view)
}

func (r *Resolver) render(source string, view pongo2.Context) (string, error) {
	tmpl, err := r.getTemplate(source)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer

	r.mu.RLock()
	err = tmpl.ExecuteWriter(view, &buf)
	r.mu.RUnlock()

	if err != nil {
		return "", fmt.Errorf("pongo: execute template string: %w", err)
	}
	return buf.String(), nil
}

func (r *Resolver) getTemplate(source string) (*pongo2.Template, error) {
	r.mu.RLock()
	if tmpl, ok := r.compiled[source]; ok {
		r.mu.RUnlock()
		return tmpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.compiled[source]; ok {
		return tmpl, nil
	}

	// Output feeds a DOM builder that escapes on serialization.
	tmpl, err := r.templateSet.FromString("{% autoescape off %}" + source + "{% endautoescape %}")
	if err != nil {
		return nil, fmt.Errorf("pongo: parse template string: %w", err)
	}
	r.compiled[source] = tmpl
	return tmpl, nil
}

func (r *Resolver) registerTemplateFunc(name string, fn any) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || fn == nil {
		return nil
	}

	if filter, ok := fn.(pongo2.FilterFunction); ok {
		if pongo2.FilterExists(trimmed) {
			return nil
		}
		return pongo2.RegisterFilter(trimmed, filter)
	}

	if !isCallable(fn) {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.templateSet.Globals == nil {
		r.templateSet.Globals = make(pongo2.Context)
	}
	r.templateSet.Globals[trimmed] = fn
	return nil
}

func isTemplateContent(s string) bool {
	return strings.Contains(s, "{{") || strings.Contains(s, "{%")
}

func isCallable(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.IsValid() && rv.Kind() == reflect.Func
}

func isScalar(v any) bool {
	switch value.KindOf(v) {
	case value.KindArray, value.KindObject:
		return false
	default:
		return true
	}
}

func lookupPath(view pongo2.Context, path string) (any, bool) {
	segments := strings.Split(path, ".")
	current, ok := view[segments[0]]
	if !ok {
		return nil, false
	}
	for _, segment := range segments[1:] {
		if items, isArray := value.AsArray(current); isArray {
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(items) {
				return nil, false
			}
			current = items[index]
			continue
		}
		current, ok = value.Lookup(current, segment)
		if !ok {
			return nil, false
		}
	}
	return current, true
}

type emptyFS struct{}

func (emptyFS) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
