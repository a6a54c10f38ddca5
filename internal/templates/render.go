package templates

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

// renderer parses and executes templates with caching. Safe for concurrent
// use.
type renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex
}

func newRenderer() *renderer {
	return &renderer{
		funcMap: template.FuncMap{
			"upper": strings.ToUpper,
			"lower": strings.ToLower,
			"quote": func(s string) string { return fmt.Sprintf("%q", s) },
		},
		cache: make(map[string]*template.Template),
	}
}

// renderFS renders a template from the embedded filesystem.
func (r *renderer) renderFS(fsys embed.FS, path string, data any) ([]byte, error) {
	r.mu.RLock()
	tmpl, ok := r.cache[path]
	r.mu.RUnlock()

	if !ok {
		raw, err := fsys.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", path, err)
		}

		tmpl, err = template.New(path).Funcs(r.funcMap).Parse(string(raw))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", path, err)
		}

		r.mu.Lock()
		r.cache[path] = tmpl
		r.mu.Unlock()
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering template %s: %w", path, err)
	}
	return buf.Bytes(), nil
}
