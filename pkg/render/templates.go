package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
)

// LayoutFile is parsed ahead of every page. It must define "layout", which
// the page completes by defining "content".
const LayoutFile = "layout.html"

//go:embed templates/*.html
var embedded embed.FS

// DefaultFS returns the templates compiled into the binary.
func DefaultFS() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err) // the directory is embedded above
	}
	return sub
}

// Templates loads page templates from a filesystem on every call, so edits
// on disk show up without a restart.
type Templates struct {
	fsys  fs.FS
	funcs template.FuncMap
}

// NewTemplates returns templates read from fsys. funcs are available to
// every page.
func NewTemplates(fsys fs.FS, funcs template.FuncMap) *Templates {
	return &Templates{fsys: fsys, funcs: funcs}
}

// Execute renders page name inside the layout. Request-scoped functions in
// extra override the shared ones. Filesystem errors are wrapped, so
// errors.Is works with fs.ErrPermission and fs.ErrNotExist.
func (t *Templates) Execute(w io.Writer, name string, data any, extra template.FuncMap) error {
	tmpl := template.New("page").Funcs(t.funcs).Funcs(extra)

	for _, file := range []string{LayoutFile, name} {
		b, err := fs.ReadFile(t.fsys, file)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", file, err)
		}
		if _, err := tmpl.New(file).Parse(string(b)); err != nil {
			return fmt.Errorf("failed to parse template %s: %w", file, err)
		}
	}

	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return nil
}
