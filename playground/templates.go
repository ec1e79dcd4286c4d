package playground

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/andreyvit/minicomponents"
)

type templKind int

const (
	pageTempl = templKind(iota)
	componentTempl
	layoutTempl
)

type templDef struct {
	name string
	path string
	code string
	kind templKind
	tmpl *template.Template
}

type templateSet struct {
	root *template.Template
}

type RenderData struct {
	Data    any
	Title   string
	Content template.HTML
}

func loadTemplates() (*templateSet, error) {
	const templateSuffix = ".html"

	viewsFS := must(fs.Sub(embeddedViewsFS, "views"))

	root := template.New("")

	var templs []*templDef
	err := fs.WalkDir(viewsFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if !strings.HasSuffix(path, templateSuffix) {
			return nil
		}
		name := strings.TrimSuffix(path, templateSuffix)
		baseName := strings.TrimSuffix(d.Name(), templateSuffix)
		code := string(must(fs.ReadFile(viewsFS, path)))

		var kind templKind
		if strings.HasPrefix(path, "layouts/") {
			kind = layoutTempl
		} else if strings.HasPrefix(baseName, "c-") {
			kind = componentTempl
			name = baseName
		} else {
			kind = pageTempl
		}

		templs = append(templs, &templDef{
			name: name,
			path: path,
			code: code,
			kind: kind,
			tmpl: root.New(name),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	comps := make(map[string]*minicomponents.ComponentDef)
	for _, tmpl := range templs {
		if tmpl.kind == componentTempl {
			comps[tmpl.name] = minicomponents.ScanTemplate(tmpl.code)
		}
	}

	for _, tmpl := range templs {
		code := tmpl.code
		code, _ = minicomponents.Rewrite(code, tmpl.name, comps)

		if tmpl.kind == componentTempl {
			code = "{{with .Args}}" + code + "{{end}}"
		} else if tmpl.kind == pageTempl {
			code = "{{with .Data}}" + code + "{{end}}"
		}

		_, err = tmpl.tmpl.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("error parsing %v: %w", tmpl.path, err)
		}
	}

	return &templateSet{root: root}, nil
}

func (ts *templateSet) render(w io.Writer, view, title string, data any) error {
	rd := &RenderData{Data: data, Title: title}

	var buf strings.Builder
	if err := ts.root.ExecuteTemplate(&buf, view, rd); err != nil {
		return err
	}
	rd.Content = template.HTML(buf.String())

	return ts.root.ExecuteTemplate(w, "layouts/default", rd)
}
