package web

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/store"
)

var pageTmpl = template.Must(template.New("lists").Funcs(template.FuncMap{
	"stats": func(l model.List) [2]int {
		d, p := l.Stats()
		return [2]int{d, d + p}
	},
}).Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Shopping lists</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 40rem; margin: 2rem auto; padding: 0 1rem; }
section { border: 1px solid #ccc; border-radius: .5rem; padding: .5rem 1rem; margin-bottom: 1rem; }
h2 small { font-weight: normal; color: #777; }
ul { list-style: none; padding: 0; }
li.done span { text-decoration: line-through; color: #888; }
</style>
</head>
<body>
<h1>Shopping lists</h1>
{{- range . }}
<section id="list-{{ .ID }}">
<h2>{{ .Name }} {{ with stats . }}<small>{{ index . 0 }}/{{ index . 1 }}</small>{{ end }}</h2>
{{- if .Items }}
<ul>
{{- range .Items }}
<li id="item-{{ .ID }}"{{ if .Done }} class="done"{{ end }}>{{ if .Done }}&#9745;{{ else }}&#9744;{{ end }} <span>{{ .Text }}</span></li>
{{- end }}
</ul>
{{- else }}
<p>No items yet.</p>
{{- end }}
</section>
{{- else }}
<p>No lists yet.</p>
{{- end }}
</body>
</html>
`))

// ListPage renders every list with its items.
type ListPage struct {
	Store store.Store
}

func (p *ListPage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	lists := store.LoadOrEmpty(p.Store)

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, lists); err != nil {
		slog.Error("web: render list page", "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(buf.Bytes())
	}
}
