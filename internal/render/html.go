package render

import (
	"html/template"
	"io"
)

var pageTmpl = template.Must(template.New("page").Parse(`<div id="moviesList">
{{- range .Cards}}
<div class="movie-card {{.Status}}" data-id="{{.ID}}"{{if .Hidden}} style="display: none"{{end}}>
  <div class="movie-header">
    <div>
      <div class="movie-title">{{.Title}}</div>
      <div class="movie-id">{{.ID}}</div>
    </div>
    <span class="movie-status status-{{.Status}}">{{.Badge}}</span>
  </div>
  <div class="movie-details">
    <div class="movie-info">
      {{- range .Info}}
      <span class="info-item"><strong>{{.Label}}:</strong> {{.Value}}</span>
      {{- end}}
    </div>
    {{- if .Notes}}
    <div class="movie-notes">"{{.Notes}}"</div>
    {{- end}}
  </div>
  <div class="movie-actions">
    <button class="btn-edit" data-id="{{.ID}}">Edit</button>
    <button class="btn-delete" data-id="{{.ID}}">Delete</button>
  </div>
</div>
{{- end}}
</div>
<div class="empty-state{{if .Empty}} show{{end}}">No movies in your watchlist yet.</div>
`))

var documentTmpl = template.Must(template.Must(pageTmpl.Clone()).New("document").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<nav class="filter-bar">
{{- range .Filters}}
  <a class="filter-btn{{if .Active}} active{{end}}" data-filter="{{.Name}}" href="?filter={{.Name}}">{{.Label}}</a>
{{- end}}
</nav>
{{template "page" .Page}}
</body>
</html>
`))

type filterLink struct {
	Name   string
	Label  string
	Active bool
}

// WriteHTML writes the page as card markup. All record text is escaped.
func WriteHTML(w io.Writer, p Page) error {
	return pageTmpl.Execute(w, p)
}

// WriteDocument writes a standalone page: a title, a filter bar with active marked, and the card markup.
func WriteDocument(w io.Writer, title string, p Page, active Filter) error {
	links := make([]filterLink, 0, len(Filters))
	for _, f := range Filters {
		links = append(links, filterLink{Name: f.String(), Label: f.Label(), Active: f == active})
	}

	return documentTmpl.Execute(w, struct {
		Title   string
		Filters []filterLink
		Page    Page
	}{title, links, p})
}
