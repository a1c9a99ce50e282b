package gen

import (
	"embed"
	"strconv"
	"text/template"
)

//go:embed _templates/*.go.tmpl
var embeddedTemplatesFS embed.FS

var unionTemplate = template.Must(
	template.New("union.go.tmpl").
		Option("missingkey=error").
		Funcs(template.FuncMap{"quote": strconv.Quote}).
		ParseFS(embeddedTemplatesFS, "_templates/*.go.tmpl"),
)
