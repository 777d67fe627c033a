package handler

import (
	"embed"
	"html/template"
)

//go:embed viewer/index.html
var viewerFS embed.FS

// ViewerTemplate parses the embedded log viewer page.
func ViewerTemplate() *template.Template {
	return template.Must(template.ParseFS(viewerFS, "viewer/"+viewerTemplate))
}
