// Package views holds the server-rendered pages. Templates are embedded in
// the binary and handed to gin with SetHTMLTemplate.
package views

import (
	"embed"
	"html/template"
	"time"

	"github.com/consultoria/portal/internal/models"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"year": func() int { return time.Now().Year() },
	"statusClass": func(status string) string {
		switch status {
		case models.StatusCompleted:
			return "status-completed"
		case models.StatusInProgress:
			return "status-progress"
		default:
			return "status-pending"
		}
	},
}

// Templates parses every page. Each page is named after its file, e.g. "login.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
}
