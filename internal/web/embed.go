// Package web holds the server-rendered page templates.
package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates. Each page is addressed by its
// file name, e.g. "users_index.html".
func Templates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.UTC().Format("2006-01-02 15:04:05 UTC")
		},
	}
	return template.New("root").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
}
