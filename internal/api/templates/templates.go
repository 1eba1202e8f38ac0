// Package templates holds the embedded page templates. Presentation is
// intentionally minimal; the pages exist to carry the login, blog and
// comment forms.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.tmpl
var files embed.FS

func Load() (*template.Template, error) {
	return template.ParseFS(files, "*.tmpl")
}
