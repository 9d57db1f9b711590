// Package views holds the HTML pages, embedded in the binary.
package views

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"resultLabel": func(result int) string {
		if result == 1 {
			return "Diabétique"
		}
		return "Non diabétique"
	},
	"date": func(t interface{ Format(string) string }) string {
		return t.Format("02/01/2006 15:04")
	},
}

// Templates parses every page. Each page is looked up by its file name,
// e.g. "login.html".
func Templates() (*template.Template, error) {
	t, err := template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}
