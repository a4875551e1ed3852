// Package web holds the HTML views for the browser front end.
package web

import (
	"embed"
	"html/template"
	"strings"

	"nlsqlchat/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"cell": models.FormatValue,
	"join": strings.Join,
	"add":  func(a, b int) int { return a + b },
	"sub":  func(a, b int) int { return a - b },
}

// Templates parses the embedded page templates. It panics on a malformed template.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}
