// Package ui serves the embedded dashboard page. The page is a single
// static document; its data table and stat cards are patched in place by
// the datastar SSE endpoints.
package ui

import (
	_ "embed"
	"html/template"
	"io"
)

//go:embed dashboard.html
var dashboardHTML string

var page = template.Must(template.New("dashboard").Parse(dashboardHTML))

type PageData struct {
	Title string
}

func RenderDashboard(w io.Writer) error {
	return page.Execute(w, PageData{Title: "Material In Transit Dashboard"})
}
