package httpx

import (
	"embed"
	"html/template"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	StoreName  string
	ThemeColor string
	ScriptURL  string
	Products   []ProductResponse
}
