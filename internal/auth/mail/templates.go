package mail

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type codeData struct {
	Code          string
	ExpiryMinutes int
}

func renderCode(name, code string, expiryMinutes int) (string, error) {
	var b strings.Builder
	err := templates.ExecuteTemplate(&b, name, codeData{
		Code:          code,
		ExpiryMinutes: expiryMinutes,
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
