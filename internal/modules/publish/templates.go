package publish

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"text/template"
)

//go:embed templates/*.json.tmpl
var templateFS embed.FS

var itemTemplates = template.Must(template.New("perseus").Funcs(template.FuncMap{
	"json": func(v interface{}) (string, error) {
		out, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(out), nil
	},
}).ParseFS(templateFS, "templates/*.json.tmpl"))

func renderTemplate(name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := itemTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("could not render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
