package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"

	"imglink/config"
	"imglink/docx"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context string
	// Folder is base name of the image folder
	Folder string
	// Count is number of images put into document
	Count int
	Width string
	Date  string
}

func newValues(name config.TemplateFieldName, folder string, count int, width float64, now time.Time) Values {
	return Values{
		Context: string(name),
		Folder:  filepath.Base(folder),
		Count:   count,
		Width:   docx.FormatWidth(width),
		Date:    now.Format("2006-01-02"),
	}
}

func expandTemplate(name config.TemplateFieldName, field string, values Values) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
