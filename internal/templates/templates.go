// Package templates provides starter package documents.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"sort"
	"text/template"
	"time"
)

//go:embed xml/*.xml
var templateFS embed.FS

// DateLayout is the date format written into generated packages
const DateLayout = "02/01/2006"

// Kind names a built-in template
type Kind string

const (
	PortableApp Kind = "app_portable"
	Installable Kind = "installable"
	Custom      Kind = "custom"
)

var files = map[Kind]string{
	PortableApp: "xml/app_portable.xml",
	Installable: "xml/installable.xml",
	Custom:      "xml/custom.xml",
}

// Kinds returns the available template names, sorted
func Kinds() []string {
	kinds := make([]string, 0, len(files))
	for k := range files {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	return kinds
}

// Render returns the document text of a template dated now
func Render(kind Kind, now time.Time) (string, error) {
	name, ok := files[kind]
	if !ok {
		return "", fmt.Errorf("unknown template %q (available: %v)", kind, Kinds())
	}

	data, err := templateFS.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", name, err)
	}

	tmpl, err := template.New(string(kind)).Parse(string(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Date string }{now.Format(DateLayout)}); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}
