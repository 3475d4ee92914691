// Package templates renders the fixed markdown document skeletons.
//
// Templates are embedded in the binary and interpolate preformatted
// section strings — the generators compose the repeating parts, the
// templates own the document structure. Optional sections are omitted
// entirely when their data is empty.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Template names, used as Render keys.
const (
	Requirements = "requirements.md.tmpl"
	Design       = "design.md.tmpl"
	Tasks        = "tasks.md.tmpl"
	Guide        = "guide.md.tmpl"
)

// RequirementsData feeds the requirements document template.
type RequirementsData struct {
	ProjectName  string
	Introduction string
	// Requirements holds the preformatted "### Requirement N" blocks.
	Requirements string
}

// DesignData feeds the design document template. Empty optional fields
// drop their sections from the output.
type DesignData struct {
	ProjectName string
	Overview    string
	TechStack   string
	Components  string
	DataModels  string
}

// TasksData feeds the tasks document template.
type TasksData struct {
	ProjectName       string
	EstimatedDuration string
	KeyDeliverables   string
	Tasks             string
}

// GuideData feeds the guidance template. Every guidance section renders
// verbatim; only the query is interpolated.
type GuideData struct {
	Query string
}

// Renderer turns a named template plus data into a markdown document.
type Renderer interface {
	Render(name string, data any) (string, error)
}

// EmbedRenderer is the embedded-FS implementation of Renderer.
type EmbedRenderer struct {
	tmpl *template.Template
}

// NewRenderer parses all embedded templates.
func NewRenderer() (*EmbedRenderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing embedded templates: %w", err)
	}
	return &EmbedRenderer{tmpl: tmpl}, nil
}

// Render executes the named template with data.
func (r *EmbedRenderer) Render(name string, data any) (string, error) {
	t := r.tmpl.Lookup(name)
	if t == nil {
		return "", fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}

// Skeleton returns the raw text of a named template, used by the MCP
// resource handlers to expose the document formats read-only.
func Skeleton(name string) (string, error) {
	data, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", name, err)
	}
	return string(data), nil
}
