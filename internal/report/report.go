// Package report renders a configuration as a Markdown or HTML document.
package report

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/example/stackarch/internal/ports/primary"
	"github.com/example/stackarch/internal/templates"
)

// Content types returned by Render.
const (
	ContentTypeMarkdown = "text/markdown"
	ContentTypeHTML     = "text/html"
)

// Data is the template input.
type Data struct {
	View        *primary.ConfigurationView
	Issues      []*primary.FieldView
	GeneratedAt string
}

// Renderer renders configuration reports.
type Renderer struct {
	tmpl     *template.Template
	markdown goldmark.Markdown
	now      func() time.Time
}

// NewRenderer parses the report template.
func NewRenderer() (*Renderer, error) {
	content, err := templates.GetReportTemplate("configuration.md")
	if err != nil {
		return nil, fmt.Errorf("failed to load report template: %w", err)
	}
	tmpl, err := template.New("configuration").Funcs(templates.TemplateFuncs()).Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}
	return &Renderer{
		tmpl: tmpl,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.Table),
			goldmark.WithRendererOptions(html.WithXHTML()),
		),
		now: time.Now,
	}, nil
}

// Markdown renders view as Markdown.
func (r *Renderer) Markdown(view *primary.ConfigurationView) (string, error) {
	data := Data{
		View:        view,
		GeneratedAt: r.now().UTC().Format("2006-01-02 15:04 MST"),
	}
	for _, f := range view.Fields {
		if f.HasIssue {
			data.Issues = append(data.Issues, f)
		}
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}

// HTML renders view as a standalone HTML document.
func (r *Renderer) HTML(view *primary.ConfigurationView) (string, error) {
	md, err := r.Markdown(view)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := r.markdown.Convert([]byte(md), &body); err != nil {
		return "", fmt.Errorf("failed to convert report to HTML: %w", err)
	}

	title := template.HTMLEscapeString(view.ProjectName)
	var doc bytes.Buffer
	fmt.Fprintf(&doc, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\" />\n<title>%s</title>\n</head>\n<body>\n", title)
	doc.Write(body.Bytes())
	doc.WriteString("</body>\n</html>\n")
	return doc.String(), nil
}

// Render renders view as HTML when asHTML is set, Markdown otherwise, and
// returns the content type alongside.
func (r *Renderer) Render(view *primary.ConfigurationView, asHTML bool) (string, string, error) {
	if asHTML {
		out, err := r.HTML(view)
		return out, ContentTypeHTML, err
	}
	out, err := r.Markdown(view)
	return out, ContentTypeMarkdown, err
}
