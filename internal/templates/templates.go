// Package templates embeds the text templates rendered by stackarch.
package templates

import (
	"embed"
	"strings"
	"text/template"
)

//go:embed report/*.tmpl
var reportTemplates embed.FS

// GetReportTemplate returns the content of a report template.
func GetReportTemplate(name string) (string, error) {
	content, err := reportTemplates.ReadFile("report/" + name + ".tmpl")
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// TemplateFuncs returns the function map for report templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"toUpper":   strings.ToUpper,
		"join":      strings.Join,
		"cell":      escapeCell,
		"code":      inlineCode,
		"orDefault": orDefault,
		"add":       func(a, b int) int { return a + b },
	}
}

// escapeCell makes a value safe inside a Markdown table cell.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

// inlineCode wraps s in a code span long enough to hold any backticks in s.
func inlineCode(s string) string {
	fence := "`"
	for strings.Contains(s, fence) {
		fence += "`"
	}
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		return fence + " " + s + " " + fence
	}
	return fence + s + fence
}

func orDefault(def, s string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
