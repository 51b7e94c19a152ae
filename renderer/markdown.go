package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templateFS embed.FS

var templates, _ = fs.Sub(templateFS, "templates")

// Markdown renders the document as a Markdown report with a GFM table.
func Markdown(doc *Document) string {
	partials := map[string]string{
		"report_title":   "report_title.md",
		"report_table":   "report_table.md",
		"report_summary": "report_summary.md",
	}
	return renderTemplate("report", "report.md", partials, doc)
}

// Rule returns the table delimiter cell of the column.
func (c Column) Rule() string {
	if c.Right {
		return "---:"
	}
	return ":---"
}

var funcs = template.FuncMap{
	"cell": markdownCell,
}

// markdownEscaper escapes the characters that holding names may contain and that markdown
// would read as inline markup or as a table column separator.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"~", `\~`,
	"|", `\|`,
)

// markdownCell escapes the cell text for a table and makes it bold when asked.
func markdownCell(c Cell, bold bool) string {
	text := markdownEscaper.Replace(c.Text)
	if bold && text != "" {
		return "**" + text + "**"
	}
	return text
}

// renderTemplate renders a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
