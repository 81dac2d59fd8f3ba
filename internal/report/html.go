package report

import (
	"html/template"
	"io"
)

// WriteHTML writes a self-contained styled report document. The severity
// colors come from the model rendering table.
func (r Report) WriteHTML(w io.Writer) error {
	type row struct {
		Severity   string
		Color      string
		Icon       string
		Message    string
		Snippet    string
		Suggestion string
	}
	data := struct {
		Report
		Rows  []row
		Total int
	}{
		Report: r,
		Rows:   make([]row, len(r.Findings)),
		Total:  len(r.Findings),
	}
	for i, f := range r.Findings {
		rendering := f.Severity.Rendering()
		data.Rows[i] = row{
			Severity:   f.Severity.String(),
			Color:      rendering.HexColor,
			Icon:       rendering.Icon,
			Message:    f.Message,
			Snippet:    f.Snippet,
			Suggestion: r.suggestionText(i),
		}
	}
	return htmlTemplate.Execute(w, data)
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>kubevet report — {{.Path}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem auto; max-width: 64rem; color: #1f2937; }
h1 { font-size: 1.4rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #e5e7eb; padding: .5rem .75rem; text-align: left; vertical-align: top; }
th { background: #f9fafb; }
pre { margin: 0; white-space: pre-wrap; font-size: .8rem; }
.meta { color: #6b7280; font-size: .85rem; }
.sev { font-weight: 600; white-space: nowrap; }
.clean { color: #059669; font-weight: 600; }
</style>
</head>
<body>
<h1>kubevet report</h1>
<p class="meta">{{.Path}} &middot; {{.GeneratedAt.Format "2006-01-02 15:04:05 UTC"}} &middot; {{.SerialNumber}}</p>
{{if .Rows}}
<table>
<tr><th>Severity</th><th>Message</th><th>Evidence</th>{{if .HasSuggestions}}<th>Suggestion</th>{{end}}</tr>
{{range .Rows}}
<tr>
<td class="sev" style="color: {{.Color}}">{{.Icon}} {{.Severity}}</td>
<td>{{.Message}}</td>
<td><pre>{{.Snippet}}</pre></td>
{{if $.HasSuggestions}}<td>{{.Suggestion}}</td>{{end}}
</tr>
{{end}}
</table>
<p class="meta">{{.Total}} finding(s)</p>
{{else}}
<p class="clean">No issues found.</p>
{{end}}
</body>
</html>
`))
