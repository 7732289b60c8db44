package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
)

// Page names
const (
	PageHome   = "home"
	PageExport = "export"
	PageError  = "error"
)

const layout = `{{define "layout"}}<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>{{template "title" .}}</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 1000px; margin: 50px auto; padding: 20px; }
        h1 { color: #4285F4; }
        .button { background: #4285F4; color: white; padding: 12px 24px; text-decoration: none;
                  border-radius: 5px; display: inline-block; margin: 10px 5px 10px 0; }
        .button:hover { background: #357ae8; }
        .info { background: #e8f0fe; padding: 15px; border-radius: 5px; margin: 20px 0; }
        .success { background: #d4edda; padding: 20px; border-radius: 5px; border-left: 5px solid #28a745; }
        .failure { background: #f8d7da; padding: 20px; border-radius: 5px; border-left: 5px solid #dc3545; }
        table { width: 100%; border-collapse: collapse; margin: 20px 0; }
        th, td { padding: 10px; text-align: left; border-bottom: 1px solid #ddd; }
        th { background: #4285F4; color: white; }
        td.mono, pre { font-family: monospace; font-size: 0.85em; }
        pre { background: #f4f4f4; padding: 15px; overflow-x: auto; }
    </style>
</head>
<body>
{{template "body" .}}
</body>
</html>{{end}}`

const homePage = `{{define "title"}}Google Chat Space Exporter{{end}}
{{define "body"}}
    <h1>Google Chat Space Exporter</h1>
    <div class="info">
        <p><strong>This tool will:</strong></p>
        <ol>
            <li>Authenticate you with Google</li>
            <li>List all of your Google Chat spaces</li>
            <li>Export them to the "{{.Worksheet}}" worksheet of the spreadsheet</li>
        </ol>
    </div>
    {{if .Email}}
    <p>Signed in as <strong>{{.Email}}</strong>.</p>
    <a href="/export" class="button">Run export</a>
    <a href="/api/auth/logout" class="button">Sign out</a>
    {{else}}
    <a href="/api/auth/login" class="button">Sign in with Google</a>
    {{end}}
{{end}}`

const exportPage = `{{define "title"}}Export completed{{end}}
{{define "body"}}
    <div class="success">
        <h1>Export completed</h1>
        <p><strong>{{.Count}} spaces</strong> exported to the "{{.Worksheet}}" worksheet{{if .SheetCreated}} (worksheet created){{end}}.</p>
        {{if .Legacy}}<p>The worksheet uses the legacy layout; the webhook column was left empty.</p>{{end}}
    </div>
    {{if .Rows}}
    <h2>Exported spaces{{if .Truncated}} (first {{len .Rows}}){{end}}</h2>
    <table>
        <tr>
            <th>Space Name</th>
            <th>Space ID</th>
            <th>Members</th>
        </tr>
        {{range .Rows}}
        <tr><td>{{.DisplayName}}</td><td class="mono">{{.SpaceID}}</td><td>{{.MemberCount}}</td></tr>
        {{end}}
    </table>
    {{else}}
    <p>No spaces were found to export.</p>
    {{end}}
    <a href="{{.SpreadsheetURL}}" class="button" target="_blank">Open spreadsheet</a>
    <a href="/" class="button">Back</a>
{{end}}`

const errorPage = `{{define "title"}}Error{{end}}
{{define "body"}}
    <div class="failure">
        <h1>{{.Title}}</h1>
        <p>{{.Message}}</p>
    </div>
    {{if .Trace}}<pre>{{range .Trace}}{{.}}
{{end}}</pre>{{end}}
    <a href="/" class="button">Back</a>
{{end}}`

// HomeData feeds the landing page
type HomeData struct {
	Email     string
	Worksheet string
}

// ExportRow is one row of the export summary table
type ExportRow struct {
	DisplayName string
	SpaceID     string
	MemberCount int64
}

// ExportData feeds the export summary page
type ExportData struct {
	Count          int
	Worksheet      string
	SheetCreated   bool
	Legacy         bool
	Rows           []ExportRow
	Truncated      bool
	SpreadsheetURL string
}

// ErrorData feeds the error page
type ErrorData struct {
	Title   string
	Message string
	Trace   []string
}

// Pages holds the parsed HTML pages
type Pages struct {
	pages map[string]*template.Template
}

// NewPages parses every page
func NewPages() (*Pages, error) {
	sources := map[string]string{
		PageHome:   homePage,
		PageExport: exportPage,
		PageError:  errorPage,
	}

	pages := make(map[string]*template.Template, len(sources))
	for name, src := range sources {
		tmpl, err := template.New(name).Parse(layout)
		if err != nil {
			return nil, fmt.Errorf("failed to parse layout: %w", err)
		}
		if _, err := tmpl.Parse(src); err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Pages{pages: pages}, nil
}

// MustNewPages is NewPages for package initialisation
func MustNewPages() *Pages {
	p, err := NewPages()
	if err != nil {
		panic(err)
	}
	return p
}

// Render executes page into w. The page is rendered to a buffer first so a failed
// render never leaves a half-written response.
func (p *Pages) Render(w io.Writer, page string, data interface{}) error {
	tmpl, ok := p.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render page %s: %w", page, err)
	}

	_, err := buf.WriteTo(w)
	return err
}
