package main

import (
	"bytes"
	"fmt"
	"html"
	"strings"
)

// Report output formats
const (
	FormatPDF  = "pdf"
	FormatHTML = "html"
)

// RendererFor returns the renderer for a report format name
func RendererFor(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case FormatPDF, "":
		return PDFRenderer{}, nil
	case FormatHTML:
		return HTMLRenderer{}, nil
	}
	return nil, fmt.Errorf("unknown report format %q", format)
}

// HTMLRenderer writes a Report as a standalone HTML page that prints like
// the PDF version.
type HTMLRenderer struct{}

// Extension returns the file extension of rendered documents
func (HTMLRenderer) Extension() string {
	return "html"
}

// Render produces the HTML document for r
func (HTMLRenderer) Render(r Report) ([]byte, error) {
	var f bytes.Buffer
	esc := html.EscapeString

	fmt.Fprintf(&f, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        :root {
            --primary: #0066cc;
            --text: #323232;
            --text-muted: #646464;
            --border: #c8c8c8;
        }
        body { font-family: Helvetica, Arial, sans-serif; color: var(--text); margin: 0; }
        .header { background: var(--primary); color: #fff; padding: 1rem 2rem; }
        .header h1 { margin: 0; font-size: 1.3rem; }
        .header p { margin: 0.3rem 0 0; font-size: 0.9rem; }
        main { padding: 1.5rem 2rem; max-width: 800px; }
        h2 { color: var(--primary); margin-bottom: 0.2rem; }
        .meta { color: var(--text-muted); border-bottom: 2px solid var(--primary); padding-bottom: 0.8rem; }
        h3 { color: var(--primary); margin-top: 1.5rem; }
        table { width: 100%%; border-collapse: collapse; }
        th { background: var(--primary); color: #fff; padding: 0.6rem; border: 1px solid var(--border); }
        td { padding: 0.6rem; border: 1px solid var(--border); text-align: center; }
        tr.alt td { background: #f5f5f5; }
        tr.total td { background: #f0f8ff; font-weight: bold; }
        .callout { color: var(--primary); font-weight: bold; font-size: 1.1rem; margin-top: 1.5rem; }
        footer { color: #969696; font-size: 0.8rem; padding: 1rem 2rem; display: flex; justify-content: space-between; }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
        <p>%s</p>
    </div>
    <main>
        <h2>%s</h2>
        <div class="meta">%s</div>
`, esc(r.Title), esc(r.HeaderTitle), esc(r.HeaderTagline), esc(r.Title), esc(r.Metadata))

	for _, s := range r.Sections {
		fmt.Fprintf(&f, "        <h3>%s</h3>\n", esc(s.Heading))
		fmt.Fprintf(&f, "        <table>\n            <tr><th>%s</th><th>%s</th></tr>\n", esc(s.Columns[0]), esc(s.Columns[1]))
		for i, row := range s.Rows {
			class := ""
			switch {
			case row.Highlight:
				class = ` class="total"`
			case i%2 == 1:
				class = ` class="alt"`
			}
			fmt.Fprintf(&f, "            <tr%s><td>%s</td><td>%s</td></tr>\n", class, esc(row.Label), esc(row.Value))
		}
		f.WriteString("        </table>\n")
	}

	fmt.Fprintf(&f, `        <div class="callout">%s</div>
    </main>
    <footer><span>%s</span><span>Ref: %s</span></footer>
</body>
</html>
`, esc(r.Callout), esc(r.Footer), esc(r.ID))

	return f.Bytes(), nil
}
