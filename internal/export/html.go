// Package export renders a completed analysis as a standalone HTML report.
package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"

	"chempaper-backend/internal/papers"
)

// Renderer produces a self-contained HTML document; crop images are
// embedded as base64 data URIs so the file has no external references.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() *Renderer {
	tmpl := template.Must(template.New("report").Funcs(template.FuncMap{
		"dataURI": pngDataURI,
		"markup":  MarkupSubLabels,
	}).Parse(reportTemplate))
	return &Renderer{tmpl: tmpl}
}

// Render implements papers.Exporter.
func (r *Renderer) Render(rec papers.AnalysisRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, rec); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

func pngDataURI(img []byte) template.URL {
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(img))
}

// MarkupSubLabels wraps sub-figure labels like "(a)" in a highlighting
// span. A token counts only when it stands on its own: the rune before
// the "(" must not be a letter (a digit is fine, so "1(a)" matches) and
// the rune after the ")" must not be a letter or digit (so "(b)ased"
// does not). Everything else is HTML-escaped as-is.
func MarkupSubLabels(s string) template.HTML {
	runes := []rune(s)
	var out bytes.Buffer
	start := 0

	flush := func(end int) {
		if end > start {
			template.HTMLEscape(&out, []byte(string(runes[start:end])))
		}
	}

	for i := 0; i+2 < len(runes); i++ {
		if runes[i] != '(' || runes[i+2] != ')' {
			continue
		}
		c := runes[i+1]
		if c < 'a' || c > 'z' {
			continue
		}
		if i > 0 && isLetter(runes[i-1]) {
			continue
		}
		if i+3 < len(runes) && isAlnum(runes[i+3]) {
			continue
		}
		flush(i)
		fmt.Fprintf(&out, `<span class="sub-label">(%c)</span>`, c)
		start = i + 3
		i += 2
	}
	flush(len(runes))
	return template.HTML(out.String())
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isAlnum(r rune) bool {
	return isLetter(r) || (r >= '0' && r <= '9')
}
