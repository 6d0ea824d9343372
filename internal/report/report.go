// Package report renders compile results as a standalone HTML page.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/conneroisu/sfcc/internal/compiler"
)

// Summary is shown above the per-file sections.
type Summary struct {
	Title   string
	Metrics compiler.MetricsSnapshot
}

// Page renders the whole report.
func Page(summary Summary, results []*compiler.Result) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := summary.Title
		if title == "" {
			title = "sfcc compile report"
		}
		bw := &errWriter{w: w}
		bw.printf("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
		bw.printf("<title>%s</title>\n<style>%s</style>\n</head>\n<body>\n", templ.EscapeString(title), stylesheet)
		bw.printf("<h1>%s</h1>\n", templ.EscapeString(title))
		if bw.err != nil {
			return bw.err
		}

		if err := summaryTable(summary.Metrics, len(results)).Render(ctx, w); err != nil {
			return err
		}
		for _, res := range results {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := resultSection(res).Render(ctx, w); err != nil {
				return err
			}
		}

		bw.printf("</body>\n</html>\n")
		return bw.err
	})
}

func summaryTable(m compiler.MetricsSnapshot, files int) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		bw := &errWriter{w: w}
		bw.printf("<table class=\"summary\">\n")
		row := func(label string, value interface{}) {
			bw.printf("<tr><th>%s</th><td>%s</td></tr>\n",
				templ.EscapeString(label), templ.EscapeString(fmt.Sprint(value)))
		}
		row("Files", files)
		row("Compiled", m.Succeeded-m.CacheHits)
		row("Cache hits", m.CacheHits)
		row("Failed", m.Failed)
		row("Average duration", m.AverageDuration)
		bw.printf("</table>\n")
		return bw.err
	})
}

func resultSection(res *compiler.Result) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		bw := &errWriter{w: w}
		bw.printf("<section class=\"result\" id=\"%s\">\n", templ.EscapeString(anchor(res.Name)))
		bw.printf("<h2>%s</h2>\n", templ.EscapeString(res.Name))

		if len(res.Helpers) > 0 {
			bw.printf("<p class=\"helpers\">")
			for i, h := range res.Helpers {
				if i > 0 {
					bw.printf(" ")
				}
				bw.printf("<code>%s</code>", templ.EscapeString(h))
			}
			bw.printf("</p>\n")
		}

		if len(res.Diagnostics) > 0 {
			bw.printf("<ul class=\"diagnostics\">\n")
			for _, d := range res.Diagnostics {
				bw.printf("<li class=\"%s\">%s</li>\n",
					templ.EscapeString(d.Severity.String()), templ.EscapeString(d.Error()))
			}
			bw.printf("</ul>\n")
		}

		bw.printf("<pre><code>%s</code></pre>\n</section>\n", templ.EscapeString(res.Code))
		return bw.err
	})
}

// anchor turns a file name into an element id.
func anchor(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

const stylesheet = `body{font-family:system-ui,sans-serif;margin:2rem;color:#1f2328}` +
	`table.summary th{text-align:left;padding-right:1rem}` +
	`pre{background:#f6f8fa;padding:1rem;overflow:auto}` +
	`.diagnostics .warning{color:#9a6700}.diagnostics .error{color:#cf222e}`
