package highlight

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"strings"
)

// HTMLOptions configures RenderHTML.
type HTMLOptions struct {
	Title       string
	LineNumbers bool
	ErrorLine   int // 1-based, 0 for none
}

const htmlStyle = `body { font-family: monospace; }
pre { line-height: 1.3; }
.ln { color: #999; user-select: none; }
.err { background: #ffcccb; display: inline-block; width: 100%; }
.tag { color: #008000; }
.attribute { color: #7d0045; }
.attributevalue { color: #0000ff; }
.comment { color: #808080; font-style: italic; }
.declaration { color: #800080; }
`

// RenderHTML writes text as a standalone HTML page using the given spans.
// Spans must be ordered and non-overlapping, as returned by Highlight.
func RenderHTML(w io.Writer, text string, spans []Span, opts HTMLOptions) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n<style>\n%s</style>\n</head>\n<body>\n<pre>",
		html.EscapeString(opts.Title), htmlStyle)

	r := &lineRenderer{w: bw, opts: opts}
	r.startLine()

	pos := 0
	for _, s := range spans {
		if s.Start < pos || s.End > len(text) {
			continue
		}
		r.write(text[pos:s.Start], "")
		r.write(text[s.Start:s.End], s.Category.String())
		pos = s.End
	}
	r.write(text[pos:], "")
	r.endLine()

	bw.WriteString("</pre>\n</body>\n</html>\n")
	return bw.Flush()
}

// lineRenderer splits classed text at newlines so every line can carry its
// own number and error background.
type lineRenderer struct {
	w    *bufio.Writer
	opts HTMLOptions
	line int
}

func (r *lineRenderer) startLine() {
	r.line++
	if r.line == r.opts.ErrorLine {
		r.w.WriteString(`<span class="err">`)
	}
	if r.opts.LineNumbers {
		fmt.Fprintf(r.w, `<span class="ln">%4d </span>`, r.line)
	}
}

func (r *lineRenderer) endLine() {
	if r.line == r.opts.ErrorLine {
		r.w.WriteString("</span>")
	}
}

func (r *lineRenderer) write(s, class string) {
	for {
		idx := strings.IndexByte(s, '\n')
		chunk := s
		if idx >= 0 {
			chunk = s[:idx]
		}
		if chunk != "" {
			if class != "" {
				fmt.Fprintf(r.w, `<span class="%s">%s</span>`, class, html.EscapeString(chunk))
			} else {
				r.w.WriteString(html.EscapeString(chunk))
			}
		}
		if idx < 0 {
			return
		}
		r.endLine()
		r.w.WriteByte('\n')
		r.startLine()
		s = s[idx+1:]
	}
}
