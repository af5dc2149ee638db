package layout

import (
	"io"

	"github.com/a-h/templ"
)

// Printer writes markup and escaped text, keeping the first write error
type Printer struct {
	w   io.Writer
	err error
}

// NewPrinter creates a Printer over w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Raw writes trusted markup as is
func (p *Printer) Raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

// Text writes s HTML-escaped
func (p *Printer) Text(s string) {
	p.Raw(templ.EscapeString(s))
}

// Attr writes a double-quoted attribute value
func (p *Printer) Attr(name, value string) {
	p.Raw(" " + name + "=\"")
	p.Text(value)
	p.Raw("\"")
}

// URL writes a sanitized URL attribute
func (p *Printer) URL(name, value string) {
	p.Attr(name, string(templ.URL(value)))
}

// Err returns the first write error
func (p *Printer) Err() error {
	return p.err
}
