// Package pages renders the web pages
package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/Biskuitttt/Suratt/internal/web/templates/layout"
)

// HomeData is the data for the gate page
type HomeData struct {
	layout.PageData
	Subtitle    string
	Description string
	Date        string
	Input       string
}

// Home renders the access gate
func Home(data HomeData) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := layout.NewPrinter(w)
		p.Raw("<section class=\"gate\">\n<h1>")
		p.Text(data.SiteName)
		p.Raw("</h1>\n")
		if data.Subtitle != "" {
			p.Raw("<h2 class=\"subtitle\">")
			p.Text(data.Subtitle)
			p.Raw("</h2>\n")
		}
		if data.Description != "" {
			p.Raw("<p class=\"description\">")
			p.Text(data.Description)
			p.Raw("</p>\n")
		}
		if data.Date != "" {
			p.Raw("<p class=\"date\">")
			p.Text(data.Date)
			p.Raw("</p>\n")
		}
		p.Raw("<form method=\"post\" action=\"/access\" class=\"gate-form\">\n")
		p.Raw("<label for=\"code\">Your name or code</label>\n")
		p.Raw("<input id=\"code\" name=\"code\" type=\"text\" autocomplete=\"off\" required")
		p.Attr("value", data.Input)
		p.Raw(">\n<button type=\"submit\">Open</button>\n</form>\n</section>\n")
		return p.Err()
	})
	return layout.Base(data.PageData, body)
}
