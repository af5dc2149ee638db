// Package layout holds the page shell shared by all web pages
package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// FlashMessage is a one-shot notice carried across a redirect
type FlashMessage struct {
	Type    string // "success", "error", "info"
	Message string
}

// PageData is common to every page
type PageData struct {
	Title    string
	SiteName string
	Flash    *FlashMessage
	// Signed is set when the visitor holds a session
	Signed bool
}

// Base wraps body in the document shell
func Base(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := NewPrinter(w)
		p.Raw("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
		p.Raw("<meta charset=\"utf-8\">\n")
		p.Raw("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		p.Raw("<title>")
		p.Text(pageTitle(data))
		p.Raw("</title>\n</head>\n<body>\n<nav>")
		p.Raw("<a href=\"/\" class=\"brand\">")
		p.Text(data.SiteName)
		p.Raw("</a>")
		if data.Signed {
			p.Raw("<form method=\"post\" action=\"/logout\" class=\"logout\"><button type=\"submit\">Leave</button></form>")
		}
		p.Raw("</nav>\n")
		if data.Flash != nil {
			p.Raw("<div class=\"flash flash-")
			p.Text(data.Flash.Type)
			p.Raw("\" role=\"status\">")
			p.Text(data.Flash.Message)
			p.Raw("</div>\n")
		}
		p.Raw("<main>\n")
		if p.Err() != nil {
			return p.Err()
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		p.Raw("</main>\n</body>\n</html>\n")
		return p.Err()
	})
}

func pageTitle(data PageData) string {
	switch {
	case data.Title == "":
		return data.SiteName
	case data.SiteName == "":
		return data.Title
	default:
		return data.Title + " | " + data.SiteName
	}
}
