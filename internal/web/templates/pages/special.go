package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/Biskuitttt/Suratt/internal/model"
	"github.com/Biskuitttt/Suratt/internal/web/templates/layout"
)

// SpecialData is the data for the personal page
type SpecialData struct {
	layout.PageData
	Identity    model.ResolvedIdentity
	Subtitle    string
	Date        string
	PlaylistURL string
	Gallery     []model.GalleryImage
}

// Special renders the letter addressed to the resolved visitor
func Special(data SpecialData) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := layout.NewPrinter(w)
		id := data.Identity

		p.Raw("<header class=\"letter-head\">\n<h1 class=\"site-title\">")
		p.Text(data.SiteName)
		p.Raw("</h1>\n")
		if data.Subtitle != "" {
			p.Raw("<h2 class=\"subtitle\">")
			p.Text(data.Subtitle)
			p.Raw("</h2>\n")
		}
		if data.Date != "" {
			p.Raw("<p class=\"date\">")
			p.Text(data.Date)
			p.Raw("</p>\n")
		}
		p.Raw("</header>\n")

		p.Raw("<article class=\"letter\">\n<h2 class=\"greeting\">Dear ")
		p.Text(id.DisplayName)
		p.Raw("</h2>\n")
		if id.PhotoURL != "" {
			p.Raw("<img class=\"profile-photo\"")
			p.URL("src", id.PhotoURL)
			p.Attr("alt", id.DisplayName)
			p.Raw(">\n")
		}
		for _, memo := range []string{id.Memo1, id.Memo2} {
			if memo == "" {
				continue
			}
			p.Raw("<p class=\"memo\">")
			p.Text(memo)
			p.Raw("</p>\n")
		}
		p.Raw("</article>\n")

		if len(data.Gallery) > 0 {
			p.Raw("<section class=\"gallery\">\n")
			for _, img := range data.Gallery {
				p.Raw("<figure class=\"gallery-image\"><img")
				p.URL("src", img.URL)
				p.Attr("alt", img.Caption)
				p.Raw(">")
				if img.Caption != "" {
					p.Raw("<figcaption>")
					p.Text(img.Caption)
					p.Raw("</figcaption>")
				}
				p.Raw("</figure>\n")
			}
			p.Raw("</section>\n")
		}

		if data.PlaylistURL != "" {
			p.Raw("<section class=\"playlist\">\n<iframe")
			p.URL("src", data.PlaylistURL)
			p.Raw(" title=\"Playlist\" loading=\"lazy\" allow=\"autoplay; encrypted-media\"></iframe>\n</section>\n")
		}
		return p.Err()
	})
	return layout.Base(data.PageData, body)
}
