package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

const pageStyles = `
.fade-in { animation: fadeIn 0.5s ease-out forwards; }
@keyframes fadeIn {
  from { opacity: 0; transform: translateY(20px); }
  to { opacity: 1; transform: translateY(0); }
}
.user-card { transition: transform 0.2s ease, box-shadow 0.2s ease; }
.user-card:hover { transform: translateY(-4px); box-shadow: 0 10px 25px rgba(0, 0, 0, 0.1); }
`

type PageProps struct {
	Title string
	Panel g.Node
	// Head is appended after the built-in head elements.
	Head []g.Node
	// Scripts are appended to the end of the body.
	Scripts []g.Node
}

// Page wraps the panel in a full HTML document.
func Page(p PageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := []g.Node{
			h.Script(h.Src("https://cdn.tailwindcss.com")),
			h.Script(h.Src("https://unpkg.com/htmx.org@1.9.12")),
			g.El("style", g.Raw(pageStyles)),
		}
		return c.HTML5(c.HTML5Props{
			Title:    p.Title,
			Language: "en",
			Head:     append(head, p.Head...),
			Body: []g.Node{
				h.Main(h.Class("bg-gray-100 min-h-screen"), p.Panel),
				g.Group(p.Scripts),
			},
		}).Render(w)
	})
}

// Fragment adapts a gomponents node to templ so handlers render pages and
// fragments through the same interface.
func Fragment(n g.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return n.Render(w)
	})
}
