package layouts

import (
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/cyberwatch/internal/loginform"
	"github.com/nfrund/cyberwatch/internal/view"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// Base wraps page content in the shared document shell. scripts are placed
// at the end of the body so they run after the content is parsed.
func Base(title string, flashes view.FlashData, content g.Node, scripts ...g.Node) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    CalculateTitle(title),
		Language: "es",
		Head: []g.Node{
			h.Meta(h.Charset("utf-8")),
			h.StyleEl(g.Raw("." + loginform.HiddenClass + "{display:none}")),
			h.Script(h.Src(htmxSrc), h.Defer()),
		},
		Body: []g.Node{
			h.Class("min-h-screen bg-gray-100"),
			Flashes(flashes),
			h.Main(h.Class("container mx-auto p-8"), content),
			g.Group(scripts),
		},
	})
}

// Flashes renders success and error flash messages, or nothing.
func Flashes(f view.FlashData) g.Node {
	if len(f.Success) == 0 && len(f.Error) == 0 {
		return nil
	}
	return h.Div(h.ID("flashes"),
		g.Map(f.Success, func(msg string) g.Node {
			return h.Div(h.Class("flash flash-success"), h.Role("status"), g.Text(msg))
		}),
		g.Map(f.Error, func(msg string) g.Node {
			return h.Div(h.Class("flash flash-error"), h.Role("alert"), g.Text(msg))
		}),
	)
}
