package handlers

import (
	"github.com/labstack/echo/v4"
	g "maragu.dev/gomponents"
)

// render writes a full gomponents document with the given status.
func render(c echo.Context, status int, node g.Node) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return node.Render(c.Response().Writer)
}
