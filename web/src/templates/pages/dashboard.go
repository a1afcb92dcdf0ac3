package pages

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/cyberwatch/internal/view/dto/auth"
)

// Dashboard greets the signed-in user and shows the incident overview. The session panel re-checks the
// account every minute so deactivated users are sent back to the login page.
func Dashboard(data auth.DashboardData) g.Node {
	return h.Div(
		h.Class("bg-white shadow-2xl rounded-xl p-10"),
		h.H1(h.Class("text-4xl font-extrabold text-indigo-700 mb-4 border-b pb-2"), g.Text("Dashboard")),
		SessionPanel(data),
		g.If(data.Error != "", h.P(h.ID("dashboard-error"), h.Class("mt-8 text-red-600"), g.Text(data.Error))),
		g.Iff(data.Overview != nil, func() g.Node { return IncidentOverview(*data.Overview) }),
		h.A(h.Href("/logout"), h.Class("mt-8 inline-block text-indigo-600"), g.Text("Cerrar sesión")),
	)
}

// SessionPanel is the fragment refreshed by htmx.
func SessionPanel(data auth.DashboardData) g.Node {
	return h.Div(
		h.ID("session-panel"),
		hx.Get("/dashboard/session"),
		hx.Trigger("every 60s"),
		hx.Swap("outerHTML"),
		h.P(h.Class("text-gray-700"), g.Textf("Bienvenido, %s", displayName(data))),
		h.P(h.Class("text-sm text-gray-500"), g.Textf("%s · %s", data.Email, data.Role)),
	)
}

func displayName(data auth.DashboardData) string {
	if data.FullName != "" {
		return data.FullName
	}
	return data.Email
}
