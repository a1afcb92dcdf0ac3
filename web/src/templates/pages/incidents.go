package pages

import (
	"fmt"
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/cyberwatch/internal/dashboard"
	"github.com/nfrund/cyberwatch/internal/domain"
)

var severityColors = map[string]string{
	domain.SeverityCritical: "bg-red-600",
	domain.SeverityHigh:     "bg-orange-500",
	domain.SeverityMedium:   "bg-yellow-400",
	domain.SeverityLow:      "bg-green-500",
}

// IncidentOverview renders the KPI cards and incident panels.
func IncidentOverview(o dashboard.Overview) g.Node {
	return h.Div(
		h.ID("incident-overview"),
		h.Class("mt-8 space-y-8"),
		kpiCards(o.KPIs),
		h.Div(h.Class("grid gap-8 md:grid-cols-2"),
			severityPanel(o.Severity),
			trendPanel(o.Trend),
		),
		sourcePanel(o.Sources),
		h.Div(h.Class("grid gap-8 md:grid-cols-2"),
			incidentTable("recent-incidents", "Incidentes activos recientes", o.Recent),
			activityPanel(o.Activity),
		),
	)
}

func kpiCards(k dashboard.KPIs) g.Node {
	card := func(id, label, value string) g.Node {
		return h.Div(h.ID(id), h.Class("rounded-lg border p-4"),
			h.P(h.Class("text-sm text-gray-500"), g.Text(label)),
			h.P(h.Class("text-3xl font-bold text-gray-900"), g.Text(value)),
		)
	}
	return h.Div(h.Class("grid grid-cols-2 gap-4 md:grid-cols-4"),
		card("kpi-open", "Incidentes abiertos", strconv.Itoa(k.Open)),
		card("kpi-critical", "Críticos activos", strconv.Itoa(k.Critical)),
		card("kpi-alerts-today", "Alertas hoy", strconv.Itoa(k.AlertsToday)),
		card("kpi-mttr", "MTTR", k.MTTR()),
	)
}

func severityPanel(d dashboard.SeverityDistribution) g.Node {
	return h.Section(h.ID("severity-distribution"),
		h.H2(h.Class("text-lg font-semibold mb-2"), g.Textf("Severidad (%d activos)", d.TotalActive)),
		g.Map(d.Shares, func(s dashboard.SeverityShare) g.Node {
			return h.Div(h.Class("mb-2"),
				h.Div(h.Class("flex justify-between text-sm"),
					h.Span(g.Text(s.Severity)),
					h.Span(g.Textf("%d (%d%%)", s.Count, s.Percent)),
				),
				h.Div(h.Class("h-2 rounded bg-gray-200"),
					h.Div(h.Class("h-2 rounded "+severityColors[s.Severity]), h.Style(fmt.Sprintf("width: %d%%", s.Percent))),
				),
			)
		}),
	)
}

func trendPanel(t dashboard.Trend) g.Node {
	peak := 1
	for _, v := range t.Total {
		peak = max(peak, v)
	}
	cols := make([]g.Node, 0, len(t.Labels))
	for i, label := range t.Labels {
		cols = append(cols, h.Div(
			h.Class("flex flex-1 flex-col items-center justify-end"),
			h.Title(fmt.Sprintf("%s: %d (%d críticos)", label, t.Total[i], t.Critical[i])),
			h.Div(h.Class("w-full rounded-t bg-indigo-500"), h.Style(fmt.Sprintf("height: %d%%", t.Total[i]*100/peak))),
			h.Small(h.Class("text-[10px] text-gray-500"), g.Text(label)),
		))
	}
	return h.Section(h.ID("incident-trend"),
		h.H2(h.Class("text-lg font-semibold mb-2"), g.Text("Últimas 24 horas")),
		h.Div(h.Class("flex h-40 items-end gap-1"), g.Group(cols)),
	)
}

func sourcePanel(sources []dashboard.SourceCount) g.Node {
	return h.Section(h.ID("incidents-by-source"),
		h.H2(h.Class("text-lg font-semibold mb-2"), g.Text("Incidentes por fuente")),
		h.Table(h.Class("w-full text-sm"),
			h.THead(h.Tr(
				h.Th(h.Class("text-left"), g.Text("Fuente")),
				h.Th(g.Text("Info")), h.Th(g.Text("Alto")), h.Th(g.Text("Crítico")), h.Th(g.Text("Total")),
			)),
			h.TBody(g.Map(sources, func(s dashboard.SourceCount) g.Node {
				return h.Tr(
					h.Td(g.Text(s.Source)),
					h.Td(g.Text(strconv.Itoa(s.Info))),
					h.Td(g.Text(strconv.Itoa(s.High))),
					h.Td(g.Text(strconv.Itoa(s.Critical))),
					h.Td(g.Text(strconv.Itoa(s.Total()))),
				)
			})),
		),
	)
}

func incidentTable(id, title string, incidents []domain.Incident) g.Node {
	return h.Section(h.ID(id),
		h.H2(h.Class("text-lg font-semibold mb-2"), g.Text(title)),
		g.If(len(incidents) == 0, h.P(h.Class("text-sm text-gray-500"), g.Text("Sin incidentes activos."))),
		g.If(len(incidents) > 0, h.Table(h.Class("w-full text-sm"),
			h.THead(h.Tr(
				h.Th(h.Class("text-left"), g.Text("Código")),
				h.Th(h.Class("text-left"), g.Text("Título")),
				h.Th(g.Text("Severidad")),
				h.Th(g.Text("Estado")),
				h.Th(g.Text("Responsable")),
			)),
			h.TBody(g.Map(incidents, func(inc domain.Incident) g.Node {
				return h.Tr(
					h.Td(h.Class("font-mono"), g.Text(inc.Code)),
					h.Td(g.Text(inc.Title)),
					h.Td(g.Text(inc.Severity)),
					h.Td(g.Text(inc.Status)),
					h.Td(g.Text(ownerOrUnassigned(inc.Owner))),
				)
			})),
		)),
	)
}

func activityPanel(incidents []domain.Incident) g.Node {
	return h.Section(h.ID("incident-activity"),
		h.H2(h.Class("text-lg font-semibold mb-2"), g.Text("Actividad reciente")),
		h.Ul(h.Class("space-y-1 text-sm"), g.Map(incidents, func(inc domain.Incident) g.Node {
			return h.Li(
				h.Strong(g.Text(inc.Code)),
				g.Textf(" %s · %s", inc.Status, lastChange(inc)),
			)
		})),
	)
}

func lastChange(inc domain.Incident) string {
	t := inc.Updated()
	if t.IsZero() {
		t = inc.Detected()
	}
	if t.IsZero() {
		return "sin fecha"
	}
	return t.UTC().Format("02/01 15:04 UTC")
}

func ownerOrUnassigned(owner string) string {
	if owner == "" {
		return "Sin asignar"
	}
	return owner
}
