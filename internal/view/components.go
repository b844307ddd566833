package view

import (
	"fmt"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

const (
	ReloadLabel = "🔄 Reload Data"
	BusyLabel   = "⏳ Loading..."

	// PanelID is the element id live updates and the reload trigger target.
	PanelID = "panel"
)

// PanelData is everything needed to draw the panel fragment.
type PanelData struct {
	Title        string
	ReloadPath   string
	Busy         bool
	Cards        []Card
	Error        string
	ErrorVisible bool
	Count        int
	StatsVisible bool
}

// PanelNode draws the whole panel: header with trigger, stats banner,
// loading indicator, error banner and card grid.
func PanelNode(d PanelData) g.Node {
	return h.Section(
		h.ID(PanelID),
		h.Class("container mx-auto px-4 py-8"),
		header(d),
		stats(d),
		loading(d.Busy),
		errorBanner(d),
		h.Div(
			h.ID("usersContainer"),
			h.Class("grid gap-6 md:grid-cols-2 lg:grid-cols-3"),
			cardList(d.Cards),
		),
	)
}

func header(d PanelData) g.Node {
	label := ReloadLabel
	classes := "bg-blue-600 hover:bg-blue-700 text-white font-semibold py-2 px-4 rounded-lg shadow"
	if d.Busy {
		label = BusyLabel
		classes += " opacity-50 cursor-not-allowed"
	}

	return h.Div(
		h.Class("flex items-center justify-between mb-8"),
		h.H1(h.Class("text-3xl font-bold text-gray-800"), g.Text(d.Title)),
		h.Button(
			h.ID("reloadBtn"),
			h.Type("button"),
			h.Class(classes),
			g.If(d.Busy, h.Disabled()),
			hx.Post(d.ReloadPath),
			hx.Target("#"+PanelID),
			hx.Swap("outerHTML"),
			h.Span(h.ID("reloadText"), g.Text(label)),
		),
	)
}

func stats(d PanelData) g.Node {
	return h.Div(
		h.ID("statsContainer"),
		h.Class(hiddenUnless(d.StatsVisible, "mb-6 p-4 bg-green-50 border border-green-200 rounded-lg text-green-800")),
		g.Text("Loaded "),
		h.Span(h.ID("userCount"), h.Class("font-bold"), g.Text(FormatCount(d.Count))),
		g.Text(" "+userNoun(d.Count)),
	)
}

func loading(busy bool) g.Node {
	return h.Div(
		h.ID("loadingState"),
		h.Class(hiddenUnless(busy, "text-center py-12 text-gray-500")),
		h.Div(h.Class("animate-spin inline-block w-8 h-8 border-4 border-blue-500 border-t-transparent rounded-full")),
		h.P(h.Class("mt-4"), g.Text("Loading users...")),
	)
}

func errorBanner(d PanelData) g.Node {
	return h.Div(
		h.ID("errorState"),
		h.Class(hiddenUnless(d.ErrorVisible, "mb-6 p-4 bg-red-50 border border-red-200 rounded-lg text-red-700")),
		g.Attr("role", "alert"),
		h.Strong(g.Text("Error: ")),
		h.Span(h.ID("errorMessage"), g.Text(d.Error)),
	)
}

func cardList(cards []Card) g.Node {
	nodes := make([]g.Node, len(cards))
	for i, c := range cards {
		nodes[i] = CardNode(c)
	}
	return g.Group(nodes)
}

// CardNode draws one user card. Every field goes through a text node, so
// markup in record values is escaped.
func CardNode(c Card) g.Node {
	return h.Div(
		h.Class("user-card bg-white rounded-lg shadow-md p-6 opacity-0 fade-in"),
		g.Attr("style", fmt.Sprintf("animation-delay: %dms", c.Delay.Milliseconds())),
		h.Div(
			h.Class("flex items-center mb-4"),
			h.Div(
				h.Class("w-12 h-12 bg-gradient-to-r from-blue-500 to-purple-600 rounded-full flex items-center justify-center text-white font-bold text-lg"),
				g.Text(c.Avatar),
			),
			h.Div(
				h.Class("ml-4"),
				h.H3(h.Class("text-xl font-semibold text-gray-800"), g.Text(c.Name)),
				h.P(h.Class("text-gray-500 text-sm"), g.Text("@"+c.Username)),
			),
		),
		h.Div(
			h.Class("space-y-3"),
			field("text-blue-500", "📧", g.Text(c.Email)),
			field("text-green-500", "📍",
				h.Div(g.Text(c.AddressLine1)),
				h.Div(g.Text(c.AddressLine2)),
			),
			field("text-purple-500", "📞", g.Text(c.Phone)),
			field("text-orange-500", "🌐", g.Text(c.Website)),
			h.Div(
				h.Class("pt-2 border-t border-gray-100"),
				h.Div(
					h.Class("text-xs text-gray-500"),
					h.Strong(g.Text("Company:")),
					g.Text(" "+c.Company),
				),
			),
		),
	)
}

func field(iconClass, icon string, children ...g.Node) g.Node {
	return h.Div(
		h.Class("flex items-start text-gray-600"),
		h.Span(h.Class(iconClass+" mr-2"), g.Text(icon)),
		h.Div(h.Class("text-sm"), g.Group(children)),
	)
}

func hiddenUnless(visible bool, classes string) string {
	if visible {
		return classes
	}
	return classes + " hidden"
}
