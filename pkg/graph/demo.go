package graph

import "github.com/OFFIS-RIT/nodelink/pkg/common"

// DemoText is the sample paragraph the demo graph was drawn from.
const DemoText = "In 1961, President John F. Kennedy challenged Americans to land a man on the Moon. " +
	"NASA answered with the Apollo Program, racing the Soviet Union through the Space Race. " +
	"In July 1969, Apollo 11 carried Neil Armstrong and Buzz Aldrin to the lunar surface."

type demoNode struct {
	id, label, category, description string
}

var demoNodes = []demoNode{
	{"kennedy", "John F. Kennedy", "PERSON", "35th President of the United States."},
	{"usa", "United States", "GPE", "Country that ran the Apollo Program."},
	{"nasa", "NASA", "ORG", "United States space agency."},
	{"apollo", "Apollo Program", "ORG", "Human spaceflight program that landed people on the Moon."},
	{"apollo-11", "Apollo 11", CategoryEvent, "First crewed Moon landing."},
	{"armstrong", "Neil Armstrong", "PERSON", "Commander of Apollo 11."},
	{"aldrin", "Buzz Aldrin", "PERSON", "Lunar module pilot of Apollo 11."},
	{"moon", "Moon", "LOC", "Earth's natural satellite."},
	{"ussr", "Soviet Union", "GPE", "Rival of the United States in the Space Race."},
	{"space-race", "Space Race", CategoryEvent, "Cold War competition in spaceflight."},
	{"1961", "1961", "DATE", "Year of Kennedy's Moon challenge."},
	{"1969", "July 1969", "DATE", "Month of the Apollo 11 landing."},
}

var demoLinks = []common.Link{
	{Source: "kennedy", Target: "usa", Type: "associated-with", Strength: 0.6},
	{Source: "kennedy", Target: "apollo", Type: "established", Animated: true, Strength: 0.9},
	{Source: "kennedy", Target: "1961", Type: "associated-with", Strength: 0.4},
	{Source: "nasa", Target: "apollo", Type: "established", Animated: true, Strength: 0.8},
	{Source: "nasa", Target: "usa", Type: "located-in", Strength: 0.5},
	{Source: "apollo", Target: "apollo-11", Type: "launched", Animated: true, Strength: 0.9},
	{Source: "apollo-11", Target: "moon", Type: "landed-on", Animated: true, Strength: 1},
	{Source: "apollo-11", Target: "1969", Type: "associated-with", Strength: 0.4},
	{Source: "armstrong", Target: "apollo-11", Type: "worked-for", Strength: 0.7},
	{Source: "aldrin", Target: "apollo-11", Type: "worked-for", Strength: 0.7},
	{Source: "usa", Target: "space-race", Type: "co-occurs", Strength: 0.5},
	{Source: "ussr", Target: "space-race", Type: "co-occurs", Strength: 0.5},
	{Source: "apollo", Target: "space-race", Type: "associated-with", Animated: true, Strength: 0.6},
}

// DemoGraph returns a fixed sample graph about the Apollo program. Every call
// returns a fresh copy.
func DemoGraph() common.Graph {
	g := common.Graph{
		Nodes: make([]common.Node, 0, len(demoNodes)),
		Links: append([]common.Link(nil), demoLinks...),
	}
	for _, d := range demoNodes {
		n := NewNode(d.id, d.label, d.category, common.NodeSourceDemo)
		n.Description = d.description
		g.Nodes = append(g.Nodes, n)
	}
	return g
}
