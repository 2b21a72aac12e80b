// Package gexf writes a core.Graph out as a GEXF 1.2 document
// (https://gexf.net), for loading into external graph-visualization tools.
package gexf

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/katalvlaran/annlib/core"
)

type gexfRoot struct {
	XMLName xml.Name `xml:"gexf"`
	Version string   `xml:"version,attr"`
	Graph   gexfGraph `xml:"graph"`
}

type gexfGraph struct {
	Mode            string     `xml:"mode,attr"`
	DefaultEdgeType string     `xml:"defaultedgetype,attr"`
	Nodes           gexfNodes  `xml:"nodes"`
	Edges           gexfEdges  `xml:"edges"`
}

type gexfNodes struct {
	Node []gexfNode `xml:"node"`
}

type gexfNode struct {
	ID    string `xml:"id,attr"`
	Label string `xml:"label,attr"`
}

type gexfEdges struct {
	Edge []gexfEdge `xml:"edge"`
}

type gexfEdge struct {
	ID     string  `xml:"id,attr"`
	Source string  `xml:"source,attr"`
	Target string  `xml:"target,attr"`
	Weight float64 `xml:"weight,attr"`
}

// Export writes g as a GEXF 1.2 document to w: every item becomes a node
// (labeled by its ID), every neighbor-list entry becomes a directed, weighted
// edge (weight = similarity).
func Export[T any](g *core.Graph[T], w io.Writer) error {
	doc := gexfRoot{
		Version: "1.2",
		Graph: gexfGraph{
			Mode:            "static",
			DefaultEdgeType: "directed",
		},
	}

	edgeID := 0
	for _, it := range g.Items() {
		doc.Graph.Nodes.Node = append(doc.Graph.Nodes.Node, gexfNode{ID: it.ID, Label: it.ID})

		nl, ok := g.Get(it.ID)
		if !ok {
			continue
		}
		for _, nb := range nl.Iter() {
			doc.Graph.Edges.Edge = append(doc.Graph.Edges.Edge, gexfEdge{
				ID:     fmt.Sprintf("%d", edgeID),
				Source: it.ID,
				Target: nb.Item.ID,
				Weight: nb.Similarity,
			})
			edgeID++
		}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	return enc.Encode(doc)
}
