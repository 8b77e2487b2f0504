package gml_test

import (
	"fmt"

	"github.com/matzehuels/gml/pkg/errors"
	"github.com/matzehuels/gml/pkg/gml"
)

func ExampleParseString() {
	g, err := gml.ParseString(`graph [
		node [ id 1 label "app" ]
		node [ id 2 label "lib" ]
		edge [ source 1 target 2 label "depends on" ]
	]`)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	for _, e := range g.Edges() {
		fmt.Printf("%s -> %s (%s)\n", e.SourceNode().Label(), e.TargetNode().Label(), e.Label())
	}
	// Output:
	// Nodes: 2
	// Edges: 1
	// app -> lib (depends on)
}

func ExampleNode_IsAnon() {
	g, _ := gml.ParseString(`graph [ node [ id 1 ] edge [ source 1 target 2 ] ]`)

	for _, n := range g.Nodes() {
		fmt.Printf("node %d anonymous=%t\n", n.ID(), n.IsAnon())
	}
	// Output:
	// node 1 anonymous=false
	// node 2 anonymous=true
}

func ExampleParse_error() {
	_, err := gml.ParseString(`graph [ node [ ] ]`)

	pos, _ := errors.Position(err)
	fmt.Println(errors.GetCode(err), pos)
	fmt.Println(err)
	// Output:
	// STRUCTURAL_ERROR 4
	// STRUCTURAL_ERROR: [pos 4] missing id
}

func ExampleGraph_String() {
	g, _ := gml.ParseString(`graph [ node [ id 1 weight 5 ] ]`)
	fmt.Print(g)
	// Output:
	// graph [
	//   node [
	//     id 1
	//     anon false
	//     weight 5
	//   ]
	// ]
}
