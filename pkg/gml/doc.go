// Package gml decodes Graph Modeling Language (GML) text into an in-memory
// directed graph.
//
// # Overview
//
// Decoding happens in two steps. [Tokenize] (or [Load] / [LoadFile]) splits
// the input on whitespace into [Tokens]; [Parse] walks the tokens with a
// single forward cursor and builds a [Graph]. [ParseString] and [ParseFile]
// combine both steps:
//
//	g, err := gml.ParseString(`graph [
//	    node [ id 1 label "app" ]
//	    node [ id 2 label "lib" ]
//	    edge [ source 1 target 2 ]
//	]`)
//
// # Grammar
//
// Only the block keywords graph, node and edge are understood. Everything
// else inside a block is a `name value` attribute:
//
//	graph     := 'graph' '[' (node | edge | attribute)* ']'
//	node      := 'node'  '[' attribute* ']'
//	edge      := 'edge'  '[' attribute* ']'
//	attribute := NAME (INT | STRING)
//
// Names are letters and digits only. Values are base-10 integers or strings
// delimited by double quotes. Strings have no escape sequences, and because
// tokenizing ignores quotes, any whitespace inside a string collapses to a
// single space. Declaring the same attribute twice on one object keeps the
// last value.
//
// # Structure
//
// Every node needs an integer id that is unique in the graph. Every edge
// needs integer source and target attributes. An edge may reference an id
// that no node block has declared; such endpoints are materialized as
// anonymous nodes ([Node.IsAnon]) carrying only their id. The id is then
// taken, so a later node block declaring it is a duplicate.
// Each node indexes the edges leaving it ([Node.ForwardEdges]) and entering
// it ([Node.BackwardEdges]) in input order.
//
// # Errors
//
// Parsing stops at the first problem. The returned error is an
// [*errors.Error] whose Code tells what went wrong (UNEXPECTED_EOF,
// SYNTAX_ERROR, ATTRIBUTE_NAME, ATTRIBUTE_VALUE or STRUCTURAL_ERROR) and whose
// Pos is the index of the offending token. No partial graph is returned.
//
// # Concurrency
//
// A parse is synchronous and owns its tokens and cursor; independent inputs
// may be parsed from different goroutines. A returned Graph is never modified
// again and may be shared between readers.
//
// [*errors.Error]: github.com/matzehuels/gml/pkg/errors.Error
package gml
