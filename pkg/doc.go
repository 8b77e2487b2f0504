// Package pkg provides the libraries behind the gml command.
//
// # Overview
//
// gml reads documents in the Graph Modelling Language (GML), builds an
// indexed in-memory graph, and converts it to JSON, DOT or rendered images.
// Malformed input is rejected at the first violation with a coded error that
// carries the offending token's position.
//
// # Architecture
//
// The typical data flow:
//
//	GML text → Tokenize → Parse → Graph → Encode (JSON/DOT/SVG/PNG/JPG)
//
// Each stage is a separate package:
//
// [gml] - The decoder. [gml.Tokenize] splits text on whitespace,
// [gml.Parse] walks the tokens with a recursive-descent parser and returns
// a [gml.Graph] whose nodes and edges live in index-addressed arenas.
// Edges that reference undeclared ids get anonymous nodes.
//
// [errors] - Coded errors with optional token positions, shared by every
// package.
//
// [io] - JSON export and file import helpers.
//
// [render/nodelink] - DOT generation and Graphviz rendering.
//
// [pipeline] - The parse-then-encode pipeline with artifact caching and
// observability hooks. Both the CLI and the HTTP server run through it.
//
// [cache] - Artifact caches: null, file-backed and Redis-backed.
//
// [server] - An HTTP API exposing the pipeline.
//
// [observability] - Hooks for parse, render, cache and request events.
//
// # Quick Start
//
//	g, err := gml.ParseString(`graph [ node [ id 1 ] edge [ source 1 target 2 ] ]`)
//	if err != nil {
//	    pos, _ := errors.Position(err)
//	    log.Fatalf("%v (token %d)", err, pos)
//	}
//	for _, n := range g.Nodes() {
//	    fmt.Println(n.ID(), n.IsAnon(), n.OutDegree())
//	}
//
// [gml]: https://pkg.go.dev/github.com/matzehuels/gml/pkg/gml
// [gml.Tokenize]: https://pkg.go.dev/github.com/matzehuels/gml/pkg/gml#Tokenize
// [gml.Parse]: https://pkg.go.dev/github.com/matzehuels/gml/pkg/gml#Parse
// [gml.Graph]: https://pkg.go.dev/github.com/matzehuels/gml/pkg/gml#Graph
// [errors]: https://pkg.go.dev/github.com/matzehuels/gml/pkg/errors
// [io]: https://pkg.go.dev/github.com/matzehuels/gml/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/gml/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gml/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/gml/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/gml/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/gml/pkg/observability
package pkg
