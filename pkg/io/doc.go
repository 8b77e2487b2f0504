// Package io moves parsed GML graphs in and out of files and streams.
//
// # Import
//
// [ReadGML] parses a document from any io.Reader and [ImportGML] from a file
// path:
//
//	g, err := io.ImportGML("deps.gml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Parse errors keep their code and token position when wrapped with the path.
//
// # JSON Format
//
// [WriteJSON] and [ExportJSON] produce a stable JSON view of a graph for
// external tools:
//
//	{
//	  "attrs": {"label": "deps"},
//	  "nodes": [
//	    {"id": 1, "anon": false, "attrs": {"label": "app"}},
//	    {"id": 2, "anon": true, "attrs": {}}
//	  ],
//	  "edges": [
//	    {"source": 1, "target": 2, "attrs": {"weight": 3}}
//	  ]
//	}
//
// Node order is creation order, so an anonymous node appears where the first
// edge referencing it was read. The structural attributes id, source and
// target are not repeated inside "attrs".
//
// There is no JSON import: GML is the source format.
package io
