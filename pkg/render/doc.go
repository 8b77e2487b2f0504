// Package render groups the visual output formats for parsed graphs.
//
// The [nodelink] subpackage draws a graph as a classic node-link diagram:
// it emits Graphviz DOT and renders it to SVG, PNG or JPG with an embedded
// Graphviz build, so no external binaries are required.
//
// [nodelink]: https://pkg.go.dev/github.com/matzehuels/gml/pkg/render/nodelink
package render
