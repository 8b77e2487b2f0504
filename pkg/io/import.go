package io

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/gml/pkg/gml"
)

// ReadGML tokenizes everything readable from r and parses it.
//
// Read failures surface as IO_ERROR and parse failures keep their code and
// token position, so callers can still use [errors.Position] on the result.
// ReadGML does not close r.
//
// [errors.Position]: github.com/matzehuels/gml/pkg/errors.Position
func ReadGML(r io.Reader) (*gml.Graph, error) {
	toks, err := gml.Load(r)
	if err != nil {
		return nil, err
	}
	return gml.Parse(toks)
}

// ImportGML opens the file at path and decodes it with [ReadGML].
// Errors are wrapped with the path for context.
func ImportGML(path string) (*gml.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := ReadGML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
