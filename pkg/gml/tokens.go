package gml

import (
	"io"
	"os"
	"strings"

	"github.com/matzehuels/gml/pkg/errors"
)

// Tokens is the whitespace-split form of a GML document. A token's position
// is its index in the slice; it is the only location information kept.
type Tokens []string

// Tokenize splits text on runs of Unicode whitespace.
//
// The split is not aware of quoted strings: whitespace inside a string value
// becomes a token boundary and is later rejoined with single spaces, so tabs,
// newlines and repeated spaces inside strings do not survive parsing.
func Tokenize(text string) Tokens {
	return Tokens(strings.Fields(text))
}

// Load reads all of r and tokenizes it.
// Read failures are returned as IO_ERROR.
func Load(r io.Reader) (Tokens, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read input")
	}
	return Tokenize(string(data)), nil
}

// LoadFile reads the file at path and tokenizes it.
func LoadFile(path string) (Tokens, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}
	return Tokenize(string(data)), nil
}
