package render

import (
	"encoding/json"
	"io"
)

// JSONRenderer writes neighbor lists as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes the neighbor lists as a JSON array.
func (r *JSONRenderer) Render(results []Neighbors) {
	if results == nil {
		results = []Neighbors{}
	}
	json.NewEncoder(r.W).Encode(results)
}

// compile-time interface check
var _ Renderer = (*JSONRenderer)(nil)
