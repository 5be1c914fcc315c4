package org

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
)

// Document is the JSON data layout for units. It is also the request body
// shape accepted by the HTTP API.
//
//	{
//	  "units": [
//	    {"id": "CEO", "attrs": {"name": "Ada"}},
//	    {"id": "VP-Sales", "parent": "CEO"}
//	  ]
//	}
type Document struct {
	Units []UnitRecord `json:"units"`
}

// UnitRecord is the serialized form of a [Unit].
type UnitRecord struct {
	ID     string            `json:"id" bson:"_id"`
	Parent string            `json:"parent,omitempty" bson:"parent,omitempty"`
	Attrs  map[string]string `json:"attrs,omitempty" bson:"attrs,omitempty"`
}

// FromDocument builds a graph from decoded records.
func FromDocument(doc Document) (*Graph, error) {
	g := New()
	for i, r := range doc.Units {
		if err := g.AddUnit(Unit{ID: r.ID, Parent: r.Parent, Attrs: copyAttrs(r.Attrs)}); err != nil {
			return nil, orgerrors.Wrap(orgerrors.ErrCodeInvalidInput, err, "units[%d]", i)
		}
	}
	return g, nil
}

// ToDocument converts a graph to its serialization format, in insertion order.
func ToDocument(g *Graph) Document {
	units := g.Units()
	doc := Document{Units: make([]UnitRecord, len(units))}
	for i, u := range units {
		rec := UnitRecord{ID: u.ID, Parent: u.Parent}
		if len(u.Attrs) > 0 {
			rec.Attrs = copyAttrs(u.Attrs)
		}
		doc.Units[i] = rec
	}
	return doc
}

// ReadJSON decodes units from a JSON document.
func ReadJSON(r io.Reader) (*Graph, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, orgerrors.Wrap(orgerrors.ErrCodeInvalidFormat, err, "decode json")
	}
	return FromDocument(doc)
}

// WriteJSON encodes g as an indented JSON document.
func WriteJSON(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToDocument(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalJSON returns the compact canonical JSON encoding of g. Two graphs
// built from the same units in the same order marshal identically, which
// makes the result usable as a cache key input.
func MarshalJSON(g *Graph) ([]byte, error) {
	return json.Marshal(ToDocument(g))
}

// ImportJSON reads units from a JSON file.
func ImportJSON(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer f.Close()
	g, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// ExportJSON writes g to a JSON file.
func ExportJSON(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

func copyAttrs(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
