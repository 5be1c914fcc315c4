package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
)

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and validates it:
// edges must reference existing nodes, and node ids must be unique. An
// empty style defaults to [StyleSimple].
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, orgerrors.Wrap(orgerrors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Validate checks structural consistency and fills the default style.
func (l *Layout) Validate() error {
	if l.Style == "" {
		l.Style = StyleSimple
	}
	if !ValidStyle(l.Style) {
		return orgerrors.New(orgerrors.ErrCodeInvalidStyle, "unknown style %q", l.Style)
	}
	if len(l.Edges) > 0 && len(l.Nodes) == 0 {
		return orgerrors.New(orgerrors.ErrCodeInvalidFormat, "layout has edges but no nodes")
	}

	ids := make(map[string]bool, len(l.Nodes))
	for _, n := range l.Nodes {
		if n.ID == "" {
			return orgerrors.New(orgerrors.ErrCodeInvalidFormat, "layout node without id")
		}
		if ids[n.ID] {
			return orgerrors.New(orgerrors.ErrCodeInvalidFormat, "duplicate node %q", n.ID)
		}
		ids[n.ID] = true
	}
	for _, e := range l.Edges {
		if !ids[e.From] || !ids[e.To] {
			return orgerrors.New(orgerrors.ErrCodeInvalidFormat, "edge %s→%s references unknown node", e.From, e.To)
		}
	}
	return nil
}

// WriteLayout writes a Layout as indented JSON to w.
func WriteLayout(l Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadLayout decodes and validates a Layout from r.
func ReadLayout(r io.Reader) (Layout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout: %w", err)
	}
	return UnmarshalLayout(data)
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
