package org

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
)

// yamlDocument is the YAML data layout:
//
//	units:
//	  - id: CEO
//	    name: Ada Lovelace
//	  - id: VP-Sales
//	    parent: CEO
//	    title: Vice President Sales
//
// Keys other than id and parent become attributes. An explicit attrs
// mapping is also accepted and takes precedence over flattened keys.
type yamlDocument struct {
	Units []yamlUnit `yaml:"units"`
}

type yamlUnit struct {
	ID     string            `yaml:"id"`
	Parent string            `yaml:"parent,omitempty"`
	Nested map[string]string `yaml:"attrs,omitempty"`
	Attrs  map[string]string `yaml:",inline"`
}

// ReadYAML decodes units from a YAML document.
func ReadYAML(r io.Reader) (*Graph, error) {
	var doc yamlDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, orgerrors.Wrap(orgerrors.ErrCodeInvalidFormat, err, "decode yaml")
	}

	g := New()
	for i, yu := range doc.Units {
		attrs := yu.Attrs
		if len(yu.Nested) > 0 {
			if attrs == nil {
				attrs = make(map[string]string, len(yu.Nested))
			}
			for k, v := range yu.Nested {
				attrs[k] = v
			}
		}
		u := Unit{ID: yu.ID, Parent: yu.Parent, Attrs: attrs}
		if err := g.AddUnit(u); err != nil {
			return nil, orgerrors.Wrap(orgerrors.ErrCodeInvalidInput, err, "units[%d]", i)
		}
	}
	return g, nil
}

// ImportYAML reads units from a YAML file.
func ImportYAML(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer f.Close()
	g, err := ReadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
