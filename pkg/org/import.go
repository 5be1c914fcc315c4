package org

import (
	"path/filepath"
	"strings"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
)

// Import reads units from path, choosing the reader by file extension:
// .csv and .tsv use [ImportCSV] with default options, .yaml and .yml use
// [ImportYAML], .json uses [ImportJSON].
func Import(path string) (*Graph, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return ImportCSV(path, CSVOptions{})
	case ".yaml", ".yml":
		return ImportYAML(path)
	case ".json":
		return ImportJSON(path)
	default:
		return nil, orgerrors.New(orgerrors.ErrCodeUnsupported, "unsupported data file %s (want .csv, .tsv, .yaml, .yml or .json)", path)
	}
}
