package org

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
)

// Default CSV column names.
const (
	DefaultIDColumn     = "id"
	DefaultParentColumn = "parent"
)

// CSVOptions configures [ReadCSV]. Zero values select the defaults.
type CSVOptions struct {
	IDColumn     string // Header of the identifier column (default "id")
	ParentColumn string // Header of the parent column (default "parent")
	Comma        rune   // Field delimiter (default ',')
}

func (o CSVOptions) withDefaults() CSVOptions {
	if o.IDColumn == "" {
		o.IDColumn = DefaultIDColumn
	}
	if o.ParentColumn == "" {
		o.ParentColumn = DefaultParentColumn
	}
	if o.Comma == 0 {
		o.Comma = ','
	}
	return o
}

// ReadCSV decodes tabular unit records from r.
//
// The first row is the header. Header names are matched case-insensitively
// after trimming. The id column is required; the parent column is optional.
// Every other column becomes an attribute keyed by its lower-cased header;
// empty cells are skipped.
func ReadCSV(r io.Reader, opts CSVOptions) (*Graph, error) {
	opts = opts.withDefaults()

	cr := csv.NewReader(r)
	cr.Comma = opts.Comma
	// Leading-space trimming would swallow empty fields of whitespace delimiters.
	cr.TrimLeadingSpace = !unicode.IsSpace(opts.Comma)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, orgerrors.New(orgerrors.ErrCodeInvalidInput, "csv: missing header row")
	}
	if err != nil {
		return nil, orgerrors.Wrap(orgerrors.ErrCodeInvalidFormat, err, "csv header")
	}

	cols := make([]string, len(header))
	idCol, parentCol := -1, -1
	for i, h := range header {
		cols[i] = strings.ToLower(strings.TrimSpace(h))
		switch cols[i] {
		case strings.ToLower(opts.IDColumn):
			idCol = i
		case strings.ToLower(opts.ParentColumn):
			parentCol = i
		}
	}
	if idCol < 0 {
		return nil, orgerrors.New(orgerrors.ErrCodeInvalidInput, "csv: no %q column in header", opts.IDColumn)
	}

	g := New()
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, orgerrors.Wrap(orgerrors.ErrCodeInvalidFormat, err, "csv")
		}
		line, _ := cr.FieldPos(0)
		if isBlank(record) {
			continue
		}

		u := Unit{Attrs: make(map[string]string)}
		for i, v := range record {
			v = strings.TrimSpace(v)
			switch i {
			case idCol:
				u.ID = v
			case parentCol:
				u.Parent = v
			default:
				if v != "" && i < len(cols) && cols[i] != "" {
					u.Attrs[cols[i]] = v
				}
			}
		}
		if err := g.AddUnit(u); err != nil {
			return nil, orgerrors.Wrap(orgerrors.ErrCodeInvalidInput, err, "csv line %d", line)
		}
	}
	return g, nil
}

// ImportCSV reads units from a CSV file. Files ending in .tsv default to a
// tab delimiter.
func ImportCSV(path string, opts CSVOptions) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer f.Close()
	if opts.Comma == 0 && strings.HasSuffix(strings.ToLower(path), ".tsv") {
		opts.Comma = '\t'
	}
	g, err := ReadCSV(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func openError(path string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return orgerrors.Wrap(orgerrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	return fmt.Errorf("open %s: %w", path, err)
}
