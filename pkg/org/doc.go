// Package org holds the organization graph consumed by the layout engine.
//
// An organization is a flat list of [Unit] records, each naming its parent
// by identifier. [Graph] indexes those records and derives the parent→children
// adjacency in insertion order. The graph is built once by a reader and is
// read-only afterwards; [layout] never mutates it.
//
// # Readers
//
// Tabular records come from several sources:
//
//	g, err := org.ImportCSV("units.csv", org.CSVOptions{})
//	g, err := org.ImportYAML("org.yaml")
//	g, err := org.ImportJSON("org.json")
//	g, err := org.Import(path)              // dispatch on extension
//	g, err := org.LoadMongo(ctx, coll, org.MongoOptions{})
//
// Every reader validates identifiers with [errors.ValidateUnitID] and rejects
// duplicates. Parent references to units that are not in the data are kept:
// the layout engine treats such units as roots.
//
// # Target Selection
//
// A layout call renders a target set, which may be a strict subset of the
// graph. [All], [Subtree] and [Filter] build the common selections.
//
// [layout]: github.com/matzehuels/orgchart/pkg/layout
// [errors.ValidateUnitID]: github.com/matzehuels/orgchart/pkg/errors.ValidateUnitID
package org
