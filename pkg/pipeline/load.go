package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/orgchart/pkg/cache"
	"github.com/matzehuels/orgchart/pkg/org"
)

// Load reads the organization named by opts: a data file, or a MongoDB
// collection when MongoURI is set.
func Load(ctx context.Context, opts Options) (*org.Graph, error) {
	if opts.MongoURI != "" {
		return loadMongo(ctx, opts)
	}
	return org.Import(opts.Input)
}

func loadMongo(ctx context.Context, opts Options) (*org.Graph, error) {
	client, err := org.ConnectMongo(ctx, opts.MongoURI)
	if err != nil {
		return nil, err
	}
	defer client.Disconnect(context.WithoutCancel(ctx))

	coll := client.Database(opts.MongoDatabase).Collection(opts.MongoCollection)
	return org.LoadMongo(ctx, coll, org.MongoOptions{})
}

// SelectTargets returns the units to lay out: the subtree under Base (cut
// at Depth) or every unit, narrowed by Filter. The base always stays in
// the selection so it can anchor the chart.
func SelectTargets(g *org.Graph, opts Options) ([]string, error) {
	targets := org.All(g)
	if opts.Base != "" {
		var err error
		if targets, err = org.Subtree(g, opts.Base, opts.Depth); err != nil {
			return nil, err
		}
	}

	pred, err := ParseFilter(opts.Filter)
	if err != nil || pred == nil {
		return targets, err
	}
	matched := make(map[string]bool)
	for _, id := range org.Filter(g, pred) {
		matched[id] = true
	}
	kept := targets[:0]
	for _, id := range targets {
		if matched[id] || id == opts.Base {
			kept = append(kept, id)
		}
	}
	return kept, nil
}

// GraphHash returns the content hash of g's canonical JSON form.
func GraphHash(g *org.Graph) (string, error) {
	data, err := org.MarshalJSON(g)
	if err != nil {
		return "", fmt.Errorf("serialize graph: %w", err)
	}
	return cache.Hash(data), nil
}
