package pipeline

import (
	"github.com/matzehuels/orgchart/pkg/cache"
	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/layout"
	"github.com/matzehuels/orgchart/pkg/org"
)

// ComputeLayout selects targets from g and lays them out. Diagnostics are
// recorded in the returned layout and forwarded to opts.Diagnostics and
// opts.Logger.
func ComputeLayout(g *org.Graph, opts Options) (graph.Layout, error) {
	targets, err := SelectTargets(g, opts)
	if err != nil {
		return graph.Layout{}, err
	}
	return computeTargets(g, targets, opts)
}

func computeTargets(g *org.Graph, targets []string, opts Options) (graph.Layout, error) {
	rec := &layout.Recorder{}
	res, err := layout.Calculate(g, targets,
		layout.WithBase(opts.Base),
		layout.WithConfig(opts.Layout),
		layout.WithDiagnostics(layout.Tee(rec, opts.Diagnostics, layout.LogDiagnostics(opts.Logger))),
	)
	if err != nil {
		return graph.Layout{}, err
	}

	l := graph.FromResult(res, g)
	l.Base = opts.Base
	l.Diagnostics = rec.Events()
	return l, nil
}

// replayDiagnostics reports the events stored with a cached layout as if
// the layout had just been computed.
func replayDiagnostics(l graph.Layout, opts Options) {
	d := layout.Tee(opts.Diagnostics, layout.LogDiagnostics(opts.Logger))
	for _, e := range l.Diagnostics {
		d.Report(e)
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Base:      o.Base,
		Depth:     o.Depth,
		Filter:    o.Filter,
		Margin:    o.Layout.Margin,
		HSpacing:  o.Layout.HSpacing,
		VSpacing:  o.Layout.VSpacing,
		BoxWidth:  o.Layout.BoxWidth,
		BoxHeight: o.Layout.BoxHeight,
	}
}
