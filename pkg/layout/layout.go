package layout

// Result is the output of a layout call.
type Result struct {
	Nodes       []Node `json:"nodes"`
	Connections []Edge `json:"connections"`
	Levels      Levels `json:"levels"`

	cfg Config
}

// Bounds returns the canvas extent using the configuration of the call
// that produced r.
func (r *Result) Bounds() Bounds { return ComputeBounds(r.Nodes, r.cfg) }

// Config returns the configuration the result was computed with.
func (r *Result) Config() Config { return r.cfg }

// Option configures a [Calculate] call.
type Option func(*options)

type options struct {
	base string
	cfg  Config
	diag Diagnostics
}

// WithBase makes id the sole root. It must be one of the targets.
func WithBase(id string) Option { return func(o *options) { o.base = id } }

// WithConfig sets the layout dimensions. Defaults to [DefaultConfig].
func WithConfig(cfg Config) Option { return func(o *options) { o.cfg = cfg } }

// WithDiagnostics sets the sink for fallback and root events.
func WithDiagnostics(d Diagnostics) Option {
	return func(o *options) {
		if d != nil {
			o.diag = d
		}
	}
}

// Calculate lays out targets over g. An empty target set yields an empty
// result. Duplicate targets are ignored.
//
// Errors: INVALID_INPUT for a bad configuration or a base that is not a
// target, MISSING_UNIT_DATA for targets (or a base) absent from g. There
// is no partial result.
func Calculate(g Graph, targets []string, opts ...Option) (*Result, error) {
	o := options{cfg: DefaultConfig(), diag: NopDiagnostics{}}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}

	targets = uniqueTargets(targets)
	levels, err := AssignLevels(targets, g, o.base, o.diag)
	if err != nil {
		return nil, err
	}
	groups := GroupByLevel(targets, levels)
	positions, err := ComputeXPositions(groups, g, o.cfg)
	if err != nil {
		return nil, err
	}
	nodes := GenerateNodes(groups, positions, o.cfg)

	return &Result{
		Nodes:       nodes,
		Connections: GenerateConnections(nodes, targets, g),
		Levels:      levels,
		cfg:         o.cfg,
	}, nil
}

// Engine binds a graph, configuration and diagnostics sink for repeated
// layout calls. It holds no per-call state.
type Engine struct {
	graph Graph
	cfg   Config
	diag  Diagnostics
}

// NewEngine creates an engine. A nil diag discards events.
func NewEngine(g Graph, cfg Config, diag Diagnostics) *Engine {
	if diag == nil {
		diag = NopDiagnostics{}
	}
	return &Engine{graph: g, cfg: cfg, diag: diag}
}

// Layout runs [Calculate] with the engine's settings. An empty base
// selects roots from the targets.
func (e *Engine) Layout(targets []string, base string) (*Result, error) {
	return Calculate(e.graph, targets, WithBase(base), WithConfig(e.cfg), WithDiagnostics(e.diag))
}
