package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/layout"
	"github.com/matzehuels/orgchart/pkg/pipeline"
)

// fileConfig is the --config TOML file:
//
//	[layout]
//	margin_px = 20
//	horizontal_spacing_px = 180
//
//	[render]
//	style = "rounded"
//	formats = ["svg", "png"]
//
//	[mongo]
//	uri = "mongodb://localhost:27017"
//	database = "hr"
//
//	[server]
//	addr = ":9000"
//	redis_addr = "localhost:6379"
type fileConfig struct {
	Layout layout.Config `toml:"layout"`
	Render renderConfig  `toml:"render"`
	Mongo  mongoConfig   `toml:"mongo"`
	Server serverConfig  `toml:"server"`
}

type renderConfig struct {
	Formats  []string `toml:"formats"`
	Style    string   `toml:"style"`
	Renderer string   `toml:"renderer"`
	Titles   bool     `toml:"titles"`
	Scale    float64  `toml:"scale"`
}

type mongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

type serverConfig struct {
	Addr          string `toml:"addr"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	KeyPrefix     string `toml:"key_prefix"`
}

// loadConfig decodes a TOML config file. An empty path yields the zero
// config. Unknown keys are rejected.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, orgerrors.Wrap(orgerrors.ErrCodeInvalidInput, err, "config %s: %v", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, orgerrors.New(orgerrors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// chartFlags are the data source, selection, layout and render flags
// shared by layout, render, levels and browse.
type chartFlags struct {
	config  string
	noCache bool
	refresh bool
	formats string

	mongoURI        string
	mongoDB         string
	mongoCollection string

	opts pipeline.Options
}

func (f *chartFlags) register(cmd *cobra.Command, withRender bool) {
	def := layout.DefaultConfig()
	fs := cmd.Flags()

	fs.StringVar(&f.config, "config", "", "TOML config file with [layout], [render] and [mongo] sections")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "recompute even if cached")

	fs.StringVar(&f.mongoURI, "mongo-uri", "", "load units from MongoDB instead of a data file")
	fs.StringVar(&f.mongoDB, "mongo-db", "", "MongoDB database")
	fs.StringVar(&f.mongoCollection, "mongo-collection", pipeline.DefaultMongoCollection, "MongoDB collection")

	fs.StringVarP(&f.opts.Base, "base", "b", "", "unit to place as the sole root")
	fs.IntVarP(&f.opts.Depth, "depth", "d", 0, "levels below --base to include (0 = all)")
	fs.StringVar(&f.opts.Filter, "filter", "", "only include units with attribute key=value")

	fs.Float64Var(&f.opts.Layout.Margin, "margin", def.Margin, "canvas margin")
	fs.Float64Var(&f.opts.Layout.HSpacing, "h-spacing", def.HSpacing, "horizontal distance between box centers")
	fs.Float64Var(&f.opts.Layout.VSpacing, "v-spacing", def.VSpacing, "vertical distance between levels")
	fs.Float64Var(&f.opts.Layout.BoxWidth, "box-width", def.BoxWidth, "box width")
	fs.Float64Var(&f.opts.Layout.BoxHeight, "box-height", def.BoxHeight, "box height")

	if withRender {
		fs.StringVarP(&f.formats, "format", "f", pipeline.FormatSVG, "output format(s): svg, dot, png, pdf, json (comma-separated)")
		fs.StringVar(&f.opts.Style, "style", pipeline.DefaultStyle, "visual style: simple, rounded")
		fs.StringVar(&f.opts.Renderer, "renderer", pipeline.DefaultRenderer, "renderer: native, graphviz")
		fs.BoolVar(&f.opts.Titles, "titles", false, "show unit titles")
		fs.Float64Var(&f.opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	}
}

// resolve layers the config file under explicitly set flags and returns
// pipeline options for input (which may be empty when MongoDB is used).
func (f *chartFlags) resolve(cmd *cobra.Command, input string) (pipeline.Options, error) {
	cfg, err := loadConfig(f.config)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := f.opts
	opts.Input = input
	opts.Refresh = f.refresh
	opts.Formats = pipeline.ParseFormats(f.formats)

	changed := cmd.Flags().Changed
	override := func(flag string, dst *float64, v float64) {
		if !changed(flag) && v != 0 {
			*dst = v
		}
	}
	override("margin", &opts.Layout.Margin, cfg.Layout.Margin)
	override("h-spacing", &opts.Layout.HSpacing, cfg.Layout.HSpacing)
	override("v-spacing", &opts.Layout.VSpacing, cfg.Layout.VSpacing)
	override("box-width", &opts.Layout.BoxWidth, cfg.Layout.BoxWidth)
	override("box-height", &opts.Layout.BoxHeight, cfg.Layout.BoxHeight)
	override("scale", &opts.Scale, cfg.Render.Scale)

	if !changed("format") && len(cfg.Render.Formats) > 0 {
		opts.Formats = cfg.Render.Formats
	}
	if !changed("style") && cfg.Render.Style != "" {
		opts.Style = cfg.Render.Style
	}
	if !changed("renderer") && cfg.Render.Renderer != "" {
		opts.Renderer = cfg.Render.Renderer
	}
	if !changed("titles") && cfg.Render.Titles {
		opts.Titles = true
	}

	opts.MongoURI = pick(changed("mongo-uri"), f.mongoURI, cfg.Mongo.URI)
	opts.MongoDatabase = pick(changed("mongo-db"), f.mongoDB, cfg.Mongo.Database)
	opts.MongoCollection = pick(changed("mongo-collection"), f.mongoCollection, cfg.Mongo.Collection)
	if input != "" && !changed("mongo-uri") {
		opts.MongoURI = ""
	}

	if opts.Input == "" && opts.MongoURI == "" {
		return opts, fmt.Errorf("a data file argument or --mongo-uri is required")
	}
	return opts, nil
}

// pick returns flagVal if the flag was set, otherwise the config value
// when present, otherwise flagVal (the flag default).
func pick(flagSet bool, flagVal, cfgVal string) string {
	if flagSet || cfgVal == "" {
		return flagVal
	}
	return cfgVal
}
