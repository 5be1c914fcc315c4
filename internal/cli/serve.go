package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/internal/server"
	"github.com/matzehuels/orgchart/pkg/cache"
	"github.com/matzehuels/orgchart/pkg/observability"
	"github.com/matzehuels/orgchart/pkg/pipeline"
)

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	config        string
	addr          string
	redisAddr     string
	redisPassword string
	redisDB       int
	keyPrefix     string
	noCache       bool
	timeout       time.Duration
	maxBody       int64
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Layouts and artifacts are cached in the local cache directory, or in Redis
when --redis-addr is set so several replicas can share stored layouts.
The server shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.resolve(cmd); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.config, "config", "", "TOML config file with a [server] section")
	cmd.Flags().StringVar(&opts.addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "Redis address for a shared cache (host:port)")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&opts.keyPrefix, "key-prefix", "", "namespace for cache keys, e.g. per tenant")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching (stored layouts are lost immediately)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", server.DefaultTimeout, "per-request processing limit")
	cmd.Flags().Int64Var(&opts.maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum request body size in bytes")

	return cmd
}

// resolve fills unset flags from the [server] section of the config file.
func (o *serveOpts) resolve(cmd *cobra.Command) error {
	cfg, err := loadConfig(o.config)
	if err != nil {
		return err
	}
	changed := cmd.Flags().Changed
	o.addr = pick(changed("addr"), o.addr, cfg.Server.Addr)
	o.redisAddr = pick(changed("redis-addr"), o.redisAddr, cfg.Server.RedisAddr)
	o.redisPassword = pick(changed("redis-password"), o.redisPassword, cfg.Server.RedisPassword)
	o.keyPrefix = pick(changed("key-prefix"), o.keyPrefix, cfg.Server.KeyPrefix)
	if !changed("redis-db") && cfg.Server.RedisDB != 0 {
		o.redisDB = cfg.Server.RedisDB
	}
	return nil
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	store, err := c.serverCache(ctx, opts)
	if err != nil {
		return err
	}

	var keyer cache.Keyer
	if opts.keyPrefix != "" {
		keyer = cache.NewScopedKeyer(nil, opts.keyPrefix)
	}
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	defer runner.Close()

	observability.SetPipelineHooks(observability.LogPipelineHooks(c.Logger))
	observability.SetCacheHooks(observability.LogCacheHooks(c.Logger))
	defer observability.Reset()

	srv := server.New(server.Config{
		Addr:         opts.addr,
		Timeout:      opts.timeout,
		MaxBodyBytes: opts.maxBody,
	}, runner, c.Logger)

	printSuccess("Listening on %s", styleHighlight.Render(opts.addr))
	printDetail("POST /v1/layouts · GET /v1/layouts/{id}/render · POST /v1/render")
	return srv.ListenAndServe(ctx)
}

// serverCache picks the backing store: Redis when configured, otherwise the
// local file cache.
func (c *CLI) serverCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	switch {
	case opts.noCache:
		printWarning("Caching disabled: stored layouts cannot be fetched")
		return cache.NewNullCache(), nil
	case opts.redisAddr != "":
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     opts.redisAddr,
			Password: opts.redisPassword,
			DB:       opts.redisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect cache: %w", err)
		}
		printInfo("Using Redis cache at %s", opts.redisAddr)
		return rc, nil
	default:
		return newCache(false)
	}
}
