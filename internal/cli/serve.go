package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flexgrid/internal/server"
	"github.com/matzehuels/flexgrid/pkg/cache"
	"github.com/matzehuels/flexgrid/pkg/observability"
	"github.com/matzehuels/flexgrid/pkg/pipeline"
)

// redisAddrEnv names the environment variable read when --redis-addr is unset.
const redisAddrEnv = "FLEXGRID_REDIS_ADDR"

// serveCommand creates the serve command for the HTTP layout service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisOpts cache.RedisOptions
		keyPrefix string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout service",
		Long: `Run the HTTP layout service.

Endpoints:
  GET  /healthz
  POST /v1/layouts
  POST /v1/render/{svg|txt|json}

Layouts and artifacts are cached in Redis when --redis-addr (or ` + redisAddrEnv + `)
is set, and not cached otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if redisOpts.Addr == "" {
				redisOpts.Addr = os.Getenv(redisAddrEnv)
			}
			return c.runServe(cmd.Context(), addr, redisOpts, keyPrefix)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisOpts.Addr, "redis-addr", "", "redis address for the shared cache (env "+redisAddrEnv+")")
	cmd.Flags().StringVar(&redisOpts.Password, "redis-password", "", "redis password")
	cmd.Flags().IntVar(&redisOpts.DB, "redis-db", 0, "redis database")
	cmd.Flags().StringVar(&keyPrefix, "key-prefix", appName+":", "prefix for cache keys")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, redisOpts cache.RedisOptions, keyPrefix string) error {
	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)

	var cc cache.Cache = cache.NewNullCache()
	cacheDesc := "disabled"
	if redisOpts.Addr != "" {
		rc, err := cache.NewRedisCache(ctx, redisOpts)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		cc = rc
		cacheDesc = "redis " + redisOpts.Addr
	} else {
		c.Logger.Warn("no redis address, caching disabled")
	}

	runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, keyPrefix), c.Logger)
	defer runner.Close()

	printInfo("Starting layout service")
	printKeyValue("address", addr)
	printKeyValue("cache", cacheDesc)
	printKeyValue("key prefix", keyPrefix)
	return server.New(server.Config{Addr: addr, Runner: runner, Logger: c.Logger}).ListenAndServe(ctx)
}
