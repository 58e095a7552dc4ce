package commands

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/czcorpus/kwic/internal/cli"
	"github.com/czcorpus/kwic/internal/cli/config"
	"github.com/czcorpus/kwic/internal/logging"
	"github.com/czcorpus/kwic/internal/web"
	"github.com/czcorpus/kwic/internal/web/cache"
	"github.com/czcorpus/kwic/internal/web/ratelimit"
)

// NewServeCommand starts the HTTP/WebSocket search API server, grounded
// on the teacher's internal/web/server.go http.Server wrapper, scoped
// down from its TLS/HTTP2 configurability to the plain listener this
// module needs.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the search API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger, err := logging.New(cfg.Logging.Level, cfg.Logging.JSON)
			if err != nil {
				return err
			}
			defer logger.Sync()

			idx, err := cli.LoadIndex(context.Background(), cfg)
			if err != nil {
				return fmt.Errorf("building index: %w", err)
			}

			var resultCache cache.Cache
			if cfg.Redis.Addr != "" {
				client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
				resultCache = cache.NewRedisCache(client, time.Duration(cfg.Redis.TTL)*time.Second)
			}

			limiter := ratelimit.New(ratelimit.DefaultConfig())

			router := web.NewRouter(idx, web.Config{
				APIPrefix:    cfg.Server.APIPrefix,
				DefaultLeft:  cfg.Server.DefaultLeft,
				DefaultRight: cfg.Server.DefaultRight,
				MaxPageSize:  cfg.Server.MaxPageSize,
				AuthSecret:   cfg.Auth.Secret,
			}, logger, resultCache, limiter)

			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			logger.Sugar().Infof("listening on %s", addr)
			return http.ListenAndServe(addr, router)
		},
	}
}
