package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/laneplot/internal/server"
	"github.com/matzehuels/laneplot/pkg/cache"
	"github.com/matzehuels/laneplot/pkg/pipeline"
	"github.com/matzehuels/laneplot/pkg/store"
)

const (
	defaultAddr = ":8080"

	// serverKeyPrefix keeps server cache entries apart from CLI entries
	// when both share a Redis instance.
	serverKeyPrefix = "server:"
)

type serveOpts struct {
	addr    string
	mongo   string
	mongoDB string
	redis   string
	dataDir string
	memory  bool
	noCache bool
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the laneplot HTTP API.

Charts are stored in MongoDB when --mongo is given, in memory with --memory,
and otherwise as JSON files under the data directory. Layouts and artifacts
are cached in Redis when --redis is given, and otherwise in the local cache
directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.mongo, "mongo", "", "MongoDB connection URI for chart storage")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", "laneplot", "MongoDB database name")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "cache in Redis at this URL (default $"+envRedisURL+")")
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "chart directory for the file store (default: XDG data dir)")
	cmd.Flags().BoolVar(&opts.memory, "memory", false, "keep charts in memory only")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	st, err := c.newStore(ctx, opts)
	if err != nil {
		return err
	}

	cc, err := c.newCache(ctx, opts.noCache, opts.redis)
	if err != nil {
		st.Close()
		return err
	}
	runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, serverKeyPrefix), c.Logger)

	srv := server.New(server.Config{
		Runner: runner,
		Store:  st,
		Logger: c.Logger,
	})
	defer srv.Close()

	printInfo("Serving on %s", StyleHighlight.Render(opts.addr))
	return srv.ListenAndServe(ctx, opts.addr)
}

// newStore picks the chart store for serve.
func (c *CLI) newStore(ctx context.Context, opts serveOpts) (store.Store, error) {
	switch {
	case opts.mongo != "":
		c.Logger.Info("using mongodb chart store", "db", opts.mongoDB)
		ms, err := store.NewMongoStore(ctx, store.MongoConfig{URI: opts.mongo, Database: opts.mongoDB})
		if err != nil {
			return nil, err
		}
		return ms, nil
	case opts.memory:
		c.Logger.Info("using in-memory chart store")
		return store.NewMemoryStore(), nil
	}

	dir := opts.dataDir
	if dir == "" {
		base, err := dataDir()
		if err != nil {
			return nil, fmt.Errorf("get data dir: %w", err)
		}
		dir = filepath.Join(base, "charts")
	}
	c.Logger.Info("using file chart store", "dir", dir)
	fs, err := store.NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	return fs, nil
}
