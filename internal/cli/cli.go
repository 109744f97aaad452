package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/uofr/moodle-format-topcoll/pkg/buildinfo"
	"github.com/uofr/moodle-format-topcoll/pkg/cache"
	"github.com/uofr/moodle-format-topcoll/pkg/pipeline"
	"github.com/uofr/moodle-format-topcoll/pkg/settings"
	"github.com/uofr/moodle-format-topcoll/pkg/togglestate"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "topcoll"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// stderr receives spinners and status lines that are not log records.
	stderr io.Writer

	// ConfigPath is the config file read before each command.
	ConfigPath string
	Config     Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:     newLogger(w, level),
		stderr:     w,
		ConfigPath: defaultConfigPath(),
		Config:     DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetVerbose applies the --verbose flag: debug level when set, info
// otherwise.
func (c *CLI) SetVerbose(verbose bool) {
	c.SetLogLevel(levelFor(verbose))
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Topcoll lays out course sections as collapsible topics",
		Long:         `Topcoll computes the collapsed-topics layout of a course: which sections show, in what order, split over how many columns, and which one is current.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", c.ConfigPath, "config file")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.truncateCommand())
	root.AddCommand(c.settingsCommand())
	root.AddCommand(c.togglesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig(cmd *cobra.Command) error {
	cfg, err := LoadConfig(c.ConfigPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", c.ConfigPath, "store", cfg.Store.Backend, "cache", cfg.Cache.Backend)
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. A nil store keeps
// settings in the course file only.
func (c *CLI) newRunner(ctx context.Context, noCache bool, store settings.Store) (*pipeline.Runner, error) {
	pc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(pc, nil, store, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		client, err := c.dialRedis(ctx)
		if err != nil {
			return nil, err
		}
		return cache.NewRedisCache(client), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newSettingsStore opens the configured settings backend.
func (c *CLI) newSettingsStore(ctx context.Context) (settings.Store, error) {
	cfg := c.Config.Store
	switch cfg.Backend {
	case BackendMemory:
		return settings.NewMemoryStore(), nil
	case BackendRedis:
		client, err := c.dialRedis(ctx)
		if err != nil {
			return nil, err
		}
		return settings.NewRedisStore(client, nil), nil
	case BackendMongo:
		store, err := dial(ctx, c.stderr, c.Logger, "MongoDB", func(ctx context.Context) (*settings.MongoStore, error) {
			return settings.DialMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return settings.NewFileStore(cfg.Dir)
	}
}

// newToggleStore opens the configured toggle-state backend.
func (c *CLI) newToggleStore(ctx context.Context) (togglestate.Store, error) {
	cfg := c.Config.Toggles
	if !cfg.Persist {
		return togglestate.NewMemoryStore(), nil
	}
	switch cfg.Backend {
	case BackendMemory:
		return togglestate.NewMemoryStore(), nil
	case BackendRedis:
		client, err := c.dialRedis(ctx)
		if err != nil {
			return nil, err
		}
		return togglestate.NewRedisStore(client, nil), nil
	default:
		return togglestate.NewFileStore(cfg.Dir)
	}
}

func (c *CLI) dialRedis(ctx context.Context) (*redis.Client, error) {
	addr := c.Config.Store.RedisAddr
	return dial(ctx, c.stderr, c.Logger, "redis", func(ctx context.Context) (*redis.Client, error) {
		return cache.DialRedis(ctx, addr)
	})
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/topcoll/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".cache", appName), nil
}
