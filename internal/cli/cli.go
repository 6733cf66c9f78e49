package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mcbanners/banners/pkg/buildinfo"
	"github.com/mcbanners/banners/pkg/config"
	"github.com/mcbanners/banners/pkg/pipeline"
)

const (
	// appName is the application name used for directories and display.
	appName = "banners"

	// configFile is looked up in the config directory when --config is unset.
	configFile = "banners.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	ConfigPath string
	NoCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Render status banners for Minecraft marketplaces and servers",
		Long:         `banners renders 300x100 status images for authors, resources, members and teams on SpigotMC, Ore, CurseForge, Modrinth, Polymart and BuiltByBit, and for Minecraft servers.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.ConfigPath, "config", "c", "", "config file (default: "+configFile+" in the user config dir)")
	root.PersistentFlags().BoolVar(&c.NoCache, "no-cache", false, "disable the entity cache")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.saveCommand())
	root.AddCommand(c.recallCommand())
	root.AddCommand(c.typesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration. An explicit --config must exist; the
// default location is optional.
func (c *CLI) loadConfig() (*config.Config, error) {
	path, required := c.ConfigPath, true
	if path == "" {
		required = false
		if dir, err := configDir(); err == nil {
			path = filepath.Join(dir, configFile)
		}
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}
	if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil && c.Logger.GetLevel() > lvl {
		c.Logger.SetLevel(lvl)
	}
	return cfg, nil
}

// newRunner wires a pipeline for CLI use. The in-process memory cache is
// useless across invocations, so the CLI swaps it for the file cache.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config) (*pipeline.Runner, error) {
	switch {
	case c.NoCache:
		cfg.Cache.Driver = "none"
	case cfg.Cache.Driver == "memory":
		dir, err := cacheDir()
		if err != nil {
			cfg.Cache.Driver = "none"
			break
		}
		cfg.Cache.Driver = "file"
		cfg.Cache.Dir = dir
	}
	return pipeline.Setup(ctx, cfg, c.Logger)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/banners/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/banners/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
