// Package main provides the swatch-mcp entry point: an MCP server for color
// conversion, image color analysis and list reconciliation.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ironsheep/swatchkit/internal/config"
	"github.com/ironsheep/swatchkit/internal/logger"
	"github.com/ironsheep/swatchkit/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	configFile string
	settings   *viper.Viper
)

var rootCmd = &cobra.Command{
	Use:   "swatch-mcp",
	Short: "swatch-mcp - MCP server for colors and image color analysis",
	Long: `swatch-mcp communicates via MCP protocol over stdin/stdout.
Configure it in your MCP client (e.g., Claude Desktop).

Settings are read from flags, SWATCH_* environment variables
(SWATCH_LOG_LEVEL, SWATCH_CACHE_SIZE, ...) and an optional config file.`,
	SilenceUsage: true,
	RunE:         runServer,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "swatch-mcp %s\n", Version)
		fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	settings = config.NewViper()
	d := config.Default()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (yaml, toml or json)")
	flags.String("log-level", d.LogLevel, "Log level (debug|info|warn|error)")
	flags.String("log-file", "", "Write logs to file instead of stderr")
	flags.Int("cache-size", d.CacheSize, "Maximum number of cached analysis summaries")
	flags.Int("sample-size", d.SampleSize, "Longest side images are reduced to before analysis (0 disables)")
	flags.Int("palette-size", d.PaletteSize, "Number of colors in an image palette")

	bind(flags, map[string]string{
		config.KeyLogLevel:    "log-level",
		config.KeyLogFile:     "log-file",
		config.KeyCacheSize:   "cache-size",
		config.KeySampleSize:  "sample-size",
		config.KeyPaletteSize: "palette-size",
	})

	rootCmd.AddCommand(versionCmd)
}

// bind wires each config key to its flag so that an explicitly set flag
// overrides the environment and the config file.
func bind(flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := settings.BindPFlag(key, flags.Lookup(name)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", name, err)
			os.Exit(1)
		}
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(settings, configFile)
	if err != nil {
		return err
	}

	closer, err := logger.Configure(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	logger.Debug("swatch-mcp starting", "version", Version, "built", BuildTime, "commit", GitCommit)

	srv, err := server.New(*cfg, Version)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("Server error", "error", err)
		return err
	}
	return nil
}
