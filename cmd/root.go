package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/config"
	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags (wired to config/viper)
	cfgFile  string
	debug    bool
	logLevel string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "turismo",
	Short: "Turismo: interactive dashboard for tourism data tables",
	Long: `Turismo loads a CSV or Excel file, lets you pick columns, view and download the
filtered table, and draw bar, line, pie, histogram and scatter charts over it.
Run "turismo serve" for the web dashboard; the other commands do the same work from the terminal.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.turismo/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output (same as --log-level debug)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
	} else {
		cfg = c
	}

	level := "info"
	if cfg != nil && cfg.LogLevel != "" {
		level = cfg.LogLevel
	}
	if rootCmd.PersistentFlags().Changed("log-level") {
		level = logLevel
	}
	if debug {
		level = "debug"
	}
	if !logging.SetLevel(level) {
		fmt.Fprintf(os.Stderr, "⚠ Warning: unknown log level %q, using info\n", level)
		logging.SetLevel("info")
	}
}

// effectiveConfig returns the loaded config, or the defaults when loading failed.
func effectiveConfig() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	return cfgpkg.Defaults()
}
