package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/config"
	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/dashboard"
	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/logging"
	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/utils"
	"github.com/spf13/cobra"
)

var configShowJSON bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set Turismo configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		if configShowJSON {
			b, err := utils.PrettyJSON(c)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		}
		fmt.Printf("addr: %s\n", c.Addr)
		fmt.Printf("log_level: %s\n", c.LogLevel)
		fmt.Printf("max_upload_mb: %d\n", c.MaxUploadMB)
		fmt.Printf("max_display_rows: %d\n", c.MaxDisplayRows)
		fmt.Printf("cache_entries: %d\n", c.CacheEntries)
		fmt.Printf("session_ttl_min: %d\n", c.SessionTTLMin)
		fmt.Printf("csv_delimiter: %q\n", c.CSVDelimiter)
		fmt.Printf("sheet_index: %d\n", c.SheetIndex)
		fmt.Printf("chart_width: %d\n", c.ChartWidth)
		fmt.Printf("chart_height: %d\n", c.ChartHeight)
		if c.HistogramBins > 0 {
			fmt.Printf("histogram_bins: %d\n", c.HistogramBins)
		}
		fmt.Printf("default_background: %s\n", c.DefaultBackground)
		fmt.Printf("default_text: %s\n", c.DefaultText)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "addr":
			cfg.Addr = val
		case "log_level":
			if _, ok := logging.ParseLevel(val); !ok {
				return fmt.Errorf("invalid log_level: %s (use debug|info|warn|error)", val)
			}
			cfg.LogLevel = val
		case "max_upload_mb":
			return setPositiveInt(&cfg.MaxUploadMB, key, val)
		case "max_display_rows":
			return setPositiveInt(&cfg.MaxDisplayRows, key, val)
		case "cache_entries":
			return setPositiveInt(&cfg.CacheEntries, key, val)
		case "session_ttl_min":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for session_ttl_min: %v", val)
			}
			cfg.SessionTTLMin = i
		case "csv_delimiter":
			prev := cfg.CSVDelimiter
			cfg.CSVDelimiter = val
			if _, _, err := cfg.Delimiter(); err != nil {
				cfg.CSVDelimiter = prev
				return err
			}
		case "sheet_index":
			return setPositiveInt(&cfg.SheetIndex, key, val)
		case "chart_width":
			return setPositiveInt(&cfg.ChartWidth, key, val)
		case "chart_height":
			return setPositiveInt(&cfg.ChartHeight, key, val)
		case "histogram_bins":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for histogram_bins: %v", val)
			}
			cfg.HistogramBins = i
		case "default_background", "default_text":
			if !dashboard.ValidColor(val) {
				return fmt.Errorf("invalid color for %s: %s (use #rrggbb)", key, val)
			}
			if key == "default_background" {
				cfg.DefaultBackground = val
			} else {
				cfg.DefaultText = val
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		return saveConfig()
	},
}

func setPositiveInt(dst *int, key, val string) error {
	i, err := strconv.Atoi(val)
	if err != nil || i <= 0 {
		return fmt.Errorf("invalid positive int for %s: %v", key, val)
	}
	*dst = i
	return saveConfig()
}

func saveConfig() error {
	if err := cfgpkg.Save(cfg, cfgFile); err != nil {
		return err
	}
	fmt.Println("Saved config")
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "print as JSON")
}
