package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	Addr           string `mapstructure:"addr" yaml:"addr"`
	LogLevel       string `mapstructure:"log_level" yaml:"log_level"`
	MaxUploadMB    int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
	MaxDisplayRows int    `mapstructure:"max_display_rows" yaml:"max_display_rows"`
	CacheEntries   int    `mapstructure:"cache_entries" yaml:"cache_entries"`
	SessionTTLMin  int    `mapstructure:"session_ttl_min" yaml:"session_ttl_min"`

	// Loader
	CSVDelimiter string `mapstructure:"csv_delimiter" yaml:"csv_delimiter"`
	SheetIndex   int    `mapstructure:"sheet_index" yaml:"sheet_index"`

	// Charts
	ChartWidth    int `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight   int `mapstructure:"chart_height" yaml:"chart_height"`
	HistogramBins int `mapstructure:"histogram_bins" yaml:"histogram_bins"`

	// Theme defaults
	DefaultBackground string `mapstructure:"default_background" yaml:"default_background"`
	DefaultText       string `mapstructure:"default_text" yaml:"default_text"`
}

var defaults = map[string]any{
	"addr":               ":8501",
	"log_level":          "info",
	"max_upload_mb":      200,
	"max_display_rows":   1000,
	"cache_entries":      16,
	"session_ttl_min":    120,
	"csv_delimiter":      ",",
	"sheet_index":        1,
	"chart_width":        800,
	"chart_height":       420,
	"histogram_bins":     0,
	"default_background": "#FFFFFF",
	"default_text":       "#000000",
}

// Defaults returns the configuration used when no file or env overrides exist.
func Defaults() *Global {
	return &Global{
		Addr:              defaults["addr"].(string),
		LogLevel:          defaults["log_level"].(string),
		MaxUploadMB:       defaults["max_upload_mb"].(int),
		MaxDisplayRows:    defaults["max_display_rows"].(int),
		CacheEntries:      defaults["cache_entries"].(int),
		SessionTTLMin:     defaults["session_ttl_min"].(int),
		CSVDelimiter:      defaults["csv_delimiter"].(string),
		SheetIndex:        defaults["sheet_index"].(int),
		ChartWidth:        defaults["chart_width"].(int),
		ChartHeight:       defaults["chart_height"].(int),
		HistogramBins:     defaults["histogram_bins"].(int),
		DefaultBackground: defaults["default_background"].(string),
		DefaultText:       defaults["default_text"].(string),
	}
}

// Dir returns ~/.turismo.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".turismo"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.turismo/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("TURISMO")
	v.AutomaticEnv()

	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		// a missing default file is fine; a named or broken one is not
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if cfgFile != "" || !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Delimiter maps csv_delimiter to a rune. "auto" returns 0 and sniff=true.
func (c *Global) Delimiter() (r rune, sniff bool, err error) {
	switch c.CSVDelimiter {
	case "", ",":
		return ',', false, nil
	case ";":
		return ';', false, nil
	case "\t", "tab":
		return '\t', false, nil
	case "auto":
		return 0, true, nil
	}
	return 0, false, fmt.Errorf("unsupported csv_delimiter: %q (use ',', ';', 'tab' or 'auto')", c.CSVDelimiter)
}
