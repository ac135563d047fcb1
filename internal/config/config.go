package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Columns maps lead roles to header names in the input file.
type Columns struct {
	Identifier string `mapstructure:"identifier" yaml:"identifier"`
	Source     string `mapstructure:"source" yaml:"source"`
	Status     string `mapstructure:"status" yaml:"status"`
	Value      string `mapstructure:"value" yaml:"value"`
	Created    string `mapstructure:"created" yaml:"created"`
	Email      string `mapstructure:"email" yaml:"email"`
}

// Global configuration structure.
type Global struct {
	Columns Columns `mapstructure:"columns" yaml:"columns"`

	// ConvertedStatus is the (lower-cased) status value counted as a conversion.
	ConvertedStatus string `mapstructure:"converted_status" yaml:"converted_status"`
	// UnknownLabel groups rows with a missing source or status.
	UnknownLabel string `mapstructure:"unknown_label" yaml:"unknown_label"`

	// Delimiter for CSV input: "," | ";" | "tab". Empty means auto-detect.
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	// SheetName selects the XLSX sheet to load; empty means the first sheet.
	SheetName string `mapstructure:"sheet_name" yaml:"sheet_name"`
	// DateLayouts are extra time layouts tried when parsing the created column.
	DateLayouts []string `mapstructure:"date_layouts" yaml:"date_layouts"`

	// FillValueZero fills missing lead values with 0 instead of keeping them null.
	FillValueZero bool `mapstructure:"fill_value_zero" yaml:"fill_value_zero"`
	// CSVBOM prefixes CSV exports with a UTF-8 BOM for Excel compatibility.
	CSVBOM bool `mapstructure:"csv_bom" yaml:"csv_bom"`

	ExportDir  string `mapstructure:"export_dir" yaml:"export_dir"`
	SampleRows int    `mapstructure:"sample_rows" yaml:"sample_rows"`
	ValueBins  int    `mapstructure:"value_bins" yaml:"value_bins"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.leadscope/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".leadscope")
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
	v.SetEnvPrefix("LEADSCOPE")
	v.AutomaticEnv()

	// Defaults match the sample dataset shipped with the tool.
	v.SetDefault("columns.identifier", "lead_id")
	v.SetDefault("columns.source", "source")
	v.SetDefault("columns.status", "status")
	v.SetDefault("columns.value", "lead_value")
	v.SetDefault("columns.created", "date_added")
	v.SetDefault("columns.email", "email")
	v.SetDefault("converted_status", "converted")
	v.SetDefault("unknown_label", "unknown")
	v.SetDefault("delimiter", "")
	v.SetDefault("sheet_name", "")
	v.SetDefault("date_layouts", []string{})
	v.SetDefault("fill_value_zero", false)
	v.SetDefault("csv_bom", false)
	v.SetDefault("export_dir", "")
	v.SetDefault("sample_rows", 5)
	v.SetDefault("value_bins", 10)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".leadscope")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.ExportDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working dir: %w", err)
		}
		c.ExportDir = wd
	}
	return &c, nil
}

// Default returns a configuration built purely from defaults, ignoring any
// config file or environment. Used by tests and as a programmatic fallback.
func Default() *Global {
	return &Global{
		Columns: Columns{
			Identifier: "lead_id",
			Source:     "source",
			Status:     "status",
			Value:      "lead_value",
			Created:    "date_added",
			Email:      "email",
		},
		ConvertedStatus: "converted",
		UnknownLabel:    "unknown",
		SampleRows:      5,
		ValueBins:       10,
	}
}
