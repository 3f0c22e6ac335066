// internal/appconfig/appconfig.go
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// DefaultConfigPath is where Load looks when no path is given.
	DefaultConfigPath = "config/config.json"
	// LegacyConfigPath is the older config location, relative to the
	// working directory.
	LegacyConfigPath = "hwcompare.json"

	// DefaultTjMax is the CPU junction limit used for thermal headroom.
	DefaultTjMax = 100.0
	// DefaultLogFile receives the file copy of every log record.
	DefaultLogFile = "hwcompare.log"
)

// Config holds the merged settings for a run. The JSON names double as the
// viper keys bound to the persistent flags.
type Config struct {
	TjMax        float64 `json:"tjmax" mapstructure:"tjmax"`
	HardwarePath string  `json:"hardwarePath" mapstructure:"hardwarePath"`
	CatalogPath  string  `json:"catalogPath" mapstructure:"catalogPath"`
	StorePath    string  `json:"storePath" mapstructure:"storePath"`
	LogFile      string  `json:"logFile" mapstructure:"logFile"`
	Debug        bool    `json:"debug" mapstructure:"debug"`
	JSONMode     bool    `json:"jsonMode" mapstructure:"jsonMode"`
	Workers      int     `json:"workers" mapstructure:"workers"`

	Export         string `json:"export" mapstructure:"export"`
	ExportMarkdown string `json:"exportMarkdown" mapstructure:"exportMarkdown"`
	ExportHTML     string `json:"exportHTML" mapstructure:"exportHTML"`
	ExportXLSX     string `json:"exportXLSX" mapstructure:"exportXLSX"`
	ChartsDir      string `json:"chartsDir" mapstructure:"chartsDir"`

	ConfigPath string `json:"-" mapstructure:"-"`
}

// TjMaxValue returns the configured TjMAX, or DefaultTjMax when unset.
func (c *Config) TjMaxValue() float64 {
	if c == nil || c.TjMax <= 0 {
		return DefaultTjMax
	}
	return c.TjMax
}

// LogFilePath returns the log file, falling back to DefaultLogFile.
func (c *Config) LogFilePath() string {
	if c == nil || c.LogFile == "" {
		return DefaultLogFile
	}
	return c.LogFile
}

// WorkerCount bounds parallel report decoding.
func (c *Config) WorkerCount() int {
	if c != nil && c.Workers > 0 {
		return c.Workers
	}
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 4
}

// Validate rejects settings no run can use.
func (c *Config) Validate() error {
	if c.TjMax < 0 {
		return fmt.Errorf("tjmax must not be negative, got %v", c.TjMax)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// Load reads the configuration file at path. An empty path tries
// DefaultConfigPath, then the legacy file in the working directory.
func Load(path string) (Config, error) {
	if path != "" {
		return loadFromPath(path)
	}

	cfg, err := loadFromPath(DefaultConfigPath)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	legacy, legacyErr := loadFromPath(LegacyConfigPath)
	if legacyErr == nil {
		return legacy, nil
	}
	if errors.Is(legacyErr, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config file not found at %s or %s: %w", DefaultConfigPath, LegacyConfigPath, err)
	}
	return Config{}, legacyErr
}

func loadFromPath(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		cfg.ConfigPath = abs
	} else {
		cfg.ConfigPath = path
	}
	return cfg, nil
}
