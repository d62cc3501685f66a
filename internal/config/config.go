package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/dragonfruitnetwork/codecutter/internal/report"
)

// ConfigFileName is the well-known config file searched for next to the
// tool and written on first-time solution auto-discovery.
const ConfigFileName = "codecutter.json"

type Config struct {
	SolutionFile string          `mapstructure:"solutionFile" json:"solutionFile"`
	DisplayLevel report.Severity `mapstructure:"displayLevel" json:"displayLevel"`
	ErrorLevel   report.Severity `mapstructure:"errorLevel" json:"errorLevel"`
}

// Default is the configuration written when a solution file is discovered
// without any existing config: show everything, fail on errors.
func Default(solutionFile string) *Config {
	return &Config{
		SolutionFile: solutionFile,
		DisplayLevel: report.SeveritySuggestion,
		ErrorLevel:   report.SeverityError,
	}
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	hook := viper.DecodeHook(mapstructure.TextUnmarshallerHookFunc())
	if err := v.Unmarshal(cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SolutionFile == "" {
		return errors.New("config is missing a solutionFile entry")
	}
	return nil
}

func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Resolver locates the configuration for a run. SearchDir is the directory
// the tool itself lives in; WorkDir is where an auto-generated default
// config is persisted for future runs.
type Resolver struct {
	SearchDir string
	WorkDir   string
}

// Resolve produces the run configuration: an explicit path wins, then a
// well-known config file next to the tool, then solution auto-discovery.
// With nothing to analyze the run aborts.
func (r Resolver) Resolve(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}

	discovered := filepath.Join(r.SearchDir, ConfigFileName)
	if _, err := os.Stat(discovered); err == nil {
		return Load(discovered)
	}

	solutions, err := filepath.Glob(filepath.Join(r.SearchDir, "*.sln"))
	if err != nil {
		return nil, fmt.Errorf("failed to search for solution files: %w", err)
	}

	if len(solutions) == 0 {
		return nil, errors.New("no config file or solution file found - nothing to analyze")
	}

	relative, err := filepath.Rel(r.SearchDir, solutions[0])
	if err != nil {
		return nil, fmt.Errorf("failed to resolve solution path: %w", err)
	}

	cfg := Default(relative)
	if err := cfg.Save(filepath.Join(r.WorkDir, ConfigFileName)); err != nil {
		return nil, err
	}

	return cfg, nil
}
