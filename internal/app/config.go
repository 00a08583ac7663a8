package app

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"nlutools/traindata/traindata"
)

const defaultConfigFile = "traindata.yml"

// Config aggregates runtime settings for the training data tool.
type Config struct {
	ExcludedExtractors   []string `yaml:"excludedExtractors"`
	MinExamplesPerIntent int      `yaml:"minExamplesPerIntent"`
	MinExamplesPerEntity int      `yaml:"minExamplesPerEntity"`
	DefaultFormat        string   `yaml:"defaultFormat"`
}

func defaultConfig() Config {
	return Config{
		MinExamplesPerIntent: traindata.MinExamplesPerIntent,
		MinExamplesPerEntity: traindata.MinExamplesPerEntity,
		DefaultFormat:        string(traindata.FormatJSON),
	}
}

// LoadConfig loads configuration from the given path or the default
// traindata.yml. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = defaultConfigFile
	}
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.sanitize()
	return cfg, nil
}

// sanitize clamps out-of-range values back to the defaults.
func (c *Config) sanitize() {
	if c.MinExamplesPerIntent < 1 {
		c.MinExamplesPerIntent = traindata.MinExamplesPerIntent
	}
	if c.MinExamplesPerEntity < 1 {
		c.MinExamplesPerEntity = traindata.MinExamplesPerEntity
	}
	switch traindata.FormatTag(c.DefaultFormat) {
	case traindata.FormatMarkdown, traindata.FormatJSON:
	default:
		c.DefaultFormat = string(traindata.FormatJSON)
	}
}

func extractorSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}
