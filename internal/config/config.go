package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	AppName string `mapstructure:"app_name"`

	Storage struct {
		Workdir string `mapstructure:"workdir"`
	} `mapstructure:"storage"`

	Batch struct {
		OutputFile string `mapstructure:"output_file"`
		LogFile    string `mapstructure:"log_file"`
	} `mapstructure:"batch"`
}

// Load reads an optional yaml config file. An empty path yields the
// defaults: workdir ".", output.txt and log.csv inside the workdir.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("app_name", "dunearchive")
	v.SetDefault("storage.workdir", ".")
	v.SetDefault("batch.output_file", "output.txt")
	v.SetDefault("batch.log_file", "log.csv")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// OutputPath resolves the output file relative to the workdir.
func (c *Config) OutputPath() string { return c.resolve(c.Batch.OutputFile) }

// LogPath resolves the audit log relative to the workdir.
func (c *Config) LogPath() string { return c.resolve(c.Batch.LogFile) }

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Storage.Workdir, p)
}
