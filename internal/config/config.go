package config

import (
	"fmt"
	"os"
	"time"

	"countdown_tui/internal/timefmt"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Timestamp      int           `yaml:"timestamp"`
	Delay          time.Duration `yaml:"delay"`
	Format         string        `yaml:"format"`
	ShowDoubleZero bool          `yaml:"show_double_zero"`
	LogDB          string        `yaml:"log_db"`
	DebugLog       string        `yaml:"debug_log"`
	Plain          bool          `yaml:"plain"`
}

func Default() *Config {
	return &Config{
		Timestamp: 0,
		Delay:     time.Second,
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyFlags copies every flag the user set explicitly. With fromDefaults
// set, unchanged flags are copied too, so their env-backed defaults apply.
func (c *Config) ApplyFlags(fs *pflag.FlagSet, fromDefaults bool) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil || (!f.Changed && !fromDefaults) {
			return
		}
		switch f.Name {
		case "timestamp":
			c.Timestamp, err = fs.GetInt(f.Name)
		case "delay":
			c.Delay, err = fs.GetDuration(f.Name)
		case "format":
			c.Format, err = fs.GetString(f.Name)
		case "show-double-zero":
			c.ShowDoubleZero, err = fs.GetBool(f.Name)
		case "log-db":
			c.LogDB, err = fs.GetString(f.Name)
		case "debug-log":
			c.DebugLog, err = fs.GetString(f.Name)
		case "plain":
			c.Plain, err = fs.GetBool(f.Name)
		}
	})
	return err
}

func (c *Config) Validate() error {
	if c.Timestamp < 0 {
		return fmt.Errorf("timestamp must not be negative")
	}
	if c.Delay <= 0 {
		return fmt.Errorf("delay must be positive")
	}
	if _, err := timefmt.ParseFormat(c.Format); err != nil {
		return err
	}
	return nil
}

// DisplayFormat returns the parsed format, Auto when it cannot be parsed.
func (c *Config) DisplayFormat() timefmt.Format {
	f, _ := timefmt.ParseFormat(c.Format)
	return f
}
