// Package config loads confstruct settings with viper.
//
// Sources in precedence order (lowest first): built-in defaults, the
// project file (confstruct.yaml, .toml or .json in the working directory,
// or an explicit --config path), then CONFSTRUCT_* environment variables.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"confstruct/internal/errors"
	"confstruct/internal/format"
	"confstruct/internal/match"
)

// EnvPrefix prefixes every environment override, e.g. CONFSTRUCT_WORKERS.
const EnvPrefix = "CONFSTRUCT"

// FileName is the base name of the project file, without extension.
const FileName = "confstruct"

// Config is the resolved tool configuration.
type Config struct {
	// Package overrides the package clause of generated files.
	Package string `mapstructure:"package"`
	// Suffix is appended to the snake_case type name to build output names.
	Suffix string `mapstructure:"suffix"`
	// Header enables the "Code generated" header.
	Header bool `mapstructure:"header"`
	// Comments enables doc comments on generated declarations.
	Comments bool `mapstructure:"comments"`
	// Workers bounds parallel attachment processing.
	Workers int         `mapstructure:"workers"`
	Log     LogConfig   `mapstructure:"log"`
	Watch   WatchConfig `mapstructure:"watch"`
	// Jobs are run by "confstruct gen" when no file is given.
	Jobs []Job `mapstructure:"jobs"`

	// Source is the config file that was read, empty when none was found.
	Source string `mapstructure:"-"`
}

// LogConfig selects the logger flavor.
type LogConfig struct {
	JSON    bool `mapstructure:"json"`
	Verbose bool `mapstructure:"verbose"`
}

// WatchConfig tunes "gen --watch".
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// Job is one configured generation, equivalent to a directive.
type Job struct {
	Type    string `mapstructure:"type"`
	File    string `mapstructure:"file"`
	Format  string `mapstructure:"format"`
	Package string `mapstructure:"package"`
	Output  string `mapstructure:"output"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("package", "")
	v.SetDefault("suffix", "_confstruct.go")
	v.SetDefault("header", true)
	v.SetDefault("comments", true)
	v.SetDefault("workers", 4)
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbose", false)
	v.SetDefault("watch.debounce", 300*time.Millisecond)
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	return v
}

// Load reads configuration. An explicit path must exist; otherwise a
// project file in dir is used when present.
func Load(path, dir string) (*Config, error) {
	v := New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrapf(err, "reading config %s", displayPath(path, dir))
		}
	}

	return LoadWithViper(v)
}

// LoadWithViper decodes and validates the settings held by v.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	cfg.Source = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges and required job fields.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return errors.WithHint(errors.Newf("workers must be at least 1, got %d", c.Workers),
			"set workers in the config file or CONFSTRUCT_WORKERS")
	}

	if !strings.HasSuffix(c.Suffix, ".go") {
		return errors.WithHint(errors.Newf("suffix %q does not end in .go", c.Suffix),
			"the default suffix is _confstruct.go")
	}

	if c.Watch.Debounce < 0 {
		return errors.Newf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}

	for i, job := range c.Jobs {
		if job.Type == "" || job.File == "" {
			return errors.Newf("jobs[%d]: type and file are required", i)
		}

		if job.Format == "" {
			continue
		}

		if _, err := format.Lookup(job.Format); err != nil {
			err = errors.Wrapf(err, "jobs[%d]", i)
			if hint := match.Hint(job.Format, format.Tags(), "did you mean format: %s?"); hint != "" {
				err = errors.WithHint(err, hint)
			}

			return err
		}
	}

	return nil
}

func displayPath(path, dir string) string {
	if path != "" {
		return path
	}

	return dir + "/" + FileName + ".*"
}
