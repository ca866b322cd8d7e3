package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultConfigFile is looked up in the working directory when no --config is given
const DefaultConfigFile = "productseed.yaml"

const envPrefix = "PRODUCTSEED"

type Config struct {
	Version   string    `mapstructure:"version"`
	DryRun    bool      `mapstructure:"dry_run"`
	Firestore Firestore `mapstructure:"firestore"`
	Seed      Seed      `mapstructure:"seed"`
	Log       Log       `mapstructure:"log"`
}

type Firestore struct {
	ProjectID       string `mapstructure:"project_id"`
	CredentialsFile string `mapstructure:"credentials_file"`
	Collection      string `mapstructure:"collection"`
}

type Seed struct {
	ProgressEvery int     `mapstructure:"progress_every"`
	RateLimit     float64 `mapstructure:"rate_limit"` // writes per second, 0 = unlimited
	RandomSeed    int64   `mapstructure:"random_seed"`
}

type Log struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// flagBindings maps config keys to the command-line flags that override them
var flagBindings = map[string]string{
	"dry_run":                    "dry-run",
	"firestore.project_id":       "project",
	"firestore.credentials_file": "credentials",
	"firestore.collection":       "collection",
	"seed.progress_every":        "progress-every",
	"seed.rate_limit":            "rate",
	"seed.random_seed":           "seed",
	"log.level":                  "log-level",
}

// LoadConfig reads the config file, environment and flags into a Config.
// An empty path looks for productseed.yaml in the working directory and
// falls back to defaults when it is missing. flags may be nil.
func LoadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	v := newViper()

	if path == "" {
		v.AddConfigPath(".")
		v.SetConfigName(strings.TrimSuffix(DefaultConfigFile, filepath.Ext(DefaultConfigFile)))
		v.SetConfigType("yaml")
	} else {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		for key, name := range flagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag --%s: %w", name, err)
				}
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if config.Firestore.ProjectID == "" {
		config.Firestore.ProjectID = os.Getenv("GOOGLE_CLOUD_PROJECT")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Default returns the configuration used when no file, env or flags are set
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	// Defaults only hold scalar values, this cannot fail
	_ = v.Unmarshal(&config)
	return &config
}

// Validate checks values that would make a seeding run meaningless
func (c *Config) Validate() error {
	if c.Firestore.Collection == "" {
		return fmt.Errorf("firestore.collection must not be empty")
	}
	if c.Seed.ProgressEvery <= 0 {
		return fmt.Errorf("seed.progress_every must be positive, got %d", c.Seed.ProgressEvery)
	}
	if c.Seed.RateLimit < 0 {
		return fmt.Errorf("seed.rate_limit must not be negative, got %v", c.Seed.RateLimit)
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// setDefaults sets default values using Viper
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", "1.0")
	v.SetDefault("dry_run", false)
	v.SetDefault("firestore.project_id", "")
	v.SetDefault("firestore.credentials_file", "")
	v.SetDefault("firestore.collection", "products")
	v.SetDefault("seed.progress_every", 100)
	v.SetDefault("seed.rate_limit", 0.0)
	v.SetDefault("seed.random_seed", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Save writes the config to a YAML file
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultConfigFile
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("version", c.Version)
	v.Set("firestore.project_id", c.Firestore.ProjectID)
	v.Set("firestore.credentials_file", c.Firestore.CredentialsFile)
	v.Set("firestore.collection", c.Firestore.Collection)
	v.Set("seed.progress_every", c.Seed.ProgressEvery)
	v.Set("seed.rate_limit", c.Seed.RateLimit)
	v.Set("seed.random_seed", c.Seed.RandomSeed)
	v.Set("log.level", c.Log.Level)
	v.Set("log.development", c.Log.Development)

	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
