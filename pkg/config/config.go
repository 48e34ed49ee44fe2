// Package config holds the service configuration loaded from a yaml file.
package config

import (
	"fmt"
	"os"

	"github.com/fortuna-dev/ftapt/pkg/core/storage"
	"gopkg.in/yaml.v3"
)

// Version is the version of the tool, set at build time.
var Version string

// Config is the top level struct representing the service configuration.
type Config struct {
	ApplicationConfiguration ApplicationConfiguration `yaml:"ApplicationConfiguration"`
}

// ApplicationConfiguration holds the application-level settings.
type ApplicationConfiguration struct {
	DBConfiguration storage.Config `yaml:"DBConfiguration"`
	LogLevel        string         `yaml:"LogLevel"`
}

// Default returns the configuration used when no config file is given:
// a BoltDB store next to the working directory and info-level logging.
func Default() Config {
	return Config{
		ApplicationConfiguration: ApplicationConfiguration{
			DBConfiguration: storage.Config{
				Type: "boltdb",
				BoltDBOptions: storage.BoltDBOptions{
					FilePath: "./ftapt.db",
				},
			},
			LogLevel: "info",
		},
	}
}

// Load attempts to load the config from the given path.
func Load(path string) (Config, error) {
	configData, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}

	config := Default()
	err = yaml.Unmarshal(configData, &config)
	if err != nil {
		return Config{}, fmt.Errorf("problem unmarshaling config data: %w", err)
	}

	return config, nil
}
