package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/bware/jimpl/internal/errors"
)

// DefaultConfigFile is probed in the working directory when no -config
// flag is given.
const DefaultConfigFile = "jimpl.toml"

// Config holds the tool configuration. File values are overridden by
// command-line flags.
type Config struct {
	// SourcePath lists the roots searched for subject sources.
	SourcePath []string `toml:"sourcepath"`
	// Javac is the compiler executable used in jar mode.
	Javac string `toml:"javac"`
	// Verbose enables detailed diagnostics.
	Verbose bool `toml:"verbose"`
	// Quiet restricts output to errors.
	Quiet bool `toml:"quiet"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		SourcePath: []string{"."},
		Javac:      "javac",
	}
}

// LoadConfig reads a TOML configuration file over the defaults. With an
// empty path the default file is probed and its absence is not an error;
// an explicitly given path must exist.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if _, err := os.Stat(path); err != nil {
		if explicit {
			return config, errors.Wrapf(errors.ConfigurationErrorCode, err, "cannot read config file '%s'", path)
		}
		return config, nil
	}

	if _, err := toml.DecodeFile(path, &config); err != nil {
		return config, errors.Wrapf(errors.ConfigurationErrorCode, err, "invalid config file '%s'", path)
	}
	if len(config.SourcePath) == 0 {
		config.SourcePath = []string{"."}
	}
	if config.Javac == "" {
		config.Javac = "javac"
	}
	return config, nil
}
