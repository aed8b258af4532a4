package debug

import (
	"golang.org/x/xerrors"
)

const (
	DefaultOutput    = "debug"
	DefaultPrecision = 6
	DefaultFormat    = "lines"
)

type Config struct {
	// Enabled gates every debug routine; when false they return immediately.
	Enabled   bool   `yaml:"enabled"`
	Show      bool   `yaml:"show"`
	Output    string `yaml:"output"`
	Precision int    `yaml:"precision"`
	Format    string `yaml:"format"`
}

func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		Output:    DefaultOutput,
		Precision: DefaultPrecision,
		Format:    DefaultFormat,
	}
}

// LoadConfig reads filename over the defaults. A missing file is not an error.
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()
	if err := readYAML(filename, &cfg); err != nil {
		return cfg, xerrors.Errorf("config: %w", err)
	}
	return cfg, nil
}
