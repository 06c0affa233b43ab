package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config controls how strokes are converted.
type Config struct {
	// Samples is the number of points each stroke is sampled at.
	Samples int `yaml:"samples" toml:"samples"`
	// Tolerance is the Douglas–Peucker tolerance, in normalized units. With
	// the default unit of 0.5, a character spans at most one normalized unit.
	Tolerance float64 `yaml:"tolerance" toml:"tolerance"`
	// Unit is half the span of the larger side of a normalized character.
	Unit float64 `yaml:"unit" toml:"unit"`
	// Precision is the number of decimal places of output coordinates.
	Precision int `yaml:"precision" toml:"precision"`
	// Workers is the number of characters converted concurrently. Zero
	// uses one worker per CPU.
	Workers int `yaml:"workers" toml:"workers"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Samples:   40,
		Tolerance: 0.04,
		Unit:      0.5,
		Precision: 4,
		Workers:   1,
	}
}

// Validate reports all invalid settings of c.
func (c Config) Validate() error {
	var errs []error
	if c.Samples < 2 {
		errs = append(errs, fmt.Errorf("samples must be at least 2, got %d", c.Samples))
	}
	if !(c.Tolerance > 0) {
		errs = append(errs, fmt.Errorf("tolerance must be positive, got %g", c.Tolerance))
	}
	if !(c.Unit > 0) {
		errs = append(errs, fmt.Errorf("unit must be positive, got %g", c.Unit))
	}
	if c.Precision < 0 || c.Precision > 15 {
		errs = append(errs, fmt.Errorf("precision must be between 0 and 15, got %d", c.Precision))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	return errors.Join(errs...)
}

// LoadConfig reads a configuration file. Files ending in .toml are decoded as
// TOML, all others as YAML. Settings missing from the file keep their default
// values and unknown settings are an error. The result is validated.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	var c Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		c, err = decodeTOML(f)
	} else {
		c, err = decodeYAML(f)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func decodeYAML(r io.Reader) (Config, error) {
	c := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return Config{}, err
	}
	return c, nil
}

func decodeTOML(r io.Reader) (Config, error) {
	c := DefaultConfig()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}
