// Package config loads the tuning file shared by the binaries. Values are
// layered: built-in defaults, then an optional YAML file, then flags.
package config

import (
	"bytes"
	"io"
	"math"
	"os"

	"github.com/philipparndt/artoolbox/internal/logging"
	"github.com/philipparndt/artoolbox/pkg/drawing"
	"github.com/philipparndt/artoolbox/pkg/measure"
	"github.com/philipparndt/artoolbox/pkg/simplify"
	"github.com/philipparndt/artoolbox/pkg/tube"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Simplifier holds the stroke reduction thresholds
type Simplifier struct {
	MinSpacing        float64 `yaml:"min_spacing"`
	SmoothingAngleDeg float64 `yaml:"smoothing_angle_deg"`
}

// Tube holds the extrusion settings
type Tube struct {
	Radius          float64 `yaml:"radius"`
	Segments        int     `yaml:"segments"`
	NormalizeLength bool    `yaml:"normalize_length"`
}

// Measure holds the measurement rendering settings
type Measure struct {
	ConnectorRadius float64 `yaml:"connector_radius"`
}

// Log holds the logger settings
type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Config is the whole tuning file
type Config struct {
	Simplifier Simplifier `yaml:"simplifier"`
	Tube       Tube       `yaml:"tube"`
	Measure    Measure    `yaml:"measure"`
	Log        Log        `yaml:"log"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Simplifier: Simplifier{
			MinSpacing:        simplify.DefaultMinSpacing,
			SmoothingAngleDeg: simplify.DefaultSmoothingAngle * 180 / math.Pi,
		},
		Tube: Tube{
			Radius:   drawing.Radius,
			Segments: tube.DefaultSegments,
		},
		Measure: Measure{
			ConnectorRadius: measure.ConnectorRadius,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "failed to read config")
	}
	if err := cfg.decode(bytes.NewReader(data)); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Parse reads YAML from r over the defaults
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	err := cfg.decode(r)
	return cfg, err
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrap(err, "invalid YAML")
	}
	return c.Validate()
}

// Validate reports the first out of range setting
func (c Config) Validate() error {
	if err := c.SimplifierConfig().Validate(); err != nil {
		return errors.Wrap(err, "simplifier")
	}
	switch {
	case !(c.Tube.Radius > 0):
		return errors.Errorf("tube.radius must be > 0, got %v", c.Tube.Radius)
	case c.Tube.Segments < tube.MinSegments:
		return errors.Errorf("tube.segments must be >= %d, got %d", tube.MinSegments, c.Tube.Segments)
	case !(c.Measure.ConnectorRadius > 0):
		return errors.Errorf("measure.connector_radius must be > 0, got %v", c.Measure.ConnectorRadius)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	return nil
}

// SimplifierConfig converts the thresholds for the simplifier
func (c Config) SimplifierConfig() simplify.Config {
	return simplify.Config{
		MinSpacing:     c.Simplifier.MinSpacing,
		SmoothingAngle: c.Simplifier.SmoothingAngleDeg * math.Pi / 180,
	}
}

// Builder returns a tube builder with the configured options
func (c Config) Builder(opts ...tube.Option) tube.Builder {
	base := []tube.Option{tube.WithSegments(c.Tube.Segments)}
	if c.Tube.NormalizeLength {
		base = append(base, tube.WithNormalizedLength())
	}
	return tube.NewBuilder(append(base, opts...)...)
}

// Write encodes c as YAML
func (c Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errors.Wrap(err, "failed to encode config")
	}
	return errors.Wrap(enc.Close(), "failed to encode config")
}
