package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/artoolbox/pkg/simplify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.InDelta(t, 5, cfg.Simplifier.SmoothingAngleDeg, 1e-12)
	assert.InDelta(t, simplify.DefaultSmoothingAngle, cfg.SimplifierConfig().SmoothingAngle, 1e-15)
	assert.Equal(t, 24, cfg.Builder().Segments)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
simplifier:
  min_spacing: 0.01
tube:
  segments: 8
  normalize_length: true
log:
  level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, 0.01, cfg.Simplifier.MinSpacing)
	assert.InDelta(t, 5, cfg.Simplifier.SmoothingAngleDeg, 1e-12, "unset keys keep defaults")
	assert.Equal(t, 0.005, cfg.Tube.Radius)

	b := cfg.Builder()
	assert.Equal(t, 8, b.Segments)
	assert.True(t, b.NormalizeLength)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":    "tube:\n  colour: red\n",
		"bad yaml":       "tube: [\n",
		"negative angle": "simplifier:\n  smoothing_angle_deg: -1\n",
		"zero radius":    "tube:\n  radius: 0\n",
		"few segments":   "tube:\n  segments: 2\n",
		"connector":      "measure:\n  connector_radius: -0.1\n",
		"log level":      "log:\n  level: chatty\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "artoolbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tube:\n  radius: 0.02\n"), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.02, cfg.Tube.Radius)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWriteRoundTrip(t *testing.T) {
	want := Default()
	want.Tube.Segments = 12
	want.Log.Development = true

	var buf bytes.Buffer
	require.NoError(t, want.Write(&buf))
	assert.Contains(t, buf.String(), "min_spacing:")

	got, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
