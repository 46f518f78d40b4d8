// Package config loads sensor geometry and plot layout settings from JSON.
// Fields omitted from the file keep their defaults, so partial configs are
// safe; command-line flags override file values on top of that.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults. The sensor values match the 270° racing LiDAR the logs were
// recorded with; the figure size matches the established report layout.
const (
	DefaultFOVDeg       = 270.0
	DefaultMaxRangeM    = 30.0
	DefaultPlotWidthIn  = 14.0
	DefaultPlotHeightIn = 12.0
	DefaultPointSizePt  = 0.5
)

// Config holds the tunable settings for a render run. All fields are
// pointers so a JSON file can override any subset.
type Config struct {
	// Sensor geometry
	FOVDeg        *float64 `json:"fov_deg,omitempty"`
	AngleStartDeg *float64 `json:"angle_start_deg,omitempty"` // default: -fov_deg/2
	MaxRangeM     *float64 `json:"max_range_m,omitempty"`

	// Plot layout
	PlotWidthIn  *float64 `json:"plot_width_in,omitempty"`
	PlotHeightIn *float64 `json:"plot_height_in,omitempty"`
	PointSizePt  *float64 `json:"point_size_pt,omitempty"`
	BeamSegments *bool    `json:"beam_segments,omitempty"`
}

// Empty returns a Config with every field unset. The Get* methods supply
// defaults for unset fields.
func Empty() *Config {
	return &Config{}
}

// Load reads a Config from a JSON file. The path must end in .json and the
// file must be under 1MB.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks every set field for a usable value.
func (c *Config) Validate() error {
	if c.FOVDeg != nil && (*c.FOVDeg <= 0 || *c.FOVDeg > 360) {
		return fmt.Errorf("fov_deg must be in (0, 360], got %v", *c.FOVDeg)
	}
	if c.MaxRangeM != nil && *c.MaxRangeM <= 0 {
		return fmt.Errorf("max_range_m must be positive, got %v", *c.MaxRangeM)
	}
	if c.PlotWidthIn != nil && *c.PlotWidthIn <= 0 {
		return fmt.Errorf("plot_width_in must be positive, got %v", *c.PlotWidthIn)
	}
	if c.PlotHeightIn != nil && *c.PlotHeightIn <= 0 {
		return fmt.Errorf("plot_height_in must be positive, got %v", *c.PlotHeightIn)
	}
	if c.PointSizePt != nil && *c.PointSizePt <= 0 {
		return fmt.Errorf("point_size_pt must be positive, got %v", *c.PointSizePt)
	}
	return nil
}

// GetFOVDeg returns the field of view in degrees.
func (c *Config) GetFOVDeg() float64 {
	if c.FOVDeg != nil {
		return *c.FOVDeg
	}
	return DefaultFOVDeg
}

// GetAngleStartDeg returns the sensor-relative angle of beam 0 in degrees.
// When unset it defaults to the left edge of the field of view.
func (c *Config) GetAngleStartDeg() float64 {
	if c.AngleStartDeg != nil {
		return *c.AngleStartDeg
	}
	return -c.GetFOVDeg() / 2
}

// GetMaxRangeM returns the largest reading treated as a real return.
func (c *Config) GetMaxRangeM() float64 {
	if c.MaxRangeM != nil {
		return *c.MaxRangeM
	}
	return DefaultMaxRangeM
}

// GetPlotWidthIn returns the figure width in inches.
func (c *Config) GetPlotWidthIn() float64 {
	if c.PlotWidthIn != nil {
		return *c.PlotWidthIn
	}
	return DefaultPlotWidthIn
}

// GetPlotHeightIn returns the figure height in inches.
func (c *Config) GetPlotHeightIn() float64 {
	if c.PlotHeightIn != nil {
		return *c.PlotHeightIn
	}
	return DefaultPlotHeightIn
}

// GetPointSizePt returns the cloud glyph radius in points.
func (c *Config) GetPointSizePt() float64 {
	if c.PointSizePt != nil {
		return *c.PointSizePt
	}
	return DefaultPointSizePt
}

// GetBeamSegments reports whether beam segments should be drawn.
func (c *Config) GetBeamSegments() bool {
	if c.BeamSegments != nil {
		return *c.BeamSegments
	}
	return false
}
