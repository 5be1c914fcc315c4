package layout

import (
	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
)

// Default layout dimensions, in pixels.
const (
	DefaultMargin    = 20.0
	DefaultHSpacing  = 150.0
	DefaultVSpacing  = 100.0
	DefaultBoxWidth  = 120.0
	DefaultBoxHeight = 60.0
)

// LeafBucketGap is the extra space between sibling buckets on the deepest
// row, as a fraction of the horizontal spacing.
const LeafBucketGap = 0.3

// Config holds the dimensions a layout call treats as constants.
type Config struct {
	Margin    float64 `toml:"margin_px" json:"margin_px"`                         // Padding around the chart and the left edge of the first bucket
	HSpacing  float64 `toml:"horizontal_spacing_px" json:"horizontal_spacing_px"` // Minimum horizontal distance between siblings
	VSpacing  float64 `toml:"vertical_spacing_px" json:"vertical_spacing_px"`     // Row height
	BoxWidth  float64 `toml:"box_width_px" json:"box_width_px"`
	BoxHeight float64 `toml:"box_height_px" json:"box_height_px"`
}

// DefaultConfig returns the default dimensions.
func DefaultConfig() Config {
	return Config{
		Margin:    DefaultMargin,
		HSpacing:  DefaultHSpacing,
		VSpacing:  DefaultVSpacing,
		BoxWidth:  DefaultBoxWidth,
		BoxHeight: DefaultBoxHeight,
	}
}

// WithDefaults returns a copy with zero spacing and box sizes replaced by
// their defaults. A zero margin is a valid setting and is kept.
func (c Config) WithDefaults() Config {
	if c.HSpacing == 0 {
		c.HSpacing = DefaultHSpacing
	}
	if c.VSpacing == 0 {
		c.VSpacing = DefaultVSpacing
	}
	if c.BoxWidth == 0 {
		c.BoxWidth = DefaultBoxWidth
	}
	if c.BoxHeight == 0 {
		c.BoxHeight = DefaultBoxHeight
	}
	return c
}

// Validate rejects a negative margin and non-positive spacing or box sizes.
func (c Config) Validate() error {
	if c.Margin < 0 {
		return orgerrors.New(orgerrors.ErrCodeInvalidInput, "margin must not be negative, got %g", c.Margin)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"horizontal spacing", c.HSpacing},
		{"vertical spacing", c.VSpacing},
		{"box width", c.BoxWidth},
		{"box height", c.BoxHeight},
	} {
		if f.v <= 0 {
			return orgerrors.New(orgerrors.ErrCodeInvalidInput, "%s must be positive, got %g", f.name, f.v)
		}
	}
	return nil
}
