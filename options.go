package lineart

import (
	"fmt"

	"github.com/setanarut/lineart/colors"
)

type Options struct {
	// Side length of the final image in pixels.
	TargetSize int
	// Supersampling multiplier. Rendering happens at
	// TargetSize*ScaleFactor and is downsampled at the end; the factor
	// also drives the line thickness ramp.
	ScaleFactor int
	// Number of points in the closed line cycle.
	NumLines int
	// Optional fixed palette. When set, each render picks two distinct
	// entries as the line gradient instead of two random hues.
	Palette []colors.Color
}

func DefaultOptions() Options {
	return Options{
		TargetSize:  720,
		ScaleFactor: 2,
		NumLines:    10,
	}
}

func (o Options) validate() error {
	if o.TargetSize < 1 {
		return fmt.Errorf("target size must be at least 1, got %d", o.TargetSize)
	}
	if o.ScaleFactor < 1 {
		return fmt.Errorf("scale factor must be at least 1, got %d", o.ScaleFactor)
	}
	if o.NumLines < 2 {
		return fmt.Errorf("line cycle needs at least 2 points, got %d", o.NumLines)
	}
	if len(o.Palette) == 1 {
		return fmt.Errorf("palette needs at least two colors to form a gradient")
	}
	return nil
}
