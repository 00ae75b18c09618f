package colors

import (
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat/distuv"
)

// Color is an RGB triple with int channels. Channels usually sit in
// [0, 255], but Interpolate may push them outside that range; clamping
// happens only in RGBA, the display-conversion boundary.
type Color struct {
	R, G, B int
}

// RGBA implements color.Color, so a Color can be handed straight to a
// drawing context.
func (c Color) RGBA() (uint32, uint32, uint32, uint32) {
	r := uint32(max(0, min(255, c.R)))
	g := uint32(max(0, min(255, c.G)))
	b := uint32(max(0, min(255, c.B)))
	return r * 0x101, g * 0x101, b * 0x101, 0xffff
}

// Random draws a color with a uniformly random hue at full saturation
// and value: always vivid, never gray, black or white.
func Random(src rand.Source) Color {
	hue := distuv.Uniform{Min: 0, Max: 1, Src: src}.Rand()
	c := colorful.Hsv(hue*360, 1, 1)
	return Color{
		R: int(c.R * 255),
		G: int(c.G * 255),
		B: int(c.B * 255),
	}
}

// Interpolate blends start toward end by factor, truncating each
// channel to an integer. Factors outside [0, 1] extrapolate past the
// endpoints; the result is not clamped.
func Interpolate(start, end Color, factor float64) Color {
	recip := 1 - factor
	return Color{
		R: int(float64(start.R)*recip + float64(end.R)*factor),
		G: int(float64(start.G)*recip + float64(end.G)*factor),
		B: int(float64(start.B)*recip + float64(end.B)*factor),
	}
}
