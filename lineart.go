package lineart

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/setanarut/lineart/colors"
	"github.com/setanarut/lineart/points"
	"golang.org/x/image/draw"
)

// Renderer turns point sequences into line-art images. The segments of
// a closed point cycle are stroked in interpolated colors with a
// ramping thickness and additively composited over black; the
// supersampled canvas is then downsampled for antialiasing.
type Renderer struct {
	opt Options
	src rand.Source
	rng *rand.Rand
}

// NewRenderer validates opt and returns a renderer drawing its random
// colors from src. A nil src self-seeds.
func NewRenderer(opt Options, src rand.Source) (*Renderer, error) {
	if err := opt.validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Renderer{opt: opt, src: src, rng: rand.New(src)}, nil
}

// Render draws one artwork from the points gen supplies.
func (r *Renderer) Render(gen points.Generator) *image.RGBA {
	size := r.opt.TargetSize * r.opt.ScaleFactor
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	start, end := r.gradient()
	Logger().Debug("gradient picked", "start", start, "end", end)

	pts := make([]points.Point, r.opt.NumLines)
	for i := range pts {
		pts[i] = gen.Generate()
	}
	dx, dy := center(pts, size)
	Logger().Debug("points centered", "dx", dx, "dy", dy)

	n := len(pts)
	thickness := r.opt.ScaleFactor
	for i, p1 := range pts {
		factor := float64(i) / float64(n-1)
		if i > 0 {
			thickness = nextThickness(thickness, r.opt.ScaleFactor, factor)
		}
		if thickness <= 0 {
			continue
		}
		p2 := pts[(i+1)%n]

		// Each segment gets a fresh transparent overlay so crossings
		// accumulate additively instead of overwriting each other.
		overlay := gg.NewContext(size, size)
		overlay.SetColor(colors.Interpolate(start, end, factor))
		overlay.SetLineWidth(float64(thickness))
		overlay.SetLineCap(gg.LineCapButt)
		overlay.DrawLine(float64(p1.X), float64(p1.Y), float64(p2.X), float64(p2.Y))
		overlay.Stroke()
		compositeAdd(img, overlay.Image().(*image.RGBA))
	}

	out := image.NewRGBA(image.Rect(0, 0, r.opt.TargetSize, r.opt.TargetSize))
	draw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	return out
}

// RenderFile renders one artwork and writes it as a PNG at path,
// creating the destination directory when needed.
func (r *Renderer) RenderFile(gen points.Generator, path string) error {
	img := r.Render(gen)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	Logger().Info("image written", "path", path)
	return nil
}

// gradient picks the segment color endpoints: two distinct palette
// entries when a palette is set, otherwise two random hues.
func (r *Renderer) gradient() (colors.Color, colors.Color) {
	if len(r.opt.Palette) == 0 {
		return colors.Random(r.src), colors.Random(r.src)
	}
	i := r.rng.IntN(len(r.opt.Palette))
	j := r.rng.IntN(len(r.opt.Palette) - 1)
	if j >= i {
		j++
	}
	return r.opt.Palette[i], r.opt.Palette[j]
}

// center shifts pts so their bounding box sits centered on the
// size×size canvas and reports the applied shift.
func center(pts []points.Point, size int) (dx, dy int) {
	minX, maxX := pts[0].X, pts[0].X
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	dx = -floorDiv2(minX - (size - maxX))
	dy = -floorDiv2(minY - (size - maxY))
	for i := range pts {
		pts[i].X += dx
		pts[i].Y += dy
	}
	return dx, dy
}

// floorDiv2 halves v rounding toward negative infinity.
func floorDiv2(v int) int {
	return v >> 1
}

// nextThickness ramps the stroke width up while the segment sits in the
// first half of the cycle and back down in the second, peaking at the
// midpoint. A result of zero or less means the segment is not drawn.
func nextThickness(cur, scale int, factor float64) int {
	if factor < 0.5 {
		return cur + scale
	}
	return cur - scale
}

// compositeAdd merges src into dst with per-channel saturating
// addition: overlapping strokes brighten toward white instead of
// overwriting, which gives crossings their glow.
func compositeAdd(dst, src *image.RGBA) {
	for i, v := range src.Pix {
		sum := uint16(dst.Pix[i]) + uint16(v)
		if sum > 255 {
			sum = 255
		}
		dst.Pix[i] = uint8(sum)
	}
}
