package lineart

import (
	"bytes"
	"errors"
	"flag"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/setanarut/lineart/colors"
	"github.com/setanarut/lineart/points"
)

var update = flag.Bool("update", false, "rewrite golden files")

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// fixedGen cycles through a fixed point list.
type fixedGen struct {
	pts []points.Point
	i   int
}

func (g *fixedGen) Generate() points.Point {
	p := g.pts[g.i%len(g.pts)]
	g.i++
	return p
}

func squareGen() *fixedGen {
	return &fixedGen{pts: []points.Point{
		{X: 10, Y: 10}, {X: 90, Y: 10}, {X: 90, Y: 90}, {X: 10, Y: 90},
	}}
}

func TestCenter(t *testing.T) {
	pts := []points.Point{{X: 10, Y: 20}, {X: 100, Y: 80}}
	dx, dy := center(pts, 200)
	if dx != 45 || dy != 50 {
		t.Errorf("shift = (%d, %d), want (45, 50)", dx, dy)
	}
	diff(t, []points.Point{{X: 55, Y: 70}, {X: 145, Y: 130}}, pts)
	// Bounding box margins are symmetric after the shift.
	if pts[0].X != 200-pts[1].X || pts[0].Y != 200-pts[1].Y {
		t.Errorf("bounding box not centered: %v", pts)
	}
}

func TestCenterOddNegativeDelta(t *testing.T) {
	// delta = -7 must shift by 4 (floor division), not 3.
	pts := []points.Point{{X: 0, Y: 0}, {X: 3, Y: 3}}
	dx, dy := center(pts, 10)
	if dx != 4 || dy != 4 {
		t.Errorf("shift = (%d, %d), want (4, 4)", dx, dy)
	}
	diff(t, []points.Point{{X: 4, Y: 4}, {X: 7, Y: 7}}, pts)
}

func TestCompositeAddSaturates(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	dst.SetRGBA(0, 0, color.RGBA{R: 200, G: 10, B: 128, A: 255})
	src.SetRGBA(0, 0, color.RGBA{R: 100, G: 250, B: 127, A: 255})
	dst.SetRGBA(1, 0, color.RGBA{R: 50, A: 255})
	src.SetRGBA(1, 0, color.RGBA{R: 60})

	compositeAdd(dst, src)

	if got := dst.RGBAAt(0, 0); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("saturating pixel = %+v", got)
	}
	if got := dst.RGBAAt(1, 0); got != (color.RGBA{R: 110, A: 255}) {
		t.Errorf("non-saturating pixel = %+v", got)
	}
}

func TestCompositeAddCommutative(t *testing.T) {
	mk := func(c color.RGBA) *image.RGBA {
		img := image.NewRGBA(image.Rect(0, 0, 1, 1))
		img.SetRGBA(0, 0, c)
		return img
	}
	ab := mk(color.RGBA{R: 200, G: 30, A: 255})
	compositeAdd(ab, mk(color.RGBA{R: 100, G: 40, A: 255}))
	ba := mk(color.RGBA{R: 100, G: 40, A: 255})
	compositeAdd(ba, mk(color.RGBA{R: 200, G: 30, A: 255}))
	if !bytes.Equal(ab.Pix, ba.Pix) {
		t.Errorf("order changed the result: %v vs %v", ab.Pix, ba.Pix)
	}
}

func TestThicknessSequence(t *testing.T) {
	const numLines, scale = 10, 2
	got := make([]int, 0, numLines)
	thickness := scale
	for i := range numLines {
		factor := float64(i) / float64(numLines-1)
		if i > 0 {
			thickness = nextThickness(thickness, scale, factor)
		}
		got = append(got, thickness)
	}
	diff(t, []int{2, 4, 6, 8, 10, 8, 6, 4, 2, 0}, got)
}

func TestRenderDimensions(t *testing.T) {
	r, err := NewRenderer(Options{TargetSize: 64, ScaleFactor: 3, NumLines: 6}, rand.NewPCG(1, 1))
	if err != nil {
		t.Fatal(err)
	}
	img := r.Render(squareGen())
	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); w != 64 || h != 64 {
		t.Errorf("got %dx%d, want 64x64", w, h)
	}
}

func TestRenderPullsExactlyNumLines(t *testing.T) {
	r, err := NewRenderer(Options{TargetSize: 32, ScaleFactor: 1, NumLines: 7}, rand.NewPCG(1, 1))
	if err != nil {
		t.Fatal(err)
	}
	gen := squareGen()
	r.Render(gen)
	if gen.i != 7 {
		t.Errorf("generator called %d times, want 7", gen.i)
	}
}

func renderUniformWithSeed(t *testing.T, seed uint64) *image.RGBA {
	t.Helper()
	src := rand.NewPCG(seed, seed)
	r, err := NewRenderer(Options{TargetSize: 80, ScaleFactor: 2, NumLines: 10}, src)
	if err != nil {
		t.Fatal(err)
	}
	gen, err := points.NewUniform(16, 144, src)
	if err != nil {
		t.Fatal(err)
	}
	return r.Render(gen)
}

func TestRenderDeterministic(t *testing.T) {
	a := renderUniformWithSeed(t, 7)
	b := renderUniformWithSeed(t, 7)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("same seed produced different images")
	}
}

func TestRenderSeedChangesImage(t *testing.T) {
	a := renderUniformWithSeed(t, 7)
	b := renderUniformWithSeed(t, 8)
	if bytes.Equal(a.Pix, b.Pix) {
		t.Error("different seeds produced identical images")
	}
}

func TestRenderFixedPointsGolden(t *testing.T) {
	r, err := NewRenderer(Options{TargetSize: 100, ScaleFactor: 1, NumLines: 4}, rand.NewPCG(42, 42))
	if err != nil {
		t.Fatal(err)
	}
	img := r.Render(squareGen())
	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); w != 100 || h != 100 {
		t.Fatalf("got %dx%d, want 100x100", w, h)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	golden := filepath.Join("testdata", "fixed_square_seed42.png")
	if *update {
		if err := os.MkdirAll(filepath.Dir(golden), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(golden, buf.Bytes(), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	want, err := os.ReadFile(golden)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			t.Skipf("golden file %s missing; run go test -update to create it", golden)
		}
		t.Fatal(err)
	}
	if !bytes.Equal(want, buf.Bytes()) {
		t.Errorf("image differs from %s; run go test -update after an intentional change", golden)
	}
}

func TestRenderFile(t *testing.T) {
	r, err := NewRenderer(Options{TargetSize: 50, ScaleFactor: 2, NumLines: 4}, rand.NewPCG(9, 9))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out", "collection", "collection_img_0.png")
	if err := r.RenderFile(squareGen(), path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("written file is not a decodable png: %v", err)
	}
	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); w != 50 || h != 50 {
		t.Errorf("got %dx%d, want 50x50", w, h)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected exactly one file, found %d", len(entries))
	}
}

func TestGradientPicksDistinctPaletteEntries(t *testing.T) {
	pal := []colors.Color{{R: 255}, {G: 255}, {B: 255}}
	r, err := NewRenderer(Options{TargetSize: 10, ScaleFactor: 1, NumLines: 2, Palette: pal}, rand.NewPCG(1, 2))
	if err != nil {
		t.Fatal(err)
	}
	for range 200 {
		a, b := r.gradient()
		if a == b {
			t.Fatal("gradient endpoints must differ")
		}
		if !slices.Contains(pal, a) || !slices.Contains(pal, b) {
			t.Fatalf("gradient colors %+v, %+v not from palette", a, b)
		}
	}
}
