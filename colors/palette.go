package colors

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Method selects the palette extraction algorithm.
type Method int

const (
	MethodDominant Method = iota
	MethodKMeans
)

func (m Method) String() string {
	switch m {
	case MethodKMeans:
		return "kmeans"
	default:
		return "dominant"
	}
}

// ParseMethod maps a method name to its Method value.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "dominant":
		return MethodDominant, nil
	case "kmeans":
		return MethodKMeans, nil
	}
	return 0, fmt.Errorf("unknown palette method %q (want dominant or kmeans)", name)
}

// FromImage extracts k diverse colors from img, ordered darkest to
// brightest. The kmeans method falls back to dominant-color extraction
// when the clustering cannot produce a usable partition.
func FromImage(img image.Image, k int, m Method) ([]Color, error) {
	if k <= 0 {
		return nil, fmt.Errorf("palette size must be positive, got %d", k)
	}
	var pal []colorful.Color
	switch m {
	case MethodKMeans:
		pal = kmeansPalette(img, k)
		if len(pal) == 0 {
			pal = dominantPalette(img, k)
		}
	default:
		pal = dominantPalette(img, k)
	}
	if len(pal) == 0 {
		return nil, fmt.Errorf("no colors could be extracted")
	}
	sortByBrightness(pal)

	out := make([]Color, len(pal))
	for i, c := range pal {
		out[i] = Color{
			R: int(max(0, min(255, c.R*255))),
			G: int(max(0, min(255, c.G*255))),
			B: int(max(0, min(255, c.B*255))),
		}
	}
	return out, nil
}

// LoadPalette decodes the image at path and extracts a palette from it.
func LoadPalette(path string, k int, m Method) ([]Color, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open palette image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode palette image %s: %w", path, err)
	}
	return FromImage(img, k, m)
}

type weightedColor struct {
	col    colorful.Color
	weight float64
}

func dominantPalette(img image.Image, k int) []colorful.Color {
	nCandidates := max(24, k*8)
	candidates := dominantcolor.FindWeight(img, nCandidates)
	if len(candidates) == 0 {
		// Keep downstream selection alive even for degenerate inputs.
		candidates = append(candidates, dominantcolor.Color{
			RGBA:   color.RGBA{R: 128, G: 128, B: 128, A: 255},
			Weight: 1.0,
		})
	}

	weighted := make([]weightedColor, 0, len(candidates))
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		w := c.Weight
		if w <= 0 {
			w = 1e-6
		}
		weighted = append(weighted, weightedColor{col: col.Clamped(), weight: w})
	}
	return selectDiverse(weighted, k)
}

func kmeansPalette(img image.Image, k int) []colorful.Color {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	// Subsample to keep kmeans tractable on large images.
	maxSamples := 12000
	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(width*height, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r16) / 65535.0,
				float64(g16) / 65535.0,
				float64(b16) / 65535.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	workK := min(max(k*4, k+2), len(dataset))
	km := kmeans.New()
	cc, err := km.Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return nil
	}

	// Populous clusters first so dominant tones lead the candidate list.
	slices.SortFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	weighted := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		w := float64(len(c.Observations))
		if w <= 0 {
			w = 1e-6
		}
		weighted = append(weighted, weightedColor{col: col, weight: w})
	}
	return selectDiverse(weighted, k)
}

// selectDiverse picks up to k colors, balancing Lab-space spread against
// candidate weight so strong tones survive without near-duplicates.
func selectDiverse(cands []weightedColor, k int) []colorful.Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	type item struct {
		col colorful.Color
		lab [3]float64
		w   float64
	}
	items := make([]item, 0, len(cands))
	maxW := 0.0
	for _, c := range cands {
		col := c.col.Clamped()
		l, a, b := col.Lab()
		w := c.weight
		if w <= 0 {
			w = 1e-6
		}
		maxW = max(maxW, w)
		items = append(items, item{col: col, lab: [3]float64{l, a, b}, w: w})
	}
	if k > len(items) {
		k = len(items)
	}
	if maxW <= 0 {
		maxW = 1.0
	}

	selectedIdx := make([]int, 0, k)
	selected := make([]bool, len(items))

	// Seed with the strongest candidate to stay close to dominant tones.
	seed := 0
	for i := 1; i < len(items); i++ {
		if items[i].w > items[seed].w {
			seed = i
		}
	}
	selectedIdx = append(selectedIdx, seed)
	selected[seed] = true

	for len(selectedIdx) < k {
		bestIdx := -1
		bestScore := -1.0
		for i := range items {
			if selected[i] {
				continue
			}
			minD2 := math.MaxFloat64
			for _, s := range selectedIdx {
				d0 := items[i].lab[0] - items[s].lab[0]
				d1 := items[i].lab[1] - items[s].lab[1]
				d2 := items[i].lab[2] - items[s].lab[2]
				minD2 = min(minD2, d0*d0+d1*d1+d2*d2)
			}
			score := math.Sqrt(minD2) * (0.55 + 0.45*math.Sqrt(items[i].w/maxW))
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		selected[bestIdx] = true
		selectedIdx = append(selectedIdx, bestIdx)
	}

	out := make([]colorful.Color, 0, len(selectedIdx))
	for _, idx := range selectedIdx {
		out = append(out, items[idx].col)
	}
	return out
}

// sortByBrightness orders colors darkest first using linear-light luma.
func sortByBrightness(palette []colorful.Color) {
	slices.SortFunc(palette, func(a, b colorful.Color) int {
		ri, gi, bi := a.LinearRgb()
		rj, gj, bj := b.LinearRgb()
		yi := 0.2126*ri + 0.7152*gi + 0.0722*bi
		yj := 0.2126*rj + 0.7152*gj + 0.0722*bj
		if yi < yj {
			return -1
		}
		if yi > yj {
			return 1
		}
		return 0
	})
}
