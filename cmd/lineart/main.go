package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/setanarut/lineart"
	"github.com/setanarut/lineart/colors"
	"github.com/setanarut/lineart/points"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "lineart:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		collection    = flag.String("collection", "collection", "output subfolder and filename stem")
		count         = flag.Int("count", 10, "number of images to generate")
		size          = flag.Int("size", 720, "target image side length in pixels")
		scaleFactor   = flag.Int("scale-factor", 2, "supersampling multiplier")
		margin        = flag.Float64("margin", 0.1, "border fraction of the side length")
		generator     = flag.String("generator", "random", "point generator: random or love")
		out           = flag.String("out", "output", "output root directory")
		seed          = flag.Uint64("seed", 0, "random seed; 0 picks one at random")
		paletteFrom   = flag.String("palette-from", "", "reference image to extract the line gradient from")
		paletteMethod = flag.String("palette-method", "dominant", "palette extraction method: dominant or kmeans")
		paletteSize   = flag.Int("palette-size", 6, "colors extracted from the reference image")
		verbose       = flag.Bool("v", false, "verbose logging to stderr")
	)
	var numLines int
	flag.IntVar(&numLines, "num-lines", 10, "points in the line cycle")
	flag.IntVar(&numLines, "num-points", 10, "alias for -num-lines")
	flag.Parse()

	if *verbose {
		lineart.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	s := *seed
	if s == 0 {
		s = rand.Uint64()
	}
	src := rand.NewPCG(s, s)

	opt := lineart.DefaultOptions()
	opt.TargetSize = *size
	opt.ScaleFactor = *scaleFactor
	opt.NumLines = numLines

	if *paletteFrom != "" {
		method, err := colors.ParseMethod(*paletteMethod)
		if err != nil {
			return err
		}
		pal, err := colors.LoadPalette(*paletteFrom, *paletteSize, method)
		if err != nil {
			return err
		}
		opt.Palette = pal
	}

	renderer, err := lineart.NewRenderer(opt, src)
	if err != nil {
		return err
	}
	newGen, err := generatorFactory(*generator, *size, *scaleFactor, numLines, *margin, src)
	if err != nil {
		return err
	}

	for i := range *count {
		gen, err := newGen()
		if err != nil {
			return err
		}
		path := filepath.Join(*out, *collection, fmt.Sprintf("%s_img_%d.png", *collection, i))
		if err := renderer.RenderFile(gen, path); err != nil {
			return err
		}
		fmt.Printf("%d/%d\n", i+1, *count)
	}
	return nil
}

// generatorFactory builds fresh generators of the chosen kind, one per
// image. The uniform generator works in the supersampled coordinate
// space while the love curve works in target space; both derive their
// bounds from the margin.
func generatorFactory(kind string, size, scale, numLines int, margin float64, src rand.Source) (func() (points.Generator, error), error) {
	switch kind {
	case "random":
		m := int(math.Round(float64(size*scale) * margin))
		return func() (points.Generator, error) {
			return points.NewUniform(m, size*scale-m, src)
		}, nil
	case "love":
		m := int(math.Round(float64(size) * margin))
		return func() (points.Generator, error) {
			return points.NewLove(size-m, numLines, src)
		}, nil
	}
	return nil, fmt.Errorf("unknown generator %q (want random or love)", kind)
}
