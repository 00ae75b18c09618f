package points

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Point is a pixel position on the working canvas. Plain value, equal by value.
type Point struct {
	X, Y int
}

// Generator yields the points an artwork's line cycle is built from.
// Implementations own whatever state the sequence needs; callers just
// pull points one at a time.
type Generator interface {
	Generate() Point
}

// Uniform samples X and Y independently and uniformly from [min, max],
// both bounds included.
type Uniform struct {
	min, max int
	rng      *rand.Rand
}

func NewUniform(min, max int, src rand.Source) (*Uniform, error) {
	if min > max {
		return nil, fmt.Errorf("points: minimum %d exceeds maximum %d", min, max)
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Uniform{min: min, max: max, rng: rand.New(src)}, nil
}

func (u *Uniform) Generate() Point {
	span := u.max - u.min + 1
	return Point{
		X: u.min + u.rng.IntN(span),
		Y: u.min + u.rng.IntN(span),
	}
}

// Love walks a heart-shaped parametric curve. The angle advances by a
// fixed step per call while four fresh random factors perturb the
// harmonics, so every cycle keeps the heart silhouette but never
// repeats exactly.
type Love struct {
	max  int
	t    float64
	step float64
	jit  distuv.Uniform
}

// NewLove sets up a curve of n points spanning one full revolution
// inside [0, max] on both axes.
func NewLove(max, n int, src rand.Source) (*Love, error) {
	if n < 1 {
		return nil, fmt.Errorf("points: curve needs at least 1 point, got %d", n)
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Love{
		max:  max,
		step: 2 * math.Pi / float64(n),
		jit:  distuv.Uniform{Min: 0, Max: 1, Src: src},
	}, nil
}

func (l *Love) Generate() Point {
	i := l.t
	l.t += l.step

	m := float64(l.max)
	s := math.Sin(i)
	r1 := l.jit.Rand()
	r2 := l.jit.Rand()
	r3 := l.jit.Rand()
	r4 := l.jit.Rand()
	y := 0.8*r1*m*math.Cos(i) -
		0.6*r2*m*math.Cos(2*i) -
		0.2*r3*m*math.Cos(3*i) -
		0.1*r4*m*math.Cos(4*i)

	// Integer conversion truncates toward zero.
	return Point{
		X: l.max - int(m*s*s*s),
		Y: l.max - int(y),
	}
}
