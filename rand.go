package malan

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// RandomSource is the injectable random source every draw in this package
// funnels through, so that seed control yields bit-identical runs.
// Implementations need not be safe for concurrent use; the core is
// single-threaded.
type RandomSource interface {
	// Unif returns a draw from [0, 1).
	Unif() float64
	// Gamma returns a draw from Gamma(shape, scale) with mean shape*scale.
	Gamma(shape, scale float64) float64
	// RandInt returns a draw from [0, hi).
	RandInt(hi int) int
}

// CancelProbe is polled between generations (Sampler) and between
// pedigrees (Haplotype Engine / Builder); when it reports true the current
// operation fails with Cancelled.
type CancelProbe interface {
	Cancelled() bool
}

// ProgressTicker receives a best-effort tick with no semantic effect.
type ProgressTicker interface {
	Tick()
}

// NeverCancel is a CancelProbe that never trips.
type NeverCancel struct{}

// Cancelled always returns false.
func (NeverCancel) Cancelled() bool { return false }

// NoTick is a ProgressTicker that discards every tick.
type NoTick struct{}

// Tick is a no-op.
func (NoTick) Tick() {}

// defaultRand is the concrete RandomSource backing NewRand. A single
// golang.org/x/exp/rand source backs Unif/RandInt directly and feeds
// gonum's distuv.Gamma for the gamma draw, so one seed reproduces every
// draw this package makes.
type defaultRand struct {
	src rand.Source
	r   *rand.Rand
}

// NewRand returns a deterministic, reseedable RandomSource. The same seed
// always produces the same sequence of draws across all three methods.
func NewRand(seed uint64) RandomSource {
	src := rand.NewSource(seed)
	return &defaultRand{src: src, r: rand.New(src)}
}

func (d *defaultRand) Unif() float64 {
	return d.r.Float64()
}

func (d *defaultRand) RandInt(hi int) int {
	return d.r.Intn(hi)
}

func (d *defaultRand) Gamma(shape, scale float64) float64 {
	// distuv.Gamma is rate-parameterized (Beta = 1/scale), unlike this
	// package's shape/scale convention.
	g := distuv.Gamma{Alpha: shape, Beta: 1 / scale, Src: d.src}
	return g.Rand()
}
