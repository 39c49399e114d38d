// Package sampler implements the pixel samplers (pseudo-random and
// stratified 1D/2D) and the Random/Hero/Stratified wavelength-index
// selection used by SpectralPathSingle, all seeded deterministically
// per (pass, block, pixel).
package sampler

import (
	"math"
	"math/rand"

	"github.com/df07/spectral-tracer/pkg/core"
)

// Random is an unstratified pseudo-random core.Sampler backed by
// math/rand.
type Random struct {
	rng *rand.Rand
}

// NewRandom builds a Random sampler seeded deterministically.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Get1D() float64 { return r.rng.Float64() }
func (r *Random) Get2D() (float64, float64) {
	return r.rng.Float64(), r.rng.Float64()
}

// Stratified draws 1D/2D samples from a jittered N-stratum grid for the
// first N draws of a pixel, then falls back to unstratified draws when
// the strata run out.
type Stratified struct {
	rng      *rand.Rand
	strata1D []float64
	strata2D [][2]float64
	i1, i2   int
}

// NewStratified builds a Stratified sampler with n precomputed 1D strata
// and an n1 x n2 grid of 2D strata (n1*n2 total). Every stratum is
// jittered, and the 1D list and the list of 2D (x, y) pairs are each
// shuffled; a 2D pair's two coordinates stay together.
func NewStratified(seed int64, n, n1, n2 int) *Stratified {
	rng := rand.New(rand.NewSource(seed))

	strata1D := make([]float64, n)
	for i := range strata1D {
		strata1D[i] = (float64(i) + rng.Float64()) / float64(n)
	}
	rng.Shuffle(n, func(i, j int) { strata1D[i], strata1D[j] = strata1D[j], strata1D[i] })

	total := n1 * n2
	strata2D := make([][2]float64, total)
	for j := 0; j < n2; j++ {
		for i := 0; i < n1; i++ {
			strata2D[j*n1+i] = [2]float64{
				(float64(i) + rng.Float64()) / float64(n1),
				(float64(j) + rng.Float64()) / float64(n2),
			}
		}
	}
	rng.Shuffle(total, func(i, j int) { strata2D[i], strata2D[j] = strata2D[j], strata2D[i] })

	return &Stratified{rng: rng, strata1D: strata1D, strata2D: strata2D}
}

func (s *Stratified) Get1D() float64 {
	if s.i1 >= len(s.strata1D) {
		return s.rng.Float64()
	}
	v := s.strata1D[s.i1]
	s.i1++
	return v
}

func (s *Stratified) Get2D() (float64, float64) {
	if s.i2 >= len(s.strata2D) {
		return s.rng.Float64(), s.rng.Float64()
	}
	v := s.strata2D[s.i2]
	s.i2++
	return v[0], v[1]
}

// Seed combines a (pass, blockIndex, pixelIndex) triple into a single
// deterministic seed, so runs are reproducible regardless of worker
// scheduling and no global *rand.Rand is shared across goroutines.
func Seed(pass, block, pixel int) int64 {
	// A simple, well-distributed mix; collisions across the (pass,
	// block, pixel) space are irrelevant to correctness, only to
	// decorrelation, and this spreads bits well enough for that.
	h := uint64(1469598103934665603) // FNV offset basis
	for _, v := range [3]int{pass, block, pixel} {
		h ^= uint64(int64(v))
		h *= 1099511628211
	}
	return int64(h)
}

// Spectral selects wavelength-sample indices in [0, spectrum.N) for a
// SpectralPathSingle path.
type Spectral interface {
	Sample(n int, rng core.Sampler) []int
}

// RandomSpectral draws each index independently and uniformly.
type RandomSpectral struct{ NumSamples int }

func (r RandomSpectral) Sample(n int, rng core.Sampler) []int {
	idx := make([]int, r.NumSamples)
	for i := range idx {
		idx[i] = int(rng.Get1D() * float64(n))
		if idx[i] >= n {
			idx[i] = n - 1
		}
	}
	return idx
}

// HeroSpectral implements hero-wavelength sampling: one random offset
// determines a "hero" index, and the remaining samples are evenly
// spaced from it (wrapping around the spectrum), so a single draw
// decorrelates an entire equally-spaced comb, the standard spectral
// MIS trick for reducing color-fringing noise relative to fully
// independent random sampling.
type HeroSpectral struct{ NumSamples int }

func (h HeroSpectral) Sample(n int, rng core.Sampler) []int {
	idx := make([]int, h.NumSamples)
	offset := rng.Get1D() * float64(n) / float64(h.NumSamples)
	for i := range idx {
		pos := offset + float64(i)*float64(n)/float64(h.NumSamples)
		idx[i] = int(math.Mod(pos, float64(n)))
	}
	return idx
}

// StratifiedSpectral divides [0, spectrum.N) into NumSamples equal
// strata and jitters one draw within each.
type StratifiedSpectral struct{ NumSamples int }

func (s StratifiedSpectral) Sample(n int, rng core.Sampler) []int {
	idx := make([]int, s.NumSamples)
	strataWidth := float64(n) / float64(s.NumSamples)
	for i := range idx {
		lo := float64(i) * strataWidth
		pos := lo + rng.Get1D()*strataWidth
		v := int(pos)
		if v >= n {
			v = n - 1
		}
		idx[i] = v
	}
	return idx
}
