// Package refract implements the wavelength-dependent refractive index
// models used by dispersive materials: Sellmeier dispersion formulas for common dielectrics, a binary-search table
// lookup for materials without a closed-form fit, and a simple linear
// model for synthetic/test materials.
package refract

import (
	"math"
	"sort"
)

// Material reports the (real) refractive index n(λ) and, for metals,
// the extinction coefficient k(λ) used by the Fresnel conductor
// equations. λ is in nanometers.
type Material interface {
	N(lambdaNM float64) float64
	K(lambdaNM float64) float64
}

// sellmeier evaluates the 3-term Sellmeier dispersion equation:
// n² = 1 + Σ B_i λ² / (λ² - C_i), λ in micrometers.
type sellmeier struct {
	b [3]float64
	c [3]float64
}

func (s sellmeier) N(lambdaNM float64) float64 {
	lambdaUM := lambdaNM / 1000
	l2 := lambdaUM * lambdaUM
	n2 := 1.0
	for i := 0; i < 3; i++ {
		n2 += s.b[i] * l2 / (l2 - s.c[i])
	}
	if n2 < 1 {
		n2 = 1
	}
	return math.Sqrt(n2)
}

func (sellmeier) K(float64) float64 { return 0 }

// Air is effectively vacuum for rendering purposes but kept distinct for
// clarity at call sites; both report n≈1 and no extinction.
var Air Material = constant{n: 1.000277}

// Vacuum is the exact n=1, k=0 reference medium.
var Vacuum Material = constant{n: 1.0}

// Water is the Sellmeier fit for water at room temperature (Schiebener
// et al. simplified 3-term approximation).
var Water Material = sellmeier{
	b: [3]float64{0.5684027565, 0.1726177391, 0.0205222901},
	c: [3]float64{0.005101829712, 0.01821153936, 0.02620722293},
}

// Glass is BK7-equivalent crown glass.
var Glass Material = sellmeier{
	b: [3]float64{1.03961212, 0.231792344, 1.01046945},
	c: [3]float64{0.00600069867, 0.0200179144, 103.560653},
}

// Sapphire is the ordinary-ray Sellmeier fit for sapphire (Al2O3).
var Sapphire Material = sellmeier{
	b: [3]float64{1.4313493, 0.65054713, 5.3414021},
	c: [3]float64{0.0052799261, 0.0142382647, 325.017834},
}

type constant struct{ n float64 }

func (c constant) N(float64) float64 { return c.n }
func (c constant) K(float64) float64 { return 0 }

// Linear is a synthetic material whose index varies linearly across the
// visible range, from n_min at 380nm to n_max at 780nm. Used by prism
// and test scenes that want controllable dispersion without a physical
// fit.
type Linear struct {
	NMin, NMax float64
}

func (l Linear) N(lambdaNM float64) float64 {
	const lo, hi = 380.0, 780.0
	t := (lambdaNM - lo) / (hi - lo)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return l.NMin + t*(l.NMax-l.NMin)
}

func (Linear) K(float64) float64 { return 0 }

// Table is a wavelength-sampled (n, k) table with binary-search + linear
// interpolation lookup, used for tabulated conductors (metals) where no
// simple closed-form dispersion fit applies.
type Table struct {
	LambdaNM []float64 // ascending
	NValues  []float64
	KValues  []float64
}

func interp(lambdaNM float64, xs, ys []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	if lambdaNM <= xs[0] {
		return ys[0]
	}
	if lambdaNM >= xs[n-1] {
		return ys[n-1]
	}
	i := sort.SearchFloat64s(xs, lambdaNM)
	if i < n && xs[i] == lambdaNM {
		return ys[i]
	}
	// i is the first index with xs[i] > lambdaNM; interpolate between
	// i-1 and i.
	lo, hi := i-1, i
	frac := (lambdaNM - xs[lo]) / (xs[hi] - xs[lo])
	return ys[lo] + frac*(ys[hi]-ys[lo])
}

func (t Table) N(lambdaNM float64) float64 { return interp(lambdaNM, t.LambdaNM, t.NValues) }
func (t Table) K(lambdaNM float64) float64 { return interp(lambdaNM, t.LambdaNM, t.KValues) }
