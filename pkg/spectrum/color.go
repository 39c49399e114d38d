package spectrum

import "math"

// XYZ is a CIE 1931 tristimulus value.
type XYZ struct{ X, Y, Z float64 }

// gaussianLobe evaluates an asymmetric Gaussian with a different width on
// each side of the peak at mu, scaled by alpha.
func gaussianLobe(x, alpha, mu, sigma1, sigma2 float64) float64 {
	sigma := sigma1
	if x > mu {
		sigma = sigma2
	}
	t := (x - mu) / sigma
	return alpha * math.Exp(-0.5*t*t)
}

// cmf evaluates the Wyman/Sloan/Shirley multi-lobe Gaussian fit to the
// CIE 1931 2° color-matching functions at wavelength λ (nm). This
// closed-form analytic approximation (as opposed to a 400-entry tabulated
// CMF) is accurate to within the tolerances path tracers already operate
// at and keeps the package free of an embedded data table.
func cmf(lambda float64) XYZ {
	x := gaussianLobe(lambda, 0.362, 442.0, 16.0, 26.7) +
		gaussianLobe(lambda, 1.056, 599.8, 37.9, 31.0) +
		gaussianLobe(lambda, -0.065, 501.1, 20.4, 26.2)
	y := gaussianLobe(lambda, 0.821, 568.8, 46.9, 40.5) +
		gaussianLobe(lambda, 0.286, 530.9, 16.3, 31.1)
	z := gaussianLobe(lambda, 1.217, 437.0, 11.8, 36.0) +
		gaussianLobe(lambda, 0.681, 459.0, 26.0, 13.8)
	return XYZ{X: x, Y: y, Z: z}
}

// yIntegral is the tabulated integral of the Y color-matching function
// over the visible range, computed once at init time by numerically
// integrating our own cmf() so it stays self-consistent with the XYZ
// conversion below.
var yIntegral = computeYIntegral()

func computeYIntegral() float64 {
	const steps = 4000
	step := (LambdaEnd - LambdaStart) / steps
	sum := 0.0
	for i := 0; i < steps; i++ {
		lambda := LambdaStart + (float64(i)+0.5)*step
		sum += cmf(lambda).Y
	}
	return sum * step
}

// ToXYZ converts the spectrum to CIE XYZ:
//
//	XYZ = (λ_range / (Y_integral · N)) · Σ_i xyz_of(λ_i) · s_i
func (s Spectrum) ToXYZ() XYZ {
	scale := (LambdaEnd - LambdaStart) / (yIntegral * N)
	var acc XYZ
	for i, v := range s.Samples {
		c := cmf(Lambda(i))
		acc.X += c.X * v
		acc.Y += c.Y * v
		acc.Z += c.Z * v
	}
	acc.X *= scale
	acc.Y *= scale
	acc.Z *= scale
	return acc
}

// sRGB D65 XYZ->linear-sRGB primaries matrix.
var xyzToLinearSRGB = [3][3]float64{
	{3.2404542, -1.5371385, -0.4985314},
	{-0.9692660, 1.8760108, 0.0415560},
	{0.0556434, -0.2040259, 1.0572252},
}

// ToLinearRGB applies the sRGB (D65) primaries matrix to XYZ, producing
// linear (not gamma-encoded) RGB. Negative results from out-of-gamut
// spectra are left as-is; callers clamp at the gamma/quantize stage.
func (c XYZ) ToLinearRGB() (r, g, b float64) {
	m := xyzToLinearSRGB
	r = m[0][0]*c.X + m[0][1]*c.Y + m[0][2]*c.Z
	g = m[1][0]*c.X + m[1][1]*c.Y + m[1][2]*c.Z
	b = m[2][0]*c.X + m[2][1]*c.Y + m[2][2]*c.Z
	return r, g, b
}

// GammaEncode applies the piecewise sRGB transfer function to a single
// linear channel value and clamps the result to [0, 1].
func GammaEncode(linear float64) float64 {
	if linear <= 0 {
		return 0
	}
	if linear >= 1 {
		return 1
	}
	if linear <= 0.0031308 {
		return 12.92 * linear
	}
	return 1.055*math.Pow(linear, 1/2.4) - 0.055
}

// RGB is a gamma-encoded sRGB triple in [0, 1].
type RGB struct{ R, G, B float64 }

// ToSRGB converts the spectrum all the way to gamma-encoded sRGB,
// clamped to [0, 1]: srgb = gamma(xyz_to_srgb(spectrum_to_xyz(s))).
func (s Spectrum) ToSRGB() RGB {
	r, g, b := s.ToXYZ().ToLinearRGB()
	return RGB{R: GammaEncode(r), G: GammaEncode(g), B: GammaEncode(b)}
}

// To8Bit converts the spectrum to 8-bit sRGB by multiplying by 2^8-1 and
// rounding.
func (s Spectrum) To8Bit() (r, g, b uint8) {
	c := s.ToSRGB()
	return uint8(math.Round(c.R * 255)), uint8(math.Round(c.G * 255)), uint8(math.Round(c.B * 255))
}

// To16Bit converts the spectrum to 16-bit sRGB by multiplying by 2^16-1
// and rounding.
func (s Spectrum) To16Bit() (r, g, b uint16) {
	c := s.ToSRGB()
	return uint16(math.Round(c.R * 65535)), uint16(math.Round(c.G * 65535)), uint16(math.Round(c.B * 65535))
}

// rgbBasis holds three smooth metamer basis spectra (roughly "red",
// "green" and "blue" bumps) and the inverse of the 3x3 matrix mapping
// basis weights to linear sRGB. Solving against that matrix makes
// FromRGB exact: FromRGB(r,g,b).ToSRGB() recovers (r,g,b) up to float
// rounding, since every step in between is linear.
var rgbBasis = buildRGBBasis()

type rgbBasisData struct {
	spectra [3]Spectrum
	inverse [3][3]float64
}

func buildRGBBasis() rgbBasisData {
	var d rgbBasisData
	bumps := [3][2]float64{{630, 70}, {532, 60}, {465, 50}}
	for j, bump := range bumps {
		var s Spectrum
		for i := range s.Samples {
			s.Samples[i] = smoothBump(Lambda(i), bump[0], bump[1])
		}
		d.spectra[j] = s
	}

	// m[i][j] = linear-sRGB channel i of basis spectrum j.
	var m [3][3]float64
	for j, s := range d.spectra {
		r, g, b := s.ToXYZ().ToLinearRGB()
		m[0][j], m[1][j], m[2][j] = r, g, b
	}
	d.inverse = invert3x3(m)
	return d
}

func invert3x3(m [3][3]float64) [3][3]float64 {
	a, b, c := m[0][0], m[0][1], m[0][2]
	d, e, f := m[1][0], m[1][1], m[1][2]
	g, h, i := m[2][0], m[2][1], m[2][2]
	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	inv := 1 / det
	return [3][3]float64{
		{(e*i - f*h) * inv, (c*h - b*i) * inv, (b*f - c*e) * inv},
		{(f*g - d*i) * inv, (a*i - c*g) * inv, (c*d - a*f) * inv},
		{(d*h - e*g) * inv, (b*g - a*h) * inv, (a*e - b*d) * inv},
	}
}

// FromRGB lifts a linear sRGB triple into a smooth metamer spectrum.
// Used when materials are authored in RGB (the common case); the lift is
// colorimetrically exact, so converting the result back to sRGB recovers
// the input. Saturated inputs can produce small negative samples in the
// basis solve; physical reflectances should stay in gamut.
func FromRGB(r, g, b float64) Spectrum {
	inv := rgbBasis.inverse
	w0 := inv[0][0]*r + inv[0][1]*g + inv[0][2]*b
	w1 := inv[1][0]*r + inv[1][1]*g + inv[1][2]*b
	w2 := inv[2][0]*r + inv[2][1]*g + inv[2][2]*b
	return rgbBasis.spectra[0].Multiply(w0).
		Add(rgbBasis.spectra[1].Multiply(w1)).
		Add(rgbBasis.spectra[2].Multiply(w2))
}

func smoothBump(lambda, mu, sigma float64) float64 {
	t := (lambda - mu) / sigma
	return math.Exp(-0.5 * t * t)
}

// Uniform returns the metamer spectrum that converts to the gray sRGB
// value (c, c, c).
func Uniform(c float64) Spectrum {
	return FromRGB(c, c, c)
}
