// Package film implements the sensor: a 2D grid of pixels, each
// holding a spectral accumulator and a filter-weight sum, updated by
// filter-weighted additive splats and converted to sRGB once rendering
// completes.
package film

import (
	"github.com/df07/spectral-tracer/pkg/filter"
	"github.com/df07/spectral-tracer/pkg/spectrum"
)

// pixel accumulates filter-weighted spectral contributions plus the sum
// of the weights that produced them.
type pixel struct {
	accum     [spectrum.N]float64
	weightSum float64
}

// Sensor is the full-image pixel grid, the only writeable shared state
// during rendering; callers are responsible for the non-overlap
// guarantee described on Splat.
type Sensor struct {
	width, height int
	filter        filter.Filter
	pixels        []pixel
}

// NewSensor allocates a black width x height sensor.
func NewSensor(width, height int, f filter.Filter) *Sensor {
	return &Sensor{
		width:  width,
		height: height,
		filter: f,
		pixels: make([]pixel, width*height),
	}
}

func (s *Sensor) Width() int  { return s.width }
func (s *Sensor) Height() int { return s.height }

func (s *Sensor) at(x, y int) *pixel {
	return &s.pixels[y*s.width+x]
}

// Splat deposits one spectral sample at continuous pixel coordinates
// (x, y) into every pixel within the filter's support, weighting each
// by the filter kernel evaluated at the relative offset.
//
// Splat is not safe to call concurrently across goroutines writing
// overlapping pixel ranges; the renderer satisfies this either by
// keeping the filter radius below the block size so concurrent blocks
// never touch the same pixel, or by splatting into a
// per-worker Tile and merging with Sensor.Merge after each pass.
func (s *Sensor) Splat(x, y float64, lambdaIndex int, value float64) {
	splatInto(s.pixels, s.width, s.height, 0, 0, s.filter, x, y, lambdaIndex, value)
}

// SplatSpectrum deposits a full-spectrum sample in one filter-footprint
// walk, used by the full-spectrum SpectralPath integrator so a single
// camera sample's 36 bands don't each re-walk the filter support.
func (s *Sensor) SplatSpectrum(x, y float64, sp spectrum.Spectrum) {
	splatSpectrumInto(s.pixels, s.width, s.height, 0, 0, s.filter, x, y, sp)
}

// splatInto is the shared filter-footprint walk used by both Sensor and
// Tile: it visits every destination pixel within the filter's radius of
// (x, y), offsets by (originX, originY) to translate into the
// destination buffer's local coordinates, and skips pixels that fall
// outside [0, width) x [0, height).
func splatInto(dst []pixel, width, height, originX, originY int, f filter.Filter, x, y float64, lambdaIndex int, value float64) {
	rx, ry := f.RadiusX(), f.RadiusY()
	loX := int(x - rx)
	hiX := int(x + rx)
	loY := int(y - ry)
	hiY := int(y + ry)

	for py := loY; py <= hiY; py++ {
		dy := py - originY
		if dy < 0 || dy >= height {
			continue
		}
		for px := loX; px <= hiX; px++ {
			dx := px - originX
			if dx < 0 || dx >= width {
				continue
			}
			w := f.Evaluate(float64(px)+0.5-x, float64(py)+0.5-y)
			if w == 0 {
				continue
			}
			p := &dst[dy*width+dx]
			p.accum[lambdaIndex] += w * value
			p.weightSum += w
		}
	}
}

// splatSpectrumInto is SplatSpectrum's shared footprint walk, analogous
// to splatInto but adding every band of sp at once under a single
// per-destination-pixel weight computation.
func splatSpectrumInto(dst []pixel, width, height, originX, originY int, f filter.Filter, x, y float64, sp spectrum.Spectrum) {
	rx, ry := f.RadiusX(), f.RadiusY()
	loX := int(x - rx)
	hiX := int(x + rx)
	loY := int(y - ry)
	hiY := int(y + ry)

	for py := loY; py <= hiY; py++ {
		dy := py - originY
		if dy < 0 || dy >= height {
			continue
		}
		for px := loX; px <= hiX; px++ {
			dx := px - originX
			if dx < 0 || dx >= width {
				continue
			}
			w := f.Evaluate(float64(px)+0.5-x, float64(py)+0.5-y)
			if w == 0 {
				continue
			}
			p := &dst[dy*width+dx]
			for i, v := range sp.Samples {
				p.accum[i] += w * v
			}
			p.weightSum += w
		}
	}
}

// Spectrum returns the reconstructed spectrum at (px, py): the
// accumulator divided by the weight sum, or black if no weight has
// accumulated yet (e.g. zero passes rendered).
func (s *Sensor) Spectrum(px, py int) spectrum.Spectrum {
	p := s.at(px, py)
	if p.weightSum == 0 {
		return spectrum.Black()
	}
	return spectrum.New(p.accum).Divide(p.weightSum)
}

// WeightSum returns the accumulated filter-weight sum at (px, py).
func (s *Sensor) WeightSum(px, py int) float64 {
	return s.at(px, py).weightSum
}

// ToSRGB8 returns the full image as gamma-encoded sRGB8 triples.
func (s *Sensor) ToSRGB8() [][3]uint8 {
	out := make([][3]uint8, s.width*s.height)
	for i := range s.pixels {
		sp := spectrum.New(s.pixels[i].accum)
		if s.pixels[i].weightSum != 0 {
			sp = sp.Divide(s.pixels[i].weightSum)
		}
		r, g, b := sp.To8Bit()
		out[i] = [3]uint8{r, g, b}
	}
	return out
}

// ToSRGB16 returns the full image as gamma-encoded sRGB16 triples.
func (s *Sensor) ToSRGB16() [][3]uint16 {
	out := make([][3]uint16, s.width*s.height)
	for i := range s.pixels {
		sp := spectrum.New(s.pixels[i].accum)
		if s.pixels[i].weightSum != 0 {
			sp = sp.Divide(s.pixels[i].weightSum)
		}
		r, g, b := sp.To16Bit()
		out[i] = [3]uint16{r, g, b}
	}
	return out
}

// RawSpectra returns the reconstructed (un-encoded) spectrum for every
// pixel, paired with the sRGB views for consumers that want the raw
// data.
func (s *Sensor) RawSpectra() []spectrum.Spectrum {
	out := make([]spectrum.Spectrum, s.width*s.height)
	for i, p := range s.pixels {
		sp := spectrum.New(p.accum)
		if p.weightSum != 0 {
			sp = sp.Divide(p.weightSum)
		}
		out[i] = sp
	}
	return out
}

// Tile is a worker-local accumulation buffer covering one rectangular
// block, padded by the filter's radius on every side so that a splat
// for a point inside the block can land anywhere its filter footprint
// reaches, even just past the block's edge. Merging tiles is a
// pure addition into the Sensor, so two neighboring tiles' padded
// regions may legally overlap: each source point is only ever splatted
// by the one tile rendering it, and Sensor.Merge sums whatever lands
// on a shared destination pixel from either side.
type Tile struct {
	originX, originY int // top-left of the padded buffer, in sensor coordinates
	width, height    int // padded buffer dimensions
	filter           filter.Filter
	pixels           []pixel
}

// NewTile allocates a black tile covering the block [x0,x0+w) x
// [y0,y0+h), padded outward by floor(filter radius)+1 pixels so splats
// from points inside the block are never clipped.
func NewTile(x0, y0, w, h int, f filter.Filter) *Tile {
	padX := int(f.RadiusX()) + 1
	padY := int(f.RadiusY()) + 1
	return &Tile{
		originX: x0 - padX,
		originY: y0 - padY,
		width:   w + 2*padX,
		height:  h + 2*padY,
		filter:  f,
		pixels:  make([]pixel, (w+2*padX)*(h+2*padY)),
	}
}

// Splat deposits a spectral sample the same way Sensor.Splat does,
// translated into this tile's local (padded) coordinate system.
func (t *Tile) Splat(x, y float64, lambdaIndex int, value float64) {
	splatInto(t.pixels, t.width, t.height, t.originX, t.originY, t.filter, x, y, lambdaIndex, value)
}

// SplatSpectrum is the full-spectrum analogue of Splat.
func (t *Tile) SplatSpectrum(x, y float64, sp spectrum.Spectrum) {
	splatSpectrumInto(t.pixels, t.width, t.height, t.originX, t.originY, t.filter, x, y, sp)
}

// MergeInto adds this tile's accumulated weight and spectral samples
// into the parent Sensor at the tile's recorded origin. Called once per
// pass, after all workers touching overlapping filter footprints have
// finished splatting into their own tiles.
func (t *Tile) MergeInto(s *Sensor) {
	for ty := 0; ty < t.height; ty++ {
		sy := t.originY + ty
		if sy < 0 || sy >= s.height {
			continue
		}
		for tx := 0; tx < t.width; tx++ {
			sx := t.originX + tx
			if sx < 0 || sx >= s.width {
				continue
			}
			src := &t.pixels[ty*t.width+tx]
			dst := s.at(sx, sy)
			for i := range dst.accum {
				dst.accum[i] += src.accum[i]
			}
			dst.weightSum += src.weightSum
		}
	}
}
