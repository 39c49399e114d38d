// Package imageutil converts a film.Sensor's accumulated spectral
// radiance into standard library image.Image values and encodes them
// for the demo CLI's output path.
package imageutil

import (
	"image"
	"image/color"
	"io"

	"golang.org/x/image/draw"

	"github.com/HugoSmits86/nativewebp"
	"github.com/df07/spectral-tracer/pkg/film"
)

// ToRGBA converts a Sensor's tone-mapped sRGB output into an
// *image.RGBA, the 8-bit boundary format most preview/debug tooling
// expects.
func ToRGBA(s *film.Sensor) *image.RGBA {
	w, h := s.Width(), s.Height()
	px := s.ToSRGB8()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := px[y*w+x]
			img.SetRGBA(x, y, color.RGBA{R: c[0], G: c[1], B: c[2], A: 255})
		}
	}
	return img
}

// ToNRGBA64 converts a Sensor's tone-mapped sRGB output into a
// 16-bit-per-channel *image.NRGBA64, for a higher-precision output path
// than ToRGBA.
func ToNRGBA64(s *film.Sensor) *image.NRGBA64 {
	w, h := s.Width(), s.Height()
	px := s.ToSRGB16()
	img := image.NewNRGBA64(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := px[y*w+x]
			img.SetNRGBA64(x, y, color.NRGBA64{R: c[0], G: c[1], B: c[2], A: 0xFFFF})
		}
	}
	return img
}

// DownsamplePreview resizes src to the given width/height using
// nearest-neighbor interpolation, for a cheap progressive-preview
// thumbnail during a long render.
func DownsamplePreview(src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// WriteWebP encodes img as a lossless WebP preview. This is a
// convenience output path for the demo CLI, not part of the renderer's
// core boundary.
func WriteWebP(w io.Writer, img image.Image) error {
	return nativewebp.Encode(w, img, nil)
}
