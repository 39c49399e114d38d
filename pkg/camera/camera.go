// Package camera implements the perspective camera: mapping a pixel
// coordinate plus an optional subpixel/lens sample to a primary ray,
// as a pinhole projection or with thin-lens depth of field when an
// aperture is set.
package camera

import (
	"math"

	"github.com/df07/spectral-tracer/pkg/core"
)

// Config is the camera's construction parameters.
type Config struct {
	Center        core.Vec3
	LookAt        core.Vec3
	Up            core.Vec3
	Width         int
	AspectRatio   float64 // width / height
	VFov          float64 // vertical field of view, degrees
	Aperture      float64 // lens diameter; 0 disables depth of field
	FocusDistance float64 // 0 = auto (distance to LookAt)
}

// Camera generates primary rays from the pinhole (or thin-lens, when
// Aperture > 0) projection described by Config.
type Camera struct {
	config Config

	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // camera basis: u=right, v=up, w=back (toward origin from LookAt)
	lensRadius      float64
	imageHeight     int
}

// New builds a Camera from config, computing the view-plane basis once;
// the result is shared read-only across workers.
func New(config Config) *Camera {
	imageHeight := int(float64(config.Width) / config.AspectRatio)
	if imageHeight < 1 {
		imageHeight = 1
	}

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.LookAt.Subtract(config.Center).Length()
		if focusDistance <= 0 {
			focusDistance = 1
		}
	}

	theta := config.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	halfWidth := config.AspectRatio * halfHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(2 * halfWidth * focusDistance)
	vertical := v.Multiply(2 * halfHeight * focusDistance)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		config:          config,
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		imageHeight:     imageHeight,
	}
}

// ImageHeight returns the pixel height derived from Width/AspectRatio.
func (c *Camera) ImageHeight() int { return c.imageHeight }

// Forward returns the camera's viewing direction (world space, unit
// length).
func (c *Camera) Forward() core.Vec3 { return c.w.Negate() }

// GenerateRay maps a pixel coordinate (px, py), a subpixel offset in
// [0,1)x[0,1) (from the pixel sampler), and a lens sample in [0,1)x[0,1)
// (from the lens sampler, ignored when Aperture is 0) to a primary ray.
func (c *Camera) GenerateRay(px, py int, subX, subY, lensU, lensV float64) core.Ray {
	s := (float64(px) + subX) / float64(c.config.Width)
	t := 1 - (float64(py)+subY)/float64(c.imageHeight)

	origin := c.origin
	if c.lensRadius > 0 {
		lx, ly := core.ConcentricSampleDisk(lensU, lensV)
		offset := c.u.Multiply(lx * c.lensRadius).Add(c.v.Multiply(ly * c.lensRadius))
		origin = origin.Add(offset)
	}

	target := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t))
	direction := target.Subtract(origin).Normalize()

	return core.NewRay(origin, direction)
}
