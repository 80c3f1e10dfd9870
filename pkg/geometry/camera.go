package geometry

import (
	"github.com/jkvist/go-bsp-pathtracer/pkg/core"
)

// CameraConfig describes the camera model. CamConst is the focal-length-like
// zoom factor mapping image-plane coordinates to the view direction. A
// non-zero Aperture with a positive FocusDistance selects the thin-lens model.
type CameraConfig struct {
	Center        core.Vec3 // Eye position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // Up hint for the orthonormal basis
	Width         int       // Image width in pixels
	Height        int       // Image height in pixels
	CamConst      float64   // Camera constant (zoom), image plane at unit distance
	Aperture      float64   // Lens diameter, 0 for a pinhole
	FocusDistance float64   // Distance to the sharp focal plane along the view axis
}

// Camera generates primary rays from pixel coordinates
type Camera struct {
	config  CameraConfig
	forward core.Vec3
	right   core.Vec3
	up      core.Vec3
	aspect  float64
}

// NewCamera builds the orthonormal basis (view direction, right, up) from
// eye/look/up and precomputes the aspect-ratio correction.
func NewCamera(config CameraConfig) *Camera {
	if config.CamConst <= 0 {
		config.CamConst = 1.0
	}

	forward := config.LookAt.Subtract(config.Center).Normalize()
	right := forward.Cross(config.Up).Normalize()
	up := right.Cross(forward)

	return &Camera{
		config:  config,
		forward: forward,
		right:   right,
		up:      up,
		aspect:  float64(config.Width) / float64(config.Height),
	}
}

// Config returns the camera configuration
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Forward returns the view direction
func (c *Camera) Forward() core.Vec3 {
	return c.forward
}

// PinholeRay builds the ray through normalized image-plane coordinates
// (u, v) in [-0.5, 0.5], v pointing up.
func (c *Camera) PinholeRay(u, v float64) core.Ray {
	direction := c.right.Multiply(u * c.aspect).
		Add(c.up.Multiply(v)).
		Add(c.forward.Multiply(c.config.CamConst)).
		Normalize()
	return core.NewRay(c.config.Center, direction)
}

// ThinLensRay samples a point on the lens disk and aims at the sharp-focus
// point on the focal plane, producing depth-of-field blur for objects off
// that plane.
func (c *Camera) ThinLensRay(u, v float64, sampler core.Sampler) core.Ray {
	pinhole := c.PinholeRay(u, v)

	cosTheta := pinhole.Direction.Dot(c.forward)
	if cosTheta <= 0 {
		return pinhole
	}
	focusPoint := c.config.Center.Add(
		pinhole.Direction.Multiply(c.config.FocusDistance / cosTheta))

	lens := core.SamplePointInUnitDisk(sampler.Get2D())
	lensRadius := c.config.Aperture / 2
	origin := c.config.Center.
		Add(c.right.Multiply(lens.X * lensRadius)).
		Add(c.up.Multiply(lens.Y * lensRadius))

	return core.NewRay(origin, focusPoint.Subtract(origin).Normalize())
}

// GetRay generates the jittered primary ray for pixel (i, j), using the thin
// lens when an aperture is configured.
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	jitter := sampler.Get2D()
	u := (float64(i)+jitter.X)/float64(c.config.Width) - 0.5
	v := 0.5 - (float64(j)+jitter.Y)/float64(c.config.Height)

	if c.config.Aperture > 0 && c.config.FocusDistance > 0 {
		return c.ThinLensRay(u, v, sampler)
	}
	return c.PinholeRay(u, v)
}
