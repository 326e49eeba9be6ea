package quarkgl

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// OrbitController places a camera on a sphere around Target.
//
// It does not depend on any input system; callers feed it deltas.
type OrbitController struct {
	Target mgl64.Vec3
	Yaw    float64
	Pitch  float64
	Radius float64

	MinRadius float64
	MaxRadius float64
}

const maxPitch = math.Pi/2 - 0.01

func (c *OrbitController) Apply(cam *Camera) {
	if cam == nil {
		return
	}
	r := c.Radius
	if r == 0 {
		r = 100
	}
	m := mgl64.Rotate3DY(c.Yaw).Mul3(mgl64.Rotate3DX(c.Pitch))
	p := m.Mul3x1(mgl64.Vec3{0, 0, r})

	cam.Position = c.Target.Add(p)
	cam.Target = c.Target
	if cam.Up == (mgl64.Vec3{}) {
		cam.Up = mgl64.Vec3{0, 1, 0}
	}
}

func (c *OrbitController) Rotate(deltaYaw, deltaPitch float64) {
	c.Yaw += deltaYaw
	c.Pitch = mgl64.Clamp(c.Pitch+deltaPitch, -maxPitch, maxPitch)
}

func (c *OrbitController) Zoom(delta float64) {
	c.Radius += delta
	if c.MinRadius != 0 && c.Radius < c.MinRadius {
		c.Radius = c.MinRadius
	}
	if c.MaxRadius != 0 && c.Radius > c.MaxRadius {
		c.Radius = c.MaxRadius
	}
}
