package quarkgl

import "github.com/go-gl/mathgl/mgl64"

// Camera is a perspective camera.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	FOVYRad float64
	Near    float64
	Far     float64
}

// DefaultCamera looks at the origin from +Z.
func DefaultCamera() Camera {
	return Camera{
		Position: mgl64.Vec3{0, 0, 100},
		Up:       mgl64.Vec3{0, 1, 0},
		FOVYRad:  mgl64.DegToRad(75),
		Near:     0.1,
		Far:      1000,
	}
}

// View returns the camera view matrix.
func (c Camera) View() mgl64.Mat4 {
	up := c.Up
	if up == (mgl64.Vec3{}) {
		up = mgl64.Vec3{0, 1, 0}
	}
	return mgl64.LookAtV(c.Position, c.Target, up)
}

// Projection returns the projection matrix for a viewport aspect (w/h).
func (c Camera) Projection(aspect float64) mgl64.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	fov := c.FOVYRad
	if fov <= 0 {
		fov = 1
	}
	return mgl64.Perspective(fov, aspect, c.Near, c.Far)
}

// ViewProjection returns Projection * View.
func (c Camera) ViewProjection(aspect float64) mgl64.Mat4 {
	return c.Projection(aspect).Mul4(c.View())
}

// Unproject maps a normalized device coordinate back into world space.
func (c Camera) Unproject(ndc mgl64.Vec3, aspect float64) (mgl64.Vec3, bool) {
	inv := c.ViewProjection(aspect).Inv()
	v := inv.Mul4x1(ndc.Vec4(1))
	if v[3] == 0 {
		return mgl64.Vec3{}, false
	}
	return v.Vec3().Mul(1 / v[3]), true
}

// Ray returns the world-space ray from the camera through an NDC position.
// dir is unit length.
func (c Camera) Ray(ndcX, ndcY, aspect float64) (origin, dir mgl64.Vec3, ok bool) {
	near, ok1 := c.Unproject(mgl64.Vec3{ndcX, ndcY, -1}, aspect)
	far, ok2 := c.Unproject(mgl64.Vec3{ndcX, ndcY, 1}, aspect)
	if !ok1 || !ok2 {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	d := far.Sub(near)
	if d.Len() == 0 {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	return c.Position, d.Normalize(), true
}

// projector caches the per-frame matrices for screen projection.
type projector struct {
	vp    mgl64.Mat4
	focal float64 // proj[1][1]: 1/tan(fov/2)
	near  float64
	w, h  int
}

func newProjector(c Camera, w, h int) projector {
	aspect := 1.0
	if h > 0 {
		aspect = float64(w) / float64(h)
	}
	proj := c.Projection(aspect)
	return projector{
		vp:    proj.Mul4(c.View()),
		focal: proj[5],
		near:  c.Near,
		w:     w,
		h:     h,
	}
}

// Project maps a world point to pixel coordinates in a w×h viewport, using
// the same mapping as the renderer: NDC -1 is pixel 0 and NDC +1 is pixel w.
// ok is false for points at or behind the near plane.
func (c Camera) Project(v mgl64.Vec3, w, h int) (sx, sy float64, ok bool) {
	sx, sy, _, ok = newProjector(c, w, h).project(v)
	return sx, sy, ok
}

// project returns screen coordinates and the clip-space w (view depth) of p.
// ok is false for points at or behind the near plane.
func (p projector) project(v mgl64.Vec3) (sx, sy, depth float64, ok bool) {
	c := p.vp.Mul4x1(v.Vec4(1))
	if c[3] <= p.near {
		return 0, 0, 0, false
	}
	inv := 1 / c[3]
	x := c[0] * inv
	y := c[1] * inv
	sx = (x*0.5 + 0.5) * float64(p.w)
	sy = (1 - (y*0.5 + 0.5)) * float64(p.h)
	return sx, sy, c[3], true
}

// pixelRadius converts a world radius at the given depth to pixels.
func (p projector) pixelRadius(r, depth float64) float64 {
	return r * p.focal * float64(p.h) * 0.5 / depth
}
