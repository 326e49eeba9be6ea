package interact

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// IntersectSphere returns the distance along the unit ray (origin, dir) to the
// first surface crossing of the sphere. A ray starting inside the sphere
// reports the exit distance.
func IntersectSphere(origin, dir, center mgl64.Vec3, radius float64) (float64, bool) {
	oc := center.Sub(origin)
	tca := oc.Dot(dir)
	d2 := oc.Dot(oc) - tca*tca
	r2 := radius * radius
	if d2 > r2 {
		return 0, false
	}
	thc := math.Sqrt(r2 - d2)
	t0, t1 := tca-thc, tca+thc
	if t1 < 0 {
		return 0, false
	}
	if t0 < 0 {
		return t1, true
	}
	return t0, true
}
