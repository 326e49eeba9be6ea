package field

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// SampleBall draws a point uniformly by volume from the ball of the given radius.
//
// The azimuth is uniform, the polar angle is acos(2v-1) so that cos(phi) is
// uniform, and the radius is R*cbrt(w) because enclosed volume grows with r^3.
func SampleBall(rng *rand.Rand, radius float64) mgl64.Vec3 {
	theta := 2 * math.Pi * rng.Float64()
	phi := math.Acos(2*rng.Float64() - 1)
	r := radius * math.Cbrt(rng.Float64())
	sinPhi := math.Sin(phi)
	return mgl64.Vec3{
		r * sinPhi * math.Cos(theta),
		r * sinPhi * math.Sin(theta),
		r * math.Cos(phi),
	}
}
