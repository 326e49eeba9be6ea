package field

import (
	"math"
	"testing"
)

func TestSampleBallShellVolumes(t *testing.T) {
	const (
		samples = 10000
		radius  = 10.0
		shells  = 5
	)
	rng := testRand()

	var counts [shells]int
	for i := 0; i < samples; i++ {
		d := SampleBall(rng, radius).Len()
		if d > radius {
			t.Fatalf("sample %d at distance %g, want <= %g", i, d, radius)
		}
		shell := int(d / radius * shells)
		if shell == shells {
			shell--
		}
		counts[shell]++
	}

	for k := 0; k < shells; k++ {
		lo := float64(k) / shells
		hi := float64(k+1) / shells
		want := samples * (hi*hi*hi - lo*lo*lo)
		// Five standard deviations of a binomial count.
		p := want / samples
		tol := 5 * math.Sqrt(samples*p*(1-p))
		if diff := math.Abs(float64(counts[k]) - want); diff > tol {
			t.Fatalf("shell %d: count %d, want %.0f ± %.0f (counts %v)", k, counts[k], want, tol, counts)
		}
	}
	// Uniform-by-radius sampling would put ~2000 samples in the innermost shell.
	if counts[0] > 200 {
		t.Fatalf("innermost shell has %d samples; distribution clusters at centre", counts[0])
	}
}

func TestSampleBallAngularCoverage(t *testing.T) {
	rng := testRand()
	var upper, lower int
	for i := 0; i < 10000; i++ {
		if SampleBall(rng, 1).Z() >= 0 {
			upper++
		} else {
			lower++
		}
	}
	if diff := upper - lower; diff > 500 || diff < -500 {
		t.Fatalf("hemisphere split %d/%d, want roughly even", upper, lower)
	}
}
