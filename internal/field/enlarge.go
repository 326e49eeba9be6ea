package field

import "time"

// EnlargeState is the hover animation state of a point.
type EnlargeState uint8

const (
	// StateNormal: scale is 1.0 and nothing is pending.
	StateNormal EnlargeState = iota
	// StateEnlarged: held at the enlarge scale until EnlargedUntil.
	StateEnlarged
	// StateDecaying: easing back towards 1.0.
	StateDecaying
)

func (s EnlargeState) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateEnlarged:
		return "enlarged"
	case StateDecaying:
		return "decaying"
	default:
		return "unknown"
	}
}

// enlarge handles the hit transition. Any state may enter Enlarged; whether a
// hit should fire at all is decided by the caller.
func (p *Point) enlarge(scale float64, until time.Duration) {
	if scale < 1 {
		scale = 1
	}
	p.Scale = scale
	p.EnlargedUntil = until
	p.State = StateEnlarged
}

// decay handles the timeout and decay-complete transitions.
func (p *Point) decay(now time.Duration, rate, settle float64) {
	if p.State == StateNormal || now < p.EnlargedUntil {
		return
	}
	p.State = StateDecaying
	p.Scale += (1 - p.Scale) * rate
	if p.Scale-1 <= settle {
		p.Scale = 1
		p.State = StateNormal
	}
}
