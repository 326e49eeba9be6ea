package interact

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"dotsphere/internal/field"
	"dotsphere/internal/quarkgl"
)

func newController(t *testing.T) *Controller {
	t.Helper()
	c, err := New(DefaultConfig(), rand.New(rand.NewPCG(3, 4)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

// newAxisField puts points 0 and 1 on the camera axis and 2 well off it.
func newAxisField(t *testing.T) *field.Field {
	t.Helper()
	f, err := field.NewFromPositions(field.DefaultConfig(), []mgl64.Vec3{
		{0, 0, 0},
		{0, 0, 20},
		{30, 0, 0},
	})
	if err != nil {
		t.Fatalf("NewFromPositions: %v", err)
	}
	return f
}

func TestUpdatePointerNormalizes(t *testing.T) {
	c := newController(t)
	if _, ok := c.Pointer(); ok {
		t.Fatal("Pointer() ok = true before any update")
	}

	tests := []struct {
		x, y float64
		want NDC
	}{
		{0, 0, NDC{X: -1, Y: 1}},
		{800, 600, NDC{X: 1, Y: -1}},
		{400, 300, NDC{X: 0, Y: 0}},
		{200, 450, NDC{X: -0.5, Y: -0.5}},
	}
	for _, tt := range tests {
		c.UpdatePointer(tt.x, tt.y, 800, 600)
		got, ok := c.Pointer()
		if !ok || got != tt.want {
			t.Fatalf("UpdatePointer(%g, %g) -> %+v, want %+v", tt.x, tt.y, got, tt.want)
		}
	}

	c.UpdatePointer(10, 10, 0, 600)
	if got, _ := c.Pointer(); got != tests[len(tests)-1].want {
		t.Fatalf("zero-width viewport changed pointer to %+v", got)
	}

	c.ClearPointer()
	if _, ok := c.Pointer(); ok {
		t.Fatal("Pointer() ok = true after ClearPointer")
	}
}

func TestResolveHitsWithoutPointer(t *testing.T) {
	c := newController(t)
	f := newAxisField(t)
	if hits := c.ResolveHits(f, quarkgl.DefaultCamera(), 1, time.Second); len(hits) != 0 {
		t.Fatalf("hits = %v, want none", hits)
	}
	for i, p := range f.Points() {
		if p.Scale != 1 || p.EnlargedUntil != 0 {
			t.Fatalf("point %d = %+v, want untouched", i, p)
		}
	}
}

func TestResolveHitsEnlargesAllUnderPointer(t *testing.T) {
	c := newController(t)
	f := newAxisField(t)
	c.UpdatePointer(320, 240, 640, 480)

	now := 10 * time.Second
	hits := c.ResolveHits(f, quarkgl.DefaultCamera(), 640.0/480.0, now)
	if len(hits) != 2 {
		t.Fatalf("len(hits) = %d, want 2 (%v)", len(hits), hits)
	}
	if hits[0].Index != 1 || hits[1].Index != 0 {
		t.Fatalf("hit order = %v, want nearest (index 1) first", hits)
	}
	if !(hits[0].Distance < hits[1].Distance) {
		t.Fatalf("hit distances not ascending: %v", hits)
	}

	for _, i := range []int{0, 1} {
		p := f.Point(i)
		if !hits[1-i].Triggered {
			t.Fatalf("hit on point %d not triggered", i)
		}
		if p.Scale != 2.5 || p.State != field.StateEnlarged {
			t.Fatalf("point %d scale=%g state=%s, want 2.5 enlarged", i, p.Scale, p.State)
		}
		if p.EnlargedUntil < now+2*time.Second || p.EnlargedUntil >= now+3*time.Second {
			t.Fatalf("point %d EnlargedUntil = %v, want in [%v, %v)", i, p.EnlargedUntil, now+2*time.Second, now+3*time.Second)
		}
	}

	off := f.Point(2)
	if off.Scale != 1 || off.EnlargedUntil != 0 {
		t.Fatalf("off-axis point = %+v, want untouched", off)
	}
}

func TestResolveHitsDoesNotRefreshTimer(t *testing.T) {
	c := newController(t)
	f := newAxisField(t)
	c.UpdatePointer(50, 50, 100, 100)
	cam := quarkgl.DefaultCamera()

	c.ResolveHits(f, cam, 1, time.Second)
	until := f.Point(0).EnlargedUntil

	hits := c.ResolveHits(f, cam, 1, 2*time.Second)
	for _, h := range hits {
		if h.Triggered {
			t.Fatalf("re-hit %v triggered while still enlarged", h)
		}
	}
	if got := f.Point(0).EnlargedUntil; got != until {
		t.Fatalf("EnlargedUntil = %v after re-hit, want %v", got, until)
	}
}

func TestResolveHitsRetriggersAfterDecay(t *testing.T) {
	c := newController(t)
	f := newAxisField(t)
	c.UpdatePointer(50, 50, 100, 100)
	cam := quarkgl.DefaultCamera()

	c.ResolveHits(f, cam, 1, 0)
	until := f.Point(0).EnlargedUntil

	now := until
	for f.Point(0).Scale >= DefaultConfig().EnlargedAt {
		f.DecayScale(now)
		now += 16 * time.Millisecond
	}
	if f.Point(0).State != field.StateDecaying {
		t.Fatalf("state = %s, want decaying", f.Point(0).State)
	}

	c.ResolveHits(f, cam, 1, now)
	p := f.Point(0)
	if p.Scale != 2.5 || p.EnlargedUntil < now+2*time.Second {
		t.Fatalf("point after re-hit = %+v, want re-enlarged from %v", p, now)
	}
}

func TestResolveHitsUsesScaledRadius(t *testing.T) {
	c := newController(t)
	f, err := field.NewFromPositions(field.DefaultConfig(), []mgl64.Vec3{{0.8, 0, 0}})
	if err != nil {
		t.Fatalf("NewFromPositions: %v", err)
	}
	c.UpdatePointer(50, 50, 100, 100)
	cam := quarkgl.DefaultCamera()

	// Base radius 0.5 does not reach the axis at x=0.8.
	if hits := c.ResolveHits(f, cam, 1, 0); len(hits) != 0 {
		t.Fatalf("hits = %v, want none", hits)
	}
	f.Enlarge(0, 1.9, 0)
	if hits := c.ResolveHits(f, cam, 1, time.Second); len(hits) != 1 {
		t.Fatalf("hits = %v, want the scaled point", hits)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	for _, cfg := range []Config{
		{EnlargeScale: 2.5, EnlargedAt: 1, HoldMin: time.Second},
		{EnlargeScale: 1.5, EnlargedAt: 2},
		{EnlargeScale: 2.5, EnlargedAt: 2, HoldMin: -time.Second},
	} {
		if _, err := New(cfg, rng); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("New(%+v) err = %v, want ErrInvalidConfig", cfg, err)
		}
	}
	if _, err := New(DefaultConfig(), nil); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("New(nil rng) err = %v, want ErrInvalidConfig", err)
	}
}

func TestIntersectSphere(t *testing.T) {
	origin := mgl64.Vec3{0, 0, 10}
	dir := mgl64.Vec3{0, 0, -1}
	tests := []struct {
		name   string
		center mgl64.Vec3
		radius float64
		want   float64
		ok     bool
	}{
		{"ahead", mgl64.Vec3{0, 0, 0}, 1, 9, true},
		{"grazing", mgl64.Vec3{1, 0, 0}, 1, 10, true},
		{"miss", mgl64.Vec3{2, 0, 0}, 1, 0, false},
		{"behind", mgl64.Vec3{0, 0, 20}, 1, 0, false},
		{"inside", mgl64.Vec3{0, 0, 10}, 2, 2, true},
	}
	for _, tt := range tests {
		got, ok := IntersectSphere(origin, dir, tt.center, tt.radius)
		if ok != tt.ok || math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("%s: IntersectSphere = (%g, %v), want (%g, %v)", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRayFollowsPointer(t *testing.T) {
	c := newController(t)
	cam := quarkgl.DefaultCamera()
	if _, _, ok := c.Ray(cam, 1); ok {
		t.Fatalf("Ray() ok before any pointer update")
	}

	c.UpdatePointer(50, 50, 100, 100)
	origin, dir, ok := c.Ray(cam, 1)
	if !ok {
		t.Fatalf("Ray() ok = false")
	}
	if !origin.ApproxEqual(cam.Position) {
		t.Fatalf("origin = %v, want camera position %v", origin, cam.Position)
	}
	want := cam.Target.Sub(cam.Position).Normalize()
	if !dir.ApproxEqualThreshold(want, 1e-9) {
		t.Fatalf("dir = %v, want %v", dir, want)
	}

	c.UpdatePointer(100, 50, 100, 100)
	_, right, _ := c.Ray(cam, 1)
	if right.Sub(dir).Dot(cam.Position.Cross(cam.Up)) == 0 {
		t.Fatalf("ray did not move with the pointer: %v", right)
	}
}

func TestPointerOnDrawnPixelHitsPoint(t *testing.T) {
	const w, h = 480, 320
	cam := quarkgl.DefaultCamera()
	for _, pos := range []mgl64.Vec3{{0, 0, 0}, {49, 0, 0}, {-40, 28, 0}, {0, -45, 10}} {
		f, err := field.NewFromPositions(field.DefaultConfig(), []mgl64.Vec3{pos})
		if err != nil {
			t.Fatalf("NewFromPositions(%v): %v", pos, err)
		}
		sx, sy, ok := cam.Project(pos, w, h)
		if !ok {
			t.Fatalf("Project(%v) ok = false", pos)
		}

		c := newController(t)
		c.UpdatePointer(math.Round(sx), math.Round(sy), w, h)
		if hits := c.ResolveHits(f, cam, float64(w)/h, 0); len(hits) != 1 {
			t.Fatalf("pointer on pixel (%g, %g) of %v: hits = %v, want 1", math.Round(sx), math.Round(sy), pos, hits)
		}
	}
}
