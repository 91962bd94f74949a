package camera

import (
	"math"
	"math/rand"
	"testing"
)

var testCaptions = Captions{
	Intro: "Initiating Scan...",
	Scan:  "Scanning: %s",
	Lock:  "TARGET LOCKED: %s",
	Outro: "Global Analysis Complete",
	Final: "The Truth is Out There...",
}

func noLookup(string) (Viewport, bool) {
	return Viewport{}, false
}

func newTestPlanner(t *testing.T, cfg Config, lookup LookupFunc) *Planner {
	t.Helper()
	p, err := NewPlanner(cfg, lookup)
	if err != nil {
		t.Fatalf("NewPlanner: %v", err)
	}
	return p
}

func TestZoomFirstFrameIsExactStart(t *testing.T) {
	a := Viewport{MinX: -100, MaxX: 100, MinY: -50, MaxY: 50}
	b := Viewport{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}

	p := newTestPlanner(t, Config{ZoomFrames: 25}, noLookup)
	tl := &Timeline{}
	p.zoom(tl, a, b, nil, "zoom")

	if len(tl.Frames) != 25 {
		t.Fatalf("zoom emitted %d frames; want 25", len(tl.Frames))
	}
	if tl.Frames[0].Viewport != a {
		t.Fatalf("frame 0 = %+v; want exact start %+v", tl.Frames[0].Viewport, a)
	}
}

func TestZoomLastFrameStopsShortOfTarget(t *testing.T) {
	a := Viewport{MinX: -100, MaxX: 100, MinY: -50, MaxY: 50}
	b := Viewport{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}

	p := newTestPlanner(t, Config{ZoomFrames: 25}, noLookup)
	tl := &Timeline{}
	p.zoom(tl, a, b, nil, "zoom")

	last := tl.Frames[24].Viewport
	if last == b {
		t.Fatal("frame 24 reached the target exactly; the endpoint is asymptotic by contract")
	}

	// The residual is fully determined by the easing curve: frame 24
	// sits at t = Ease(24/25) along the straight line from a to b.
	want := Lerp(a, b, Ease(24.0/25.0))
	if math.Abs(last.MinX-want.MinX) > tol ||
		math.Abs(last.MaxX-want.MaxX) > tol ||
		math.Abs(last.MinY-want.MinY) > tol ||
		math.Abs(last.MaxY-want.MaxY) > tol {
		t.Fatalf("frame 24 = %+v; want %+v", last, want)
	}
}

func TestHoldWithoutShakeIsIdentical(t *testing.T) {
	v := Viewport{MinX: 10, MaxX: 19, MinY: 20, MaxY: 36}

	p := newTestPlanner(t, Config{HoldFrames: 45}, noLookup)
	tl := &Timeline{}
	p.hold(tl, v, nil, "hold", 45, 0)

	if len(tl.Frames) != 45 {
		t.Fatalf("hold emitted %d frames; want 45", len(tl.Frames))
	}
	for i, f := range tl.Frames {
		if f.Viewport != v {
			t.Fatalf("frame %d = %+v; want %+v", i, f.Viewport, v)
		}
	}
}

func TestHoldShakeIsBoundedAndReproducible(t *testing.T) {
	v := Viewport{MinX: 10, MaxX: 19, MinY: 20, MaxY: 36}
	const shake = 0.8

	run := func(seed int64) []Frame {
		p := newTestPlanner(t, Config{Rand: rand.New(rand.NewSource(seed))}, noLookup)
		tl := &Timeline{}
		p.hold(tl, v, nil, "hold", 45, shake)
		return tl.Frames
	}

	first := run(42)
	second := run(42)
	other := run(7)

	sawOffset := false
	for i := range first {
		got := first[i].Viewport
		dx := got.MinX - v.MinX
		dy := got.MinY - v.MinY
		if math.Abs(dx) > shake || math.Abs(dy) > shake {
			t.Fatalf("frame %d offset (%v, %v) exceeds shake intensity %v", i, dx, dy, shake)
		}
		// Jitter translates, never resizes.
		if math.Abs(got.Width()-v.Width()) > tol || math.Abs(got.Height()-v.Height()) > tol {
			t.Fatalf("frame %d changed viewport size: %+v", i, got)
		}
		if got != second[i].Viewport {
			t.Fatalf("same seed diverged at frame %d: %+v vs %+v", i, got, second[i].Viewport)
		}
		if got != other[i].Viewport {
			sawOffset = true
		}
	}
	if !sawOffset {
		t.Fatal("different seeds produced identical shake sequences")
	}
}

func TestResolveTagsFallback(t *testing.T) {
	world := Viewport{MinX: -100, MaxX: 100, MinY: -50, MaxY: 50}
	lookup := func(name string) (Viewport, bool) {
		if name == "A" {
			return Viewport{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}, true
		}
		return Viewport{}, false
	}

	p := newTestPlanner(t, Config{World: world, Padding: 1}, lookup)

	res := p.Resolve("A")
	if res.Fallback {
		t.Fatal("resolved target tagged as fallback")
	}
	if r := res.Bounds.Width() / res.Bounds.Height(); math.Abs(r-DefaultAspectRatio) > tol {
		t.Fatalf("resolved bounds ratio = %v; want %v", r, DefaultAspectRatio)
	}
	if !res.Bounds.Contains(Viewport{MinX: -1, MaxX: 11, MinY: -1, MaxY: 11}) {
		t.Fatalf("resolved bounds %+v do not contain the padded region", res.Bounds)
	}

	res = p.Resolve("B")
	if !res.Fallback {
		t.Fatal("unresolved target not tagged as fallback")
	}
	if res.Bounds != world {
		t.Fatalf("fallback bounds = %+v; want world %+v", res.Bounds, world)
	}
}

func TestResolveAppliesDefaultPadding(t *testing.T) {
	raw := Viewport{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}
	lookup := func(string) (Viewport, bool) { return raw, true }

	// Built like a production job: timing set, padding left zero.
	p := newTestPlanner(t, Config{ZoomFrames: 25, HoldFrames: 45, Shake: 0.8}, lookup)

	res := p.Resolve("A")
	want := NormalizeAspect(raw.Pad(DefaultPadding), DefaultAspectRatio)
	if math.Abs(res.Bounds.MinX-want.MinX) > tol ||
		math.Abs(res.Bounds.MaxX-want.MaxX) > tol ||
		math.Abs(res.Bounds.MinY-want.MinY) > tol ||
		math.Abs(res.Bounds.MaxY-want.MaxY) > tol {
		t.Fatalf("Resolve = %+v; want %+v (padded by %v per side)", res.Bounds, want, DefaultPadding)
	}

	// The margin must survive aspect normalization on every side.
	if res.Bounds.MinX > raw.MinX-DefaultPadding ||
		res.Bounds.MaxX < raw.MaxX+DefaultPadding ||
		res.Bounds.MinY > raw.MinY-DefaultPadding ||
		res.Bounds.MaxY < raw.MaxY+DefaultPadding {
		t.Fatalf("Resolve = %+v; target framed with less than %v margin around %+v", res.Bounds, DefaultPadding, raw)
	}
}

func TestPlanSequenceAndFrameArithmetic(t *testing.T) {
	world := Viewport{MinX: -100, MaxX: 100, MinY: -50, MaxY: 50}
	lookup := func(name string) (Viewport, bool) {
		if name == "A" {
			return Viewport{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}, true
		}
		return Viewport{}, false
	}

	p := newTestPlanner(t, Config{
		ZoomFrames:  2,
		HoldFrames:  2,
		IntroFrames: 1,
		FinalFrames: 1,
		World:       world,
		Rand:        rand.New(rand.NewSource(1)),
	}, lookup)

	tl := p.Plan([]string{"A", "B"}, testCaptions)

	// 1 intro + (2 zoom + 2 hold) per target + 2 outro zoom + 1 closing hold.
	want := 1 + (2+2)*2 + 2 + 1
	if len(tl.Frames) != want {
		t.Fatalf("timeline has %d frames; want %d", len(tl.Frames), want)
	}

	if len(tl.Resolutions) != 2 {
		t.Fatalf("got %d resolutions; want 2", len(tl.Resolutions))
	}
	if tl.Resolutions[0].Fallback {
		t.Fatal("target A tagged as fallback")
	}
	if !tl.Resolutions[1].Fallback {
		t.Fatal("target B not tagged as fallback")
	}
	if tl.Resolutions[1].Bounds != world {
		t.Fatalf("target B fallback bounds = %+v; want world", tl.Resolutions[1].Bounds)
	}

	for i, f := range tl.Frames {
		if !f.Viewport.Valid() {
			t.Fatalf("frame %d has degenerate viewport %+v", i, f.Viewport)
		}
	}
}

func TestPlanContinuityAcrossPhases(t *testing.T) {
	world := Viewport{MinX: -100, MaxX: 100, MinY: -50, MaxY: 50}
	lookup := func(name string) (Viewport, bool) {
		return Viewport{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}, true
	}

	p := newTestPlanner(t, Config{
		ZoomFrames:  3,
		HoldFrames:  2,
		IntroFrames: 1,
		FinalFrames: 1,
		World:       world,
	}, lookup)

	tl := p.Plan([]string{"A"}, testCaptions)

	// intro(1) | zoom(3) | hold(2) | outro zoom(3) | final(1)
	if got := tl.Frames[1].Viewport; got != world {
		t.Fatalf("first zoom frame = %+v; want carried-over world view %+v", got, world)
	}
	target := tl.Resolutions[0].Bounds
	if got := tl.Frames[4].Viewport; got != target {
		t.Fatalf("hold frame = %+v; want exact target %+v", got, target)
	}
	if got := tl.Frames[6].Viewport; got != target {
		t.Fatalf("first outro frame = %+v; want carried-over target %+v", got, target)
	}
	if got := tl.Frames[9].Viewport; got != world {
		t.Fatalf("closing hold = %+v; want world %+v", got, world)
	}
}

func TestPlanHighlightsAndCaptions(t *testing.T) {
	lookup := func(name string) (Viewport, bool) {
		return Viewport{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}, true
	}
	p := newTestPlanner(t, Config{
		ZoomFrames:  2,
		HoldFrames:  2,
		IntroFrames: 1,
		FinalFrames: 1,
	}, lookup)

	tl := p.Plan([]string{"Brazil", "India"}, testCaptions)

	cases := []struct {
		name       string
		frame      int
		caption    string
		highlights int
	}{
		{"intro", 0, "Initiating Scan...", 0},
		{"zoom to first", 1, "Scanning: Brazil", 0},
		{"lock first", 3, "TARGET LOCKED: Brazil", 1},
		{"zoom to second keeps first highlighted", 5, "Scanning: India", 1},
		{"lock second", 7, "TARGET LOCKED: India", 2},
		{"outro", 9, "Global Analysis Complete", 2},
		{"closing", 11, "The Truth is Out There...", 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := tl.Frames[c.frame]
			if f.Caption != c.caption {
				t.Fatalf("frame %d caption = %q; want %q", c.frame, f.Caption, c.caption)
			}
			if len(f.Highlights) != c.highlights {
				t.Fatalf("frame %d has %d highlights; want %d", c.frame, len(f.Highlights), c.highlights)
			}
		})
	}
}
