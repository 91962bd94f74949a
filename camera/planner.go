// Package camera plans the zoom/pan path of the virtual camera for a
// map-fact video. Given a scripted list of country names it produces a
// deterministic, frame-by-frame timeline of viewports that the renderer
// rasterizes one image per frame.
package camera

import (
	"fmt"
	"math/rand"
	"time"
)

// Defaults mirror the production 30fps timing for shorts.
const (
	DefaultZoomFrames  = 25
	DefaultHoldFrames  = 45
	DefaultIntroFrames = 30
	DefaultFinalFrames = 60
	DefaultShake       = 0.8
	DefaultPadding     = 7.5
	DefaultAspectRatio = 9.0 / 16.0
)

// DefaultWorld is the whole-map view used as the opening shot, the
// closing shot, and the fallback region for unresolved targets.
// Antarctica is excluded, hence the asymmetric latitude range.
var DefaultWorld = Viewport{MinX: -170, MaxX: 170, MinY: -55, MaxY: 85}

// LookupFunc resolves a target name to its raw bounding region.
// ok=false means the name has no geometry in the loaded map.
type LookupFunc func(name string) (Viewport, bool)

// Resolution records how a single target's camera region was obtained.
// Fallback targets still get a usable region (the world view) but the
// flag lets callers log or test for the degradation instead of having
// it silently swallowed.
type Resolution struct {
	Name     string
	Bounds   Viewport
	Fallback bool
}

// Captions holds the per-phase caption text. Scan and Lock are
// fmt.Sprintf formats receiving the target name.
type Captions struct {
	Intro string
	Scan  string
	Lock  string
	Outro string
	Final string
}

// Frame is a single entry of the timeline: the (possibly jittered)
// viewport to rasterize, the set of countries highlighted so far and
// the caption shown at the bottom of the screen.
type Frame struct {
	Viewport   Viewport
	Highlights []string
	Caption    string
}

// Timeline is the planner output: frames in playback order plus one
// Resolution per scripted target, in input order.
type Timeline struct {
	Frames      []Frame
	Resolutions []Resolution
}

// Config holds the planner timing parameters. Zero values fall back to
// the package defaults, with one exception: a zero Shake disables the
// jitter rather than defaulting, so callers that want the stock shake
// must set DefaultShake themselves.
type Config struct {
	ZoomFrames  int      // frames per zoom phase
	HoldFrames  int      // frames per hold-with-shake phase
	IntroFrames int      // opening hold on the world view
	FinalFrames int      // closing hold after zooming back out
	Shake       float64  // jitter amplitude in map units, 0 disables
	Padding     float64  // per-side margin added to raw target bounds, 0 defaults
	AspectRatio float64  // target width/height ratio of every viewport
	World       Viewport // default region and fallback for unresolved targets
	Rand        *rand.Rand
}

// Planner produces camera timelines. It is not safe for concurrent use;
// build one per job.
type Planner struct {
	cfg    Config
	lookup LookupFunc
}

// NewPlanner builds a planner over the given bounds source, filling in
// defaults for any zero-valued Config field. A nil Rand gets a
// time-seeded source; tests inject a fixed seed for reproducible shake.
func NewPlanner(cfg Config, lookup LookupFunc) (*Planner, error) {
	if lookup == nil {
		return nil, fmt.Errorf("camera: lookup func is required")
	}
	if cfg.ZoomFrames <= 0 {
		cfg.ZoomFrames = DefaultZoomFrames
	}
	if cfg.HoldFrames <= 0 {
		cfg.HoldFrames = DefaultHoldFrames
	}
	if cfg.IntroFrames <= 0 {
		cfg.IntroFrames = DefaultIntroFrames
	}
	if cfg.FinalFrames <= 0 {
		cfg.FinalFrames = DefaultFinalFrames
	}
	if cfg.Shake < 0 {
		return nil, fmt.Errorf("camera: shake intensity must be >= 0, got %v", cfg.Shake)
	}
	if cfg.Padding < 0 {
		return nil, fmt.Errorf("camera: padding must be >= 0, got %v", cfg.Padding)
	}
	if cfg.Padding == 0 {
		cfg.Padding = DefaultPadding
	}
	if cfg.AspectRatio <= 0 {
		cfg.AspectRatio = DefaultAspectRatio
	}
	if !cfg.World.Valid() {
		cfg.World = DefaultWorld
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Planner{cfg: cfg, lookup: lookup}, nil
}

// Resolve maps a target name to its padded, aspect-normalized camera
// region. Unknown names degrade to the world view with Fallback set.
func (p *Planner) Resolve(name string) Resolution {
	raw, ok := p.lookup(name)
	if !ok {
		return Resolution{Name: name, Bounds: p.cfg.World, Fallback: true}
	}
	bounds := NormalizeAspect(raw.Pad(p.cfg.Padding), p.cfg.AspectRatio)
	return Resolution{Name: name, Bounds: bounds}
}

// Plan builds the full timeline for the scripted targets:
//
//	intro hold on the world view
//	per target: zoom from the current viewport, then hold-with-shake
//	zoom back to the world view, closing hold
//
// The current viewport carries across phase boundaries, so the camera
// path is continuous. Zoom frame i uses t = Ease(i/N), which means the
// last zoom frame stops just short of the target; the subsequent hold
// snaps onto the exact target region, matching the carried-over
// viewport semantics of the reference footage.
func (p *Planner) Plan(targets []string, caps Captions) *Timeline {
	tl := &Timeline{}
	cur := p.cfg.World

	var highlights []string
	p.hold(tl, cur, highlights, caps.Intro, p.cfg.IntroFrames, 0)

	for _, name := range targets {
		res := p.Resolve(name)
		tl.Resolutions = append(tl.Resolutions, res)

		p.zoom(tl, cur, res.Bounds, highlights, fmt.Sprintf(caps.Scan, name))
		cur = res.Bounds

		highlights = append(highlights, name)
		p.hold(tl, cur, highlights, fmt.Sprintf(caps.Lock, name), p.cfg.HoldFrames, p.cfg.Shake)
	}

	p.zoom(tl, cur, p.cfg.World, highlights, caps.Outro)
	p.hold(tl, p.cfg.World, highlights, caps.Final, p.cfg.FinalFrames, 0)

	return tl
}

// zoom appends ZoomFrames eased interpolation frames from a to b.
// Frame 0 reproduces a exactly.
func (p *Planner) zoom(tl *Timeline, a, b Viewport, highlights []string, caption string) {
	n := p.cfg.ZoomFrames
	hl := snapshot(highlights)
	for i := 0; i < n; i++ {
		t := Ease(float64(i) / float64(n))
		tl.Frames = append(tl.Frames, Frame{
			Viewport:   Lerp(a, b, t),
			Highlights: hl,
			Caption:    caption,
		})
	}
}

// hold appends count frames locked on v, each translated by an
// independent uniform offset in [-shake, shake] on both axes.
func (p *Planner) hold(tl *Timeline, v Viewport, highlights []string, caption string, count int, shake float64) {
	hl := snapshot(highlights)
	for i := 0; i < count; i++ {
		f := Frame{Viewport: v, Highlights: hl, Caption: caption}
		if shake > 0 {
			dx := p.uniform(shake)
			dy := p.uniform(shake)
			f.Viewport = v.Translate(dx, dy)
		}
		tl.Frames = append(tl.Frames, f)
	}
}

// uniform draws from [-s, s].
func (p *Planner) uniform(s float64) float64 {
	return (p.cfg.Rand.Float64()*2 - 1) * s
}

// snapshot copies the highlight list so later appends cannot mutate
// frames already emitted.
func snapshot(highlights []string) []string {
	if len(highlights) == 0 {
		return nil
	}
	return append([]string(nil), highlights...)
}
