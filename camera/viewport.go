package camera

// Viewport is a rectangular camera window in map coordinate space.
// Bounds are map units (degrees for the world map), not pixels.
type Viewport struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`
}

func (v Viewport) Width() float64 {
	return v.MaxX - v.MinX
}

func (v Viewport) Height() float64 {
	return v.MaxY - v.MinY
}

// Center returns the midpoint of the viewport.
func (v Viewport) Center() (float64, float64) {
	return (v.MinX + v.MaxX) / 2, (v.MinY + v.MaxY) / 2
}

// Valid reports whether the viewport has positive area.
// A zero-area viewport after interpolation or jitter is a defect upstream.
func (v Viewport) Valid() bool {
	return v.MaxX > v.MinX && v.MaxY > v.MinY
}

// Translate shifts the viewport by (dx, dy) without changing its size.
func (v Viewport) Translate(dx, dy float64) Viewport {
	return Viewport{
		MinX: v.MinX + dx,
		MaxX: v.MaxX + dx,
		MinY: v.MinY + dy,
		MaxY: v.MaxY + dy,
	}
}

// Pad expands the viewport by p map units on all four sides.
func (v Viewport) Pad(p float64) Viewport {
	return Viewport{
		MinX: v.MinX - p,
		MaxX: v.MaxX + p,
		MinY: v.MinY - p,
		MaxY: v.MaxY + p,
	}
}

// Contains reports whether o lies entirely inside v (edges inclusive).
func (v Viewport) Contains(o Viewport) bool {
	return o.MinX >= v.MinX && o.MaxX <= v.MaxX && o.MinY >= v.MinY && o.MaxY <= v.MaxY
}

// Lerp linearly interpolates each of the four bounds from a to b.
// t=0 returns a exactly; t=1 returns b exactly.
func Lerp(a, b Viewport, t float64) Viewport {
	return Viewport{
		MinX: a.MinX + (b.MinX-a.MinX)*t,
		MaxX: a.MaxX + (b.MaxX-a.MaxX)*t,
		MinY: a.MinY + (b.MinY-a.MinY)*t,
		MaxY: a.MaxY + (b.MaxY-a.MaxY)*t,
	}
}

// NormalizeAspect grows the viewport (never crops) until width/height
// equals ratio, keeping the original center. The result always contains
// the input rectangle.
func NormalizeAspect(v Viewport, ratio float64) Viewport {
	cx, cy := v.Center()
	w, h := v.Width(), v.Height()

	if w/h > ratio {
		h = w / ratio
	} else {
		w = h * ratio
	}

	return Viewport{
		MinX: cx - w/2,
		MaxX: cx + w/2,
		MinY: cy - h/2,
		MaxY: cy + h/2,
	}
}

// Ease maps linear progress t in [0,1] onto the smoothstep curve
// t*t*(3-2t): slow start, slow finish, monotonic in between.
// Callers must clamp t; behavior outside [0,1] is unspecified.
func Ease(t float64) float64 {
	return t * t * (3.0 - 2.0*t)
}
