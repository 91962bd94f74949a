// Package render rasterizes timeline frames into PNG stills: dark base
// map, neon country highlights, title and caption text.
package render

import (
	"fmt"
	"strings"

	"github.com/fogleman/gg"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"

	"geofacts/camera"
	"geofacts/geomap"
)

// The dark "declassified files" palette of the shorts.
const (
	backgroundColor = "#121212"
	landColor       = "#2A2A2A"
	borderColor     = "#444444"
	highlightColor  = "#FF3366"
	highlightEdge   = "#FFFFFF"
	titleColor      = "#FFFFFF"
	captionColor    = "#00FFCC"
)

const (
	titleFontSize   = 88
	captionFontSize = 64

	// Vertical anchors as a fraction of frame height.
	titleAnchor   = 0.12
	captionAnchor = 0.88
)

// Renderer draws timeline frames onto a fixed-size canvas. All fields
// are read-only after New, so a single Renderer serves concurrent
// workers; font faces are built per frame because an opentype.Face is
// not safe for concurrent use.
type Renderer struct {
	world  *geomap.Map
	width  int
	height int

	titleLines []string
	font       *opentype.Font
}

// New builds a renderer for one job. The title may contain embedded
// newlines; each line is drawn centered.
func New(world *geomap.Map, title string, width, height int) (*Renderer, error) {
	ft, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	return &Renderer{
		world:      world,
		width:      width,
		height:     height,
		titleLines: strings.Split(title, "\n"),
		font:       ft,
	}, nil
}

func (r *Renderer) face(size float64) (font.Face, error) {
	return opentype.NewFace(r.font, &opentype.FaceOptions{
		Size: size, DPI: 72, Hinting: font.HintingFull,
	})
}

// RenderFrame rasterizes a single timeline frame to a PNG file.
func (r *Renderer) RenderFrame(f camera.Frame, path string) error {
	if !f.Viewport.Valid() {
		return fmt.Errorf("degenerate viewport %+v", f.Viewport)
	}

	dc := gg.NewContext(r.width, r.height)
	dc.SetHexColor(backgroundColor)
	dc.Clear()

	proj := newProjection(f.Viewport, r.width, r.height)

	highlighted := make(map[string]bool, len(f.Highlights))
	for _, name := range f.Highlights {
		highlighted[name] = true
	}

	// Base layer first, highlights on top so their white edges are
	// never covered by a neighbor.
	for _, feat := range r.world.Features() {
		if highlighted[geomap.FeatureName(feat)] {
			continue
		}
		r.drawFeature(dc, proj, feat, landColor, borderColor, 2)
	}
	for _, feat := range r.world.Features() {
		if highlighted[geomap.FeatureName(feat)] {
			r.drawFeature(dc, proj, feat, highlightColor, highlightEdge, 3)
		}
	}

	if err := r.drawText(dc, f.Caption); err != nil {
		return err
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save frame: %w", err)
	}
	return nil
}

func (r *Renderer) drawFeature(dc *gg.Context, proj projection, feat *geojson.Feature, fill, stroke string, lineWidth float64) {
	switch g := feat.Geometry.(type) {
	case orb.Polygon:
		r.tracePolygon(dc, proj, g)
	case orb.MultiPolygon:
		for _, p := range g {
			r.tracePolygon(dc, proj, p)
		}
	default:
		return
	}

	dc.SetHexColor(fill)
	dc.FillPreserve()
	dc.SetHexColor(stroke)
	dc.SetLineWidth(lineWidth)
	dc.Stroke()
}

func (r *Renderer) tracePolygon(dc *gg.Context, proj projection, p orb.Polygon) {
	for _, ring := range p {
		for i, pt := range ring {
			x, y := proj.point(pt)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
	}
}

func (r *Renderer) drawText(dc *gg.Context, caption string) error {
	cx := float64(r.width) / 2

	titleFace, err := r.face(titleFontSize)
	if err != nil {
		return fmt.Errorf("failed to build title face: %w", err)
	}
	dc.SetFontFace(titleFace)
	dc.SetHexColor(titleColor)
	lineHeight := titleFontSize * 1.3
	top := titleAnchor*float64(r.height) - lineHeight*float64(len(r.titleLines)-1)/2
	for i, line := range r.titleLines {
		dc.DrawStringAnchored(line, cx, top+float64(i)*lineHeight, 0.5, 0.5)
	}

	if caption != "" {
		captionFace, err := r.face(captionFontSize)
		if err != nil {
			return fmt.Errorf("failed to build caption face: %w", err)
		}
		dc.SetFontFace(captionFace)
		dc.SetHexColor(captionColor)
		dc.DrawStringAnchored(caption, cx, captionAnchor*float64(r.height), 0.5, 0.5)
	}
	return nil
}

// projection maps viewport coordinates onto the pixel canvas. Latitude
// grows upward while pixel rows grow downward, hence the flipped y.
type projection struct {
	vp     camera.Viewport
	width  float64
	height float64
}

func newProjection(vp camera.Viewport, width, height int) projection {
	return projection{vp: vp, width: float64(width), height: float64(height)}
}

func (p projection) point(pt orb.Point) (float64, float64) {
	x := (pt.X() - p.vp.MinX) / p.vp.Width() * p.width
	y := (p.vp.MaxY - pt.Y()) / p.vp.Height() * p.height
	return x, y
}
