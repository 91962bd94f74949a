// Package geomap loads country geometry from GeoJSON and answers
// name-based lookups for the camera planner and the renderer.
package geomap

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Antarctica distorts a vertical world view and is dropped at load time.
const excludedCountry = "Antarctica"

// BBox is an axis-aligned bounding box in map coordinates.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Map holds a parsed country layer with a name index.
type Map struct {
	features []*geojson.Feature
	byName   map[string][]*geojson.Feature
}

// Load reads a GeoJSON FeatureCollection from disk. Features without a
// usable geometry and the Antarctica feature are skipped.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON %s: %w", path, err)
	}

	m := &Map{byName: make(map[string][]*geojson.Feature)}
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		name := FeatureName(f)
		if name == excludedCountry {
			continue
		}
		m.features = append(m.features, f)
		if name != "" {
			m.byName[name] = append(m.byName[name], f)
		}
	}

	if len(m.features) == 0 {
		return nil, fmt.Errorf("map %s contains no usable features", path)
	}
	return m, nil
}

// FeatureName returns the display name of a country feature.
func FeatureName(f *geojson.Feature) string {
	return f.Properties.MustString("name", "")
}

// Features returns every loaded feature in file order.
func (m *Map) Features() []*geojson.Feature {
	return m.features
}

// Count returns the number of loaded features.
func (m *Map) Count() int {
	return len(m.features)
}

// Bounds returns the combined bounding box of every feature with the
// given name. ok=false means the name is absent from the layer.
func (m *Map) Bounds(name string) (BBox, bool) {
	fs, ok := m.byName[name]
	if !ok || len(fs) == 0 {
		return BBox{}, false
	}

	b := fs[0].Geometry.Bound()
	for _, f := range fs[1:] {
		b = b.Union(f.Geometry.Bound())
	}
	return BBox{
		MinX: b.Min.X(),
		MinY: b.Min.Y(),
		MaxX: b.Max.X(),
		MaxY: b.Max.Y(),
	}, true
}

// Has reports whether a country name resolves to geometry.
func (m *Map) Has(name string) bool {
	_, ok := m.byName[name]
	return ok
}

// ReplaceCountry swaps the base geometry for name with the geometry of
// the overlay layer, collapsed into a single multi-polygon feature.
// Used to substitute a higher-detail national boundary for the coarse
// shape in the base world map.
func (m *Map) ReplaceCountry(name string, overlay *Map) error {
	var mp orb.MultiPolygon
	for _, f := range overlay.Features() {
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			mp = append(mp, g)
		case orb.MultiPolygon:
			mp = append(mp, g...)
		}
	}
	if len(mp) == 0 {
		return fmt.Errorf("overlay for %q has no polygon geometry", name)
	}

	kept := m.features[:0]
	for _, f := range m.features {
		if FeatureName(f) != name {
			kept = append(kept, f)
		}
	}
	m.features = kept

	merged := geojson.NewFeature(mp)
	merged.Properties = geojson.Properties{"name": name}
	m.features = append(m.features, merged)
	m.byName[name] = []*geojson.Feature{merged}
	return nil
}
