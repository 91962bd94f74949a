package geomap

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const testWorld = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "Atlantis"},
      "geometry": {"type": "Polygon", "coordinates": [[[0,0],[10,0],[10,10],[0,10],[0,0]]]}
    },
    {
      "type": "Feature",
      "properties": {"name": "Antarctica"},
      "geometry": {"type": "Polygon", "coordinates": [[[-180,-90],[180,-90],[180,-60],[-180,-60],[-180,-90]]]}
    },
    {
      "type": "Feature",
      "properties": {"name": "Lemuria"},
      "geometry": {"type": "MultiPolygon", "coordinates": [
        [[[20,5],[25,5],[25,12],[20,12],[20,5]]],
        [[[30,-3],[33,-3],[33,2],[30,2],[30,-3]]]
      ]}
    }
  ]
}`

const testOverlay = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"st_nm": "North Province"},
      "geometry": {"type": "Polygon", "coordinates": [[[19,4],[34,4],[34,13],[19,13],[19,4]]]}
    },
    {
      "type": "Feature",
      "properties": {"st_nm": "South Province"},
      "geometry": {"type": "Polygon", "coordinates": [[[29,-4],[34,-4],[34,3],[29,3],[29,-4]]]}
    }
  ]
}`

func writeMap(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.geojson")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func loadTestMap(t *testing.T, contents string) *Map {
	t.Helper()
	m, err := Load(writeMap(t, contents))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return m
}

func TestLoadDropsAntarctica(t *testing.T) {
	m := loadTestMap(t, testWorld)

	if m.Count() != 2 {
		t.Fatalf("loaded %d features; want 2", m.Count())
	}
	if m.Has("Antarctica") {
		t.Fatal("Antarctica survived loading")
	}
	for _, f := range m.Features() {
		if FeatureName(f) == "Antarctica" {
			t.Fatal("Antarctica present in feature list")
		}
	}
}

func TestBounds(t *testing.T) {
	m := loadTestMap(t, testWorld)

	cases := []struct {
		name string
		want BBox
	}{
		{"Atlantis", BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}},
		{"Lemuria", BBox{MinX: 20, MinY: -3, MaxX: 33, MaxY: 12}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := m.Bounds(c.name)
			if !ok {
				t.Fatalf("Bounds(%q) not found", c.name)
			}
			if got != c.want {
				t.Fatalf("Bounds(%q) = %+v; want %+v", c.name, got, c.want)
			}
		})
	}

	if _, ok := m.Bounds("Mu"); ok {
		t.Fatal("Bounds returned ok for unknown country")
	}
}

func TestReplaceCountry(t *testing.T) {
	m := loadTestMap(t, testWorld)
	overlay := loadTestMap(t, testOverlay)

	if err := m.ReplaceCountry("Lemuria", overlay); err != nil {
		t.Fatalf("ReplaceCountry: %v", err)
	}

	if m.Count() != 2 {
		t.Fatalf("map has %d features after replace; want 2", m.Count())
	}
	got, ok := m.Bounds("Lemuria")
	if !ok {
		t.Fatal("replaced country lost its name index")
	}
	want := BBox{MinX: 19, MinY: -4, MaxX: 34, MaxY: 13}
	if got != want {
		t.Fatalf("replaced bounds = %+v; want overlay bounds %+v", got, want)
	}
}

func TestLoadRejectsEmptyLayer(t *testing.T) {
	if _, err := Load(writeMap(t, `{"type":"FeatureCollection","features":[]}`)); err == nil {
		t.Fatal("Load accepted an empty feature collection")
	}
}

func TestDownloadFallsBack(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != downloadUserAgent {
			http.Error(w, "blocked", http.StatusForbidden)
			return
		}
		w.Write([]byte(testWorld))
	}))
	defer fallback.Close()

	path := filepath.Join(t.TempDir(), "world.geojson")
	if err := Download(path, primary.URL, fallback.URL); err != nil {
		t.Fatalf("Download: %v", err)
	}

	if _, err := Load(path); err != nil {
		t.Fatalf("downloaded file failed to load: %v", err)
	}
}

func TestDownloadUsesCachedFile(t *testing.T) {
	// The server must never be hit when the file already exists.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Download fetched despite cached file")
	}))
	defer server.Close()

	path := writeMap(t, testWorld)
	if err := Download(path, server.URL, ""); err != nil {
		t.Fatalf("Download: %v", err)
	}
}
