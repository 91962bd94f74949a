package config

// Video Output Constants
const (
	// VideoWidth is the output video width (9:16 aspect ratio)
	VideoWidth = 1080

	// VideoHeight is the output video height (9:16 aspect ratio)
	VideoHeight = 1920

	// FPS is the constant output frame rate
	FPS = 30

	// VideoCodec is the video encoding codec
	VideoCodec = "libx264"

	// PixelFormat keeps the output playable on every shorts platform
	PixelFormat = "yuv420p"

	// VideoPreset is the ffmpeg encoding speed preset
	VideoPreset = "fast"

	// FramePattern names rendered stills; the identical pattern is
	// handed to ffmpeg as its image-sequence input.
	FramePattern = "frame_%04d.png"
)

// Map Data Constants
const (
	// WorldMapFile is the on-disk cache of the base country layer
	WorldMapFile = "world.geojson"

	// OverlayMapFile is the on-disk cache of the high-detail overlay
	OverlayMapFile = "overlay.geojson"

	// WorldMapURL serves the base world-countries GeoJSON
	WorldMapURL = "https://raw.githubusercontent.com/python-visualization/folium/master/examples/data/world-countries.json"

	// OverlayCountry is replaced in the base layer by the overlay map,
	// which carries full state boundaries the base layer lacks
	OverlayCountry = "India"

	// OverlayMapURL is the primary overlay source
	OverlayMapURL = "https://raw.githubusercontent.com/geohacker/india/master/state/india_state.geojson"

	// OverlayFallbackURL is tried when the primary overlay source fails
	OverlayFallbackURL = "https://raw.githubusercontent.com/adarshbiradar/maps-of-india/master/india.geojson"
)

// Processing Constants
const (
	// DefaultRenderWorkers bounds concurrent frame rasterization
	DefaultRenderWorkers = 4

	// OutputDir is the directory for generated videos
	OutputDir = "output"
)

// YouTube Constants
const (
	// YouTubeCategoryID for Science & Technology
	YouTubeCategoryID = "28"

	// YouTubePrivacyStatus sets video visibility
	YouTubePrivacyStatus = "public"
)
