package config

import (
	"os"
	"strconv"
	"strings"
)

// Config carries the environment-driven settings of the service.
// Fixed rendering parameters live in constants.go; everything here is
// deployment-specific.
type Config struct {
	// Port is the HTTP API listen address, e.g. ":8080"
	Port string

	// OutputDir receives finished MP4 files
	OutputDir string

	// MapDir is where downloaded GeoJSON layers are cached
	MapDir string

	// MapURL overrides the base world map source
	MapURL string

	// OverlayCountry/OverlayURL/OverlayFallbackURL configure the
	// high-detail country substitution; empty OverlayURL disables it
	OverlayCountry     string
	OverlayURL         string
	OverlayFallbackURL string

	// RenderWorkers bounds concurrent frame rasterization
	RenderWorkers int

	// Kafka consumer settings for worker mode
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	// S3 upload settings; empty bucket disables the upload
	S3Bucket string
	S3Region string
	S3Prefix string

	// YouTubeCredentials is a service-account JSON file path; empty
	// disables the YouTube upload
	YouTubeCredentials string
}

// Load reads the configuration from environment variables, applying
// defaults for anything unset. Call godotenv.Load first so a local
// .env file is honored.
func Load() Config {
	return Config{
		Port:               ":" + getEnv("PORT", "8080"),
		OutputDir:          getEnv("OUTPUT_DIR", OutputDir),
		MapDir:             getEnv("MAP_CACHE_DIR", "."),
		MapURL:             getEnv("WORLD_MAP_URL", WorldMapURL),
		OverlayCountry:     getEnv("OVERLAY_COUNTRY", OverlayCountry),
		OverlayURL:         getEnv("OVERLAY_MAP_URL", OverlayMapURL),
		OverlayFallbackURL: getEnv("OVERLAY_FALLBACK_URL", OverlayFallbackURL),
		RenderWorkers:      getEnvInt("RENDER_WORKERS", DefaultRenderWorkers),
		KafkaBrokers:       strings.Split(getEnv("KAFKA_BOOTSTRAP_SERVERS", "localhost:9093"), ","),
		KafkaTopic:         getEnv("KAFKA_TOPIC_RENDER_JOBS", "map-render-jobs"),
		KafkaGroupID:       getEnv("KAFKA_CONSUMER_GROUP_ID", "geofacts-render-group"),
		S3Bucket:           getEnv("S3_BUCKET", ""),
		S3Region:           getEnv("S3_REGION", ""),
		S3Prefix:           getEnv("S3_PREFIX", "shorts/"),
		YouTubeCredentials: getEnv("YOUTUBE_SERVICE_ACCOUNT_FILE", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
